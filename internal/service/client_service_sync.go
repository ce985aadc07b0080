// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-todo-sync/internal/adapter"
	"github.com/MKhiriev/go-todo-sync/internal/command"
	"github.com/MKhiriev/go-todo-sync/internal/logger"
	"github.com/MKhiriev/go-todo-sync/internal/mapper"
	"github.com/MKhiriev/go-todo-sync/internal/store"
	"github.com/MKhiriev/go-todo-sync/models"
)

// DefaultCacheTTL is the freshness window of a cached snapshot.
const DefaultCacheTTL = 5 * time.Minute

type syncEngine struct {
	adapter adapter.SyncAdapter
	cache   store.CacheStore
	metrics *Metrics
	logger  *logger.Logger
	now     func() time.Time
	ttl     time.Duration

	// roundTrip serializes network calls so two batches never race on the
	// token. mu guards the fields below it.
	roundTrip sync.Mutex

	mu     sync.RWMutex
	token  string
	snap   *models.CacheSnapshot
	loaded bool
}

// EngineOption customizes a SyncEngine.
type EngineOption func(*syncEngine)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) EngineOption {
	return func(e *syncEngine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithCacheTTL sets the freshness window. Negative values are ignored.
func WithCacheTTL(ttl time.Duration) EngineOption {
	return func(e *syncEngine) {
		if ttl >= 0 {
			e.ttl = ttl
		}
	}
}

// WithMetrics makes the engine count into m.
func WithMetrics(m *Metrics) EngineOption {
	return func(e *syncEngine) {
		if m != nil {
			e.metrics = m
		}
	}
}

// NewSyncEngine creates an engine with no held token. The persisted cache is
// read lazily by the first call that needs it.
func NewSyncEngine(syncAdapter adapter.SyncAdapter, cache store.CacheStore, log *logger.Logger, opts ...EngineOption) SyncEngine {
	if log == nil {
		log = logger.Nop()
	}

	e := &syncEngine{
		adapter: syncAdapter,
		cache:   cache,
		logger:  log,
		now:     time.Now,
		ttl:     DefaultCacheTTL,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.metrics == nil {
		e.metrics = NewMetrics()
	}

	return e
}

func (e *syncEngine) ReadSync(ctx context.Context, kinds []models.ResourceType) (models.Resources, error) {
	if len(kinds) == 0 {
		return models.Resources{}, ErrNoResourceTypes
	}

	e.roundTrip.Lock()
	defer e.roundTrip.Unlock()

	e.ensureLoaded(ctx)
	return e.readSync(ctx, kinds, false)
}

func (e *syncEngine) FullSync(ctx context.Context, kinds []models.ResourceType) (models.Resources, error) {
	if len(kinds) == 0 {
		return models.Resources{}, ErrNoResourceTypes
	}

	e.roundTrip.Lock()
	defer e.roundTrip.Unlock()

	return e.readSync(ctx, kinds, true)
}

func (e *syncEngine) SyncWithCache(ctx context.Context, kinds []models.ResourceType) (models.Resources, error) {
	if len(kinds) == 0 {
		return models.Resources{}, ErrNoResourceTypes
	}

	e.roundTrip.Lock()
	defer e.roundTrip.Unlock()

	e.ensureLoaded(ctx)

	e.mu.RLock()
	snap, token := e.snap, e.token
	e.mu.RUnlock()

	switch {
	case snap == nil || token == "":
		e.metrics.cacheLookup(lookupMiss)
	case !snap.Covers(kinds):
		e.metrics.cacheLookup(lookupMiss)
		e.logger.Debug().
			Str("func", "syncEngine.SyncWithCache").
			Str("resource_types", joinKinds(kinds)).
			Msg("requested kinds were never fetched")
	case store.IsExpired(snap, e.ttl, e.now()):
		e.metrics.cacheLookup(lookupStale)
		e.logger.Debug().
			Str("func", "syncEngine.SyncWithCache").
			Int64("age_seconds", store.Age(snap, e.now())).
			Msg("cache is stale")
	default:
		e.metrics.cacheLookup(lookupHit)
		return project(snap.Data, kinds), nil
	}

	return e.readSync(ctx, kinds, false)
}

// readSync performs one read round trip. The next snapshot is built aside
// and only swapped in after the response decoded. full ignores the held
// token and starts from an empty snapshot. A kind the snapshot has never
// fetched is requested with the full sync token: a delta against the held
// token would replace its section with only the recent changes.
func (e *syncEngine) readSync(ctx context.Context, kinds []models.ResourceType, full bool) (models.Resources, error) {
	e.mu.RLock()
	held := e.token
	base := e.snap
	e.mu.RUnlock()

	sent := held
	if full || sent == "" || !base.Covers(kinds) {
		sent = models.FullSyncToken
	}
	if full {
		base = nil
	}

	resp, err := e.adapter.Read(ctx, sent, kinds)
	if err != nil {
		e.metrics.readSync(resultError)
		e.logger.Err(err).
			Str("func", "syncEngine.readSync").
			Str("resource_types", joinKinds(kinds)).
			Msg("read sync failed")
		return models.Resources{}, fmt.Errorf("read sync: %w", err)
	}
	e.metrics.readSync(resultOK)

	next := base.Clone()
	if next == nil {
		next = &models.CacheSnapshot{}
	}
	for _, kind := range kinds {
		next.Data.Replace(kind, resp)
	}
	next.MarkFetched(kinds)

	newToken := held
	if full {
		newToken = ""
	}
	if resp.SyncToken != "" {
		newToken = resp.SyncToken
	}
	next.SyncToken = newToken
	next.CachedAt = e.now().Unix()

	e.mu.Lock()
	e.token = newToken
	e.snap = next
	e.loaded = true
	e.mu.Unlock()

	e.logger.Debug().
		Str("func", "syncEngine.readSync").
		Str("resource_types", joinKinds(kinds)).
		Bool("full_sync", resp.FullSync).
		Msg("read sync applied")

	e.persist(ctx, next)

	return project(next.Data, kinds), nil
}

func (e *syncEngine) WriteSync(ctx context.Context, envs []command.Envelope) (WriteResult, error) {
	if len(envs) == 0 {
		return WriteResult{}, ErrEmptyBatch
	}

	e.roundTrip.Lock()
	defer e.roundTrip.Unlock()

	e.ensureLoaded(ctx)

	e.mu.RLock()
	held := e.token
	e.mu.RUnlock()

	resp, err := e.adapter.Write(ctx, held, envs)
	if err != nil {
		e.metrics.writeSync(resultError)
		e.logger.Err(err).
			Str("func", "syncEngine.WriteSync").
			Int("commands", len(envs)).
			Msg("write sync failed")
		if errors.Is(err, adapter.ErrTransport) && !isDialError(err) {
			// The request may have reached the server.
			err = &AmbiguousOutcomeError{Missing: missingAll(envs), Cause: err}
		}
		return WriteResult{}, fmt.Errorf("write sync: %w", err)
	}
	e.metrics.writeSync(resultOK)

	// The server state changed even if some commands failed.
	if resp.SyncToken != "" {
		e.mu.Lock()
		e.token = resp.SyncToken
		e.mu.Unlock()
	}

	result, err := e.collectOutcomes(envs, resp)
	result.SyncToken = e.Token()

	if err != nil {
		e.logger.Warn().
			Err(err).
			Str("func", "syncEngine.WriteSync").
			Int("commands", len(envs)).
			Msg("write sync completed with errors")
	}

	return result, err
}

// collectOutcomes matches every envelope against the status map and the
// placeholder mapping of resp.
func (e *syncEngine) collectOutcomes(envs []command.Envelope, resp models.WriteResponse) (WriteResult, error) {
	result := WriteResult{
		Outcomes:      make(map[string]Outcome, len(envs)),
		TempIDMapping: maps.Clone(resp.TempIDMapping),
	}

	var (
		failures   []OperationFailure
		missing    []MissingOperation
		unresolved []string
	)

	for _, env := range envs {
		status, ok := resp.SyncStatus[env.UUID]
		switch {
		case !ok:
			missing = append(missing, MissingOperation{UUID: env.UUID, Type: env.Type})
			result.Outcomes[env.UUID] = Outcome{State: OutcomeUnknown}

		case !status.OK:
			cmdErr := models.CommandError{Error: "unknown error"}
			if status.Error != nil {
				cmdErr = *status.Error
			}
			failures = append(failures, OperationFailure{UUID: env.UUID, Type: env.Type, Error: cmdErr})
			result.Outcomes[env.UUID] = Outcome{State: OutcomeFailed, Error: &cmdErr}

		default:
			outcome := Outcome{State: OutcomeApplied}
			if env.TempID != "" {
				outcome.RealID = resp.TempIDMapping[env.TempID]
				if outcome.RealID == "" {
					unresolved = append(unresolved, env.TempID)
				}
			}
			result.Outcomes[env.UUID] = outcome
		}

		e.metrics.command(result.Outcomes[env.UUID].State)
	}

	var errs []error
	if len(failures) > 0 {
		errs = append(errs, &BatchError{Failures: failures})
	}
	if len(missing) > 0 {
		errs = append(errs, &AmbiguousOutcomeError{Missing: missing})
	}
	if len(unresolved) > 0 {
		errs = append(errs, fmt.Errorf("%w: %s", ErrPlaceholderUnresolved, strings.Join(unresolved, ", ")))
	}

	return result, errors.Join(errs...)
}

func (e *syncEngine) Token() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.token
}

func (e *syncEngine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.token = ""
	e.snap = nil
	e.loaded = true
}

func (e *syncEngine) CacheStatus(ctx context.Context) (CacheStatus, error) {
	snap, err := e.cache.Load(ctx)
	if errors.Is(err, store.ErrCorruptedCache) {
		return CacheStatus{Exists: true, Corrupted: true, Expired: true}, nil
	}
	if err != nil {
		return CacheStatus{}, fmt.Errorf("load cache: %w", err)
	}
	if snap == nil {
		return CacheStatus{Expired: true}, nil
	}

	now := e.now()
	records := make(map[models.ResourceType]int, len(models.AllResourceTypes))
	for _, kind := range models.AllResourceTypes {
		records[kind] = snap.Data.Len(kind)
	}

	return CacheStatus{
		Exists:     true,
		SyncToken:  snap.SyncToken,
		CachedAt:   snap.CachedAt,
		AgeSeconds: store.Age(snap, now),
		Expired:    store.IsExpired(snap, e.ttl, now),
		Fetched:    snap.Fetched,
		Records:    records,
	}, nil
}

func (e *syncEngine) ClearCache(ctx context.Context) error {
	e.roundTrip.Lock()
	defer e.roundTrip.Unlock()

	if err := e.cache.Clear(ctx); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	e.Reset()
	return nil
}

// ensureLoaded adopts the persisted snapshot the first time it is needed.
// Any load problem counts as "no cache"; a token already held in memory is
// never replaced by an older persisted one.
func (e *syncEngine) ensureLoaded(ctx context.Context) {
	e.mu.RLock()
	loaded := e.loaded
	e.mu.RUnlock()
	if loaded {
		return
	}

	snap, err := e.cache.Load(ctx)
	switch {
	case errors.Is(err, store.ErrCorruptedCache):
		e.metrics.cacheLookup(lookupCorrupt)
		e.logger.Warn().Err(err).Str("func", "syncEngine.ensureLoaded").Msg("ignoring corrupted cache")
		snap = nil
	case err != nil:
		e.logger.Warn().Err(err).Str("func", "syncEngine.ensureLoaded").Msg("cache not loaded")
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.loaded {
		return
	}
	e.loaded = true
	if snap == nil {
		return
	}
	if e.snap == nil {
		e.snap = snap
	}
	if e.token == "" {
		e.token = snap.SyncToken
	}
}

func (e *syncEngine) persist(ctx context.Context, snap *models.CacheSnapshot) {
	if err := e.cache.Save(ctx, snap); err != nil {
		e.metrics.cacheWrite(resultError)
		e.logger.Err(err).Str("func", "syncEngine.persist").Msg("failed to persist cache snapshot")
		return
	}
	e.metrics.cacheWrite(resultOK)
}

// project converts the sections for kinds into canonical records. Sections
// that were not asked for stay empty.
func project(d models.CacheData, kinds []models.ResourceType) models.Resources {
	var sel models.CacheData
	for _, kind := range models.ExpandResourceTypes(kinds) {
		switch kind {
		case models.ResourceProjects:
			sel.Projects = d.Projects
		case models.ResourceItems:
			sel.Items = d.Items
		case models.ResourceSections:
			sel.Sections = d.Sections
		case models.ResourceLabels:
			sel.Labels = d.Labels
		case models.ResourceFilters:
			sel.Filters = d.Filters
		}
	}
	return mapper.Resources(sel)
}

func joinKinds(kinds []models.ResourceType) string {
	parts := make([]string, 0, len(kinds))
	for _, k := range kinds {
		parts = append(parts, string(k))
	}
	return strings.Join(parts, ",")
}

// isDialError reports whether err happened while connecting, i.e. before
// anything was sent.
func isDialError(err error) bool {
	var opErr *net.OpError
	return errors.As(err, &opErr) && opErr.Op == "dial"
}

func missingAll(envs []command.Envelope) []MissingOperation {
	missing := make([]MissingOperation, 0, len(envs))
	for _, env := range envs {
		missing = append(missing, MissingOperation{UUID: env.UUID, Type: env.Type})
	}
	return missing
}
