// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/MKhiriev/go-todo-sync/internal/command"
	"github.com/MKhiriev/go-todo-sync/internal/config"
	"github.com/MKhiriev/go-todo-sync/internal/logger"
	"github.com/MKhiriev/go-todo-sync/internal/utils"
	"github.com/MKhiriev/go-todo-sync/models"
)

const userAgent = "todosync"

type httpSyncAdapter struct {
	client  *utils.HTTPClient
	syncURL string

	logger *logger.Logger
}

// NewHTTPSyncAdapter constructs the HTTP implementation of [SyncAdapter].
// The sync URL must be an absolute http(s) URL; token is sent as the bearer
// credential on every request.
func NewHTTPSyncAdapter(adapterCfg config.Adapter, token string, log *logger.Logger) (SyncAdapter, error) {
	syncURL, err := normalizeSyncURL(adapterCfg.SyncURL)
	if err != nil {
		return nil, fmt.Errorf("invalid sync url: %w", err)
	}
	if strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("%w: empty api token", ErrUnauthorized)
	}
	if log == nil {
		log = logger.Nop()
	}

	client := utils.NewHTTPClient(utils.HTTPClientOptions{
		Timeout:   adapterCfg.RequestTimeout,
		Token:     strings.TrimSpace(token),
		UserAgent: userAgent,
	})

	return &httpSyncAdapter{client: client, syncURL: syncURL, logger: log}, nil
}

func normalizeSyncURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("address must include http(s) scheme and host")
	}

	return u.String(), nil
}

// Read implements [SyncAdapter].
func (h *httpSyncAdapter) Read(ctx context.Context, token string, kinds []models.ResourceType) (models.ReadResponse, error) {
	names := make([]string, 0, len(kinds))
	for _, k := range kinds {
		names = append(names, string(k))
	}
	resourceTypes, err := json.Marshal(names)
	if err != nil {
		return models.ReadResponse{}, fmt.Errorf("encode resource types: %w", err)
	}

	body, err := h.post(ctx, "read", map[string]string{
		"sync_token":     token,
		"resource_types": string(resourceTypes),
	})
	if err != nil {
		return models.ReadResponse{}, err
	}

	var resp models.ReadResponse
	if err = json.Unmarshal(body, &resp); err != nil {
		return models.ReadResponse{}, fmt.Errorf("%w: decode read response: %w", ErrMalformedResponse, err)
	}

	return resp, nil
}

// Write implements [SyncAdapter].
func (h *httpSyncAdapter) Write(ctx context.Context, token string, envs []command.Envelope) (models.WriteResponse, error) {
	commands, err := command.Encode(envs)
	if err != nil {
		return models.WriteResponse{}, fmt.Errorf("encode commands: %w", err)
	}

	form := map[string]string{"commands": commands}
	if token != "" {
		form["sync_token"] = token
	}

	body, err := h.post(ctx, "write", form)
	if err != nil {
		return models.WriteResponse{}, err
	}

	var resp models.WriteResponse
	if err = json.Unmarshal(body, &resp); err != nil {
		return models.WriteResponse{}, fmt.Errorf("%w: decode write response: %w", ErrMalformedResponse, err)
	}

	return resp, nil
}

// post sends one form-encoded request and returns the body of a 2xx answer.
func (h *httpSyncAdapter) post(ctx context.Context, op string, form map[string]string) ([]byte, error) {
	log := h.logger.With().Str("func", "httpSyncAdapter."+op).Logger()
	started := time.Now()

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetFormData(form).
		Post(h.syncURL)
	if err != nil {
		log.Err(err).Dur("elapsed", time.Since(started)).Msg("sync request failed")
		return nil, fmt.Errorf("%w: %s request: %w", ErrTransport, op, err)
	}

	log.Debug().
		Int("status", resp.StatusCode()).
		Int("bytes", len(resp.Body())).
		Dur("elapsed", time.Since(started)).
		Msg("sync request done")

	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return resp.Body(), nil
}
