// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-todo-sync/internal/command"
	"github.com/MKhiriev/go-todo-sync/models"
)

type taskService struct {
	engine SyncEngine
	ids    command.IDGenerator
}

// NewTaskService creates a TaskService on top of engine. ids generates the
// correlation and placeholder ids; nil selects UUIDs.
func NewTaskService(engine SyncEngine, ids command.IDGenerator) TaskService {
	return &taskService{engine: engine, ids: ids}
}

// ── reads ───────────────────────────────────────────────────────────────────

func (s *taskService) GetTasks(ctx context.Context, query string) ([]models.Task, error) {
	res, err := s.engine.SyncWithCache(ctx, []models.ResourceType{models.ResourceItems, models.ResourceProjects})
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return res.Tasks, nil
	}

	projectNames := make(map[string]string, len(res.Projects))
	for _, p := range res.Projects {
		projectNames[p.ID] = strings.ToLower(p.Name)
	}

	tasks := make([]models.Task, 0, len(res.Tasks))
	for _, t := range res.Tasks {
		if strings.Contains(strings.ToLower(t.Content), query) ||
			strings.Contains(projectNames[t.ProjectID], query) {
			tasks = append(tasks, t)
		}
	}
	return tasks, nil
}

func (s *taskService) GetTask(ctx context.Context, id string) (models.Task, error) {
	res, err := s.engine.SyncWithCache(ctx, []models.ResourceType{models.ResourceItems})
	if err != nil {
		return models.Task{}, err
	}

	for _, t := range res.Tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return models.Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
}

func (s *taskService) GetProjects(ctx context.Context) ([]models.Project, error) {
	res, err := s.engine.SyncWithCache(ctx, []models.ResourceType{models.ResourceProjects})
	if err != nil {
		return nil, err
	}
	return res.Projects, nil
}

func (s *taskService) GetSections(ctx context.Context, projectID string) ([]models.Section, error) {
	res, err := s.engine.SyncWithCache(ctx, []models.ResourceType{models.ResourceSections})
	if err != nil {
		return nil, err
	}
	if projectID == "" {
		return res.Sections, nil
	}

	sections := make([]models.Section, 0, len(res.Sections))
	for _, sec := range res.Sections {
		if sec.ProjectID == projectID {
			sections = append(sections, sec)
		}
	}
	return sections, nil
}

func (s *taskService) GetLabels(ctx context.Context) ([]models.Label, error) {
	res, err := s.engine.SyncWithCache(ctx, []models.ResourceType{models.ResourceLabels})
	if err != nil {
		return nil, err
	}
	return res.Labels, nil
}

func (s *taskService) GetFilters(ctx context.Context) ([]models.Filter, error) {
	res, err := s.engine.SyncWithCache(ctx, []models.ResourceType{models.ResourceFilters})
	if err != nil {
		return nil, err
	}
	return res.Filters, nil
}

// ── tasks ───────────────────────────────────────────────────────────────────

func (s *taskService) AddTask(ctx context.Context, args command.ItemAddArgs) (string, error) {
	return s.create(ctx, func(b *command.Builder) (command.Envelope, error) { return b.ItemAdd(args) })
}

func (s *taskService) UpdateTask(ctx context.Context, args command.ItemUpdateArgs) error {
	return s.mutate(ctx, func(b *command.Builder) (command.Envelope, error) { return b.ItemUpdate(args) })
}

func (s *taskService) CompleteTask(ctx context.Context, id string) error {
	return s.mutate(ctx, func(b *command.Builder) (command.Envelope, error) { return b.ItemComplete(id) })
}

func (s *taskService) CloseTask(ctx context.Context, id string) error {
	return s.mutate(ctx, func(b *command.Builder) (command.Envelope, error) { return b.ItemClose(id) })
}

func (s *taskService) ReopenTask(ctx context.Context, id string) error {
	return s.mutate(ctx, func(b *command.Builder) (command.Envelope, error) { return b.ItemReopen(id) })
}

func (s *taskService) DeleteTask(ctx context.Context, id string) error {
	return s.mutate(ctx, func(b *command.Builder) (command.Envelope, error) { return b.ItemDelete(id) })
}

func (s *taskService) MoveTask(ctx context.Context, args command.ItemMoveArgs) error {
	return s.mutate(ctx, func(b *command.Builder) (command.Envelope, error) { return b.ItemMove(args) })
}

// ── projects ────────────────────────────────────────────────────────────────

func (s *taskService) AddProject(ctx context.Context, args command.ProjectAddArgs) (string, error) {
	return s.create(ctx, func(b *command.Builder) (command.Envelope, error) { return b.ProjectAdd(args) })
}

func (s *taskService) UpdateProject(ctx context.Context, args command.ProjectUpdateArgs) error {
	return s.mutate(ctx, func(b *command.Builder) (command.Envelope, error) { return b.ProjectUpdate(args) })
}

func (s *taskService) DeleteProject(ctx context.Context, id string) error {
	return s.mutate(ctx, func(b *command.Builder) (command.Envelope, error) { return b.ProjectDelete(id) })
}

// ── sections ────────────────────────────────────────────────────────────────

func (s *taskService) AddSection(ctx context.Context, args command.SectionAddArgs) (string, error) {
	return s.create(ctx, func(b *command.Builder) (command.Envelope, error) { return b.SectionAdd(args) })
}

func (s *taskService) UpdateSection(ctx context.Context, args command.SectionUpdateArgs) error {
	return s.mutate(ctx, func(b *command.Builder) (command.Envelope, error) { return b.SectionUpdate(args) })
}

func (s *taskService) DeleteSection(ctx context.Context, id string) error {
	return s.mutate(ctx, func(b *command.Builder) (command.Envelope, error) { return b.SectionDelete(id) })
}

func (s *taskService) ArchiveSection(ctx context.Context, id string) error {
	return s.mutate(ctx, func(b *command.Builder) (command.Envelope, error) { return b.SectionArchive(id) })
}

func (s *taskService) UnarchiveSection(ctx context.Context, id string) error {
	return s.mutate(ctx, func(b *command.Builder) (command.Envelope, error) { return b.SectionUnarchive(id) })
}

func (s *taskService) MoveSection(ctx context.Context, id, projectID string) error {
	return s.mutate(ctx, func(b *command.Builder) (command.Envelope, error) { return b.SectionMove(id, projectID) })
}

func (s *taskService) ReorderSections(ctx context.Context, entries []command.OrderEntry) error {
	return s.mutate(ctx, func(b *command.Builder) (command.Envelope, error) { return b.SectionReorder(entries) })
}

// ── labels ──────────────────────────────────────────────────────────────────

func (s *taskService) AddLabel(ctx context.Context, args command.LabelAddArgs) (string, error) {
	return s.create(ctx, func(b *command.Builder) (command.Envelope, error) { return b.LabelAdd(args) })
}

func (s *taskService) UpdateLabel(ctx context.Context, args command.LabelUpdateArgs) error {
	return s.mutate(ctx, func(b *command.Builder) (command.Envelope, error) { return b.LabelUpdate(args) })
}

func (s *taskService) DeleteLabel(ctx context.Context, id string) error {
	return s.mutate(ctx, func(b *command.Builder) (command.Envelope, error) { return b.LabelDelete(id) })
}

// ── filters ─────────────────────────────────────────────────────────────────

func (s *taskService) AddFilter(ctx context.Context, args command.FilterAddArgs) (string, error) {
	return s.create(ctx, func(b *command.Builder) (command.Envelope, error) { return b.FilterAdd(args) })
}

func (s *taskService) UpdateFilter(ctx context.Context, args command.FilterUpdateArgs) error {
	return s.mutate(ctx, func(b *command.Builder) (command.Envelope, error) { return b.FilterUpdate(args) })
}

func (s *taskService) DeleteFilter(ctx context.Context, id string) error {
	return s.mutate(ctx, func(b *command.Builder) (command.Envelope, error) { return b.FilterDelete(id) })
}

func (s *taskService) ReorderFilters(ctx context.Context, entries []command.OrderEntry) error {
	return s.mutate(ctx, func(b *command.Builder) (command.Envelope, error) { return b.FilterUpdateOrders(entries) })
}

// ── batch ───────────────────────────────────────────────────────────────────

func (s *taskService) ExecuteBatch(ctx context.Context, b *command.Builder) (WriteResult, error) {
	res, err := s.engine.WriteSync(ctx, b.Build())
	if res.Outcomes != nil {
		b.Reset()
	}
	return res, err
}

type addFunc func(b *command.Builder) (command.Envelope, error)

// submit builds a single envelope and writes it.
func (s *taskService) submit(ctx context.Context, add addFunc) (command.Envelope, WriteResult, error) {
	b := command.NewBuilder(s.ids)
	env, err := add(b)
	if err != nil {
		return command.Envelope{}, WriteResult{}, err
	}

	res, err := s.engine.WriteSync(ctx, b.Build())
	return env, res, err
}

func (s *taskService) mutate(ctx context.Context, add addFunc) error {
	_, _, err := s.submit(ctx, add)
	return err
}

// create returns the real id resolved through the envelope's own
// placeholder.
func (s *taskService) create(ctx context.Context, add addFunc) (string, error) {
	env, res, err := s.submit(ctx, add)
	if err != nil {
		return "", err
	}

	id, ok := res.RealID(env)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrPlaceholderUnresolved, env.TempID)
	}
	return id, nil
}
