// Package sync owns the in-memory task list and mediates every mutation
// through the remote store.
package sync

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"

	"taskpad/internal/notify"
	"taskpad/internal/store"
)

// ErrTitleRequired is returned when a create or update is attempted with an
// empty title. The title is validated before any remote call is made.
var ErrTitleRequired = errors.New("title required")

// Config configures a Synchronizer.
type Config struct {
	// Store is the remote persistence backend. Required.
	Store store.Store

	// Owner is the current user identity. Empty means no one is signed
	// in, in which case Load does nothing and the list stays empty.
	Owner string

	// Notifier receives one notification per operation outcome.
	// Defaults to a no-op notifier.
	Notifier notify.Notifier

	// Logger receives diagnostic output. Defaults to a discard logger.
	Logger *log.Logger
}

// Synchronizer is the single source of truth for the current user's tasks.
//
// It holds an ordered in-memory copy of the owner's collection and applies
// each local change only after the corresponding remote call has succeeded,
// so a failed operation never needs rollback: the list is simply untouched.
// Failures are reported exactly once through the notifier; the error is also
// returned so callers can pick an exit code, but they must not report it again.
//
// The synchronizer is not safe for concurrent use. Mutations are keyed by
// task ID, and each operation patches only its own task, so interleaved
// remote calls from one goroutine commute safely.
type Synchronizer struct {
	store    store.Store
	owner    string
	notifier notify.Notifier
	logger   *log.Logger

	tasks   []store.Task
	loading bool
}

// New creates a Synchronizer in the loading state. Call Load before reading
// the task list.
func New(cfg Config) *Synchronizer {
	if cfg.Notifier == nil {
		cfg.Notifier = notify.Nop{}
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard, "", 0)
	}
	return &Synchronizer{
		store:    cfg.Store,
		owner:    cfg.Owner,
		notifier: cfg.Notifier,
		logger:   cfg.Logger,
		loading:  true,
	}
}

// Tasks returns a snapshot of the current list, newest first.
func (s *Synchronizer) Tasks() []store.Task {
	out := make([]store.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Loading reports whether the initial load has not yet produced a result.
func (s *Synchronizer) Loading() bool {
	return s.loading
}

// Load fetches the owner's collection and replaces the list wholesale.
// With no owner it is skipped entirely and the list stays empty. On failure
// the list keeps its prior value and a load error is reported.
func (s *Synchronizer) Load(ctx context.Context) error {
	if s.owner == "" {
		s.logger.Printf("load skipped: no identity")
		return nil
	}
	tasks, err := s.store.List(ctx)
	s.loading = false
	if err != nil {
		s.notifier.Notify(notify.Notification{
			Title:    "Could not load tasks",
			Message:  err.Error(),
			Severity: notify.SeverityError,
		})
		return err
	}
	s.tasks = tasks
	s.logger.Printf("loaded %d tasks for %s", len(tasks), s.owner)
	return nil
}

// Create persists a new task and prepends the stored record to the list.
// The title is trimmed and validated first; an empty title never reaches the
// store. The description is normalized here: trimmed empty means absent.
func (s *Synchronizer) Create(ctx context.Context, title, description string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		s.notifier.Notify(notify.Notification{
			Title:    "Could not create task",
			Message:  ErrTitleRequired.Error(),
			Severity: notify.SeverityError,
		})
		return ErrTitleRequired
	}

	created, err := s.store.Insert(ctx, title, normalizeDescription(description))
	if err != nil {
		s.notifier.Notify(notify.Notification{
			Title:    "Could not create task",
			Message:  err.Error(),
			Severity: notify.SeverityError,
		})
		return err
	}

	// Creation time is always now, so the head keeps the list sorted.
	s.tasks = append([]store.Task{created}, s.tasks...)
	s.notifier.Notify(notify.Notification{
		Title:    "Task created",
		Message:  created.Title,
		Severity: notify.SeverityInfo,
	})
	return nil
}

// Toggle sets the completion state of the task with the given ID. The caller
// supplies the target state; no negation happens here. On success only the
// matching task's completed field is patched, in place.
func (s *Synchronizer) Toggle(ctx context.Context, id string, completed bool) error {
	err := s.store.Update(ctx, id, store.Patch{Completed: &completed})
	if err != nil {
		s.notifier.Notify(notify.Notification{
			Title:    "Could not update task",
			Message:  err.Error(),
			Severity: notify.SeverityError,
		})
		return err
	}

	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i].Completed = completed
			break
		}
	}

	title := "Task reopened"
	if completed {
		title = "Task completed"
	}
	s.notifier.Notify(notify.Notification{Title: title, Severity: notify.SeverityInfo})
	return nil
}

// Update persists a new title and description for the task with the given ID
// and patches the local record in place. The title must be non-empty; the
// description is normalized like in Create.
func (s *Synchronizer) Update(ctx context.Context, id, title, description string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		s.notifier.Notify(notify.Notification{
			Title:    "Could not update task",
			Message:  ErrTitleRequired.Error(),
			Severity: notify.SeverityError,
		})
		return ErrTitleRequired
	}

	desc := normalizeDescription(description)
	err := s.store.Update(ctx, id, store.Patch{
		Title:          &title,
		Description:    desc,
		SetDescription: true,
	})
	if err != nil {
		s.notifier.Notify(notify.Notification{
			Title:    "Could not update task",
			Message:  err.Error(),
			Severity: notify.SeverityError,
		})
		return err
	}

	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i].Title = title
			s.tasks[i].Description = desc
			break
		}
	}
	s.notifier.Notify(notify.Notification{Title: "Task updated", Severity: notify.SeverityInfo})
	return nil
}

// Delete removes the task with the given ID remotely, then locally.
// Deleting an ID that is not in the list leaves the list unchanged.
func (s *Synchronizer) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		s.notifier.Notify(notify.Notification{
			Title:    "Could not delete task",
			Message:  err.Error(),
			Severity: notify.SeverityError,
		})
		return err
	}

	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			break
		}
	}
	s.notifier.Notify(notify.Notification{Title: "Task deleted", Severity: notify.SeverityInfo})
	return nil
}

// normalizeDescription maps a trimmed-empty description to absent so read
// paths never see both forms.
func normalizeDescription(description string) *string {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil
	}
	return &description
}
