// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"taskpad/internal/notify"
	"taskpad/internal/store"
)

// Owner is the identity the fake store scopes its records to.
const Owner = "tester"

// FakeStore is an in-memory implementation of store.Store for testing.
// Records are held newest first, mirroring the List contract. Creation
// timestamps come from a deterministic clock that advances one second per
// insert.
type FakeStore struct {
	mu    sync.RWMutex
	tasks []store.Task
	seq   int
	clock time.Time

	// Error injection for testing
	ListErr   error
	InsertErr error
	UpdateErr error
	DeleteErr error

	// Call counters
	ListCalls   int
	InsertCalls int
	UpdateCalls int
	DeleteCalls int

	Closed bool
}

// NewFakeStore creates an empty FakeStore.
func NewFakeStore() *FakeStore {
	return &FakeStore{
		clock: time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC),
	}
}

// AddTask seeds a task directly, bypassing error injection and counters.
// Returns the assigned ID.
func (f *FakeStore) AddTask(title string, description *string, completed bool) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	task := f.newTask(title, description)
	task.Completed = completed
	f.tasks = append([]store.Task{task}, f.tasks...)
	return task.ID
}

// TaskByID returns the stored task and whether it exists.
func (f *FakeStore) TaskByID(id string) (store.Task, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, t := range f.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return store.Task{}, false
}

// List implements store.Store.
func (f *FakeStore) List(ctx context.Context) ([]store.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ListCalls++
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	result := make([]store.Task, len(f.tasks))
	copy(result, f.tasks)
	return result, nil
}

// Insert implements store.Store.
func (f *FakeStore) Insert(ctx context.Context, title string, description *string) (store.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.InsertCalls++
	if f.InsertErr != nil {
		return store.Task{}, f.InsertErr
	}
	task := f.newTask(title, description)
	f.tasks = append([]store.Task{task}, f.tasks...)
	return task, nil
}

// Update implements store.Store.
func (f *FakeStore) Update(ctx context.Context, id string, patch store.Patch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.UpdateCalls++
	if f.UpdateErr != nil {
		return f.UpdateErr
	}
	for i := range f.tasks {
		if f.tasks[i].ID != id {
			continue
		}
		if patch.Title != nil {
			f.tasks[i].Title = *patch.Title
		}
		if patch.SetDescription {
			f.tasks[i].Description = patch.Description
		}
		if patch.Completed != nil {
			f.tasks[i].Completed = *patch.Completed
		}
		f.tasks[i].UpdatedAt = f.tick()
		return nil
	}
	return nil
}

// Delete implements store.Store. Missing IDs are not an error, matching the
// contract.
func (f *FakeStore) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.DeleteCalls++
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return nil
}

// Close implements store.Store.
func (f *FakeStore) Close(ctx context.Context) error {
	f.Closed = true
	return nil
}

func (f *FakeStore) newTask(title string, description *string) store.Task {
	now := f.tick()
	f.seq++
	return store.Task{
		ID:          fmt.Sprintf("task-%d", f.seq),
		Owner:       Owner,
		Title:       title,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (f *FakeStore) tick() time.Time {
	f.clock = f.clock.Add(time.Second)
	return f.clock
}

// RecordingNotifier captures notifications for assertions.
type RecordingNotifier struct {
	Notifications []notify.Notification
}

// Notify implements notify.Notifier.
func (r *RecordingNotifier) Notify(n notify.Notification) {
	r.Notifications = append(r.Notifications, n)
}

// Errors returns the recorded error notifications.
func (r *RecordingNotifier) Errors() []notify.Notification {
	var out []notify.Notification
	for _, n := range r.Notifications {
		if n.Severity == notify.SeverityError {
			out = append(out, n)
		}
	}
	return out
}
