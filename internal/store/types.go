// Package store defines the remote persistence contract for tasks.
package store

import "time"

// Task is a single to-do record owned by one user.
type Task struct {
	// ID is assigned by the store at creation and never changes.
	ID string

	// Owner identifies the user the task belongs to. Set at creation,
	// never changed; every query is scoped to it.
	Owner string

	// Title is required and never persisted empty.
	Title string

	// Description is optional. Nil means absent, which is distinct
	// from an empty string and is the only form the store ever sees.
	Description *string

	// Completed defaults to false at creation.
	Completed bool

	// CreatedAt is assigned at creation and is the sole sort key.
	CreatedAt time.Time

	// UpdatedAt is refreshed on every mutation.
	UpdatedAt time.Time
}

// Patch is a partial update. Nil fields are left unchanged.
type Patch struct {
	// Title, when non-nil, replaces the stored title.
	Title *string

	// Description replaces the stored description when SetDescription
	// is true. A nil Description with SetDescription set clears it.
	Description    *string
	SetDescription bool

	// Completed, when non-nil, replaces the completion state.
	Completed *bool
}
