// Package store defines the remote persistence contract for tasks.
package store

import "context"

// Store is the query interface over the current user's task collection.
// Every implementation is constructed for one owner and scopes all reads
// and writes to that owner's records. Commands never talk to a backend
// directly; they go through the synchronizer, which goes through this.
type Store interface {
	// List returns all of the owner's tasks ordered by creation time,
	// newest first.
	List(ctx context.Context) ([]Task, error)

	// Insert persists a new task with completed=false and returns the
	// stored record, including the store-assigned ID and timestamps.
	// A nil description is persisted as absent, not as an empty string.
	Insert(ctx context.Context, title string, description *string) (Task, error)

	// Update applies a partial field set to the task with the given ID
	// and refreshes its updated timestamp.
	Update(ctx context.Context, id string, patch Patch) error

	// Delete removes the task with the given ID. Deleting an ID that
	// does not exist is not an error.
	Delete(ctx context.Context, id string) error

	// Close releases any connections held by the store.
	Close(ctx context.Context) error
}
