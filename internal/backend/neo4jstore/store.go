// Package neo4jstore implements the store.Store interface on Neo4j.
package neo4jstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"taskpad/internal/config"
	"taskpad/internal/store"
)

const (
	// APITimeout is the timeout for store calls.
	APITimeout = 5 * time.Second
)

// Store implements store.Store on a Neo4j database. Tasks are `Task` nodes
// carrying the owner as a property; every query matches on it, so one
// database serves any number of users without leaking records across them.
type Store struct {
	driver   neo4j.DriverWithContext
	owner    string
	database string
	now      func() time.Time
}

// New connects to Neo4j and verifies connectivity. The returned store is
// scoped to the given owner.
func New(ctx context.Context, cfg *config.Config, owner string) (*Store, error) {
	driver, err := neo4j.NewDriverWithContext(cfg.Neo4jURI, neo4j.BasicAuth(cfg.Neo4jUser, cfg.Neo4jPassword, ""))
	if err != nil {
		return nil, fmt.Errorf("invalid neo4j uri: %w", err)
	}

	verifyCtx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()
	if err := driver.VerifyConnectivity(verifyCtx); err != nil {
		driver.Close(ctx)
		return nil, wrapError(err)
	}

	return &Store{
		driver:   driver,
		owner:    owner,
		database: cfg.Neo4jDatabase,
		now:      time.Now,
	}, nil
}

// List implements store.Store.
func (s *Store) List(ctx context.Context) ([]store.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	session := s.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeRead,
		DatabaseName: s.database,
	})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx,
			"MATCH (t:Task {owner: $owner}) "+
				"RETURN t.id AS id, t.title AS title, t.description AS description, "+
				"t.completed AS completed, t.created_at AS created_at, t.updated_at AS updated_at "+
				"ORDER BY t.created_at DESC",
			map[string]any{"owner": s.owner},
		)
		if err != nil {
			return nil, err
		}

		var tasks []store.Task
		for res.Next(ctx) {
			task, err := taskFromRecord(res.Record().Values, s.owner)
			if err != nil {
				return nil, err
			}
			tasks = append(tasks, task)
		}
		if err := res.Err(); err != nil {
			return nil, err
		}
		return tasks, nil
	})
	if err != nil {
		return nil, wrapError(err)
	}

	return result.([]store.Task), nil
}

// Insert implements store.Store. The ID and timestamps are assigned here,
// at the store boundary, and returned with the full record.
func (s *Store) Insert(ctx context.Context, title string, description *string) (store.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	now := s.now().UTC().Truncate(time.Millisecond)
	task := store.Task{
		ID:          uuid.New().String(),
		Owner:       s.owner,
		Title:       title,
		Description: description,
		Completed:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	session := s.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: s.database,
	})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		var desc any
		if description != nil {
			desc = *description
		}
		_, err := tx.Run(ctx,
			"CREATE (t:Task {id: $id, owner: $owner, title: $title, description: $description, "+
				"completed: $completed, created_at: $created_at, updated_at: $updated_at})",
			map[string]any{
				"id":          task.ID,
				"owner":       task.Owner,
				"title":       task.Title,
				"description": desc,
				"completed":   task.Completed,
				"created_at":  task.CreatedAt,
				"updated_at":  task.UpdatedAt,
			},
		)
		return nil, err
	})
	if err != nil {
		return store.Task{}, wrapError(err)
	}

	return task, nil
}

// Update implements store.Store.
func (s *Store) Update(ctx context.Context, id string, patch store.Patch) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	set := []string{"t.updated_at = $updated_at"}
	params := map[string]any{
		"id":         id,
		"owner":      s.owner,
		"updated_at": s.now().UTC().Truncate(time.Millisecond),
	}
	if patch.Title != nil {
		set = append(set, "t.title = $title")
		params["title"] = *patch.Title
	}
	if patch.SetDescription {
		// A nil value removes the property, keeping absent distinct
		// from empty.
		set = append(set, "t.description = $description")
		var desc any
		if patch.Description != nil {
			desc = *patch.Description
		}
		params["description"] = desc
	}
	if patch.Completed != nil {
		set = append(set, "t.completed = $completed")
		params["completed"] = *patch.Completed
	}

	session := s.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: s.database,
	})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		_, err := tx.Run(ctx,
			"MATCH (t:Task {id: $id, owner: $owner}) SET "+strings.Join(set, ", "),
			params,
		)
		return nil, err
	})
	if err != nil {
		return wrapError(err)
	}
	return nil
}

// Delete implements store.Store. Deleting a missing ID matches nothing and
// succeeds.
func (s *Store) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	session := s.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: s.database,
	})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		_, err := tx.Run(ctx,
			"MATCH (t:Task {id: $id, owner: $owner}) DETACH DELETE t",
			map[string]any{"id": id, "owner": s.owner},
		)
		return nil, err
	})
	if err != nil {
		return wrapError(err)
	}
	return nil
}

// Close implements store.Store.
func (s *Store) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

// taskFromRecord maps a result row (id, title, description, completed,
// created_at, updated_at) to a task.
func taskFromRecord(values []any, owner string) (store.Task, error) {
	if len(values) != 6 {
		return store.Task{}, fmt.Errorf("unexpected record shape: %d values", len(values))
	}

	id, ok := values[0].(string)
	if !ok {
		return store.Task{}, fmt.Errorf("unexpected id value: %v", values[0])
	}
	title, ok := values[1].(string)
	if !ok {
		return store.Task{}, fmt.Errorf("unexpected title value: %v", values[1])
	}

	var description *string
	if values[2] != nil {
		d, ok := values[2].(string)
		if !ok {
			return store.Task{}, fmt.Errorf("unexpected description value: %v", values[2])
		}
		description = &d
	}

	completed, ok := values[3].(bool)
	if !ok {
		return store.Task{}, fmt.Errorf("unexpected completed value: %v", values[3])
	}
	createdAt, ok := values[4].(time.Time)
	if !ok {
		return store.Task{}, fmt.Errorf("unexpected created_at value: %v", values[4])
	}
	updatedAt, ok := values[5].(time.Time)
	if !ok {
		return store.Task{}, fmt.Errorf("unexpected updated_at value: %v", values[5])
	}

	return store.Task{
		ID:          id,
		Owner:       owner,
		Title:       title,
		Description: description,
		Completed:   completed,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}, nil
}

// wrapError wraps driver errors with user-friendly messages.
func wrapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("request timed out")
	}
	if strings.Contains(err.Error(), "Unauthorized") {
		return fmt.Errorf("neo4j credentials rejected")
	}
	return err
}
