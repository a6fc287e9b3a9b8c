// Package googletasks implements the store.Store interface on the Google Tasks API.
package googletasks

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	tasks "google.golang.org/api/tasks/v1"

	"taskpad/internal/config"
	"taskpad/internal/store"
)

const (
	// DefaultListID is the special ID for the user's default tasklist,
	// which holds the whole collection.
	DefaultListID = "@default"

	// PageSize is the number of tasks fetched per page.
	PageSize = 100

	// APITimeout is the timeout for API calls.
	APITimeout = 5 * time.Second

	// OAuth scope for Google Tasks
	tasksScope = "https://www.googleapis.com/auth/tasks"

	statusCompleted   = "completed"
	statusNeedsAction = "needsAction"
)

// Store implements store.Store using the Google Tasks API. Owner scoping is
// enforced by the API itself: the OAuth token only reaches one account's
// tasks. The Tasks API exposes no creation timestamp, so records carry the
// API `updated` stamp and List relies on position order, where newly
// inserted tasks sit at the top.
type Store struct {
	svc   *tasks.Service
	owner string
}

// New creates a Google Tasks store for the given owner.
// Requires oauth_client.json and token.json to exist.
func New(ctx context.Context, cfg *config.Config, owner string) (*Store, error) {
	clientJSON, err := os.ReadFile(cfg.OAuthClientPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read oauth_client.json: %w", err)
	}

	oauthConfig, err := google.ConfigFromJSON(clientJSON, tasksScope)
	if err != nil {
		return nil, fmt.Errorf("invalid oauth_client.json: %w", err)
	}

	tokenData, err := os.ReadFile(cfg.TokenPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read token.json: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(tokenData, &token); err != nil {
		return nil, fmt.Errorf("invalid token.json: %w", err)
	}

	// Token source auto-refreshes
	tokenSource := oauthConfig.TokenSource(ctx, &token)
	httpClient := oauth2.NewClient(ctx, tokenSource)

	svc, err := tasks.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create tasks service: %w", err)
	}

	return &Store{svc: svc, owner: owner}, nil
}

// NewWithHTTPClient creates a store with a custom HTTP client (for testing).
func NewWithHTTPClient(ctx context.Context, httpClient *http.Client, owner string) (*Store, error) {
	svc, err := tasks.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, err
	}
	return &Store{svc: svc, owner: owner}, nil
}

// List implements store.Store. All tasks, completed included, in API
// position order.
func (s *Store) List(ctx context.Context) ([]store.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	var result []store.Task
	err := s.svc.Tasks.List(DefaultListID).
		MaxResults(PageSize).
		ShowCompleted(true).
		ShowHidden(true).
		ShowDeleted(false).
		Context(ctx).
		Pages(ctx, func(resp *tasks.Tasks) error {
			for _, t := range resp.Items {
				result = append(result, s.fromAPI(t))
			}
			return nil
		})
	if err != nil {
		return nil, wrapError(err)
	}

	return result, nil
}

// Insert implements store.Store. The API inserts at the top of the list and
// returns the stored record.
func (s *Store) Insert(ctx context.Context, title string, description *string) (store.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	t := &tasks.Task{Title: title}
	if description != nil {
		t.Notes = *description
	}

	created, err := s.svc.Tasks.Insert(DefaultListID, t).Context(ctx).Do()
	if err != nil {
		return store.Task{}, wrapError(err)
	}

	return s.fromAPI(created), nil
}

// Update implements store.Store.
func (s *Store) Update(ctx context.Context, id string, patch store.Patch) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	t := &tasks.Task{}
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.SetDescription {
		if patch.Description != nil {
			t.Notes = *patch.Description
		} else {
			// Force an empty Notes field onto the wire to clear it.
			t.ForceSendFields = append(t.ForceSendFields, "Notes")
		}
	}
	if patch.Completed != nil {
		if *patch.Completed {
			t.Status = statusCompleted
		} else {
			t.Status = statusNeedsAction
		}
	}

	_, err := s.svc.Tasks.Patch(DefaultListID, id, t).Context(ctx).Do()
	if err != nil {
		return wrapError(err)
	}
	return nil
}

// Delete implements store.Store.
func (s *Store) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	if err := s.svc.Tasks.Delete(DefaultListID, id).Context(ctx).Do(); err != nil {
		return wrapError(err)
	}
	return nil
}

// Close implements store.Store. The API client holds no connections that
// need explicit shutdown.
func (s *Store) Close(ctx context.Context) error {
	return nil
}

// fromAPI maps an API task to a store record.
func (s *Store) fromAPI(t *tasks.Task) store.Task {
	var description *string
	if t.Notes != "" {
		notes := t.Notes
		description = &notes
	}

	stamp, err := time.Parse(time.RFC3339, t.Updated)
	if err != nil {
		stamp = time.Time{}
	}

	return store.Task{
		ID:          t.Id,
		Owner:       s.owner,
		Title:       t.Title,
		Description: description,
		Completed:   t.Status == statusCompleted,
		CreatedAt:   stamp,
		UpdatedAt:   stamp,
	}
}

// wrapError wraps API errors with user-friendly messages.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	errStr := err.Error()

	if strings.Contains(errStr, "context deadline exceeded") {
		return fmt.Errorf("request timed out")
	}
	if strings.Contains(errStr, "401") || strings.Contains(errStr, "403") {
		return fmt.Errorf("token expired or revoked (run: taskpad login)")
	}
	if strings.Contains(errStr, "404") {
		return fmt.Errorf("not found")
	}

	return err
}
