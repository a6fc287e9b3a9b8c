// Package auth supplies the current user identity and sign-out.
package auth

import (
	"encoding/json"
	"os"
	"strings"

	"taskpad/internal/config"
)

// Identity names the signed-in user. Tasks are scoped to it.
type Identity struct {
	User string `json:"user"`
}

// Provider reports the current identity, if any, and can sign the user out.
// Identity presence gates the synchronizer's load: no identity, no tasks.
type Provider interface {
	// Current returns the signed-in identity and whether one exists.
	Current() (Identity, bool)

	// SignOut removes the stored identity and any stored credentials.
	// Signing out while signed out is not an error.
	SignOut() error
}

// NewProvider returns a Provider backed by files in the config directory.
func NewProvider(cfg *config.Config) Provider {
	return &fileProvider{cfg: cfg}
}

type fileProvider struct {
	cfg *config.Config
}

func (p *fileProvider) Current() (Identity, bool) {
	data, err := os.ReadFile(p.cfg.IdentityPath())
	if err != nil {
		return Identity{}, false
	}
	var id Identity
	if err := json.Unmarshal(data, &id); err != nil {
		return Identity{}, false
	}
	if strings.TrimSpace(id.User) == "" {
		return Identity{}, false
	}
	return id, true
}

func (p *fileProvider) SignOut() error {
	if err := os.Remove(p.cfg.IdentityPath()); err != nil && !os.IsNotExist(err) {
		return err
	}
	if err := p.cfg.RemoveToken(); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Save stores the identity in the config directory with mode 0600.
func Save(cfg *config.Config, id Identity) error {
	if err := cfg.EnsureDir(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(id, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(cfg.IdentityPath(), data, 0600)
}
