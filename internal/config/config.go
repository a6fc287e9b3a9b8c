// Package config handles the XDG configuration directory, file paths, and settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	// AppName is the application directory name.
	AppName = "taskpad"

	// SettingsFile is the optional settings filename.
	SettingsFile = "config.yaml"

	// IdentityFile stores the signed-in user.
	IdentityFile = "identity.json"

	// OAuthClientFile is the OAuth client credentials filename
	// (googletasks backend only).
	OAuthClientFile = "oauth_client.json"

	// TokenFile is the stored OAuth token filename (googletasks backend only).
	TokenFile = "token.json"

	// DebugLogFile receives debug output when --debug is set.
	DebugLogFile = "debug.log"
)

// Backend names accepted in settings.
const (
	BackendNeo4j       = "neo4j"
	BackendGoogleTasks = "googletasks"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Backend selects the remote store implementation.
	Backend string

	// Neo4j connection settings (neo4j backend only).
	Neo4jURI      string
	Neo4jUser     string
	Neo4jPassword string
	Neo4jDatabase string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// New creates a Config with the default or specified config directory and
// loads settings from config.yaml and TASKPAD_* environment variables.
// A missing settings file is not an error; defaults apply.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}

	v := viper.New()
	v.SetDefault("backend", BackendNeo4j)
	v.SetDefault("neo4j.uri", "neo4j://localhost:7687")
	v.SetDefault("neo4j.username", "neo4j")
	v.SetDefault("neo4j.password", "")
	v.SetDefault("neo4j.database", "")
	v.SetEnvPrefix("TASKPAD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path := filepath.Join(dir, SettingsFile)
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("invalid %s: %w", SettingsFile, err)
		}
	}

	cfg := &Config{
		Dir:           dir,
		Backend:       v.GetString("backend"),
		Neo4jURI:      v.GetString("neo4j.uri"),
		Neo4jUser:     v.GetString("neo4j.username"),
		Neo4jPassword: v.GetString("neo4j.password"),
		Neo4jDatabase: v.GetString("neo4j.database"),
	}

	switch cfg.Backend {
	case BackendNeo4j, BackendGoogleTasks:
	default:
		return nil, fmt.Errorf("unknown backend: %s", cfg.Backend)
	}

	return cfg, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// IdentityPath returns the path to the identity file.
func (c *Config) IdentityPath() string {
	return filepath.Join(c.Dir, IdentityFile)
}

// OAuthClientPath returns the path to the OAuth client credentials file.
func (c *Config) OAuthClientPath() string {
	return filepath.Join(c.Dir, OAuthClientFile)
}

// TokenPath returns the path to the stored OAuth token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// DebugLogPath returns the path to the debug log file.
func (c *Config) DebugLogPath() string {
	return filepath.Join(c.Dir, DebugLogFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasOAuthClient checks if the OAuth client credentials file exists.
func (c *Config) HasOAuthClient() bool {
	_, err := os.Stat(c.OAuthClientPath())
	return err == nil
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}
