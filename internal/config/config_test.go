package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"taskpad/internal/config"
)

func TestNew_Defaults(t *testing.T) {
	cfg, err := config.New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if cfg.Backend != config.BackendNeo4j {
		t.Errorf("Backend = %q, want %q", cfg.Backend, config.BackendNeo4j)
	}
	if cfg.Neo4jURI != "neo4j://localhost:7687" {
		t.Errorf("Neo4jURI = %q", cfg.Neo4jURI)
	}
	if cfg.Neo4jUser != "neo4j" {
		t.Errorf("Neo4jUser = %q", cfg.Neo4jUser)
	}
}

func TestNew_ReadsSettingsFile(t *testing.T) {
	dir := t.TempDir()
	settings := `backend: googletasks
neo4j:
  uri: neo4j://db.example.com:7687
  username: tasks
  password: hunter2
  database: work
`
	if err := os.WriteFile(filepath.Join(dir, config.SettingsFile), []byte(settings), 0600); err != nil {
		t.Fatalf("write settings: %v", err)
	}

	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if cfg.Backend != config.BackendGoogleTasks {
		t.Errorf("Backend = %q", cfg.Backend)
	}
	if cfg.Neo4jURI != "neo4j://db.example.com:7687" {
		t.Errorf("Neo4jURI = %q", cfg.Neo4jURI)
	}
	if cfg.Neo4jUser != "tasks" || cfg.Neo4jPassword != "hunter2" || cfg.Neo4jDatabase != "work" {
		t.Errorf("neo4j settings = %q/%q/%q", cfg.Neo4jUser, cfg.Neo4jPassword, cfg.Neo4jDatabase)
	}
}

func TestNew_EnvironmentOverrides(t *testing.T) {
	t.Setenv("TASKPAD_BACKEND", "googletasks")
	t.Setenv("TASKPAD_NEO4J_URI", "neo4j://env.example.com:7687")

	cfg, err := config.New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if cfg.Backend != config.BackendGoogleTasks {
		t.Errorf("Backend = %q, want env override", cfg.Backend)
	}
	if cfg.Neo4jURI != "neo4j://env.example.com:7687" {
		t.Errorf("Neo4jURI = %q, want env override", cfg.Neo4jURI)
	}
}

func TestNew_RejectsUnknownBackend(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, config.SettingsFile), []byte("backend: sqlite\n"), 0600); err != nil {
		t.Fatalf("write settings: %v", err)
	}

	if _, err := config.New(dir); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestNew_RejectsMalformedSettings(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, config.SettingsFile), []byte("backend: [unclosed\n"), 0600); err != nil {
		t.Fatalf("write settings: %v", err)
	}

	if _, err := config.New(dir); err == nil {
		t.Fatal("expected error for malformed settings")
	}
}

func TestDefaultConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	want := filepath.Join("/tmp/xdg", config.AppName)
	if got := config.DefaultConfigDir(); got != want {
		t.Errorf("DefaultConfigDir() = %q, want %q", got, want)
	}
}

func TestPaths(t *testing.T) {
	cfg := &config.Config{Dir: "/cfg"}
	tests := map[string]string{
		cfg.IdentityPath():    "/cfg/identity.json",
		cfg.OAuthClientPath(): "/cfg/oauth_client.json",
		cfg.TokenPath():       "/cfg/token.json",
		cfg.DebugLogPath():    "/cfg/debug.log",
	}
	for got, want := range tests {
		if got != want {
			t.Errorf("path = %q, want %q", got, want)
		}
	}
}

func TestEnsureDir(t *testing.T) {
	cfg := &config.Config{Dir: filepath.Join(t.TempDir(), "nested", "taskpad")}
	if err := cfg.EnsureDir(); err != nil {
		t.Fatalf("EnsureDir failed: %v", err)
	}
	info, err := os.Stat(cfg.Dir)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0700 {
		t.Errorf("dir mode = %o, want 0700", info.Mode().Perm())
	}
}
