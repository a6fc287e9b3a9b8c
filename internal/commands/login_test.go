package commands_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"taskpad/internal/auth"
	"taskpad/internal/commands"
	"taskpad/internal/config"
	"taskpad/internal/exitcode"
)

// tempConfig returns a config rooted in a fresh temp directory.
func tempConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Dir:     t.TempDir(),
		Backend: config.BackendNeo4j,
	}
}

func runAuthCmd(t *testing.T, cmd commands.Command, cfg *config.Config, args ...string) (int, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code := cmd.Run(context.Background(), cfg, nil, args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestLogin_SavesIdentity(t *testing.T) {
	cfg := tempConfig(t)

	cmd := &commands.LoginCmd{}
	cmd.SetUser("alice")
	code, out, _ := runAuthCmd(t, cmd, cfg)
	if code != exitcode.Success {
		t.Fatalf("exit code = %d", code)
	}
	if out != "signed in as alice\n" {
		t.Errorf("stdout = %q", out)
	}

	id, ok := auth.NewProvider(cfg).Current()
	if !ok || id.User != "alice" {
		t.Errorf("identity = %+v, ok = %v", id, ok)
	}

	info, err := os.Stat(cfg.IdentityPath())
	if err != nil {
		t.Fatalf("identity file: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("identity file mode = %o, want 0600", info.Mode().Perm())
	}
}

func TestLogin_RequiresUser(t *testing.T) {
	cfg := tempConfig(t)

	code, _, errOut := runAuthCmd(t, &commands.LoginCmd{}, cfg)
	if code != exitcode.UserError {
		t.Fatalf("exit code = %d, want %d", code, exitcode.UserError)
	}
	if !strings.Contains(errOut, "user name required") {
		t.Errorf("stderr = %q", errOut)
	}
	if _, ok := auth.NewProvider(cfg).Current(); ok {
		t.Error("identity saved despite error")
	}
}

func TestLogin_GoogleWithoutClientCredentials(t *testing.T) {
	cfg := tempConfig(t)
	cfg.Backend = config.BackendGoogleTasks

	code, _, errOut := runAuthCmd(t, &commands.LoginCmd{}, cfg)
	if code != exitcode.AuthError {
		t.Fatalf("exit code = %d, want %d", code, exitcode.AuthError)
	}
	if !strings.Contains(errOut, "oauth_client.json not found") {
		t.Errorf("stderr = %q", errOut)
	}
}

func TestLogout(t *testing.T) {
	cfg := tempConfig(t)
	if err := auth.Save(cfg, auth.Identity{User: "alice"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	// A stale token should be removed too
	tokenPath := cfg.TokenPath()
	if err := os.WriteFile(tokenPath, []byte("{}"), 0600); err != nil {
		t.Fatalf("write token: %v", err)
	}

	code, out, _ := runAuthCmd(t, &commands.LogoutCmd{}, cfg)
	if code != exitcode.Success {
		t.Fatalf("exit code = %d", code)
	}
	if out != "ok\n" {
		t.Errorf("stdout = %q", out)
	}
	if _, ok := auth.NewProvider(cfg).Current(); ok {
		t.Error("still signed in")
	}
	if _, err := os.Stat(tokenPath); !os.IsNotExist(err) {
		t.Error("token file survived logout")
	}
}

func TestLogout_WhenSignedOut(t *testing.T) {
	cfg := tempConfig(t)

	code, out, _ := runAuthCmd(t, &commands.LogoutCmd{}, cfg)
	if code != exitcode.Success {
		t.Fatalf("exit code = %d", code)
	}
	if out != "not signed in\n" {
		t.Errorf("stdout = %q", out)
	}
}

func TestWhoami(t *testing.T) {
	cfg := tempConfig(t)
	if err := auth.Save(cfg, auth.Identity{User: "alice"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	code, out, _ := runAuthCmd(t, &commands.WhoamiCmd{}, cfg)
	if code != exitcode.Success {
		t.Fatalf("exit code = %d", code)
	}
	if out != "alice\n" {
		t.Errorf("stdout = %q", out)
	}
}

func TestWhoami_SignedOut(t *testing.T) {
	cfg := tempConfig(t)

	code, _, errOut := runAuthCmd(t, &commands.WhoamiCmd{}, cfg)
	if code != exitcode.AuthError {
		t.Fatalf("exit code = %d, want %d", code, exitcode.AuthError)
	}
	if !strings.Contains(errOut, "not signed in") {
		t.Errorf("stderr = %q", errOut)
	}
}

func TestWhoami_CorruptIdentityFile(t *testing.T) {
	cfg := tempConfig(t)
	if err := os.WriteFile(filepath.Join(cfg.Dir, config.IdentityFile), []byte("not json"), 0600); err != nil {
		t.Fatalf("write: %v", err)
	}

	code, _, _ := runAuthCmd(t, &commands.WhoamiCmd{}, cfg)
	if code != exitcode.AuthError {
		t.Fatalf("exit code = %d, want %d", code, exitcode.AuthError)
	}
}
