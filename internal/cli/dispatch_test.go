package cli_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"taskpad/internal/auth"
	"taskpad/internal/cli"
	"taskpad/internal/commands"
	"taskpad/internal/config"
	"taskpad/internal/exitcode"
	"taskpad/internal/store"
	"taskpad/internal/testutil"
)

// signedInDir creates a config dir with a stored identity.
func signedInDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{Dir: dir}
	if err := auth.Save(cfg, auth.Identity{User: testutil.Owner}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	return dir
}

func fixedFactory(fake *testutil.FakeStore) cli.StoreFactory {
	return func(ctx context.Context, cfg *config.Config, id auth.Identity) (store.Store, error) {
		return fake, nil
	}
}

func run(t *testing.T, d *cli.Dispatcher, args ...string) (int, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code := d.Run(context.Background(), args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestRun_NoArgsDispatchesList(t *testing.T) {
	fake := testutil.NewFakeStore()
	fake.AddTask("only task", nil, false)
	d := cli.NewDispatcher(commands.DefaultRegistry, fixedFactory(fake))

	// No command defaults to list, and with no args there is no --config
	// flag either, so point the config dir via the environment.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg := &config.Config{Dir: config.DefaultConfigDir()}
	if err := auth.Save(cfg, auth.Identity{User: testutil.Owner}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	code, out, errOut := run(t, d)
	if code != exitcode.Success {
		t.Fatalf("exit code = %d, stderr = %q", code, errOut)
	}
	if !strings.Contains(out, "only task") {
		t.Errorf("stdout = %q", out)
	}
	if !fake.Closed {
		t.Error("store not closed after dispatch")
	}
}

func TestRun_ListCommand(t *testing.T) {
	dir := signedInDir(t)
	fake := testutil.NewFakeStore()
	fake.AddTask("first", nil, false)
	d := cli.NewDispatcher(commands.DefaultRegistry, fixedFactory(fake))

	code, out, errOut := run(t, d, "list", "--config", dir)
	if code != exitcode.Success {
		t.Fatalf("exit code = %d, stderr = %q", code, errOut)
	}
	if !strings.Contains(out, "first") {
		t.Errorf("stdout = %q", out)
	}
	if fake.ListCalls != 1 {
		t.Errorf("list called %d times", fake.ListCalls)
	}
}

func TestRun_AddThenStoreHasTask(t *testing.T) {
	dir := signedInDir(t)
	fake := testutil.NewFakeStore()
	d := cli.NewDispatcher(commands.DefaultRegistry, fixedFactory(fake))

	code, out, errOut := run(t, d, "add", "--config", dir, "Buy", "milk")
	if code != exitcode.Success {
		t.Fatalf("exit code = %d, stderr = %q", code, errOut)
	}
	if !strings.Contains(out, "Task created: Buy milk") {
		t.Errorf("stdout = %q", out)
	}
	if fake.InsertCalls != 1 {
		t.Errorf("insert called %d times", fake.InsertCalls)
	}
}

func TestRun_QuietSuppressesInfo(t *testing.T) {
	dir := signedInDir(t)
	fake := testutil.NewFakeStore()
	d := cli.NewDispatcher(commands.DefaultRegistry, fixedFactory(fake))

	code, out, _ := run(t, d, "add", "--config", dir, "--quiet", "silent task")
	if code != exitcode.Success {
		t.Fatalf("exit code = %d", code)
	}
	if out != "" {
		t.Errorf("stdout = %q, want empty", out)
	}
}

func TestRun_UnknownCommand(t *testing.T) {
	d := cli.NewDispatcher(commands.DefaultRegistry, nil)

	code, _, errOut := run(t, d, "frobnicate")
	if code != exitcode.UserError {
		t.Fatalf("exit code = %d, want %d", code, exitcode.UserError)
	}
	if !strings.Contains(errOut, "unknown command: frobnicate") {
		t.Errorf("stderr = %q", errOut)
	}
}

func TestRun_FlagBeforeCommand(t *testing.T) {
	d := cli.NewDispatcher(commands.DefaultRegistry, nil)

	code, _, errOut := run(t, d, "--quiet", "list")
	if code != exitcode.UserError {
		t.Fatalf("exit code = %d, want %d", code, exitcode.UserError)
	}
	if !strings.Contains(errOut, "unknown command: --quiet") {
		t.Errorf("stderr = %q", errOut)
	}
}

func TestRun_UnknownFlag(t *testing.T) {
	dir := signedInDir(t)
	d := cli.NewDispatcher(commands.DefaultRegistry, fixedFactory(testutil.NewFakeStore()))

	code, _, errOut := run(t, d, "list", "--config", dir, "--bogus")
	if code != exitcode.UserError {
		t.Fatalf("exit code = %d, want %d", code, exitcode.UserError)
	}
	if !strings.Contains(errOut, "unknown flag") {
		t.Errorf("stderr = %q", errOut)
	}
}

func TestRun_NotSignedIn(t *testing.T) {
	dir := t.TempDir()
	d := cli.NewDispatcher(commands.DefaultRegistry, fixedFactory(testutil.NewFakeStore()))

	code, _, errOut := run(t, d, "list", "--config", dir)
	if code != exitcode.AuthError {
		t.Fatalf("exit code = %d, want %d", code, exitcode.AuthError)
	}
	if !strings.Contains(errOut, "not signed in (run: taskpad login)") {
		t.Errorf("stderr = %q", errOut)
	}
}

func TestRun_FactoryBackendError(t *testing.T) {
	dir := signedInDir(t)
	d := cli.NewDispatcher(commands.DefaultRegistry, func(ctx context.Context, cfg *config.Config, id auth.Identity) (store.Store, error) {
		return nil, errors.New("connection refused")
	})

	code, _, errOut := run(t, d, "list", "--config", dir)
	if code != exitcode.BackendError {
		t.Fatalf("exit code = %d, want %d", code, exitcode.BackendError)
	}
	if !strings.Contains(errOut, "backend error: connection refused") {
		t.Errorf("stderr = %q", errOut)
	}
}

func TestRun_FactoryAuthError(t *testing.T) {
	dir := signedInDir(t)
	d := cli.NewDispatcher(commands.DefaultRegistry, func(ctx context.Context, cfg *config.Config, id auth.Identity) (store.Store, error) {
		return nil, errors.New("token expired or revoked")
	})

	code, _, errOut := run(t, d, "list", "--config", dir)
	if code != exitcode.AuthError {
		t.Fatalf("exit code = %d, want %d", code, exitcode.AuthError)
	}
	if !strings.Contains(errOut, "auth error") {
		t.Errorf("stderr = %q", errOut)
	}
}

func TestRun_LoadFailure(t *testing.T) {
	dir := signedInDir(t)
	fake := testutil.NewFakeStore()
	fake.ListErr = errors.New("database unavailable")
	d := cli.NewDispatcher(commands.DefaultRegistry, fixedFactory(fake))

	code, _, errOut := run(t, d, "list", "--config", dir)
	if code != exitcode.BackendError {
		t.Fatalf("exit code = %d, want %d", code, exitcode.BackendError)
	}
	if !strings.Contains(errOut, "Could not load tasks: database unavailable") {
		t.Errorf("stderr = %q", errOut)
	}
	// Reported once, through the notifier
	if n := strings.Count(errOut, "database unavailable"); n != 1 {
		t.Errorf("failure reported %d times", n)
	}
}

func TestRun_VersionNeedsNoAuth(t *testing.T) {
	d := cli.NewDispatcher(commands.DefaultRegistry, nil)

	code, out, _ := run(t, d, "version", "--config", t.TempDir())
	if code != exitcode.Success {
		t.Fatalf("exit code = %d", code)
	}
	if out != "taskpad "+commands.Version+"\n" {
		t.Errorf("stdout = %q", out)
	}
}

func TestRun_HelpNeedsNoAuth(t *testing.T) {
	d := cli.NewDispatcher(commands.DefaultRegistry, nil)

	code, out, _ := run(t, d, "help", "--config", t.TempDir())
	if code != exitcode.Success {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(out, "Usage:") {
		t.Errorf("stdout = %q", out)
	}
}

func TestRun_AliasDispatch(t *testing.T) {
	dir := signedInDir(t)
	fake := testutil.NewFakeStore()
	fake.AddTask("via alias", nil, false)
	d := cli.NewDispatcher(commands.DefaultRegistry, fixedFactory(fake))

	code, out, errOut := run(t, d, "ls", "--config", dir)
	if code != exitcode.Success {
		t.Fatalf("exit code = %d, stderr = %q", code, errOut)
	}
	if !strings.Contains(out, "via alias") {
		t.Errorf("stdout = %q", out)
	}
}
