package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskpad/internal/auth"
	"taskpad/internal/config"
	"taskpad/internal/exitcode"
	"taskpad/internal/sync"
)

func init() {
	Register(&LogoutCmd{})
}

// LogoutCmd implements the logout command.
type LogoutCmd struct{}

func (c *LogoutCmd) Name() string      { return "logout" }
func (c *LogoutCmd) Aliases() []string { return nil }
func (c *LogoutCmd) Synopsis() string  { return "Sign out and remove stored credentials" }
func (c *LogoutCmd) Usage() string     { return "taskpad logout" }
func (c *LogoutCmd) NeedsAuth() bool   { return false }

func (c *LogoutCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *LogoutCmd) Run(ctx context.Context, cfg *config.Config, syn *sync.Synchronizer, args []string, out, errOut io.Writer) int {
	provider := auth.NewProvider(cfg)

	if _, ok := provider.Current(); !ok {
		if !cfg.Quiet {
			fmt.Fprintln(out, "not signed in")
		}
		return exitcode.Success
	}

	if err := provider.SignOut(); err != nil {
		fmt.Fprintf(errOut, "error: failed to sign out: %v\n", err)
		return exitcode.AuthError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
