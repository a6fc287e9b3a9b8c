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
	Register(&WhoamiCmd{})
}

// WhoamiCmd prints the signed-in user.
type WhoamiCmd struct{}

func (c *WhoamiCmd) Name() string      { return "whoami" }
func (c *WhoamiCmd) Aliases() []string { return nil }
func (c *WhoamiCmd) Synopsis() string  { return "Print the signed-in user" }
func (c *WhoamiCmd) Usage() string     { return "taskpad whoami" }
func (c *WhoamiCmd) NeedsAuth() bool   { return false }

func (c *WhoamiCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *WhoamiCmd) Run(ctx context.Context, cfg *config.Config, syn *sync.Synchronizer, args []string, out, errOut io.Writer) int {
	id, ok := auth.NewProvider(cfg).Current()
	if !ok {
		fmt.Fprintln(errOut, "error: not signed in (run: taskpad login)")
		return exitcode.AuthError
	}
	fmt.Fprintln(out, id.User)
	return exitcode.Success
}
