package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskpad/internal/config"
	"taskpad/internal/exitcode"
	"taskpad/internal/sync"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	description string
}

// SetDescription sets the description (for testing).
func (c *AddCmd) SetDescription(desc string) {
	c.description = desc
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string     { return "taskpad add [--desc <text>] <title...>" }
func (c *AddCmd) NeedsAuth() bool   { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.description, "desc", "", "")
	fs.StringVar(&c.description, "d", "", "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, syn *sync.Synchronizer, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}

	// Join args to form title; the empty case is rejected here so the
	// synchronizer never sees it from the CLI.
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}

	if err := syn.Create(ctx, title, c.description); err != nil {
		return mutationExitCode(err)
	}
	return exitcode.Success
}

// mutationExitCode maps a synchronizer error to an exit code. The failure
// itself has already been reported through the notifier.
func mutationExitCode(err error) int {
	if err == sync.ErrTitleRequired {
		return exitcode.UserError
	}
	return exitcode.BackendError
}
