package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskpad/internal/config"
	"taskpad/internal/exitcode"
	"taskpad/internal/output"
	"taskpad/internal/sync"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `taskpad` (no args) and `taskpad list`.
type ListCmd struct {
	open bool
}

// SetOpen sets the open-only filter (for testing).
func (c *ListCmd) SetOpen(open bool) {
	c.open = open
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string     { return "taskpad list [--open]" }
func (c *ListCmd) NeedsAuth() bool   { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.open, "open", false, "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, syn *sync.Synchronizer, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintln(errOut, "error: list takes no arguments")
		return exitcode.UserError
	}

	// Numbers are absolute positions in the list so refs stay stable
	// whether or not completed tasks are filtered out.
	printed := 0
	for num, task := range syn.Tasks() {
		if c.open && task.Completed {
			continue
		}
		output.FormatTask(out, num+1, task)
		printed++
	}

	if printed == 0 && !cfg.Quiet {
		fmt.Fprintln(out, "no tasks found")
	}
	return exitcode.Success
}
