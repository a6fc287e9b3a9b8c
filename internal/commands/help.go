package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskpad/internal/config"
	"taskpad/internal/exitcode"
	"taskpad/internal/sync"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "taskpad help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, syn *sync.Synchronizer, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  taskpad                                    List tasks (newest first)
  taskpad list [common flags] [--open]       List tasks; --open hides completed
  taskpad add [common flags] [--desc <text>] <title...>
  taskpad done [common flags] <ref>          Mark task <ref> completed
  taskpad reopen [common flags] <ref>        Mark task <ref> open again
  taskpad edit [common flags] [--title <text>] [--desc <text>] <ref>
  taskpad rm [common flags] <ref>            Delete task <ref>
  taskpad login [common flags] [--user <name>]
  taskpad logout [common flags]
  taskpad whoami [common flags]
  taskpad help
  taskpad version

<ref> is the task number printed by the list command.

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr and debug.log
`
