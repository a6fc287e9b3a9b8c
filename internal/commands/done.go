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
	Register(&DoneCmd{})
	Register(&ReopenCmd{})
}

// DoneCmd marks a task completed.
type DoneCmd struct{}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return nil }
func (c *DoneCmd) Synopsis() string  { return "Mark a task completed" }
func (c *DoneCmd) Usage() string     { return "taskpad done <ref>" }
func (c *DoneCmd) NeedsAuth() bool   { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, syn *sync.Synchronizer, args []string, out, errOut io.Writer) int {
	return runToggle(ctx, syn, args, true, errOut)
}

// ReopenCmd marks a completed task open again.
type ReopenCmd struct{}

func (c *ReopenCmd) Name() string      { return "reopen" }
func (c *ReopenCmd) Aliases() []string { return []string{"undone"} }
func (c *ReopenCmd) Synopsis() string  { return "Mark a task open again" }
func (c *ReopenCmd) Usage() string     { return "taskpad reopen <ref>" }
func (c *ReopenCmd) NeedsAuth() bool   { return true }

func (c *ReopenCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ReopenCmd) Run(ctx context.Context, cfg *config.Config, syn *sync.Synchronizer, args []string, out, errOut io.Writer) int {
	return runToggle(ctx, syn, args, false, errOut)
}

// runToggle is the shared implementation for done and reopen. The target
// completion state is decided here, by the caller, not by the synchronizer.
func runToggle(ctx context.Context, syn *sync.Synchronizer, args []string, completed bool, errOut io.Writer) int {
	num, err := ParseTaskRef(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	task, err := taskAt(syn, num)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	if err := syn.Toggle(ctx, task.ID, completed); err != nil {
		return mutationExitCode(err)
	}
	return exitcode.Success
}
