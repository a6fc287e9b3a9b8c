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
	Register(&EditCmd{})
}

// EditCmd changes a task's title and/or description.
type EditCmd struct {
	title    string
	desc     string
	titleSet bool
	descSet  bool
}

// SetTitle sets the new title (for testing).
func (c *EditCmd) SetTitle(title string) {
	c.title = title
	c.titleSet = true
}

// SetDesc sets the new description (for testing).
func (c *EditCmd) SetDesc(desc string) {
	c.desc = desc
	c.descSet = true
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Edit a task" }
func (c *EditCmd) Usage() string     { return "taskpad edit [--title <text>] [--desc <text>] <ref>" }
func (c *EditCmd) NeedsAuth() bool   { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.Func("title", "", func(v string) error {
		c.title = v
		c.titleSet = true
		return nil
	})
	fs.Func("desc", "", func(v string) error {
		c.desc = v
		c.descSet = true
		return nil
	})
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, syn *sync.Synchronizer, args []string, out, errOut io.Writer) int {
	num, err := ParseTaskRef(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	if !c.titleSet && !c.descSet {
		fmt.Fprintln(errOut, "error: nothing to change (use --title or --desc)")
		return exitcode.UserError
	}

	task, err := taskAt(syn, num)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	// Fields not being edited keep their current values; the update
	// always persists both.
	title := task.Title
	if c.titleSet {
		title = strings.TrimSpace(c.title)
		if title == "" {
			fmt.Fprintln(errOut, "error: title required")
			return exitcode.UserError
		}
	}
	desc := ""
	if task.Description != nil {
		desc = *task.Description
	}
	if c.descSet {
		desc = c.desc
	}

	if err := syn.Update(ctx, task.ID, title, desc); err != nil {
		return mutationExitCode(err)
	}
	return exitcode.Success
}
