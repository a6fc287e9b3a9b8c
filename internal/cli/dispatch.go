// Package cli handles command-line parsing and dispatch.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskpad/internal/auth"
	"taskpad/internal/commands"
	"taskpad/internal/config"
	"taskpad/internal/exitcode"
	"taskpad/internal/logging"
	"taskpad/internal/notify"
	"taskpad/internal/store"
	"taskpad/internal/sync"
)

// StoreFactory creates the remote store for a signed-in user.
// Used to inject the backend during dispatch.
type StoreFactory func(ctx context.Context, cfg *config.Config, id auth.Identity) (store.Store, error)

// Dispatcher handles command-line parsing and dispatch. For commands that
// need a signed-in user it builds one synchronizer session: store from the
// factory, load, then the command.
type Dispatcher struct {
	registry *commands.Registry
	factory  StoreFactory
}

// NewDispatcher creates a new dispatcher with the given registry and store factory.
func NewDispatcher(registry *commands.Registry, factory StoreFactory) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		factory:  factory,
	}
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	// No args -> dispatch to "list" command with no args
	if len(args) == 0 {
		return d.dispatch(ctx, "list", nil, out, errOut)
	}

	cmdName := args[0]

	// If first token starts with -, it's an error (flags require a command)
	if strings.HasPrefix(cmdName, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	return d.dispatchCommand(ctx, cmd, args[1:], out, errOut)
}

func (d *Dispatcher) dispatch(ctx context.Context, cmdName string, args []string, out, errOut io.Writer) int {
	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}
	return d.dispatchCommand(ctx, cmd, args, out, errOut)
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	// Create flag set with custom error handling
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard) // We handle errors ourselves

	// Common flags
	var configDir string
	var quiet bool
	var debug bool

	fs.StringVar(&configDir, "config", "", "")
	fs.BoolVar(&quiet, "quiet", false, "")
	fs.BoolVar(&debug, "debug", false, "")

	// Register command-specific flags
	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		return flagParseExitCode(err, errOut)
	}

	// Check if first positional arg starts with - (should have been parsed as flag)
	positionalArgs := fs.Args()
	if len(positionalArgs) > 0 && strings.HasPrefix(positionalArgs[0], "-") {
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", positionalArgs[0])
		return exitcode.UserError
	}

	cfg, err := config.New(configDir)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}
	cfg.Quiet = quiet
	cfg.Debug = debug

	logger := logging.New(cfg, errOut)

	var syn *sync.Synchronizer
	if cmd.NeedsAuth() {
		id, ok := auth.NewProvider(cfg).Current()
		if !ok {
			fmt.Fprintln(errOut, "error: not signed in (run: taskpad login)")
			return exitcode.AuthError
		}

		// A nil factory means pre-flight checks only (identity gate);
		// the command then runs without a synchronizer.
		if d.factory != nil {
			st, err := d.factory(ctx, cfg, id)
			if err != nil {
				if strings.Contains(err.Error(), "token") || strings.Contains(err.Error(), "auth") {
					fmt.Fprintf(errOut, "error: auth error: %s\n", err)
					return exitcode.AuthError
				}
				fmt.Fprintf(errOut, "error: backend error: %s\n", err)
				return exitcode.BackendError
			}
			defer st.Close(ctx)

			syn = sync.New(sync.Config{
				Store:    st,
				Owner:    id.User,
				Notifier: notify.NewTerminal(out, errOut, cfg.Quiet),
				Logger:   logger,
			})
			// The load failure has already been reported through the
			// notifier; nothing more to print here.
			if err := syn.Load(ctx); err != nil {
				return exitcode.BackendError
			}
		}
	}

	return cmd.Run(ctx, cfg, syn, positionalArgs, out, errOut)
}

// flagParseExitCode reports a flag parse error the way the rest of the CLI
// phrases them.
func flagParseExitCode(err error, errOut io.Writer) int {
	errStr := err.Error()

	// Check for missing flag value
	if strings.Contains(errStr, "needs a value") || strings.Contains(errStr, "flag needs an argument") {
		parts := strings.Split(errStr, ":")
		if len(parts) > 0 {
			flagPart := strings.TrimSpace(parts[0])
			flagPart = strings.TrimPrefix(flagPart, "flag ")
			fmt.Fprintf(errOut, "error: flag needs an argument: %s\n", flagPart)
			return exitcode.UserError
		}
	}

	// Check for unknown flag
	if strings.HasPrefix(errStr, "flag provided but not defined:") {
		flagName := strings.TrimPrefix(errStr, "flag provided but not defined: ")
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", flagName)
		return exitcode.UserError
	}

	fmt.Fprintf(errOut, "error: %s\n", errStr)
	return exitcode.UserError
}
