// Package main is the entry point for the taskpad CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"taskpad/internal/auth"
	"taskpad/internal/backend/googletasks"
	"taskpad/internal/backend/neo4jstore"
	"taskpad/internal/cli"
	"taskpad/internal/commands"
	"taskpad/internal/config"
	"taskpad/internal/store"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Store factory selecting the configured backend
	factory := func(ctx context.Context, cfg *config.Config, id auth.Identity) (store.Store, error) {
		switch cfg.Backend {
		case config.BackendGoogleTasks:
			return googletasks.New(ctx, cfg, id.User)
		case config.BackendNeo4j:
			return neo4jstore.New(ctx, cfg, id.User)
		default:
			return nil, fmt.Errorf("unknown backend: %s", cfg.Backend)
		}
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	os.Exit(code)
}
