// Package main is the entry point for the vaultsync CLI.
package main

import (
	"context"
	"os"

	"github.com/agentstation/vaultsync/cmd/vaultsync/app"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
	builtBy = "unknown"
)

func main() {
	application, err := app.New(version, commit, date, builtBy)
	if err != nil {
		app.ExitOnError(err)
	}

	// An interrupt cancels the context rather than killing the process, so
	// a run in flight can still remove its staging file before exiting.
	ctx, cancel := app.ContextWithSignals(context.Background())
	defer cancel()

	if err := application.Execute(ctx, os.Args[1:]); err != nil {
		app.ExitOnError(err)
	}
}
