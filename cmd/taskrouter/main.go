// Package main provides the entry point for the taskrouter CLI.
package main

import (
	"context"
	"os"

	"github.com/mrz1836/taskrouter/internal/cli"
	"github.com/mrz1836/taskrouter/internal/signal"
)

// Set at build time via -ldflags "-X main.version=...".
//
//nolint:gochecknoglobals // ldflags targets
var (
	version = ""
	commit  = ""
	date    = ""
)

func main() {
	os.Exit(run())
}

func run() int {
	h := signal.NewHandler(context.Background())
	defer h.Stop()
	defer cli.CloseLogFile()

	err := cli.Execute(h.Context(), cli.BuildInfo{Version: version, Commit: commit, Date: date})
	if err != nil && h.Signal() != nil {
		return cli.ExitInterrupted
	}
	return cli.ExitCodeForError(err)
}
