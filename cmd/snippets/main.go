package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/chinmaymudholkar/automation-snippets/internal/cleanup"
	"github.com/chinmaymudholkar/automation-snippets/internal/cli"
)

func main() {
	// Cancel long waits and queries on Ctrl-C
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Staging files of interrupted writes
	tracker := cleanup.NewTracker()

	err := cli.ExecuteContext(ctx, tracker)
	tracker.RemoveAll()
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			fmt.Fprintln(os.Stderr, "\nInterrupted")
			os.Exit(130) // Standard exit code for SIGINT
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
