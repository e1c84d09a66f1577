// Command lightbnb is the command line entry point to the LightBnB data
// layer: property search, user and reservation lookups, inserts, health
// status and the background email worker.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	root, c := newRootCommand()
	err := root.ExecuteContext(ctx)
	c.close(err)
	stop()

	if err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}
