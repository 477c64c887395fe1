package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	c := newCLI()
	err := c.root.ExecuteContext(ctx)
	if closeErr := c.close(); closeErr != nil {
		fmt.Fprintln(os.Stderr, "close:", closeErr)
	}
	stop()

	if err != nil {
		os.Exit(1)
	}
}
