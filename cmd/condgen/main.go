// Command condgen generates typed condition helpers for SQL tables.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/syssam/condgen/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := cli.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
