package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/marcelocantos/flow/internal/cli"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	// Set up context with cancellation on interrupt.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := &app{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	root := newRootCmd(a)
	err := root.ExecuteContext(ctx)
	switch {
	case errors.Is(err, errUsage):
		cli.PrintUsage(a.stderr)
		return 1
	case err != nil:
		cli.Diag(a.stderr, "%v", err)
		return 1
	}
	return a.code
}
