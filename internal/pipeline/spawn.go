package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"
)

// child is a branch started by spawn. It stands in for a forked process: it
// owns its streams, reports its own failure and is collected with wait.
type child struct {
	g errgroup.Group
}

// spawn runs c in a new branch. end, if non-nil, is the pipe end owned by the
// branch and is closed when the branch finishes.
func (e *Executor) spawn(ctx context.Context, c Component, stdio Stdio, end io.Closer) *child {
	ch := &child{}
	ch.g.Go(func() error {
		if end != nil {
			defer end.Close()
		}
		err := e.execute(ctx, c, stdio)
		e.report(stdio.Stderr, err)
		return err
	})
	return ch
}

// wait blocks until the branch has finished and returns its error, which has
// already been reported.
func (ch *child) wait() error {
	return ch.g.Wait()
}

// report writes the single diagnostic line for a failed branch. Non-zero exits
// are silent.
func (e *Executor) report(w io.Writer, err error) {
	if err == nil || w == nil {
		return
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return
	}
	prog := e.Prog
	if prog == "" {
		prog = "flow"
	}
	fmt.Fprintf(w, "%s: %v\n", prog, err)
}
