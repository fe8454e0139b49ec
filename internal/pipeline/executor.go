package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"syscall"
)

// Executor runs components from a registry as a tree of processes. Every
// composite component starts its sub-components in branches of their own and
// waits for them; only nodes start operating-system processes.
type Executor struct {
	Registry *Registry

	// Prog prefixes the diagnostic line a failing branch writes to its stderr.
	Prog string

	// CommandFunc builds the process for a node. Defaults to exec.CommandContext.
	CommandFunc func(ctx context.Context, name string, args ...string) *exec.Cmd
}

// NewExecutor returns an Executor resolving names against reg.
func NewExecutor(reg *Registry, prog string) *Executor {
	return &Executor{Registry: reg, Prog: prog}
}

// Execute runs c with the given streams and blocks until its whole subtree has
// finished. Errors detected while setting c up are returned; errors inside
// spawned branches are reported on that branch's stderr and do not propagate.
// A node run directly returns *ExitError when it exits non-zero.
//
// Writers that are not *os.File are shared by every branch of the tree, so
// they are serialized behind one lock for the duration of the call.
func (e *Executor) Execute(ctx context.Context, c Component, stdio Stdio) error {
	return e.execute(ctx, c, stdio.serialized())
}

func (e *Executor) execute(ctx context.Context, c Component, stdio Stdio) error {
	switch c := c.(type) {
	case *Node:
		return e.runNode(ctx, c, stdio)
	case *Pipe:
		return e.runPipe(ctx, c, stdio)
	case *Concatenate:
		return e.runConcatenate(ctx, c, stdio)
	case *StderrRedirect:
		return e.runStderr(ctx, c, stdio)
	default:
		return fmt.Errorf("%s %q: %w", c.Kind(), c.Name(), ErrUnsupported)
	}
}

func (e *Executor) runNode(ctx context.Context, n *Node, stdio Stdio) error {
	args := Tokenize(n.Command)
	if len(args) == 0 {
		return fmt.Errorf("node %q: %w", n.Name(), ErrEmptyCommand)
	}

	newCmd := e.CommandFunc
	if newCmd == nil {
		newCmd = exec.CommandContext
	}
	cmd := newCmd(ctx, args[0], args[1:]...)
	cmd.Stdin = stdio.Stdin
	cmd.Stdout = stdio.Stdout
	cmd.Stderr = stdio.Stderr

	if err := cmd.Start(); err != nil {
		return &LaunchError{Program: args[0], Err: launchCause(err)}
	}
	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExitError{Code: exitCode(exitErr)}
		}
		return err
	}
	return nil
}

// runPipe joins the output of p.From to the input of p.To with one OS pipe.
// Both ends run concurrently; each branch closes its end of the pipe when it
// finishes so the reader sees end of file once every writer is done.
func (e *Executor) runPipe(ctx context.Context, p *Pipe, stdio Stdio) error {
	from, err := e.Registry.Lookup(p.From)
	if err != nil {
		return fmt.Errorf("pipe %q: %w", p.Name(), err)
	}
	to, err := e.Registry.Lookup(p.To)
	if err != nil {
		return fmt.Errorf("pipe %q: %w", p.Name(), err)
	}

	r, w, err := os.Pipe()
	if err != nil {
		return fmt.Errorf("pipe %q: %w", p.Name(), err)
	}

	src := e.spawn(ctx, from, Stdio{Stdin: stdio.Stdin, Stdout: w, Stderr: stdio.Stderr}, w)
	dst := e.spawn(ctx, to, Stdio{Stdin: r, Stdout: stdio.Stdout, Stderr: stdio.Stderr}, r)

	src.wait()
	dst.wait()
	return nil
}

// runConcatenate runs each part to completion before starting the next, so
// their outputs never interleave.
func (e *Executor) runConcatenate(ctx context.Context, c *Concatenate, stdio Stdio) error {
	for _, idx := range c.Indices() {
		name, _ := c.Part(idx)
		part, err := e.Registry.Lookup(name)
		if err != nil {
			return fmt.Errorf("concatenate %q: part %d: %w", c.Name(), idx, err)
		}
		e.spawn(ctx, part, stdio, nil).wait()
	}
	return nil
}

// runStderr runs the referenced node with stderr aliased to stdout.
func (e *Executor) runStderr(ctx context.Context, s *StderrRedirect, stdio Stdio) error {
	from, err := e.Registry.Lookup(s.From)
	if err != nil {
		return fmt.Errorf("stderr %q: %w", s.Name(), err)
	}
	node, ok := from.(*Node)
	if !ok {
		return fmt.Errorf("stderr %q: %s %q: %w", s.Name(), from.Kind(), from.Name(), ErrNotNode)
	}

	merged := Stdio{Stdin: stdio.Stdin, Stdout: stdio.Stdout, Stderr: stdio.Stdout}
	e.spawn(ctx, node, merged, nil).wait()
	return nil
}

// exitCode follows the shell convention of 128+signal for a process killed
// by a signal.
func exitCode(err *exec.ExitError) int {
	if ws, ok := err.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return 128 + int(ws.Signal())
	}
	return err.ExitCode()
}

// launchCause strips the exec and path wrappers so the diagnostic reads like
// the underlying system error.
func launchCause(err error) error {
	var execErr *exec.Error
	if errors.As(err, &execErr) {
		return execErr.Err
	}
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err
	}
	return err
}
