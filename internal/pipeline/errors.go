package pipeline

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is wrapped by every failed name lookup during execution.
	ErrNotFound = errors.New("component not found")

	// ErrRegistryFull is returned by Registry.Add once its limit is reached.
	ErrRegistryFull = errors.New("too many components")

	// ErrNotNode is returned when a stderr redirect refers to anything but a node.
	ErrNotNode = errors.New("stderr redirection is only applicable to nodes")

	// ErrUnsupported is returned for component kinds the executor cannot run.
	ErrUnsupported = errors.New("unsupported component type")

	// ErrEmptyCommand is returned for a node whose command has no tokens.
	ErrEmptyCommand = errors.New("empty command")
)

// ResolveError reports a reference to a name that is not in the registry.
type ResolveError struct {
	Ref string
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("component %q not found", e.Ref)
}

func (e *ResolveError) Unwrap() error { return ErrNotFound }

// LaunchError reports a program that could not be started.
type LaunchError struct {
	Program string
	Err     error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("error executing %q: %v", e.Program, e.Err)
}

func (e *LaunchError) Unwrap() error { return e.Err }

// ExitError represents a node that exited with a non-zero status.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return "" // the command's own stderr is sufficient
}
