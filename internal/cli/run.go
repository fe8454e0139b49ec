package cli

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/spf13/afero"

	"github.com/marcelocantos/flow/internal/audit"
	"github.com/marcelocantos/flow/internal/config"
	"github.com/marcelocantos/flow/internal/pipeline"
)

// Env carries the process-level collaborators of a command.
type Env struct {
	Fs     afero.Fs
	Config *config.Config
	Logger *audit.Logger // nil disables audit logging

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// RunFlow parses flowPath, resolves target and executes it. It returns the
// process exit code.
func RunFlow(ctx context.Context, env *Env, flowPath, target string) int {
	reg, err := pipeline.ParseFile(env.Fs, flowPath, env.Config.ParserOptions())
	if err != nil {
		Diag(env.Stderr, "%v", err)
		return 1
	}

	run := audit.Run{
		Flow:       flowPath,
		Target:     target,
		Components: reg.Len(),
	}

	comp, ok := reg.Resolve(target)
	if !ok {
		Diag(env.Stderr, "target %q not found", target)
		run.ExitCode, run.Error = 1, "target not found"
		logAudit(env.Logger, run)
		return 1
	}
	run.Kind = comp.Kind().String()

	e := pipeline.NewExecutor(reg, Prog)
	start := time.Now()
	err = e.Execute(ctx, comp, pipeline.Stdio{Stdin: env.Stdin, Stdout: env.Stdout, Stderr: env.Stderr})
	run.Duration = time.Since(start)

	run.ExitCode, run.Error = resolveError(env.Stderr, err)
	logAudit(env.Logger, run)
	return run.ExitCode
}

// resolveError extracts an exit code from an error. For ExitError (the
// target node exited with non-zero status, or 128+signal when killed), the
// code is propagated silently. Other errors are reported on stderr and map to 1.
func resolveError(stderr io.Writer, err error) (exitCode int, errMsg string) {
	if err == nil {
		return 0, ""
	}
	var exitErr *pipeline.ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Code < 0 {
			return 1, "terminated by signal"
		}
		return exitErr.Code, ""
	}
	Diag(stderr, "%v", err)
	return 1, err.Error()
}

func logAudit(logger *audit.Logger, run audit.Run) {
	if logger == nil {
		return
	}
	// Audit logging is best effort.
	_ = logger.Log(run)
}
