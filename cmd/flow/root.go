package main

import (
	"errors"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/marcelocantos/flow/internal/audit"
	"github.com/marcelocantos/flow/internal/cli"
	"github.com/marcelocantos/flow/internal/config"
)

var errUsage = errors.New("usage")

// app holds flag values and the outcome of the command that ran.
type app struct {
	cfgPath string
	noColor bool

	cfg  *config.Config
	code int

	stdin          io.Reader
	stdout, stderr io.Writer
}

func (a *app) env() *cli.Env {
	return &cli.Env{
		Fs:     afero.NewOsFs(),
		Config: a.cfg,
		Stdin:  a.stdin,
		Stdout: a.stdout,
		Stderr: a.stderr,
	}
}

func (a *app) loadConfig(cmd *cobra.Command, _ []string) error {
	if a.noColor {
		color.NoColor = true
	}
	var err error
	if a.cfgPath != "" {
		a.cfg, err = config.LoadFrom(a.cfgPath)
	} else {
		a.cfg, err = config.Load()
	}
	if err != nil {
		return err
	}
	return nil
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "flow <flow_file> <target>",
		Short: "Run a component of a declarative process flow",
		Long:  cli.LongHelp(),
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errUsage
			}
			return nil
		},
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.loadConfig,
		RunE: func(cmd *cobra.Command, args []string) error {
			env := a.env()
			if path := a.cfg.Audit.Path; path != "" {
				logger, err := audit.NewLogger(path)
				if err != nil {
					// Continue without audit logging.
					cli.Diag(a.stderr, "audit: %v", err)
				} else {
					env.Logger = logger
				}
			}
			a.code = cli.RunFlow(cmd.Context(), env, args[0], args[1])
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.cfgPath, "config", "", "config file (default ~/.config/flow/config.yaml)")
	root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "disable colored diagnostics")
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	root.AddCommand(newListCmd(a), newAuditCmd(a))
	return root
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list <flow_file>",
		Short: "List the components of a flow file in file order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.code = cli.RunList(a.env(), args[0])
			return nil
		},
	}
}

func newAuditCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "audit <verify|show|tail>",
		Short:     "Inspect the run audit log",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"verify", "show", "tail"},
		RunE: func(cmd *cobra.Command, args []string) error {
			a.code = cli.RunAudit(a.stdout, a.cfg.Audit.Path, args)
			return nil
		},
	}
}
