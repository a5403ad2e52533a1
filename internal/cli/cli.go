// Package cli implements the depviz command-line interface.
//
// This package wires the registry clients, the graph builder and the
// renderers into cobra commands. Logging goes through charmbracelet/log;
// styled status lines use lipgloss.
//
// # Commands
//
// The main commands are:
//   - run: the configuration-driven flow (depviz.json)
//   - tree: print the ASCII dependency tree of a package
//   - image: render a node-link diagram of a package
//   - cycles: list dependency cycles
//   - view: render a previously exported graph
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context so the resolver logs with the same settings.
package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/matzehuels/depviz/pkg/buildinfo"
	"github.com/matzehuels/depviz/pkg/errors"
	"github.com/matzehuels/depviz/pkg/observability"
)

// appName is the application name used for display and completions.
const appName = "depviz"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	out io.Writer // trees, cycle lists
	err io.Writer // logs, status lines, progress

	// interactive enables the live progress view and spinners.
	interactive bool
}

// New creates a CLI writing results to out and diagnostics to errOut.
// The live progress view is enabled when errOut is a terminal.
func New(out, errOut io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:      newLogger(errOut, level),
		out:         out,
		err:         errOut,
		interactive: isTerminal(errOut),
	}
}

// SetLogLevel updates the logger's level. Debug logging replaces the live
// progress view with log lines and logs every fetch, render and HTTP call.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		c.interactive = false
		hooks := observability.LogHooks{Logger: c.Logger}
		observability.SetBuildHooks(hooks)
		observability.SetRenderHooks(hooks)
		observability.SetHTTPHooks(hooks)
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "depviz visualizes package dependency graphs",
		Long:          `depviz resolves the transitive dependencies of a crates.io or npm package and renders them as an ASCII tree or a node-link diagram.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.SetOut(c.out)
	root.SetErr(c.err)
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "%s", cmd.CommandPath())
	})

	root.AddCommand(c.runCommand())
	root.AddCommand(c.treeCommand())
	root.AddCommand(c.imageCommand())
	root.AddCommand(c.cyclesCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// exactArgs is cobra.ExactArgs with a coded error, so usage mistakes exit
// like configuration errors.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "%s", cmd.CommandPath())
		}
		return nil
	}
}
