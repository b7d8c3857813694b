package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/headless/internal/logger"
	"github.com/alexisbeaulieu97/headless/internal/primitive"
)

// appContext holds the state shared by every subcommand.
type appContext struct {
	registry *primitive.Registry
	log      *logger.Logger
}

type rootFlags struct {
	logLevel string
}

func newRootCmd(app *appContext) *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "headless",
		Short:         "Inspect and demo headless UI primitives",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if flags.logLevel == "" {
				return nil
			}
			log, err := logger.New(logger.Options{
				Level:         flags.logLevel,
				HumanReadable: term.IsTerminal(int(os.Stderr.Fd())),
				Writer:        os.Stderr,
			})
			if err != nil {
				return fmt.Errorf("invalid log level %q: %w", flags.logLevel, err)
			}
			app.log = log
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "info", "Log level (trace, debug, info, warn, error)")

	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newShowCmd(app))
	cmd.AddCommand(newDemoCmd(app))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// commandError wraps a subcommand failure with the action that failed and a
// hint for the user.
type commandError struct {
	command string
	action  string
	err     error
	hint    string
}

func newCommandError(command, action string, err error, hint string) error {
	return &commandError{command: command, action: action, err: err, hint: hint}
}

func (e *commandError) Error() string {
	msg := fmt.Sprintf("%s: %s: %v", e.command, e.action, e.err)
	if e.hint != "" {
		msg += "\n" + e.hint
	}
	return msg
}

func (e *commandError) Unwrap() error {
	return e.err
}
