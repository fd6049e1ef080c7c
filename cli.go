package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
)

func init() {
	// Usage lists commands in table order.
	cobra.EnableCommandSorting = false
}

// app is one invocation of the tool.
type app struct {
	prog     string
	stdin    io.Reader
	stdout   io.Writer
	stderr   io.Writer
	logger   *slog.Logger
	commands []command
}

func newApp(prog string, cfg *Config, stdin io.Reader, stdout, stderr io.Writer, logger *slog.Logger) *app {
	gen := &generator{Template: cfg.Templates, logger: logger}
	return &app{
		prog:     prog,
		stdin:    stdin,
		stdout:   stdout,
		stderr:   stderr,
		logger:   logger,
		commands: newCommands(stdout, gen),
	}
}

// rootCommand builds the cobra command tree. Flag parsing is disabled
// throughout so every argument, including "-", reaches the commands as is.
func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:                a.prog,
		Short:              "Generate C test case tables from Test() declarations",
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceErrors:      true,
		SilenceUsage:       true,
		CompletionOptions:  cobra.CompletionOptions{DisableDefaultCmd: true},
		RunE: func(_ *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errUsage
			}
			return &UnknownCommandError{Name: args[0]}
		},
	}
	root.SetHelpCommand(&cobra.Command{
		Use:                "help",
		Hidden:             true,
		DisableFlagParsing: true,
		RunE: func(*cobra.Command, []string) error {
			return errUsage
		},
	})
	for _, c := range a.commands {
		root.AddCommand(a.subcommand(c))
	}
	root.SetUsageFunc(a.usage)
	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)
	return root
}

func (a *app) subcommand(c command) *cobra.Command {
	return &cobra.Command{
		Use:                c.Usage(),
		DisableFlagParsing: true,
		Args:               cobra.ArbitraryArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			files, err := c.processArgs(args)
			if err != nil {
				return err
			}
			s := &scanner{stdin: a.stdin, logger: a.logger}
			cases, err := s.collect(files)
			if err != nil {
				return err
			}
			a.logger.Debug("running command", "command", c.Name(), "cases", len(cases))
			return c.run(cases)
		},
	}
}

func (a *app) usage(cmd *cobra.Command) error {
	w := cmd.ErrOrStderr()
	fmt.Fprintln(w, "usage:")
	fmt.Fprintf(w, "%s help\n", a.prog)
	for _, c := range cmd.Root().Commands() {
		if c.Hidden {
			continue
		}
		fmt.Fprintf(w, "%s %s\n", a.prog, c.Use)
	}
	return nil
}

// execute dispatches args, which exclude the program name. An unknown first
// argument is rejected before cobra sees it, so flag-like names are reported
// as unknown commands too.
func (a *app) execute(root *cobra.Command, args []string) error {
	if len(args) > 0 && args[0] != "help" && lookupCommand(a.commands, args[0]) == nil {
		return &UnknownCommandError{Name: args[0]}
	}
	root.SetArgs(append([]string{}, args...))
	return root.Execute()
}
