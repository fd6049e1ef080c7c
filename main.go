package main

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// exitError carries the process exit status out of run. Err, when set, has
// not been reported yet.
type exitError struct {
	Code int
	Err  error
}

func (e *exitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *exitError) Unwrap() error { return e.Err }

func main() {
	if err := run(os.Args, os.Getenv, os.Stdin, os.Stdout, os.Stderr); err != nil {
		code := 1
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			code = exitErr.Code
			err = exitErr.Err
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(code)
	}
}

// run is main without the process: args includes the program name. Usage
// faults are reported on stderr here and come back as an *exitError with no
// Err; any other failure is returned for the caller to report.
func run(args []string, getenv func(string) string, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, warnings := loadConfig(getenv)
	logger := newLogger(stderr, cfg)
	for _, w := range warnings {
		logger.Warn(w)
	}

	prog := "testlist"
	if len(args) > 0 {
		prog, args = args[0], args[1:]
	}
	a := newApp(prog, cfg, stdin, stdout, stderr, logger)
	root := a.rootCommand()

	err := a.execute(root, args)
	var unknown *UnknownCommandError
	switch {
	case err == nil:
		return nil
	case errors.Is(err, errUsage):
	case errors.Is(err, errMissingOutput), errors.As(err, &unknown):
		fmt.Fprintf(stderr, "error: %v\n", err)
	default:
		return &exitError{Code: 1, Err: err}
	}
	root.Usage()
	return &exitError{Code: 1}
}
