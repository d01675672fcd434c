package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/dictnotes/pkg/core"
)

// Exit codes
const (
	ExitSuccess = 0 // Success
	ExitError   = 1 // Runtime failure (note not found, corrupt data file, disk error)
	ExitUsage   = 2 // Bad flags, arguments or note fields
)

// usageError marks errors caused by how the command was invoked.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usageErrorf(format string, args ...any) error {
	return usageError{err: fmt.Errorf(format, args...)}
}

// usageArgs turns positional argument failures into usage errors.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return usageError{err: err}
		}
		return nil
	}
}

// exitCode maps an error returned by a command to the process exit code.
func exitCode(err error) int {
	var uerr usageError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &uerr):
		return ExitUsage
	case errors.Is(err, core.ErrInvalidNote), errors.Is(err, core.ErrInvalidPattern):
		return ExitUsage
	default:
		return ExitError
	}
}
