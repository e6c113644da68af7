package cli

import "errors"

// CommandError signals a command failure with a specific exit code.
// Commands return this after printing their own diagnostics to stderr, so
// main only has to exit.
type CommandError struct {
	exitCode int
}

// NewCommandError creates a new CommandError with the given exit code.
func NewCommandError(exitCode int) *CommandError {
	return &CommandError{exitCode: exitCode}
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	return "command failed"
}

// ExitCode returns the exit code associated with this error.
func (e *CommandError) ExitCode() int {
	return e.exitCode
}

// CommandResult is the outcome of a command run.
type CommandResult struct {
	// ExitCode is the exit code to return to the OS.
	ExitCode int

	// Err is set for failures that were not reported yet.
	Err error
}

// Success returns a CommandResult indicating successful execution.
func Success() CommandResult {
	return CommandResult{ExitCode: 0}
}

// Failure returns a CommandResult indicating failure with the given error.
func Failure(err error) CommandResult {
	return CommandResult{ExitCode: 1, Err: err}
}

// ResultOf converts the error returned by a command. A CommandError keeps
// its exit code and carries no error, as it was already reported.
func ResultOf(err error) CommandResult {
	if err == nil {
		return Success()
	}
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		return CommandResult{ExitCode: cmdErr.ExitCode()}
	}
	return Failure(err)
}
