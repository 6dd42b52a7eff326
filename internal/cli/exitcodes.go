package cli

import (
	"errors"

	"organizenow/internal/app"
	"organizenow/internal/board"
	"organizenow/internal/storage"
)

// Exit codes for CLI commands.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitError indicates a general error occurred.
	// Use for: storage failures and anything not covered below.
	ExitError = 1

	// ExitUsage indicates incorrect command usage.
	// Use for: wrong argument counts, bad flags, column positions out of range.
	ExitUsage = 2

	// ExitNotFound indicates a column or card id does not exist.
	ExitNotFound = 3

	// ExitDataErr indicates stored data that cannot be used.
	ExitDataErr = 4

	// ExitValidation indicates input that fails validation, such as an
	// empty title.
	ExitValidation = 5
)

// ErrUsage marks errors caused by how the command was invoked.
var ErrUsage = errors.New("usage error")

// ExitCode maps an error returned by a command to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, board.ErrValidation):
		return ExitValidation
	case errors.Is(err, board.ErrNotFound):
		return ExitNotFound
	case errors.Is(err, board.ErrOutOfRange),
		errors.Is(err, ErrUsage),
		errors.Is(err, app.ErrUnknownBackend):
		return ExitUsage
	case errors.Is(err, storage.ErrCorrupt):
		return ExitDataErr
	default:
		return ExitError
	}
}

// errorCode is the machine readable code used in JSON error output.
func errorCode(err error) string {
	switch ExitCode(err) {
	case ExitValidation:
		return "VALIDATION_ERROR"
	case ExitNotFound:
		return "NOT_FOUND"
	case ExitUsage:
		return "USAGE_ERROR"
	case ExitDataErr:
		return "DATA_ERROR"
	default:
		return "ERROR"
	}
}
