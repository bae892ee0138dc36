package main

import (
	"errors"

	"github.com/adamwoolhether/todoapi/todo"
)

// Exit codes for the CLI
const (
	ExitSuccess       = 0
	ExitGeneralError  = 1
	ExitNetworkError  = 2
	ExitNotFound      = 3
	ExitUnknownStatus = 4
)

// exitCode maps an error to the appropriate exit code.
func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	e, ok := errors.AsType[*todo.Error](err)
	if !ok {
		return ExitGeneralError
	}

	switch e.Kind {
	case todo.KindNetwork:
		return ExitNetworkError
	case todo.KindNotFound:
		return ExitNotFound
	case todo.KindUnknown:
		return ExitUnknownStatus
	default:
		return ExitGeneralError
	}
}
