// Copyright 2021 Jonathan Amsterdam.

package commander

import (
	"errors"
	"fmt"
)

// Errors reported by registration, tree construction and dispatch.

// ErrNoCommand is returned when an invocation resolves to no command at all.
var ErrNoCommand = errors.New("no command specified")

// ErrVersion signals that the version was printed and the run should
// terminate successfully. It is returned, never wrapped.
var ErrVersion = errors.New("version requested")

// InvalidNameError reports a command or namespace segment that is not a
// valid identifier.
type InvalidNameError struct {
	Name string
}

func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("invalid command name %q", e.Name)
}

// DuplicateCommandError reports two bindings that collapse to the same
// qualified name.
type DuplicateCommandError struct {
	Name string
}

func (e *DuplicateCommandError) Error() string {
	return fmt.Sprintf("duplicate command %q", e.Name)
}

// ParserConstructionError reports an option or command the flag engine
// rejected, for example two options sharing a token on one command.
type ParserConstructionError struct {
	Name string
	Err  error
}

func (e *ParserConstructionError) Error() string {
	return fmt.Sprintf("registering %q: %v", e.Name, e.Err)
}

func (e *ParserConstructionError) Unwrap() error { return e.Err }

// CommandExecutionError wraps an error returned by a command handler,
// attaching the qualified name of the failing command.
type CommandExecutionError struct {
	Path string
	Err  error
}

func (e *CommandExecutionError) Error() string {
	return fmt.Sprintf("command %q: %v", e.Path, e.Err)
}

func (e *CommandExecutionError) Unwrap() error { return e.Err }
