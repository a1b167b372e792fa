package funcargparse

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Chilipp/funcargparse/pkg/suggest"
)

// Sentinel errors returned by parser configuration methods. Use [errors.Is] to
// test for them, as they are usually wrapped with the command name.
var (
	// ErrFinalized is returned when the argument table is modified, or
	// arguments are created a second time, after [Parser.CreateArguments] has
	// run.
	ErrFinalized = errors.New("arguments have already been created")

	// ErrNoSubcommands is returned when a subcommand operation is invoked on a
	// parser without a subcommand group. Call [Parser.AddSubcommands] first.
	ErrNoSubcommands = errors.New("no subcommand group defined")

	// ErrNoArg is returned when an argument update requires an entry that does
	// not exist in the argument table.
	ErrNoArg = errors.New("argument not found")
)

// errParse mirrors the error the standard flag package reports for a value
// that fails to parse. The raw conversion error is dropped on purpose so flag
// error messages stay on a single line.
var errParse = errors.New("parse error")

// UnknownCommandError is returned when a token names a subcommand that does
// not exist. Suggestions holds similarly spelled subcommand names, if any.
type UnknownCommandError struct {
	Name        string
	Suggestions []string
}

func (e *UnknownCommandError) Error() string {
	if len(e.Suggestions) > 0 {
		return fmt.Sprintf("unknown command %q. Did you mean one of these?\n\t%s",
			e.Name,
			strings.Join(e.Suggestions, "\n\t"))
	}
	return fmt.Sprintf("unknown command %q", e.Name)
}

// NoFuncError is returned when a parser is asked to call a function but none
// was ever registered with [Parser.SetupArgs] or [Parser.SetupSubcommand].
type NoFuncError struct {
	Parser *Parser
}

func (e *NoFuncError) Error() string {
	return fmt.Sprintf("command %q has no registered function", e.Parser.commandPath())
}

func (p *Parser) unknownCommandError(name string) error {
	var known []string
	if p.sub != nil {
		known = append(known, p.sub.names...)
	}
	return &UnknownCommandError{
		Name:        name,
		Suggestions: suggest.FindSimilar(name, known, 3),
	}
}
