package funcargparse

import (
	"flag"
	"fmt"
	"io"
	"os"
)

// Parser builds a command-line interface from structured function signatures.
// Arguments accumulate in a pending table via [Parser.SetupArgs] and the
// update methods, become real flags with [Parser.CreateArguments], and are
// parsed with [Parser.Parse] or one of the dispatch helpers.
//
// A parser is not safe for concurrent use; parse one command line at a time.
type Parser struct {
	// Description is shown at the top of usage output. When empty, the first
	// [Parser.SetupArgs] call fills it with the function's doc summary.
	Description string

	// Epilog is shown at the bottom of usage output. [Parser.SetupArgs]
	// appends the Notes, Warnings, Examples and References sections of the
	// function doc to it.
	Epilog string

	// EpilogFormatter renders one doc section for the epilog. When nil, the
	// section title is underlined with hyphens, numpy style.
	EpilogFormatter func(title, body string) string

	// UsageFunc overrides the generated usage output.
	UsageFunc func(*Parser) string

	name   string
	parent *Parser
	out    io.Writer

	fset   *flag.FlagSet
	table  *specTable
	groups []*ArgGroup

	// registered functions, in setup order
	funcs   []*Func
	setupAs string

	sub *subcommands

	// materialized state, populated by CreateArguments
	defs        []*argDef
	byFlag      map[string]*argDef
	positionals []*argDef
}

// subcommands is a parser's subcommand group, created by
// [Parser.AddSubcommands].
type subcommands struct {
	chain  bool
	names  []string
	byName map[string]*Parser
}

func (s *subcommands) has(name string) bool {
	if s == nil {
		return false
	}
	_, ok := s.byName[name]
	return ok
}

// cousinsWith returns this group's subcommand names followed by the given
// ancestor names, in a fresh slice.
func (s *subcommands) cousinsWith(ancestors []string) []string {
	out := make([]string, 0, len(s.names)+len(ancestors))
	out = append(out, s.names...)
	out = append(out, ancestors...)
	return out
}

// New creates a parser for the named program.
func New(name string) *Parser {
	p := &Parser{
		name:  name,
		table: newSpecTable(),
	}
	p.fset = flag.NewFlagSet(name, flag.ContinueOnError)
	p.fset.SetOutput(io.Discard)
	p.fset.Usage = func() {}
	return p
}

// Name returns the parser's program or subcommand name.
func (p *Parser) Name() string { return p.name }

// SetOutput sets the destination for usage output. The default is
// [os.Stdout].
func (p *Parser) SetOutput(w io.Writer) { p.out = w }

// Output returns the destination for usage output, walking up to the root
// parser when unset.
func (p *Parser) Output() io.Writer {
	if p.out != nil {
		return p.out
	}
	if p.parent != nil {
		return p.parent.Output()
	}
	return os.Stdout
}

// AddSubcommands creates the parser's subcommand group. With chain set,
// several subcommands may be invoked on one command line and the parser
// resolves which tokens belong to which; without it, at most one subcommand
// runs and it consumes everything after its name.
//
// A parser has at most one subcommand group; a second call is an error.
func (p *Parser) AddSubcommands(chain bool) error {
	if p.sub != nil {
		return fmt.Errorf("command %q: subcommand group already created", p.name)
	}
	p.sub = &subcommands{
		chain:  chain,
		byName: make(map[string]*Parser),
	}
	return nil
}

// AddSubcommand registers a new subcommand and returns its parser. The help
// text becomes the child's description and is shown in the parent's command
// list. It fails with [ErrNoSubcommands] when no subcommand group exists.
func (p *Parser) AddSubcommand(name, help string) (*Parser, error) {
	if p.sub == nil {
		return nil, fmt.Errorf("command %q: %w", p.name, ErrNoSubcommands)
	}
	if p.sub.has(name) {
		return nil, fmt.Errorf("command %q: subcommand %q already defined", p.name, name)
	}
	child := New(name)
	child.Description = help
	child.parent = p
	p.sub.names = append(p.sub.names, name)
	p.sub.byName[name] = child
	return child, nil
}

// Subcommand returns the parser registered under name. It fails with
// [ErrNoSubcommands] when no subcommand group exists and with
// [UnknownCommandError] when the name is not registered.
func (p *Parser) Subcommand(name string) (*Parser, error) {
	if p.sub == nil {
		return nil, fmt.Errorf("command %q: %w", p.name, ErrNoSubcommands)
	}
	child, ok := p.sub.byName[name]
	if !ok {
		return nil, p.unknownCommandError(name)
	}
	return child, nil
}

// SubcommandNames returns the registered subcommand names in definition
// order. It is empty when no subcommand group exists.
func (p *Parser) SubcommandNames() []string {
	if p.sub == nil {
		return nil
	}
	names := make([]string, len(p.sub.names))
	copy(names, p.sub.names)
	return names
}

// childByResultKey resolves a normalized result key back to the subcommand
// parser it came from.
func (p *Parser) childByResultKey(key string) *Parser {
	if p.sub == nil {
		return nil
	}
	for _, name := range p.sub.names {
		if normalizeName(name) == key {
			return p.sub.byName[name]
		}
	}
	return nil
}

func (p *Parser) commandPath() string {
	if p.parent == nil {
		return p.name
	}
	return p.parent.commandPath() + " " + p.name
}

// resetValues restores this parser's materialized values to their defaults.
// Every parse starts from a fresh namespace so a parser can be reused across
// command lines.
func (p *Parser) resetValues() {
	for _, def := range p.defs {
		def.reset()
	}
}

// snapshotValues copies the current materialized values into a fresh map.
func (p *Parser) snapshotValues() Values {
	out := make(Values, len(p.defs))
	for _, def := range p.defs {
		out[def.dest] = def.value.Get()
	}
	return out
}
