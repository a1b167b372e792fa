package funcargparse

import (
	"fmt"
	"strings"
)

// Action determines what parsing an argument does with its command-line
// tokens.
type Action int

const (
	// Store keeps the (coerced) token value. This is the default action.
	Store Action = iota
	// StoreTrue turns the argument into a switch that stores true when named.
	StoreTrue
	// StoreFalse turns the argument into a switch that stores false when
	// named.
	StoreFalse
)

// NArgs determines how many command-line tokens an argument consumes.
type NArgs int

const (
	// One consumes a single token. This is the default.
	One NArgs = iota
	// OneOrMore consumes at least one token and accumulates all of them into
	// a []any value. Optional arguments accumulate one value per occurrence.
	OneOrMore
)

// Arg is a single pending argument in a parser's argument table. Entries are
// created by [Parser.SetupArgs] from a function signature, or inserted
// manually with [Parser.UpdateArg], and may be freely modified until
// [Parser.CreateArguments] seals the table.
type Arg struct {
	// Dest is the key the parsed value is stored under. When empty, the table
	// key (the parameter name) is used.
	Dest string

	// Short and Long are the flag spellings, without leading dashes. When both
	// are equal, only the short spelling is registered. Positional arguments
	// ignore them.
	Short string
	Long  string

	// Positional marks the argument as consumed by position instead of by
	// flag name. Positional arguments are required and bound in table order.
	Positional bool

	// Help is the description shown in usage output.
	Help string

	// Default is the value stored when the argument does not appear on the
	// command line.
	Default any

	// Type coerces raw tokens. A nil type keeps the raw string.
	Type *ValueType

	// Action selects the store behavior; see [Action].
	Action Action

	// NArgs selects how many tokens are consumed; see [NArgs].
	NArgs NArgs

	// Metavar is the value placeholder shown in usage output. Empty means no
	// placeholder.
	Metavar string

	// Group places the argument under a named section in usage output.
	Group *ArgGroup

	// Hidden excludes the argument from usage output.
	Hidden bool
}

// ArgGroup is a named section for grouping arguments in usage output. Create
// groups with [Parser.AddGroup].
type ArgGroup struct {
	// Title is the section heading.
	Title string
}

// UpdateMode selects how [Parser.UpdateArg] treats a missing table entry.
type UpdateMode int

const (
	// IfPresent applies the update only when the entry exists and is a no-op
	// otherwise.
	IfPresent UpdateMode = iota
	// Require fails with [ErrNoArg] when the entry does not exist.
	Require
	// IfAbsent inserts a fresh entry and applies the update to it; an existing
	// entry is left untouched.
	IfAbsent
)

// specTable is the ordered argument table of a parser. Map access is paired
// with a name slice so arguments materialize in insertion order.
type specTable struct {
	names  []string
	byName map[string]*Arg
	sealed bool
}

func newSpecTable() *specTable {
	return &specTable{byName: make(map[string]*Arg)}
}

func (t *specTable) get(name string) (*Arg, bool) {
	a, ok := t.byName[name]
	return a, ok
}

func (t *specTable) insert(name string) *Arg {
	a := &Arg{Dest: name}
	t.byName[name] = a
	t.names = append(t.names, name)
	return a
}

func (t *specTable) remove(name string) bool {
	if _, ok := t.byName[name]; !ok {
		return false
	}
	delete(t.byName, name)
	for i, n := range t.names {
		if n == name {
			t.names = append(t.names[:i], t.names[i+1:]...)
			break
		}
	}
	return true
}

// Arg returns the pending argument registered under name. The entry remains
// readable after [Parser.CreateArguments], but modifying it then has no
// effect.
func (p *Parser) Arg(name string) (*Arg, bool) {
	return p.table.get(name)
}

// ArgNames returns the argument table keys in insertion order.
func (p *Parser) ArgNames() []string {
	names := make([]string, len(p.table.names))
	copy(names, p.table.names)
	return names
}

// UpdateArg modifies the pending argument registered under name by passing it
// to fn. The mode selects what happens when the entry does not exist; see
// [UpdateMode]. UpdateArg fails with [ErrFinalized] once arguments have been
// created.
func (p *Parser) UpdateArg(name string, mode UpdateMode, fn func(*Arg)) error {
	if p.table.sealed {
		return fmt.Errorf("argument %q: %w", name, ErrFinalized)
	}
	switch mode {
	case IfPresent:
		if a, ok := p.table.get(name); ok {
			fn(a)
		}
	case Require:
		a, ok := p.table.get(name)
		if !ok {
			return fmt.Errorf("argument %q: %w", name, ErrNoArg)
		}
		fn(a)
	case IfAbsent:
		if _, ok := p.table.get(name); !ok {
			fn(p.table.insert(name))
		}
	default:
		return fmt.Errorf("argument %q: unknown update mode %d", name, mode)
	}
	return nil
}

// RemoveArg deletes the pending argument registered under name. It fails with
// [ErrNoArg] when the entry does not exist and with [ErrFinalized] once
// arguments have been created.
func (p *Parser) RemoveArg(name string) error {
	if p.table.sealed {
		return fmt.Errorf("argument %q: %w", name, ErrFinalized)
	}
	if !p.table.remove(name) {
		return fmt.Errorf("argument %q: %w", name, ErrNoArg)
	}
	return nil
}

// AppendToHelp appends s to the help text of the pending argument registered
// under name. The entry must exist.
func (p *Parser) AppendToHelp(name, s string) error {
	return p.UpdateArg(name, Require, func(a *Arg) {
		a.Help += s
	})
}

// UpdateShort replaces the short flag spellings of the named pending
// arguments. Keys are table names, values the new spellings without dashes.
// Every named entry must exist.
func (p *Parser) UpdateShort(shorts map[string]string) error {
	for name, short := range shorts {
		err := p.UpdateArg(name, Require, func(a *Arg) {
			a.Short = short
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// UpdateLong replaces the long flag spellings of the named pending arguments,
// analogous to [Parser.UpdateShort].
func (p *Parser) UpdateLong(longs map[string]string) error {
	for name, long := range longs {
		err := p.UpdateArg(name, Require, func(a *Arg) {
			a.Long = long
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// AddGroup creates a usage section with the given title. Assign the returned
// group to [Arg.Group] to move arguments under it.
func (p *Parser) AddGroup(title string) *ArgGroup {
	g := &ArgGroup{Title: title}
	p.groups = append(p.groups, g)
	return g
}

// normalizeName converts an argument or subcommand name to its result key by
// replacing dashes with underscores.
func normalizeName(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}

// flagName converts a parameter name to its default flag spelling by
// replacing underscores with dashes.
func flagName(param string) string {
	return strings.ReplaceAll(param, "_", "-")
}
