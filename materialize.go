package funcargparse

import (
	"errors"
	"flag"
	"fmt"
)

// argDef is one materialized argument definition, tied to the flag value that
// stores its parsed result.
type argDef struct {
	arg        *Arg
	dest       string
	display    string
	spellings  []string
	metavar    string
	positional bool
	value      flag.Getter
	reset      func()
}

// takesValue reports whether the argument consumes a value token after its
// flag name.
func (d *argDef) takesValue() bool {
	return d.arg.Action == Store
}

// CreateArguments turns the pending argument table into concrete flag
// definitions, in table order. With recursive set, every subcommand parser is
// materialized as well, depth-first.
//
// A table materializes exactly once. A second call fails with [ErrFinalized],
// and the table counts as materialized even when a faulty entry aborts the
// pass, so a retry cannot double-register the entries before it.
func (p *Parser) CreateArguments(recursive bool) error {
	if p.table.sealed {
		return fmt.Errorf("command %q: %w", p.name, ErrFinalized)
	}
	p.table.sealed = true
	p.byFlag = make(map[string]*argDef)
	for _, name := range p.table.names {
		if err := p.defineArg(name, p.table.byName[name]); err != nil {
			return fmt.Errorf("command %q: argument %q: %w", p.name, name, err)
		}
	}
	if recursive && p.sub != nil {
		for _, childName := range p.sub.names {
			if err := p.sub.byName[childName].CreateArguments(true); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *Parser) defineArg(name string, a *Arg) error {
	short, long := a.Short, a.Long
	if long == short {
		long = ""
	}
	if short == "" && long == "" {
		return errors.New("neither a short (-) nor a long (--) flag name is set")
	}

	dest := a.Dest
	if dest == "" {
		dest = name
	}
	value := newArgValue(a)
	def := &argDef{
		arg:   a,
		dest:  dest,
		value: value,
		reset: valueResetter(a, value),
	}
	if a.Action == Store {
		def.metavar = a.Metavar
	}

	if a.Positional {
		def.positional = true
		def.display = short
		if def.display == "" {
			def.display = long
		}
		p.positionals = append(p.positionals, def)
		p.defs = append(p.defs, def)
		return nil
	}

	var spellings []string
	if short != "" {
		spellings = append(spellings, short)
	}
	if long != "" {
		spellings = append(spellings, long)
	}
	for _, s := range spellings {
		if _, dup := p.byFlag[s]; dup || p.fset.Lookup(s) != nil {
			return fmt.Errorf("flag name %q already defined", s)
		}
	}
	for _, s := range spellings {
		p.fset.Var(value, s, a.Help)
		p.byFlag[s] = def
	}
	def.spellings = spellings
	def.display = "-" + spellings[0]
	p.defs = append(p.defs, def)
	return nil
}

// newArgValue builds the flag value for an argument. Switches without an
// explicit default start at the value they toggle away from, matching what a
// documented bool default produces.
func newArgValue(a *Arg) flag.Getter {
	switch {
	case a.Action == StoreTrue:
		return &switchValue{target: true, v: switchDefault(a.Default, false)}
	case a.Action == StoreFalse:
		return &switchValue{target: false, v: switchDefault(a.Default, true)}
	case a.NArgs == OneOrMore:
		return &listValue{typ: a.Type, items: listDefault(a.Default)}
	default:
		return &scalarValue{typ: a.Type, v: a.Default}
	}
}

func switchDefault(def any, fallback bool) bool {
	if b, ok := def.(bool); ok {
		return b
	}
	return fallback
}

func valueResetter(a *Arg, v flag.Getter) func() {
	switch val := v.(type) {
	case *switchValue:
		initial := val.v
		return func() { val.v = initial }
	case *listValue:
		return func() {
			val.items = listDefault(a.Default)
			val.set = false
		}
	default:
		sc := val.(*scalarValue)
		return func() { sc.v = a.Default }
	}
}
