package funcargparse

import (
	"fmt"
	"strings"

	"github.com/Chilipp/funcargparse/pkg/docstring"
)

// SetupOptions controls how [Parser.SetupArgs] registers a function.
type SetupOptions struct {
	// SetupAs designates the function as the parser's result producer and
	// stores it in the parse result under this key. The first function
	// registered with a SetupAs wins; later settings are ignored.
	SetupAs string

	// InsertAt places the function at this position in the parser's function
	// list instead of appending. Out-of-range positions are clamped.
	InsertAt *int

	// NoInterpret disables datatype interpretation: declared datatypes are
	// ignored and all arguments stay untyped.
	NoInterpret bool

	// OverwriteEpilog replaces the parser epilog with this function's doc
	// sections instead of appending to it.
	OverwriteEpilog bool
}

// BoldEpilog renders an epilog section with a markdown-bold title. Assign it
// to [Parser.EpilogFormatter].
func BoldEpilog(title, body string) string {
	return "**" + title + "**\n\n" + body
}

// RubricEpilog renders an epilog section as a reStructuredText rubric. Assign
// it to [Parser.EpilogFormatter].
func RubricEpilog(title, body string) string {
	return ".. rubric:: " + title + "\n\n" + body
}

// SubcommandOptions controls how [Parser.SetupSubcommand] creates the child
// parser.
type SubcommandOptions struct {
	SetupOptions

	// Name overrides the subcommand name derived from the function name.
	Name string

	// Help overrides the summary shown in the parent's command list, which
	// otherwise comes from the function's doc summary.
	Help string
}

// SetupArgs fills the parser's argument table from a function signature and
// its numpy-style parameter docs. Parameters already present in the table are
// skipped, so several functions sharing parameter names can be registered
// against one parser. Parameters without a default become positional
// arguments; the rest become optional flags carrying their default.
//
// When a parameter's doc declares a datatype, the entry is typed accordingly:
// "bool" turns an optional parameter into a switch toggling away from its
// default, "list of X" makes the argument accept one or more X values, and
// known tags like "int" or "float" attach the matching coercion. Unknown tags
// leave the argument untyped. Pass [SetupOptions.NoInterpret] to skip all of
// this.
//
// SetupArgs fails with [ErrFinalized] once arguments have been created.
func (p *Parser) SetupArgs(fn *Func, opts *SetupOptions) error {
	if err := fn.validate(); err != nil {
		return fmt.Errorf("command %q: %w", p.name, err)
	}
	if p.table.sealed {
		return fmt.Errorf("command %q: %w", p.name, ErrFinalized)
	}
	if opts == nil {
		opts = &SetupOptions{}
	}

	if opts.InsertAt != nil {
		at := *opts.InsertAt
		if at < 0 {
			at = 0
		}
		if at > len(p.funcs) {
			at = len(p.funcs)
		}
		p.funcs = append(p.funcs[:at], append([]*Func{fn}, p.funcs[at:]...)...)
	} else {
		p.funcs = append(p.funcs, fn)
	}

	if opts.SetupAs != "" && p.setupAs == "" {
		p.setupAs = opts.SetupAs
		a, ok := p.table.get(opts.SetupAs)
		if !ok {
			a = p.table.insert(opts.SetupAs)
		}
		a.Long = opts.SetupAs
		a.Default = fn
		a.Hidden = true
	}

	doc := docstring.Dedent(fn.Doc)
	if p.Description == "" {
		p.Description = docstring.Summary(doc)
	}
	if opts.OverwriteEpilog {
		p.Epilog = ""
	}
	p.appendEpilog(doc)

	params := docstring.Section(doc, "Parameters")
	if other := docstring.Section(doc, "Other Parameters"); other != "" {
		params = strings.TrimLeft(params+"\n"+other, "\n")
	}

	for i, param := range fn.Params {
		if _, ok := p.table.get(param); ok {
			continue
		}
		a := p.table.insert(param)
		a.Short = flagName(param)
		a.Long = a.Short

		def, hasDefault := fn.defaultFor(i)
		if hasDefault {
			a.Default = def
		} else {
			a.Positional = true
		}

		desc, dtype, _ := docstring.Param(params, param)
		if desc != "" {
			a.Help = desc
		}
		if opts.NoInterpret || dtype == "" {
			continue
		}
		interpretType(a, dtype, hasDefault)
	}
	return nil
}

// interpretType applies the declared datatype to a fresh table entry.
func interpretType(a *Arg, dtype string, hasDefault bool) {
	if dtype == "bool" && hasDefault {
		if b, _ := a.Default.(bool); b {
			a.Action = StoreFalse
		} else {
			a.Action = StoreTrue
		}
		return
	}
	if rest, ok := strings.CutPrefix(dtype, "list of "); ok {
		a.NArgs = OneOrMore
		dtype = strings.TrimSpace(rest)
	}
	switch dtype {
	case "str", "string", "strings":
		a.Type = String
		if dtype == "strings" {
			a.Metavar = "string"
		} else {
			a.Metavar = "str"
		}
	default:
		if vt, metavar, ok := resolveValueType(dtype); ok {
			a.Type = vt
			a.Metavar = metavar
		}
	}
}

// epilogSections are the doc sections carried over into the usage epilog, in
// numpy's conventional order.
var epilogSections = []string{"Notes", "Warnings", "Examples", "References"}

func (p *Parser) appendEpilog(doc string) {
	for _, title := range epilogSections {
		body := docstring.Section(doc, title)
		if body == "" {
			continue
		}
		var section string
		if p.EpilogFormatter != nil {
			section = p.EpilogFormatter(title, body)
		} else {
			section = title + "\n" + strings.Repeat("-", len(title)) + "\n" + body
		}
		if p.Epilog != "" {
			p.Epilog += "\n\n"
		}
		p.Epilog += section
	}
}

// SetupSubcommand creates a subcommand for fn and fills the child parser's
// argument table from its signature, combining [Parser.AddSubcommand] and
// [Parser.SetupArgs]. The subcommand name is the function name with
// underscores replaced by dashes unless overridden, and its help text is the
// function's doc summary. It fails with [ErrNoSubcommands] when no subcommand
// group exists.
func (p *Parser) SetupSubcommand(fn *Func, opts *SubcommandOptions) (*Parser, error) {
	if err := fn.validate(); err != nil {
		return nil, fmt.Errorf("command %q: %w", p.name, err)
	}
	if opts == nil {
		opts = &SubcommandOptions{}
	}
	name := opts.Name
	if name == "" {
		name = flagName(fn.Name)
	}
	if name == "" {
		return nil, fmt.Errorf("command %q: subcommand for unnamed function requires a name", p.name)
	}
	help := opts.Help
	if help == "" {
		help = docstring.Summary(docstring.Dedent(fn.Doc))
	}
	child, err := p.AddSubcommand(name, help)
	if err != nil {
		return nil, err
	}
	if err := child.SetupArgs(fn, &opts.SetupOptions); err != nil {
		return nil, err
	}
	return child, nil
}
