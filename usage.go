package funcargparse

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/fatih/color"

	"github.com/Chilipp/funcargparse/pkg/textutil"
)

var sectionHeader = color.New(color.Bold)

// UsageString renders the parser's usage text: description, usage line,
// subcommand list, positional arguments, flag sections (one per argument
// group) and the epilog. A [Parser.UsageFunc] override replaces all of it.
func (p *Parser) UsageString() string {
	if p.UsageFunc != nil {
		return p.UsageFunc(p)
	}
	return DefaultUsage(p)
}

// DefaultUsage renders the built-in usage text, ignoring any
// [Parser.UsageFunc] override. Custom usage functions can call it to extend
// the default output.
func DefaultUsage(p *Parser) string {
	var b strings.Builder

	if p.Description != "" {
		for _, line := range textutil.Wrap(p.Description, 80) {
			b.WriteString(line)
			b.WriteRune('\n')
		}
		b.WriteRune('\n')
	}

	b.WriteString(sectionHeader.Sprint("Usage:"))
	b.WriteString("\n  ")
	b.WriteString(p.usageLine())
	b.WriteString("\n\n")

	if p.sub != nil && len(p.sub.names) > 0 {
		b.WriteString(sectionHeader.Sprint("Available Commands:"))
		b.WriteRune('\n')
		names := p.SubcommandNames()
		slices.SortFunc(names, func(a, b string) int { return cmp.Compare(a, b) })
		rows := make([]usageRow, 0, len(names))
		for _, name := range names {
			rows = append(rows, usageRow{name: name, help: p.sub.byName[name].Description})
		}
		writeRows(&b, rows)
		b.WriteRune('\n')
	}

	if rows := p.positionalRows(); len(rows) > 0 {
		b.WriteString(sectionHeader.Sprint("Arguments:"))
		b.WriteRune('\n')
		writeRows(&b, rows)
		b.WriteRune('\n')
	}

	if rows := p.flagRows(nil); len(rows) > 0 {
		b.WriteString(sectionHeader.Sprint("Flags:"))
		b.WriteRune('\n')
		writeRows(&b, rows)
		b.WriteRune('\n')
	}
	for _, g := range p.groups {
		rows := p.flagRows(g)
		if len(rows) == 0 {
			continue
		}
		b.WriteString(sectionHeader.Sprint(g.Title + ":"))
		b.WriteRune('\n')
		writeRows(&b, rows)
		b.WriteRune('\n')
	}

	if p.Epilog != "" {
		b.WriteString(p.Epilog)
		b.WriteString("\n\n")
	}

	if p.sub != nil && len(p.sub.names) > 0 {
		fmt.Fprintf(&b, "Use %q for more information about a command.\n",
			p.commandPath()+" [command] --help")
	}

	return strings.TrimRight(b.String(), "\n")
}

func (p *Parser) usageLine() string {
	usage := p.commandPath()
	for _, def := range p.positionals {
		if def.arg.Hidden {
			continue
		}
		name := def.label()
		if def.arg.NArgs == OneOrMore {
			name += "..."
		}
		usage += " " + name
	}
	if p.hasVisibleFlags() {
		usage += " [flags]"
	}
	if p.sub != nil && len(p.sub.names) > 0 {
		usage += " <command>"
	}
	return usage
}

func (p *Parser) hasVisibleFlags() bool {
	for _, def := range p.defs {
		if !def.positional && !def.arg.Hidden {
			return true
		}
	}
	return false
}

func (p *Parser) positionalRows() []usageRow {
	var rows []usageRow
	for _, def := range p.positionals {
		if def.arg.Hidden {
			continue
		}
		rows = append(rows, usageRow{name: def.label(), help: def.arg.Help})
	}
	return rows
}

// flagRows collects the rows of one flag section, sorted by flag name and
// annotated with their default values.
func (p *Parser) flagRows(g *ArgGroup) []usageRow {
	var rows []usageRow
	for _, def := range p.defs {
		if def.positional || def.arg.Hidden || def.arg.Group != g {
			continue
		}
		help := def.arg.Help
		if def.arg.Default != nil {
			help += fmt.Sprintf(" (default: %v)", def.arg.Default)
		}
		rows = append(rows, usageRow{name: def.label(), help: help})
	}
	slices.SortFunc(rows, func(a, b usageRow) int { return cmp.Compare(a.name, b.name) })
	return rows
}

// label renders an argument's display column: the bare name for positionals,
// the dashed spellings plus metavar for flags.
func (d *argDef) label() string {
	if d.positional {
		if d.metavar != "" {
			return d.metavar
		}
		return d.display
	}
	var label string
	short, long := d.arg.Short, d.arg.Long
	if long == short {
		long = ""
	}
	if short != "" {
		label = "-" + short
	}
	if long != "" {
		if label != "" {
			label += ", "
		}
		label += "--" + long
	}
	if d.metavar != "" {
		label += " " + d.metavar
	}
	return label
}

type usageRow struct {
	name string
	help string
}

// writeRows renders a two-column section: padded names on the left, wrapped
// help text on the right, continuation lines indented under the help column.
func writeRows(b *strings.Builder, rows []usageRow) {
	maxLen := 0
	for _, row := range rows {
		if len(row.name) > maxLen {
			maxLen = len(row.name)
		}
	}
	nameWidth := maxLen + 4
	wrapWidth := 80 - nameWidth

	for _, row := range rows {
		if row.help == "" {
			fmt.Fprintf(b, "  %s\n", row.name)
			continue
		}
		lines := textutil.Wrap(row.help, wrapWidth)
		fmt.Fprintf(b, "  %s%s\n", textutil.PadRight(row.name, maxLen+4), lines[0])
		for _, line := range lines[1:] {
			fmt.Fprintf(b, "%s%s\n", strings.Repeat(" ", nameWidth+2), line)
		}
	}
}
