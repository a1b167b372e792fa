package funcargparse

import (
	"flag"
	"fmt"
	"sort"
	"strings"

	"github.com/mfridman/xflag"
)

// Parse parses a full command line, typically os.Args[1:], against this
// parser and its subcommands. Every token must be accounted for; leftover
// tokens are an error. Use [Parser.ParseKnown] to receive them instead.
//
// Call [Parser.CreateArguments] first; arguments still pending in the table
// are unknown to Parse. A help token (-h, --help) prints usage to
// [Parser.Output] and returns [flag.ErrHelp].
//
// Parsing mutates per-parser flag values, so concurrent Parse calls against
// the same parser tree must be serialized by the caller. Each call starts
// from the argument defaults.
func (p *Parser) Parse(args []string) (*Result, error) {
	res, extras, err := p.parseFull(args)
	if err != nil {
		return nil, err
	}
	if len(extras) > 0 {
		if p.sub != nil && !strings.HasPrefix(extras[0], "-") {
			return nil, p.unknownCommandError(extras[0])
		}
		return nil, fmt.Errorf("command %q: unrecognized arguments: %s",
			p.name, strings.Join(extras, " "))
	}
	return res, nil
}

// ParseKnown is [Parser.Parse] except that tokens no parser in the tree
// recognizes are returned, in their original order, instead of causing an
// error.
func (p *Parser) ParseKnown(args []string) (*Result, []string, error) {
	return p.parseFull(args)
}

// parseFull routes between chained resolution and the plain parse.
func (p *Parser) parseFull(tokens []string) (*Result, []string, error) {
	if p.sub != nil && p.sub.chain {
		return p.parseChained(tokens)
	}
	return p.parsePlain(tokens)
}

// parsePlain parses tokens against this parser's own flags and positionals,
// descending into at most one subcommand. The subcommand's values merge flat
// into this parser's values, single-namespace style.
func (p *Parser) parsePlain(tokens []string) (*Result, []string, error) {
	p.resetValues()
	scan, err := p.scanTokens(tokens)
	if err != nil {
		return nil, nil, err
	}
	if err := xflag.ParseToEnd(p.fset, scan.own); err != nil {
		return nil, nil, fmt.Errorf("command %q: %w", p.name, err)
	}
	leftovers, err := p.bindPositionals(scan.candidates)
	if err != nil {
		return nil, nil, err
	}
	res := newResult()
	res.Values = p.snapshotValues()
	extras := mergeIndexed(scan.extras, leftovers)

	if scan.childName != "" {
		child := p.sub.byName[scan.childName]
		childRes, childExtras, err := child.parseFull(scan.childToks)
		if err != nil {
			return nil, nil, err
		}
		for k, v := range childRes.Values {
			res.Values[k] = v
		}
		res.adoptChildren(childRes)
		extras = append(extras, childExtras...)
	}
	return res, extras, nil
}

// indexedToken remembers a token's original position so the unparsed
// remainder keeps command-line order.
type indexedToken struct {
	idx int
	tok string
}

type scanResult struct {
	own        []string       // flag tokens owned by this parser
	candidates []indexedToken // positional candidates, in order
	extras     []indexedToken // unrecognized flag-like tokens
	childName  string         // subcommand split point, "" if none
	childToks  []string       // tokens after the subcommand name
}

// scanTokens classifies tokens ahead of flag parsing: known flags (and their
// value tokens) go to the flag set, bare words either split off a subcommand
// or queue up as positional candidates, unknown flags become extras. Tokens
// after "--" are all positional candidates.
func (p *Parser) scanTokens(tokens []string) (*scanResult, error) {
	scan := &scanResult{}
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if tok == "--" {
			for j, rest := range tokens[i+1:] {
				scan.candidates = append(scan.candidates, indexedToken{idx: i + 1 + j, tok: rest})
			}
			break
		}
		if isHelpToken(tok) {
			fmt.Fprintln(p.Output(), p.UsageString())
			return nil, flag.ErrHelp
		}
		if isFlagToken(tok) {
			name, _, hasValue := cutFlagToken(tok)
			def, known := p.byFlag[name]
			if !known {
				scan.extras = append(scan.extras, indexedToken{idx: i, tok: tok})
				continue
			}
			scan.own = append(scan.own, tok)
			if !hasValue && def.takesValue() && i+1 < len(tokens) {
				i++
				scan.own = append(scan.own, tokens[i])
			}
			continue
		}
		if p.sub.has(tok) {
			scan.childName = tok
			scan.childToks = tokens[i+1:]
			break
		}
		scan.candidates = append(scan.candidates, indexedToken{idx: i, tok: tok})
	}
	return scan, nil
}

// bindPositionals assigns positional candidates to this parser's positional
// arguments in table order and returns the unconsumed ones. Every positional
// is required; a one-or-more positional consumes all remaining candidates.
func (p *Parser) bindPositionals(cands []indexedToken) ([]indexedToken, error) {
	for _, def := range p.positionals {
		if len(cands) == 0 {
			return nil, fmt.Errorf("command %q: required argument %q not set", p.name, def.display)
		}
		n := 1
		if def.arg.NArgs == OneOrMore {
			n = len(cands)
		}
		for _, c := range cands[:n] {
			if err := def.value.Set(c.tok); err != nil {
				return nil, fmt.Errorf("command %q: invalid value %q for argument %q: %v",
					p.name, c.tok, def.display, err)
			}
		}
		cands = cands[n:]
	}
	return cands, nil
}

func isHelpToken(tok string) bool {
	return tok == "-h" || tok == "--h" || tok == "-help" || tok == "--help"
}

func isFlagToken(tok string) bool {
	return len(tok) > 1 && tok[0] == '-'
}

// cutFlagToken splits a flag token into its name and inline "=value" part.
func cutFlagToken(tok string) (name, value string, hasValue bool) {
	body := strings.TrimPrefix(tok, "-")
	body = strings.TrimPrefix(body, "-")
	return strings.Cut(body, "=")
}

// mergeIndexed interleaves two indexed token lists back into original
// command-line order.
func mergeIndexed(a, b []indexedToken) []string {
	if len(a)+len(b) == 0 {
		return nil
	}
	merged := make([]indexedToken, 0, len(a)+len(b))
	merged = append(merged, a...)
	merged = append(merged, b...)
	sort.Slice(merged, func(i, j int) bool { return merged[i].idx < merged[j].idx })
	out := make([]string, len(merged))
	for i, t := range merged {
		out[i] = t.tok
	}
	return out
}
