package funcargparse

import "slices"

// chainSession holds the transient "which child is active" state of one
// chained parse. It is created fresh for every top-level parse and discarded
// afterwards, so a parser tree can be reused and never carries state between
// command lines.
type chainSession struct {
	active map[*Parser]string
}

// tokenRun is a maximal contiguous run of tokens sharing one classification:
// the name of the subcommand that owns them, or "" for the parser's own
// region.
type tokenRun struct {
	key  string
	toks []string
}

// parseChained partitions tokens across this parser and its chainable
// subcommands and parses each region separately. The parser's own region is
// the prefix before the first subcommand token. Every subcommand run is
// parsed by that child's full parse over its token window, against a copy of
// this parser's own values, so each child result also carries the values
// given in the main region.
func (p *Parser) parseChained(tokens []string) (*Result, []string, error) {
	runs := p.partition(tokens)

	var mainToks []string
	for _, run := range runs {
		if run.key == "" {
			mainToks = append(mainToks, run.toks...)
		}
	}
	mainRes, mainExtras, err := p.parsePlain(mainToks)
	if err != nil {
		return nil, nil, err
	}

	res := newResult()
	res.Values = mainRes.Values

	// Remainders keyed like child results: a repeated child replaces its
	// earlier remainder, and the main remainder comes last.
	var extrasOrder []string
	extrasByKey := make(map[string][]string)

	for _, run := range runs {
		if run.key == "" {
			continue
		}
		child := p.sub.byName[run.key]
		childRes, childExtras, err := child.parseFull(run.toks[1:])
		if err != nil {
			return nil, nil, err
		}
		merged := newResult()
		merged.Values = copyValues(mainRes.Values)
		for k, v := range childRes.Values {
			merged.Values[k] = v
		}
		merged.adoptChildren(childRes)

		key := normalizeName(run.key)
		res.addChild(key, merged)
		if _, seen := extrasByKey[key]; !seen {
			extrasOrder = append(extrasOrder, key)
		}
		extrasByKey[key] = childExtras
	}

	// The parser's own values shadow child results of the same key, keeping
	// one flat key space at this level.
	for k := range res.Values {
		res.removeChild(k)
	}

	var extras []string
	for _, key := range extrasOrder {
		extras = append(extras, extrasByKey[key]...)
	}
	extras = append(extras, mainExtras...)
	return res, extras, nil
}

// partition groups tokens into maximal runs per classification, with a fresh
// session so nothing persists across parses.
func (p *Parser) partition(tokens []string) []tokenRun {
	session := &chainSession{active: make(map[*Parser]string)}
	var runs []tokenRun
	for _, tok := range tokens {
		key, _ := session.classify(p, tok, "", nil)
		if n := len(runs); n > 0 && runs[n-1].key == key {
			runs[n-1].toks = append(runs[n-1].toks, tok)
		} else {
			runs = append(runs, tokenRun{key: key, toks: []string{tok}})
		}
	}
	return runs
}

// classify decides which run a token belongs to from the viewpoint of p.
// invokedAs is the subcommand name p was entered under ("" at the top level)
// and cousins are the subcommand names of p's ancestors. The returned key is
// p's answer to its parent; ok is false when the token belongs to an ancestor
// branch (or, at the top level, to the parser's own region).
//
// Delegation runs innermost-first: an active child gets to claim the token
// before p considers switching to another child, so a name clash between a
// nested subcommand and one higher up resolves to the structurally closest
// active scope.
func (s *chainSession) classify(p *Parser, tok, invokedAs string, cousins []string) (string, bool) {
	if p.sub == nil {
		return "", false
	}
	current := s.active[p]
	if current != "" {
		childKey, childOK := s.classify(p.sub.byName[current], tok, current, p.sub.cousinsWith(cousins))
		switch {
		case !childOK && p.sub.has(tok):
			// The active child disclaimed the token and it names a direct
			// child of p: switch territory.
			s.active[p] = tok
			if invokedAs != "" {
				return invokedAs, true
			}
			return tok, true
		case (!childOK || !p.sub.has(childKey)) && slices.Contains(cousins, tok):
			// The token belongs to a sibling or ancestor branch.
			return "", false
		default:
			if invokedAs != "" {
				return invokedAs, true
			}
			return current, true
		}
	}
	if p.sub.has(tok) {
		s.active[p] = tok
		return tok, true
	}
	if slices.Contains(cousins, tok) {
		return "", false
	}
	if invokedAs != "" {
		return invokedAs, true
	}
	return "", false
}
