package funcargparse

// Result is the outcome of a parse. Values holds this node's parsed argument
// values; every subcommand that appeared on the command line contributes a
// child result keyed by its normalized name (dashes replaced with
// underscores).
//
// In a chained parser, each child's Values starts from a copy of the parent's
// values with the child's own values layered on top, so flags given in the
// main region are visible in every child result.
type Result struct {
	Values Values

	childNames []string
	children   map[string]*Result
}

func newResult() *Result {
	return &Result{Values: make(Values), children: make(map[string]*Result)}
}

// Child returns the result of the named subcommand. The name may be given in
// command spelling or result spelling; it is normalized before lookup.
func (r *Result) Child(name string) (*Result, bool) {
	c, ok := r.children[normalizeName(name)]
	return c, ok
}

// ChildNames returns the normalized names of the subcommands that appeared,
// in first-encounter order.
func (r *Result) ChildNames() []string {
	names := make([]string, len(r.childNames))
	copy(names, r.childNames)
	return names
}

// addChild stores a child result under its normalized name. Re-adding a name
// replaces the result but keeps its original position.
func (r *Result) addChild(name string, c *Result) {
	if _, ok := r.children[name]; !ok {
		r.childNames = append(r.childNames, name)
	}
	r.children[name] = c
}

func (r *Result) removeChild(name string) {
	if _, ok := r.children[name]; !ok {
		return
	}
	delete(r.children, name)
	for i, n := range r.childNames {
		if n == name {
			r.childNames = append(r.childNames[:i], r.childNames[i+1:]...)
			break
		}
	}
}

// adoptChildren moves all children of other into r, preserving order.
func (r *Result) adoptChildren(other *Result) {
	for _, name := range other.childNames {
		r.addChild(name, other.children[name])
	}
}
