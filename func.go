package funcargparse

import (
	"context"
	"errors"
	"fmt"
)

// Values holds parsed argument values keyed by destination name. Use [Get] to
// retrieve entries with type inference.
type Values map[string]any

// Func describes a function whose parameters become command-line arguments.
// It is the structured equivalent of an introspected signature: the parameter
// list, trailing defaults, and a numpy-style doc comment describing each
// parameter.
type Func struct {
	// Name identifies the function. [Parser.SetupSubcommand] derives the
	// subcommand name from it by replacing underscores with dashes.
	Name string

	// Doc is the function's documentation. The summary becomes the parser
	// description, the Parameters and Other Parameters sections drive argument
	// interpretation, and the Notes, Warnings, Examples and References
	// sections are appended to the epilog.
	Doc string

	// Params lists the parameter names in declaration order.
	Params []string

	// Defaults holds the default values of the trailing parameters, aligned to
	// the end of Params. Parameters without a default become positional
	// arguments.
	Defaults []any

	// Call executes the function with the parsed values. It may be nil for
	// functions that only describe arguments.
	Call func(ctx context.Context, kw Values) (any, error)
}

func (f *Func) validate() error {
	if f == nil {
		return errors.New("function is nil")
	}
	if len(f.Defaults) > len(f.Params) {
		return fmt.Errorf("function %q has %d defaults for %d parameters",
			f.Name, len(f.Defaults), len(f.Params))
	}
	return nil
}

// defaultFor returns the default of the i-th parameter. The second return
// value is false for parameters without a default.
func (f *Func) defaultFor(i int) (any, bool) {
	first := len(f.Params) - len(f.Defaults)
	if i < first {
		return nil, false
	}
	return f.Defaults[i-first], true
}

// Get retrieves a value by destination name, with type inference:
//
//	verbose := funcargparse.Get[bool](res.Values, "verbose")
//	count := funcargparse.Get[int](res.Values, "count")
//	items := funcargparse.Get[[]any](res.Values, "items")
//
// It panics when the name is missing or the stored value has a different
// type. A missing value is a programming error, either in the argument table
// or in the lookup, and failing loudly beats silently returning a zero value.
func Get[T any](v Values, name string) T {
	raw, ok := v[name]
	if !ok {
		panic(fmt.Errorf("internal error: value %q not found", name))
	}
	val, ok := raw.(T)
	if !ok {
		panic(fmt.Errorf("internal error: type mismatch for value %q: stored %T, requested %T",
			name, raw, *new(T)))
	}
	return val
}

func copyValues(v Values) Values {
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}
