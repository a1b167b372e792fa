package funcargparse

import (
	"context"
	"fmt"
)

// ParseAndCall parses args strictly and invokes this parser's result-producing
// function with the parsed values: the function designated by a SetupAs
// option if one was registered, otherwise the most recently registered
// function. The SetupAs key itself is removed from the values before the
// call.
//
// It fails with [NoFuncError] when the parser has no function to invoke.
func (p *Parser) ParseAndCall(ctx context.Context, args []string) (any, error) {
	res, err := p.Parse(args)
	if err != nil {
		return nil, err
	}
	return p.callFunc(ctx, copyValues(res.Values))
}

// ParseKnownAndCall is [Parser.ParseAndCall] except that unrecognized tokens
// are returned instead of causing an error.
func (p *Parser) ParseKnownAndCall(ctx context.Context, args []string) (any, []string, error) {
	res, extras, err := p.ParseKnown(args)
	if err != nil {
		return nil, nil, err
	}
	out, err := p.callFunc(ctx, copyValues(res.Values))
	if err != nil {
		return nil, nil, err
	}
	return out, extras, nil
}

// Dispatch parses args strictly and walks the result tree, invoking each
// matched subcommand's function with that subcommand's values. Return values
// are reassembled into the shape of the result: a leaf contributes its
// function's return value unwrapped, a node with subcommand results
// contributes a map of normalized child name to that child's composed value.
//
// A branch whose parser has no registered function composes as a nil value
// rather than failing, so sibling branches still complete. An error returned
// by any invoked function aborts the whole dispatch.
func (p *Parser) Dispatch(ctx context.Context, args []string) (any, error) {
	res, err := p.Parse(args)
	if err != nil {
		return nil, err
	}
	return p.dispatchResult(ctx, res)
}

// DispatchKnown is [Parser.Dispatch] except that unrecognized tokens are
// returned instead of causing an error.
func (p *Parser) DispatchKnown(ctx context.Context, args []string) (any, []string, error) {
	res, extras, err := p.ParseKnown(args)
	if err != nil {
		return nil, nil, err
	}
	out, err := p.dispatchResult(ctx, res)
	if err != nil {
		return nil, nil, err
	}
	return out, extras, nil
}

func (p *Parser) dispatchResult(ctx context.Context, res *Result) (any, error) {
	names := res.ChildNames()
	if len(names) == 0 {
		if p.setupAs == "" && len(p.funcs) == 0 {
			return nil, nil
		}
		kw := copyValues(res.Values)
		if p.sub != nil {
			// Values named like a subcommand stay out of the call.
			for _, name := range p.sub.names {
				delete(kw, name)
			}
		}
		return p.callFunc(ctx, kw)
	}
	out := make(map[string]any, len(names))
	for _, name := range names {
		child := p.childByResultKey(name)
		if child == nil {
			return nil, fmt.Errorf("command %q: no subcommand for result key %q", p.name, name)
		}
		childRes, _ := res.Child(name)
		v, err := child.dispatchResult(ctx, childRes)
		if err != nil {
			return nil, err
		}
		out[name] = v
	}
	return out, nil
}

// callFunc invokes the parser's result-producing function with the given
// values. The caller passes a private copy; the SetupAs key is removed from
// it before the call.
func (p *Parser) callFunc(ctx context.Context, kw Values) (any, error) {
	var fn *Func
	if p.setupAs != "" {
		if f, ok := kw[p.setupAs].(*Func); ok {
			fn = f
		}
		delete(kw, p.setupAs)
	}
	if fn == nil {
		if len(p.funcs) == 0 {
			return nil, &NoFuncError{Parser: p}
		}
		fn = p.funcs[len(p.funcs)-1]
	}
	if fn.Call == nil {
		return nil, &NoFuncError{Parser: p}
	}
	out, err := fn.Call(ctx, kw)
	if err != nil {
		return nil, fmt.Errorf("command %q: %w", p.name, err)
	}
	return out, nil
}
