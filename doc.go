// Package funcargparse builds command-line parsers from structured function
// signatures. A function's parameters become arguments, its defaults decide
// which are positional, and datatypes declared in its numpy-style parameter
// docs drive type coercion, switches and multi-value flags.
//
// Parsers nest into subcommand trees, and a chainable tree can resolve
// several subcommand invocations from a single command line, routing each
// token run to the node that owns it. Parse results mirror the tree, and the
// dispatch helpers call the registered functions back with their parsed
// values.
package funcargparse
