// Package duration parses compact duration expressions and waits on them.
//
// An expression is a run of (number, unit) pairs with no separators, for
// example "2d5h10m30s". Units are d, h, m and s in either case. Parse returns
// the total in seconds; digits left over at the end without a unit are
// dropped, while ParseStrict rejects them.
//
// The wait helpers take a context so a long wait can be interrupted.
package duration
