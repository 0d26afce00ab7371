// Package shogun turns record types into command-line parsers.
//
// A record is a plain struct whose exported fields become flags, or any
// type implementing record.Declarer to spell its arguments out directly.
// Parsing flattens the command line into key/value pairs keyed by flag
// name, then folds nested records back together by matching flag-name
// prefixes, so a House holding a Room holding a Furniture parses from
// --room1-size and --room1-furniture-weight without any wiring code.
//
// The common path is one call:
//
//	args := shogun.MustParse[ServerArgs](nil)
//
// Parse returns errors instead of exiting, and NewParser exposes the
// flag set, usage text, and reconstruction steps individually. How each
// field type maps to a flag is table-driven; see package dispatch for
// the rules and how to replace them.
package shogun

import (
	"errors"
	"fmt"
	"os"
)

// Parse builds a parser for T and runs it over args in one step.
// It suits tests and embedders that want errors back; command-line
// entry points usually call MustParse instead.
func Parse[T any](args []string, opts ...Option) (T, error) {
	var zero T
	p, err := NewParser[T](opts...)
	if err != nil {
		return zero, err
	}
	return p.Parse(args)
}

// MustParse is Parse wired for main: nil args means os.Args[1:],
// a help request exits 0 after the usage text prints, and any other
// failure reports to stderr and exits 2.
func MustParse[T any](args []string, opts ...Option) T {
	if args == nil {
		args = os.Args[1:]
	}
	v, err := Parse[T](args, opts...)
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) && perr.Help {
			osExit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		osExit(2)
	}
	return v
}

// osExit is swapped out by tests.
var osExit = os.Exit
