package shogun

import "fmt"

// ParseError is returned for anything that goes wrong while parsing
// arguments: unknown flags, bad values, missing required flags, or a help
// request. The library never exits; callers that want exit-on-error
// behavior use MustParse.
type ParseError struct {
	// Prog is the program name the parser was built with.
	Prog string

	// Help is true when the arguments asked for help. Usage has already
	// been written to the parser's output.
	Help bool

	// Err is the underlying cause, nil for a plain help request.
	Err error
}

func (e *ParseError) Error() string {
	if e.Help {
		return e.Prog + ": help requested"
	}
	return fmt.Sprintf("%s: %v", e.Prog, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
