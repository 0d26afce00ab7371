package record

import "errors"

var (
	// ErrNotARecord reports that a type matches none of the registered
	// record adapters.
	ErrNotARecord = errors.New("not a record type")

	// ErrCycle reports that a record nests itself, directly or through
	// other records. By-value structs cannot form such a cycle; the check
	// guards adapters that admit indirect record types.
	ErrCycle = errors.New("record nesting cycle")

	// ErrUnknownField reports a declaration that names a field the struct
	// does not have.
	ErrUnknownField = errors.New("unknown field")
)
