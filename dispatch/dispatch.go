// Package dispatch maps record fields to command-line flag specifications
// through an ordered rule table.
//
// Rules are registered into priority buckets; higher priorities are consulted
// first, insertion order breaks ties inside a bucket, and a registry's
// fallback rule (the catch-all) always runs last. The same table drives
// serialization: every rule knows how to turn a value of its types back into
// an encoder-ready primitive.
package dispatch

import (
	"reflect"

	"github.com/spf13/pflag"

	"github.com/menpo/shogun/record"
)

// Dispatch priorities of the built-in rules. User rules that must win over
// the built-ins register at PriorityUser or above.
const (
	PriorityLowest    = 1 // enum and literal rules
	PriorityContainer = 2 // slices, arrays, maps
	PrioritySimple    = 3 // bool and nested-record rules
	PriorityUser      = 4
)

// Getter is the backing value of a declared flag: a pflag.Value that can also
// hand back the typed value it accumulated.
type Getter interface {
	pflag.Value
	Get() any
}

// FlagSpec describes one flag to declare on the parsing primitive. Names are
// bare (no dashes); nested-record prefixes are already applied by the time a
// spec leaves the registry.
type FlagSpec struct {
	// Name is the primary long name.
	Name string

	// Shorthand is a one-letter short name, empty for none.
	Shorthand string

	// Aliases are extra long names bound to the same Value.
	Aliases []string

	// Usage is the help line.
	Usage string

	// Metavar overrides the value placeholder shown in usage.
	Metavar string

	// DefValue is the printable default; empty means derive it from Value.
	DefValue string

	// NoOptDefVal is the value assumed when the flag appears without an
	// argument. Bool toggles are built on it.
	NoOptDefVal string

	// Required marks flags the parser must see.
	Required bool

	// Hidden keeps the flag out of usage output.
	Hidden bool

	// Value parses and stores the flag's argument.
	Value Getter
}

// Rule matches a set of field types and knows how to declare flags for them
// and how to serialize their values.
//
// Flags receives the registry so rules can recurse (nested records build
// their children's specs through it); Primitive receives it for the same
// reason on the way back out.
type Rule interface {
	Match(t reflect.Type) bool
	Flags(f record.Field, reg *Registry) ([]FlagSpec, error)
	Primitive(reg *Registry, v reflect.Value) (any, error)
}

// Enum marks a named type whose values form a closed, ordered set of names.
// Integer-kind enums map the i-th name to the value i; string-kind enums
// store the name itself.
type Enum interface {
	EnumValues() []string
}

// Choosable marks a string-kind type restricted to a fixed set of values.
type Choosable interface {
	Choices() []string
}

var (
	enumType      = reflect.TypeOf((*Enum)(nil)).Elem()
	choosableType = reflect.TypeOf((*Choosable)(nil)).Elem()
)

// implementsOn reports whether t or *t implements iface, and returns a value
// to call the interface method on.
func implementsOn(t reflect.Type, iface reflect.Type) (reflect.Value, bool) {
	if t.Implements(iface) {
		return reflect.Zero(t), true
	}
	if reflect.PointerTo(t).Implements(iface) {
		return reflect.New(t), true
	}
	return reflect.Value{}, false
}
