package dispatch

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoMatchingRule reports that no registered rule matched a field's
	// type. It can only happen on a registry without a fallback rule.
	ErrNoMatchingRule = errors.New("no dispatch rule matches")

	// ErrMissingConverter reports a container field that has neither a
	// converter function nor a text-unmarshaling type.
	ErrMissingConverter = errors.New("container field needs a converter")
)

// ChoiceError reports a value outside an enum's members, a literal's
// choices, or a field's declared choice list.
type ChoiceError struct {
	Value   string
	Choices []string
}

func (e *ChoiceError) Error() string {
	return fmt.Sprintf("invalid choice: %q (choose from %s)", e.Value, strings.Join(e.Choices, ", "))
}

// UnserializableKeyError reports a map key that cannot appear in serialized
// output. Keys must be scalars.
type UnserializableKeyError struct {
	Key any
}

func (e *UnserializableKeyError) Error() string {
	return fmt.Sprintf("map key %v (%T) cannot be serialized: keys must be scalars", e.Key, e.Key)
}
