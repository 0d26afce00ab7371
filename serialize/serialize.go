// Package serialize converts record instances into nested maps of primitives
// that encode cleanly as JSON, TOML, or YAML.
package serialize

import (
	"fmt"
	"reflect"

	"github.com/menpo/shogun/dispatch"
	"github.com/menpo/shogun/record"
)

// Option adjusts serialization.
type Option func(*options)

type options struct {
	reg *dispatch.Registry
}

// WithRegistry serializes through a registry other than the process-wide
// default, honoring any custom rules registered on it.
func WithRegistry(reg *dispatch.Registry) Option {
	return func(o *options) { o.reg = reg }
}

// Map converts a record instance, or a pointer to one, into a map keyed by
// field name. Scalars keep a primitive value, enums become their member
// names, sequences become []any, and nested records become nested maps, so
// the result marshals under any of the common encoders without custom
// marshaler hooks. Each field value passes through the same dispatch rule
// that declared its flag.
func Map(instance any, opts ...Option) (map[string]any, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.reg == nil {
		o.reg = dispatch.Default()
	}

	v := reflect.ValueOf(instance)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil, fmt.Errorf("serialize: nil %s", v.Type())
		}
		v = v.Elem()
	}
	if !v.IsValid() {
		return nil, fmt.Errorf("serialize: %w: untyped nil", record.ErrNotARecord)
	}
	if _, err := record.Wrap(v.Type()); err != nil {
		return nil, fmt.Errorf("serialize: %w", err)
	}

	out, err := o.reg.Serialize(v)
	if err != nil {
		return nil, fmt.Errorf("serialize %s: %w", v.Type(), err)
	}
	m, ok := out.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("serialize: %s serialized to %T, not a map", v.Type(), out)
	}
	return m, nil
}
