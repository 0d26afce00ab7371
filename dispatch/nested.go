package dispatch

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/menpo/shogun/internal/flagname"
	"github.com/menpo/shogun/record"
)

// RecordRule flattens nested records into the parent's flag namespace. Each
// sub-field's specs are built through the registry and then prefixed with the
// parent field's name, so a record field "room1" with a sub-field "size"
// yields the flag "room1-size".
type RecordRule struct{}

func (RecordRule) Match(t reflect.Type) bool { return record.Match(t) }

func (RecordRule) Flags(f record.Field, reg *Registry) ([]FlagSpec, error) {
	// A record field produces several flags, so a shorthand on the field
	// itself has nothing to bind to.
	if f.Meta.Short != "" {
		return nil, fmt.Errorf("record field %q: shorthand %q not allowed on a record field",
			f.Name, f.Meta.Short)
	}

	sub, err := record.Wrap(f.Type)
	if err != nil {
		return nil, err
	}

	var out []FlagSpec
	for _, sf := range sub.Fields() {
		specs, err := reg.Flags(sf)
		if err != nil {
			return nil, fmt.Errorf("record field %q: %w", f.Name, err)
		}
		for i := range specs {
			if specs[i].Shorthand != "" {
				return nil, fmt.Errorf("record field %q: flag %q: shorthand %q not allowed inside a nested record",
					f.Name, specs[i].Name, specs[i].Shorthand)
			}
			specs[i].Name = flagname.Join(f.Name, specs[i].Name)
			// Clone before prefixing: the slice may belong to a cached schema.
			specs[i].Aliases = slices.Clone(specs[i].Aliases)
			for j, alias := range specs[i].Aliases {
				specs[i].Aliases[j] = flagname.Join(f.Name, alias)
			}
		}
		out = append(out, specs...)
	}
	return out, nil
}

// Primitive serializes a record to the map of its fields, dispatching each
// field value back through the registry.
func (RecordRule) Primitive(reg *Registry, v reflect.Value) (any, error) {
	sub, err := record.Wrap(v.Type())
	if err != nil {
		return nil, err
	}

	out := make(map[string]any, sub.Len())
	for _, sf := range sub.Fields() {
		elem, err := reg.Serialize(v.FieldByIndex(sf.Index))
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", sf.Name, err)
		}
		out[sf.Name] = elem
	}
	return out, nil
}
