package dispatch

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/menpo/shogun/record"
)

// ContainerRule handles slices, arrays, and maps. Containers cannot be
// parsed from a single argument without help, so the field must carry a
// converter function or the type must unmarshal itself from text.
type ContainerRule struct{}

func (ContainerRule) Match(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return true
	}
	return false
}

func (ContainerRule) Flags(f record.Field, _ *Registry) ([]FlagSpec, error) {
	conv := f.Meta.Converter
	if conv == nil {
		if _, ok := implementsOn(f.Type, textUnmarshalerType); ok {
			conv = textParse(f.Type)
		}
	}
	if conv == nil {
		return nil, fmt.Errorf("field %q: %w", f.Name, ErrMissingConverter)
	}

	t := f.Type
	parse := func(s string) (any, error) {
		v, err := conv(s)
		if err != nil {
			return nil, err
		}
		if v != nil && !reflect.TypeOf(v).AssignableTo(t) {
			return nil, fmt.Errorf("converter returned %T, need %s", v, t)
		}
		return v, nil
	}

	typ := "list"
	if t.Kind() == reflect.Map {
		typ = "map"
	}
	if f.Meta.Metavar != "" {
		typ = f.Meta.Metavar
	}

	return []FlagSpec{{
		Name:      f.Name,
		Shorthand: f.Meta.Short,
		Aliases:   f.Meta.Aliases,
		Usage:     f.Meta.Help,
		Metavar:   f.Meta.Metavar,
		Required:  f.Required(),
		Value:     &box{typ: typ, parse: parse, value: f.Default},
	}}, nil
}

// Primitive serializes sequences element by element and maps entry by entry,
// dispatching every element's dynamic type back through the registry. Map
// keys must be scalars and are rendered as strings so the result encodes
// under every supported format.
func (ContainerRule) Primitive(reg *Registry, v reflect.Value) (any, error) {
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			elem, err := reg.Serialize(v.Index(i))
			if err != nil {
				return nil, err
			}
			out = append(out, elem)
		}
		return out, nil
	case reflect.Map:
		out := make(map[string]any, v.Len())
		keys := v.MapKeys()
		sort.Slice(keys, func(i, j int) bool {
			return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
		})
		for _, k := range keys {
			if !scalarKey(k) {
				return nil, &UnserializableKeyError{Key: k.Interface()}
			}
			elem, err := reg.Serialize(v.MapIndex(k))
			if err != nil {
				return nil, err
			}
			out[fmt.Sprint(k.Interface())] = elem
		}
		return out, nil
	}
	return nil, fmt.Errorf("cannot serialize %s as a container", v.Type())
}

func scalarKey(k reflect.Value) bool {
	switch k.Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
