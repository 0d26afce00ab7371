package dispatch

import (
	"encoding"
	"fmt"
	"reflect"
	"time"

	"github.com/menpo/shogun/record"
)

// DefaultRule is the catch-all: it matches every type and declares a single
// scalar flag for the field. It must run after every other rule, which the
// registry guarantees by keeping it as the fallback.
type DefaultRule struct{}

func (DefaultRule) Match(reflect.Type) bool { return true }

func (DefaultRule) Flags(f record.Field, _ *Registry) ([]FlagSpec, error) {
	b, err := scalarBox(f)
	if err != nil {
		return nil, err
	}
	return []FlagSpec{{
		Name:      f.Name,
		Shorthand: f.Meta.Short,
		Aliases:   f.Meta.Aliases,
		Usage:     f.Meta.Help,
		Metavar:   f.Meta.Metavar,
		Required:  f.Required(),
		Value:     b,
	}}, nil
}

// Primitive renders scalars as themselves and falls back to text forms:
// durations and Stringers by their string, text marshalers by their text,
// anything else through fmt.
func (DefaultRule) Primitive(_ *Registry, v reflect.Value) (any, error) {
	if v.Type() == durationType {
		return v.Interface().(time.Duration).String(), nil
	}
	if v.Type().Implements(textMarshalerType) {
		text, err := v.Interface().(encoding.TextMarshaler).MarshalText()
		if err != nil {
			return nil, err
		}
		return string(text), nil
	}

	switch v.Kind() {
	case reflect.String:
		return v.String(), nil
	case reflect.Bool:
		return v.Bool(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint(), nil
	case reflect.Float32, reflect.Float64:
		return v.Float(), nil
	}

	if s, ok := v.Interface().(fmt.Stringer); ok {
		return s.String(), nil
	}
	return fmt.Sprint(v.Interface()), nil
}
