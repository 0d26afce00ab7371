package dispatch

import (
	"encoding"
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"time"

	"github.com/menpo/shogun/record"
)

var (
	durationType        = reflect.TypeOf(time.Duration(0))
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
	textMarshalerType   = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
)

// box is the Getter behind every declared flag: a parse function plus the
// value accumulated so far. Until the flag is set it holds the field's
// default, so the flat parse output always carries a value.
type box struct {
	typ    string
	parse  func(string) (any, error)
	format func(any) string
	value  any
}

func (b *box) Set(s string) error {
	v, err := b.parse(s)
	if err != nil {
		return err
	}
	b.value = v
	return nil
}

func (b *box) String() string {
	if b.value == nil {
		return ""
	}
	if b.format != nil {
		return b.format(b.value)
	}
	return fmt.Sprint(b.value)
}

func (b *box) Type() string { return b.typ }

func (b *box) Get() any { return b.value }

// NewValue builds the Getter for a flag spec from a parse function. typ is
// the value placeholder shown in usage text; def seeds the value before the
// flag is first set. Rules outside this package use it so they do not have
// to reimplement the accumulate-and-report contract.
func NewValue(typ string, def any, parse func(string) (any, error)) Getter {
	return &box{typ: typ, parse: parse, value: def}
}

// scalarBox builds the box for a plain scalar field: duration, text
// unmarshaler, or one of the basic kinds. A choices declaration wraps the
// parse with a whitelist check.
func scalarBox(f record.Field) (*box, error) {
	t := f.Type

	var (
		typ   string
		parse func(string) (any, error)
	)
	switch {
	case t == durationType:
		typ = "duration"
		parse = func(s string) (any, error) {
			return time.ParseDuration(s)
		}
	default:
		if _, ok := implementsOn(t, textUnmarshalerType); ok {
			typ = "value"
			parse = textParse(t)
			break
		}
		kindTyp, kindParse, err := kindBox(t)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		typ, parse = kindTyp, kindParse
	}

	if len(f.Meta.Choices) > 0 {
		choices := f.Meta.Choices
		inner := parse
		parse = func(s string) (any, error) {
			if !slices.Contains(choices, s) {
				return nil, &ChoiceError{Value: s, Choices: choices}
			}
			return inner(s)
		}
	}
	if f.Meta.Metavar != "" {
		typ = f.Meta.Metavar
	}

	b := &box{typ: typ, parse: parse, value: f.Default}
	if t == durationType {
		b.format = func(v any) string { return v.(time.Duration).String() }
	}
	return b, nil
}

// kindBox resolves the parse function for a basic kind, converting the
// parsed value to the field's (possibly named) type.
func kindBox(t reflect.Type) (string, func(string) (any, error), error) {
	switch t.Kind() {
	case reflect.String:
		return "string", func(s string) (any, error) {
			return reflect.ValueOf(s).Convert(t).Interface(), nil
		}, nil
	case reflect.Bool:
		return "bool", func(s string) (any, error) {
			b, err := strconv.ParseBool(s)
			if err != nil {
				return nil, fmt.Errorf("invalid boolean %q", s)
			}
			return reflect.ValueOf(b).Convert(t).Interface(), nil
		}, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "int", func(s string) (any, error) {
			n, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid integer %q", s)
			}
			v := reflect.New(t).Elem()
			if v.OverflowInt(n) {
				return nil, fmt.Errorf("integer %q overflows %s", s, t)
			}
			v.SetInt(n)
			return v.Interface(), nil
		}, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "uint", func(s string) (any, error) {
			n, err := strconv.ParseUint(s, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid unsigned integer %q", s)
			}
			v := reflect.New(t).Elem()
			if v.OverflowUint(n) {
				return nil, fmt.Errorf("unsigned integer %q overflows %s", s, t)
			}
			v.SetUint(n)
			return v.Interface(), nil
		}, nil
	case reflect.Float32, reflect.Float64:
		return "float", func(s string) (any, error) {
			fv, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid number %q", s)
			}
			v := reflect.New(t).Elem()
			v.SetFloat(fv)
			return v.Interface(), nil
		}, nil
	default:
		return "", nil, fmt.Errorf("unsupported field type %s", t)
	}
}

// textParse parses a whole value through the type's encoding.TextUnmarshaler.
func textParse(t reflect.Type) func(string) (any, error) {
	return func(s string) (any, error) {
		ptr := reflect.New(t)
		if err := ptr.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(s)); err != nil {
			return nil, err
		}
		return ptr.Elem().Interface(), nil
	}
}
