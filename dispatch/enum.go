package dispatch

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/menpo/shogun/record"
)

// EnumRule handles types implementing Enum: flags take a member name, the
// field stores the member value, and serialization gives the name back.
type EnumRule struct{}

func (EnumRule) Match(t reflect.Type) bool {
	if _, ok := implementsOn(t, enumType); !ok {
		return false
	}
	return isInt(t.Kind()) || isUint(t.Kind()) || t.Kind() == reflect.String
}

func (EnumRule) Flags(f record.Field, _ *Registry) ([]FlagSpec, error) {
	names := enumNames(f.Type)
	if len(names) == 0 {
		return nil, fmt.Errorf("field %q: enum %s declares no values", f.Name, f.Type)
	}

	t := f.Type
	parse := func(s string) (any, error) {
		idx := slices.Index(names, s)
		if idx < 0 {
			return nil, &ChoiceError{Value: s, Choices: names}
		}
		if t.Kind() == reflect.String {
			return reflect.ValueOf(s).Convert(t).Interface(), nil
		}
		v := reflect.New(t).Elem()
		if isUint(t.Kind()) {
			v.SetUint(uint64(idx))
		} else {
			v.SetInt(int64(idx))
		}
		return v.Interface(), nil
	}

	metavar := f.Meta.Metavar
	if metavar == "" {
		metavar = "{" + strings.Join(names, ",") + "}"
	}

	b := &box{typ: metavar, parse: parse, value: f.Default}
	b.format = func(v any) string {
		name, err := enumName(names, reflect.ValueOf(v))
		if err != nil {
			return fmt.Sprint(v)
		}
		return name
	}

	return []FlagSpec{{
		Name:      f.Name,
		Shorthand: f.Meta.Short,
		Aliases:   f.Meta.Aliases,
		Usage:     f.Meta.Help,
		Metavar:   metavar,
		Required:  f.Required(),
		Value:     b,
	}}, nil
}

func (EnumRule) Primitive(_ *Registry, v reflect.Value) (any, error) {
	name, err := enumName(enumNames(v.Type()), v)
	if err != nil {
		return nil, err
	}
	return name, nil
}

func enumNames(t reflect.Type) []string {
	inst, ok := implementsOn(t, enumType)
	if !ok {
		return nil
	}
	return inst.Interface().(Enum).EnumValues()
}

func enumName(names []string, v reflect.Value) (string, error) {
	if v.Kind() == reflect.String {
		return v.String(), nil
	}
	var idx int64
	if isUint(v.Kind()) {
		idx = int64(v.Uint())
	} else {
		idx = v.Int()
	}
	if idx < 0 || idx >= int64(len(names)) {
		return "", fmt.Errorf("value %d is outside enum %s", idx, v.Type())
	}
	return names[idx], nil
}

func isInt(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Int64
}

func isUint(k reflect.Kind) bool {
	return k >= reflect.Uint && k <= reflect.Uint64
}
