package dispatch

import (
	"reflect"
	"slices"
	"strings"

	"github.com/menpo/shogun/record"
)

// LiteralRule handles string-kind types implementing Choosable: the flag
// accepts exactly the declared choices and stores the matching string.
type LiteralRule struct{}

func (LiteralRule) Match(t reflect.Type) bool {
	if t.Kind() != reflect.String {
		return false
	}
	_, ok := implementsOn(t, choosableType)
	return ok
}

func (LiteralRule) Flags(f record.Field, _ *Registry) ([]FlagSpec, error) {
	inst, _ := implementsOn(f.Type, choosableType)
	choices := inst.Interface().(Choosable).Choices()

	t := f.Type
	parse := func(s string) (any, error) {
		if !slices.Contains(choices, s) {
			return nil, &ChoiceError{Value: s, Choices: choices}
		}
		return reflect.ValueOf(s).Convert(t).Interface(), nil
	}

	metavar := f.Meta.Metavar
	if metavar == "" {
		metavar = "{" + strings.Join(choices, ",") + "}"
	}

	return []FlagSpec{{
		Name:      f.Name,
		Shorthand: f.Meta.Short,
		Aliases:   f.Meta.Aliases,
		Usage:     f.Meta.Help,
		Metavar:   metavar,
		Required:  f.Required(),
		Value:     &box{typ: metavar, parse: parse, value: f.Default},
	}}, nil
}

func (LiteralRule) Primitive(_ *Registry, v reflect.Value) (any, error) {
	return v.String(), nil
}
