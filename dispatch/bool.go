package dispatch

import (
	"reflect"
	"strconv"

	"github.com/menpo/shogun/record"
)

// BoolRule declares presence toggles. A field whose default is true toggles
// to false when the flag appears; any other bool toggles to true. Either way
// the flag takes no argument, though an explicit --flag=value still works.
type BoolRule struct{}

func (BoolRule) Match(t reflect.Type) bool { return t.Kind() == reflect.Bool }

func (BoolRule) Flags(f record.Field, _ *Registry) ([]FlagSpec, error) {
	defTrue := f.HasDefault() && reflect.ValueOf(f.Default).Bool()

	_, parse, err := kindBox(f.Type)
	if err != nil {
		return nil, err
	}
	initial := reflect.ValueOf(defTrue).Convert(f.Type).Interface()
	b := &box{typ: "bool", parse: parse, value: initial}

	return []FlagSpec{{
		Name:        f.Name,
		Shorthand:   f.Meta.Short,
		Aliases:     f.Meta.Aliases,
		Usage:       f.Meta.Help,
		NoOptDefVal: strconv.FormatBool(!defTrue),
		Required:    f.Required(),
		Value:       b,
	}}, nil
}

func (BoolRule) Primitive(_ *Registry, v reflect.Value) (any, error) {
	return v.Bool(), nil
}
