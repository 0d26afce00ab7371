package record

import (
	"encoding"
	"fmt"
	"reflect"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/menpo/shogun/internal/flagname"
)

// Declarer is the programmatic declaration mechanism. A record type that
// implements it describes its own fields; only declared fields become flags,
// and declarations may carry typed defaults and converter functions, which
// tags cannot express.
type Declarer interface {
	DeclareArgs() []Arg
}

// Configurer lets a record type supply parameters for the parser built from
// it.
type Configurer interface {
	ParserParams() ParserConfig
}

// ParserConfig holds the parser parameters a record can declare.
type ParserConfig struct {
	// Program overrides the parser's program name.
	Program string

	// Description is shown at the top of usage output.
	Description string

	// DisableHelp suppresses the built-in help flag.
	DisableHelp bool
}

// Adapter resolves a record type into a schema. Adapters are tried in
// order; the first match wins.
type Adapter interface {
	Match(t reflect.Type) bool
	Describe(t reflect.Type) (*Schema, error)
}

// The declarer adapter is tried before the struct-tag adapter, so a type
// that implements Declarer always uses its programmatic declaration.
var adapters = []Adapter{declarerAdapter{}, structAdapter{}}

var (
	declarerType        = reflect.TypeOf((*Declarer)(nil)).Elem()
	configurerType      = reflect.TypeOf((*Configurer)(nil)).Elem()
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
	textMarshalerType   = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
)

type declarerAdapter struct{}

func (declarerAdapter) Match(t reflect.Type) bool {
	return t.Kind() == reflect.Struct &&
		(t.Implements(declarerType) || reflect.PointerTo(t).Implements(declarerType))
}

func (declarerAdapter) Describe(t reflect.Type) (*Schema, error) {
	decl := reflect.New(t).Interface().(Declarer)

	var fields []Field
	for i, a := range decl.DeclareArgs() {
		if a.Skip {
			continue
		}
		if a.Field == "" {
			return nil, fmt.Errorf("record %s: declaration %d does not name a field", t.Name(), i)
		}
		sf, ok := t.FieldByName(a.Field)
		if !ok || !sf.IsExported() {
			return nil, fmt.Errorf("record %s: %w: %q", t.Name(), ErrUnknownField, a.Field)
		}
		a, err := normalizeArg(a)
		if err != nil {
			return nil, fmt.Errorf("record %s: field %q: %w", t.Name(), a.Field, err)
		}
		if a.Default != nil {
			if err := assign(reflect.New(sf.Type).Elem(), a.Default); err != nil {
				return nil, fmt.Errorf("record %s: field %q: default: %w", t.Name(), a.Field, err)
			}
		}

		name := flagname.FromGo(sf.Name)
		if a.Flag != "" {
			name = flagname.FromDeclared(a.Flag)
		}
		fields = append(fields, Field{
			Name:    name,
			GoName:  sf.Name,
			Type:    sf.Type,
			Index:   sf.Index,
			Default: a.Default,
			Meta:    a,
		})
	}
	return newSchema(t, fields)
}

type structAdapter struct{}

// Match accepts plain structs with at least one exported field. Types that
// marshal themselves as text (time.Time and friends) are scalars, not
// records.
func (structAdapter) Match(t reflect.Type) bool {
	if t.Kind() != reflect.Struct {
		return false
	}
	if t.Implements(textMarshalerType) || reflect.PointerTo(t).Implements(textUnmarshalerType) {
		return false
	}
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).IsExported() {
			return true
		}
	}
	return false
}

func (structAdapter) Describe(t reflect.Type) (*Schema, error) {
	var fields []Field
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		a, err := argFromTags(sf)
		if err != nil {
			return nil, fmt.Errorf("record %s: %w", t.Name(), err)
		}
		if a.Skip {
			continue
		}
		a, err = normalizeArg(a)
		if err != nil {
			return nil, fmt.Errorf("record %s: field %q: %w", t.Name(), sf.Name, err)
		}

		name := flagname.FromGo(sf.Name)
		if a.Flag != "" {
			name = flagname.FromDeclared(a.Flag)
		}
		fields = append(fields, Field{
			Name:    name,
			GoName:  sf.Name,
			Type:    sf.Type,
			Index:   sf.Index,
			Default: a.Default,
			Meta:    a,
		})
	}
	return newSchema(t, fields)
}

// normalizeArg sanitizes the parts of a declaration that feed flag names.
func normalizeArg(a Arg) (Arg, error) {
	if len(a.Short) > 1 {
		return a, fmt.Errorf("shorthand %q must be a single letter", a.Short)
	}
	if len(a.Aliases) > 0 {
		aliases := make([]string, len(a.Aliases))
		for i, alias := range a.Aliases {
			aliases[i] = flagname.FromDeclared(alias)
			if !flagname.Valid(aliases[i]) {
				return a, fmt.Errorf("alias %q is not a valid flag name", alias)
			}
		}
		a.Aliases = aliases
	}
	return a, nil
}

func newSchema(t reflect.Type, fields []Field) (*Schema, error) {
	table := orderedmap.New[string, Field]()
	for _, f := range fields {
		if !flagname.Valid(f.Name) {
			return nil, fmt.Errorf("record %s: field %q derives invalid flag name %q", t.Name(), f.GoName, f.Name)
		}
		if _, dup := table.Get(f.Name); dup {
			return nil, fmt.Errorf("record %s: duplicate field name %q", t.Name(), f.Name)
		}
		table.Set(f.Name, f)
	}

	s := &Schema{Type: t, Name: t.Name(), fields: table}
	if c, ok := reflect.New(t).Interface().(Configurer); ok {
		s.Params = c.ParserParams()
	}
	return s, nil
}
