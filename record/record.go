// Package record turns statically declared record types into ordered field
// schemas that the parser and serializer consume.
//
// Two declaration mechanisms are supported, tried in order: types that
// implement Declarer describe their fields programmatically, and plain
// structs describe them through tags. Wrapped schemas are cached per type and
// validated for nesting cycles.
package record

import (
	"fmt"
	"reflect"
	"sync"
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Field is one argument-bearing field of a record.
type Field struct {
	// Name is the field's flag-ready name. Flat parse output, flag names,
	// and serialized keys all use it.
	Name string

	// GoName is the struct field the value binds to.
	GoName string

	// Type is the declared field type.
	Type reflect.Type

	// Index is the struct field index path used for assignment.
	Index []int

	// Default is the declared default value, nil when the field has none.
	Default any

	// Meta carries the rest of the declaration.
	Meta Arg
}

// HasDefault reports whether the field declared a default value.
func (f Field) HasDefault() bool { return f.Default != nil }

// Required reports whether the parser must see the field. An explicit
// declaration wins; bool fields are never required (absence means false);
// everything else is required exactly when it has no default.
func (f Field) Required() bool {
	if f.Meta.Required != nil {
		return *f.Meta.Required
	}
	if f.Type.Kind() == reflect.Bool {
		return false
	}
	return !f.HasDefault()
}

// Schema is the ordered field table of a wrapped record type.
type Schema struct {
	// Type is the record's struct type.
	Type reflect.Type

	// Name is the record's type name.
	Name string

	// Params holds parser parameters the record declared via Configurer.
	Params ParserConfig

	fields *orderedmap.OrderedMap[string, Field]
}

// Fields returns the record's fields in declaration order.
func (s *Schema) Fields() []Field {
	out := make([]Field, 0, s.fields.Len())
	for pair := s.fields.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

// Field looks a field up by its flag-ready name.
func (s *Schema) Field(name string) (Field, bool) {
	return s.fields.Get(name)
}

// Len returns the number of fields.
func (s *Schema) Len() int { return s.fields.Len() }

// Instantiate builds a record value from per-field values keyed by field
// name. Missing keys fall back to the field's default; a missing key on a
// defaultless bool means false; any other missing key is an error.
func (s *Schema) Instantiate(values map[string]any) (any, error) {
	inst := reflect.New(s.Type).Elem()
	for pair := s.fields.Oldest(); pair != nil; pair = pair.Next() {
		f := pair.Value
		v, ok := values[f.Name]
		if !ok {
			switch {
			case f.HasDefault():
				v = f.Default
			case f.Type.Kind() == reflect.Bool:
				v = false
			default:
				return nil, fmt.Errorf("record %s: missing value for field %q", s.Name, f.Name)
			}
		}
		if err := assign(inst.FieldByIndex(f.Index), v); err != nil {
			return nil, fmt.Errorf("record %s: field %q: %w", s.Name, f.Name, err)
		}
	}
	return inst.Interface(), nil
}

var (
	cacheMu sync.RWMutex
	cache   = make(map[reflect.Type]*Schema)
)

// Wrap resolves a type to its schema through the adapter list. Results are
// cached; the first wrap of a type validates that its record nesting is
// acyclic.
func Wrap(t reflect.Type) (*Schema, error) {
	if t == nil {
		return nil, ErrNotARecord
	}

	cacheMu.RLock()
	s, ok := cache[t]
	cacheMu.RUnlock()
	if ok {
		return s, nil
	}

	s, err := describe(t)
	if err != nil {
		return nil, err
	}
	if err := validate(t, make(map[reflect.Type]bool)); err != nil {
		return nil, err
	}

	cacheMu.Lock()
	cache[t] = s
	cacheMu.Unlock()
	return s, nil
}

// Match reports whether any adapter accepts the type. It is the cheap check
// dispatch rules use to recognize nested records.
func Match(t reflect.Type) bool {
	if t == nil {
		return false
	}
	for _, a := range adapters {
		if a.Match(t) {
			return true
		}
	}
	return false
}

func describe(t reflect.Type) (*Schema, error) {
	for _, a := range adapters {
		if a.Match(t) {
			return a.Describe(t)
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotARecord, t)
}

// validate walks record-typed fields depth-first and rejects any type that
// reappears on its own nesting path. Today's adapters accept only by-value
// structs, which cannot nest themselves (the type would have infinite size),
// so the cycle error can only fire once an adapter admits indirect types
// such as pointers to records.
func validate(t reflect.Type, path map[reflect.Type]bool) error {
	if path[t] {
		return fmt.Errorf("%w: %s reached through itself", ErrCycle, t)
	}
	path[t] = true
	defer delete(path, t)

	s, err := describe(t)
	if err != nil {
		return err
	}
	for pair := s.fields.Oldest(); pair != nil; pair = pair.Next() {
		if Match(pair.Value.Type) {
			if err := validate(pair.Value.Type, path); err != nil {
				return err
			}
		}
	}
	return nil
}

// assign stores v into the target field, converting across integer widths
// and named types with the same underlying kind. A nil v leaves the zero
// value in place.
func assign(target reflect.Value, v any) error {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	rt, tt := rv.Type(), target.Type()

	switch {
	case rt.AssignableTo(tt):
		target.Set(rv)
	case convertible(rt, tt):
		target.Set(rv.Convert(tt))
	default:
		return fmt.Errorf("cannot assign %s to %s", rt, tt)
	}
	return nil
}

// convertible restricts reflect conversion to same-class kinds so that an
// int never silently becomes a string.
func convertible(from, to reflect.Type) bool {
	if !from.ConvertibleTo(to) {
		return false
	}
	if to == reflect.TypeOf(time.Duration(0)) && isInt(from.Kind()) {
		return true
	}
	switch {
	case isInt(from.Kind()) && isInt(to.Kind()):
		return true
	case isUint(from.Kind()) && isUint(to.Kind()):
		return true
	case isInt(from.Kind()) && isUint(to.Kind()), isUint(from.Kind()) && isInt(to.Kind()):
		return true
	case isFloat(from.Kind()) && isFloat(to.Kind()):
		return true
	case from.Kind() == reflect.String && to.Kind() == reflect.String:
		return true
	case from.Kind() == reflect.Bool && to.Kind() == reflect.Bool:
		return true
	}
	return false
}

func isInt(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Int64
}

func isUint(k reflect.Kind) bool {
	return k >= reflect.Uint && k <= reflect.Uint64
}

func isFloat(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}
