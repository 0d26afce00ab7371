package record

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Arg carries per-field argument metadata.
//
// The struct-tag adapter fills it from tags; the Declarer adapter receives it
// directly, which is the only way to attach typed defaults and converter
// functions.
type Arg struct {
	// Field names the Go struct field this declaration binds. Only the
	// Declarer adapter reads it; tags bind implicitly.
	Field string

	// Flag overrides the derived long flag name.
	Flag string

	// Short is a one-letter shorthand, e.g. "n" for -n.
	Short string

	// Help is the usage line shown for the flag.
	Help string

	// Metavar overrides the value placeholder in usage text.
	Metavar string

	// Aliases are extra long names that set the same field.
	Aliases []string

	// Choices restricts accepted values for string-ish fields.
	Choices []string

	// Default is the declared default value, nil when absent. The tag
	// adapter stores the value already converted to the field's type.
	Default any

	// Required forces requiredness on or off; nil derives it from the
	// presence of a default.
	Required *bool

	// Converter parses the raw argument into the whole field value.
	// Container fields cannot parse without one unless their type
	// implements encoding.TextUnmarshaler.
	Converter func(string) (any, error)

	// Skip excludes the field from the parser entirely.
	Skip bool
}

// Tag keys read by the struct-tag adapter.
const (
	tagFlag     = "flag"
	tagShort    = "short"
	tagHelp     = "help"
	tagDefault  = "default"
	tagRequired = "required"
	tagChoices  = "choices"
	tagMetavar  = "metavar"
	tagAliases  = "aliases"
)

// argFromTags builds an Arg from a struct field's tags. flag:"-" marks the
// field skipped. A default tag is converted to the field's type here, so a
// bad default surfaces when the record is wrapped, not when it is parsed.
func argFromTags(sf reflect.StructField) (Arg, error) {
	var a Arg

	a.Flag = sf.Tag.Get(tagFlag)
	if a.Flag == "-" {
		a.Skip = true
		a.Flag = ""
		return a, nil
	}
	a.Short = sf.Tag.Get(tagShort)
	if len(a.Short) > 1 {
		return a, fmt.Errorf("field %s: shorthand %q must be a single letter", sf.Name, a.Short)
	}
	a.Help = sf.Tag.Get(tagHelp)
	a.Metavar = sf.Tag.Get(tagMetavar)
	if v, ok := sf.Tag.Lookup(tagAliases); ok && v != "" {
		a.Aliases = splitList(v)
	}
	if v, ok := sf.Tag.Lookup(tagChoices); ok && v != "" {
		a.Choices = splitList(v)
	}
	if v, ok := sf.Tag.Lookup(tagRequired); ok {
		req, err := strconv.ParseBool(v)
		if err != nil {
			return a, fmt.Errorf("field %s: invalid required tag %q: %w", sf.Name, v, err)
		}
		a.Required = &req
	}

	if raw, ok := sf.Tag.Lookup(tagDefault); ok {
		def, err := convertDefault(raw, sf.Type)
		if err != nil {
			return a, fmt.Errorf("field %s: %w", sf.Name, err)
		}
		a.Default = def
	}
	return a, nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// convertDefault parses a textual default into the field's type.
func convertDefault(raw string, t reflect.Type) (any, error) {
	if t == reflect.TypeOf(time.Duration(0)) {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid duration default %q: %w", raw, err)
		}
		return d, nil
	}

	switch t.Kind() {
	case reflect.String:
		return reflect.ValueOf(raw).Convert(t).Interface(), nil
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid bool default %q: %w", raw, err)
		}
		return reflect.ValueOf(b).Convert(t).Interface(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid integer default %q: %w", raw, err)
		}
		v := reflect.New(t).Elem()
		if v.OverflowInt(n) {
			return nil, fmt.Errorf("integer default %q overflows %s", raw, t)
		}
		v.SetInt(n)
		return v.Interface(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid unsigned default %q: %w", raw, err)
		}
		v := reflect.New(t).Elem()
		if v.OverflowUint(n) {
			return nil, fmt.Errorf("unsigned default %q overflows %s", raw, t)
		}
		v.SetUint(n)
		return v.Interface(), nil
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid float default %q: %w", raw, err)
		}
		v := reflect.New(t).Elem()
		v.SetFloat(f)
		return v.Interface(), nil
	default:
		return nil, fmt.Errorf("default tag unsupported for %s fields", t.Kind())
	}
}
