package shogun

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"sort"
	"strings"

	"github.com/spf13/pflag"

	"github.com/menpo/shogun/dispatch"
	"github.com/menpo/shogun/record"
)

// Parser parses command-line arguments into values of T. Build one with
// NewParser when the flag set needs inspection or reuse; otherwise Parse is
// enough.
type Parser[T any] struct {
	schema *record.Schema
	reg    *dispatch.Registry
	fs     *pflag.FlagSet
	specs  []dispatch.FlagSpec
	prog   string
	desc   string
	noHelp bool
}

// Option adjusts how a parser is built.
type Option func(*options)

type options struct {
	program     string
	description string
	reg         *dispatch.Registry
	fs          *pflag.FlagSet
	out         io.Writer
}

// WithProgram sets the program name used in usage and error output.
func WithProgram(name string) Option {
	return func(o *options) { o.program = name }
}

// WithDescription sets the text shown at the top of usage output.
func WithDescription(text string) Option {
	return func(o *options) { o.description = text }
}

// WithRegistry scopes the parser to a registry other than the process-wide
// default.
func WithRegistry(reg *dispatch.Registry) Option {
	return func(o *options) { o.reg = reg }
}

// WithFlagSet declares the record's flags onto a caller-owned flag set, such
// as a cobra command's, instead of building a new one.
func WithFlagSet(fs *pflag.FlagSet) Option {
	return func(o *options) { o.fs = fs }
}

// WithOutput directs usage and error output. Defaults to stderr.
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.out = w }
}

// NewParser wraps T's record schema and declares one flag per spec the
// dispatch registry produces for it.
func NewParser[T any](opts ...Option) (*Parser[T], error) {
	schema, err := record.Wrap(reflect.TypeOf((*T)(nil)).Elem())
	if err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.reg == nil {
		o.reg = dispatch.Default()
	}
	if o.out == nil {
		o.out = os.Stderr
	}

	cfg := schema.Params
	if o.program != "" {
		cfg.Program = o.program
	}
	if o.description != "" {
		cfg.Description = o.description
	}

	prog := cfg.Program
	if prog == "" && o.fs != nil {
		prog = o.fs.Name()
	}
	if prog == "" {
		prog = filepath.Base(os.Args[0])
	}

	// A caller-owned flag set keeps its own output, ordering, and usage
	// function; we only configure what we create.
	fs := o.fs
	out := o.out
	if fs == nil {
		fs = pflag.NewFlagSet(prog, pflag.ContinueOnError)
		fs.SortFlags = false
		fs.SetOutput(out)
	}

	p := &Parser[T]{
		schema: schema,
		reg:    o.reg,
		fs:     fs,
		prog:   prog,
		desc:   cfg.Description,
		noHelp: cfg.DisableHelp,
	}

	for _, f := range schema.Fields() {
		specs, err := o.reg.Flags(f)
		if err != nil {
			return nil, err
		}
		for _, spec := range specs {
			if err := p.declare(spec); err != nil {
				return nil, err
			}
		}
	}

	if o.fs == nil {
		description := cfg.Description
		fs.Usage = func() {
			if description != "" {
				fmt.Fprintln(out, description)
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "Usage of %s:\n", prog)
			fs.PrintDefaults()
		}
	}

	return p, nil
}

// declare adds one spec and its aliases to the flag set. Aliases are hidden
// flags sharing the primary flag's value, so setting either spelling lands
// in the same place.
func (p *Parser[T]) declare(spec dispatch.FlagSpec) error {
	if p.fs.Lookup(spec.Name) != nil {
		return fmt.Errorf("flag %q declared twice", spec.Name)
	}
	if spec.Shorthand != "" && p.fs.ShorthandLookup(spec.Shorthand) != nil {
		return fmt.Errorf("flag %q: shorthand %q already in use", spec.Name, spec.Shorthand)
	}

	flag := p.fs.VarPF(spec.Value, spec.Name, spec.Shorthand, spec.Usage)
	flag.NoOptDefVal = spec.NoOptDefVal
	flag.Hidden = spec.Hidden
	if spec.DefValue != "" {
		flag.DefValue = spec.DefValue
	}

	for _, alias := range spec.Aliases {
		if p.fs.Lookup(alias) != nil {
			return fmt.Errorf("flag %q: alias %q declared twice", spec.Name, alias)
		}
		af := p.fs.VarPF(spec.Value, alias, "", "alias for --"+spec.Name)
		af.Hidden = true
		af.NoOptDefVal = spec.NoOptDefVal
	}

	p.specs = append(p.specs, spec)
	return nil
}

// Flags exposes the underlying flag set.
func (p *Parser[T]) Flags() *pflag.FlagSet { return p.fs }

// Specs returns the declared flag specs in declaration order. Inspection
// and documentation tooling reads requiredness and aliases from here, since
// the flag set carries neither.
func (p *Parser[T]) Specs() []dispatch.FlagSpec {
	return slices.Clone(p.specs)
}

// Usage renders the parser's usage text.
func (p *Parser[T]) Usage() string {
	var b strings.Builder
	if p.desc != "" {
		b.WriteString(p.desc)
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, "Usage of %s:\n", p.prog)
	b.WriteString(p.fs.FlagUsages())
	return b.String()
}

// Parse parses the arguments and rebuilds a T from the flat results. Every
// failure comes back as a *ParseError; the parser never exits.
func (p *Parser[T]) Parse(args []string) (T, error) {
	var zero T

	if err := p.fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			if p.noHelp {
				return zero, &ParseError{Prog: p.prog, Err: errors.New("unknown flag: --help")}
			}
			return zero, &ParseError{Prog: p.prog, Help: true}
		}
		return zero, &ParseError{Prog: p.prog, Err: err}
	}

	if missing := p.missingRequired(); len(missing) > 0 {
		return zero, &ParseError{
			Prog: p.prog,
			Err:  fmt.Errorf("required flag(s) %s not set", strings.Join(missing, ", ")),
		}
	}

	flat := make(map[string]any, len(p.specs))
	for _, spec := range p.specs {
		flat[spec.Name] = spec.Value.Get()
	}
	inst, err := p.Reconstruct(flat)
	if err != nil {
		return zero, &ParseError{Prog: p.prog, Err: err}
	}
	return inst, nil
}

// missingRequired returns the quoted names of required flags that were set
// neither directly nor through an alias.
func (p *Parser[T]) missingRequired() []string {
	var missing []string
	for _, spec := range p.specs {
		if !spec.Required {
			continue
		}
		set := p.fs.Changed(spec.Name)
		for _, alias := range spec.Aliases {
			set = set || p.fs.Changed(alias)
		}
		if !set {
			missing = append(missing, fmt.Sprintf("%q", spec.Name))
		}
	}
	sort.Strings(missing)
	return missing
}

// Reconstruct rebuilds a T instance from flat parse output.
func (p *Parser[T]) Reconstruct(flat map[string]any) (T, error) {
	var zero T
	inst, err := reconstruct(p.schema, flat)
	if err != nil {
		return zero, err
	}
	return inst.(T), nil
}
