package cli

import (
	"strings"
	"time"

	"github.com/menpo/shogun/record"
)

// logLevel is the sample record's enum field. Member names line up with the
// constant values by index.
type logLevel int

const (
	levelDebug logLevel = iota
	levelInfo
	levelWarn
	levelError
)

func (logLevel) EnumValues() []string {
	return []string{"debug", "info", "warn", "error"}
}

// limits shows the struct-tag declaration path inside a nested record.
type limits struct {
	Depth   int           `default:"3" help:"directory depth to walk"`
	Timeout time.Duration `default:"30s" help:"per-target time budget"`
}

// scanArgs is the sample record the demo and inspect commands build their
// parsers from. It exercises every dispatch rule: a required scalar, a
// shorthand with an alias, a converter-backed list, an enum, a bool toggle,
// and a nested record.
type scanArgs struct {
	Target  string
	Workers int
	Exclude []string
	Level   logLevel
	Verbose bool
	Limits  limits
}

func (scanArgs) DeclareArgs() []record.Arg {
	return []record.Arg{
		{Field: "Target", Help: "host or path to scan"},
		{Field: "Workers", Short: "w", Default: 4, Aliases: []string{"jobs"}, Help: "parallel workers"},
		{
			Field: "Exclude",
			Help:  "comma-separated patterns to skip",
			Default: []string{},
			Converter: func(s string) (any, error) {
				return strings.Split(s, ","), nil
			},
		},
		{Field: "Level", Default: levelInfo, Help: "log verbosity"},
		{Field: "Verbose", Help: "log every step"},
		{Field: "Limits"},
	}
}

func (scanArgs) ParserParams() record.ParserConfig {
	return record.ParserConfig{
		Program:     "shogun demo",
		Description: "Scan a target with the sample record's flags.",
	}
}
