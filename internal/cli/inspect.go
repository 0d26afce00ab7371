package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/menpo/shogun"
	"github.com/menpo/shogun/internal/ui"
)

// flagView is the JSON shape of one declared flag.
type flagView struct {
	Flag      string   `json:"flag"`
	Shorthand string   `json:"shorthand,omitempty"`
	Type      string   `json:"type"`
	Default   string   `json:"default,omitempty"`
	Required  bool     `json:"required"`
	Aliases   []string `json:"aliases,omitempty"`
	Help      string   `json:"help,omitempty"`
}

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Show the flags generated from the sample record",
	Long: `Show the flag table the dispatch rules generate for the sample record:
one row per flag with its type, default, and requiredness. Nested record
fields appear with their hyphen-joined names. The same flags drive
'shogun demo'.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInspect(cmd.OutOrStdout())
	},
}

func runInspect(w io.Writer) error {
	p, err := shogun.NewParser[scanArgs]()
	if err != nil {
		return handleError(ErrInternal, err, "")
	}

	views := flagViews(p)
	if isJSONOutput() {
		outputSuccess(views, &Meta{Count: len(views)})
		return nil
	}

	tbl := ui.NewTable(5)
	tbl.AddRow("FLAG", "TYPE", "DEFAULT", "REQUIRED", "HELP")
	var required []string
	for _, v := range views {
		name := "--" + v.Flag
		if v.Shorthand != "" {
			name = "-" + v.Shorthand + ", " + name
		}
		tbl.AddRow(name, v.Type, v.Default, strconv.FormatBool(v.Required), v.Help)
		if v.Required {
			required = append(required, ui.Flag(v.Flag))
		}
	}
	fmt.Fprint(w, tbl.String())
	if len(required) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "required: %s\n", strings.Join(required, ", "))
	}
	return nil
}

func flagViews(p *shogun.Parser[scanArgs]) []flagView {
	specs := p.Specs()
	views := make([]flagView, 0, len(specs))
	for _, s := range specs {
		v := flagView{
			Flag:      s.Name,
			Shorthand: s.Shorthand,
			Type:      s.Value.Type(),
			Required:  s.Required,
			Aliases:   s.Aliases,
			Help:      s.Usage,
		}
		if f := p.Flags().Lookup(s.Name); f != nil {
			v.Default = f.DefValue
		}
		views = append(views, v)
	}
	return views
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
