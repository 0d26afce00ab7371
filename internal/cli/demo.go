package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/menpo/shogun"
	"github.com/menpo/shogun/serialize"
)

var demoFormat string

var demoCmd = &cobra.Command{
	Use:   "demo [flags] -- [record flags]",
	Short: "Parse the sample record and print the result",
	Long: `Parse command-line arguments into the sample record and print the
serialized result in the chosen format.

Everything after -- goes to the generated parser. Try:

  shogun demo -- --target example.org -w 8 --level debug
  shogun demo --format toml -- --target example.org --limits-depth 5
  shogun demo -- --help`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format := demoFormat
		if format == "" {
			format = getConfig().Format
		}
		if format == "" {
			format = "json"
		}
		return runDemo(cmd.OutOrStdout(), args, format)
	},
}

func runDemo(w io.Writer, args []string, format string) error {
	parsed, err := shogun.Parse[scanArgs](args)
	if err != nil {
		var perr *shogun.ParseError
		if errors.As(err, &perr) && perr.Help {
			// Usage text already went to the parser's output.
			return nil
		}
		return handleError(ErrParseFailed, err, "Pass record flags after --; run 'shogun demo -- --help' for the list")
	}

	m, err := serialize.Map(parsed)
	if err != nil {
		return handleError(ErrInternal, err, "")
	}

	if isJSONOutput() {
		outputSuccess(m, nil)
		return nil
	}

	out, err := encodeMap(m, format)
	if err != nil {
		return handleError(ErrEncodeFailed, err, "Use --format json, toml, or yaml")
	}
	fmt.Fprint(w, out)
	return nil
}

// encodeMap renders a serialized record in the requested format.
func encodeMap(m map[string]any, format string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		data, err := json.MarshalIndent(m, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data) + "\n", nil
	case "toml":
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(m); err != nil {
			return "", err
		}
		return buf.String(), nil
	case "yaml":
		data, err := yaml.Marshal(m)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	return "", fmt.Errorf("unknown format %q", format)
}

func init() {
	demoCmd.Flags().StringVarP(&demoFormat, "format", "f", "", "Output format: json, toml, or yaml (default from config)")
	rootCmd.AddCommand(demoCmd)
}
