// Package cli implements the command-line interface.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/menpo/shogun/internal/config"
	"github.com/menpo/shogun/internal/ui"
)

var (
	configPath string
	cfg        *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "shogun",
	Short: "Shogun - command-line parsers from record types",
	Long: `Shogun turns record types into command-line parsers: declare a struct,
get flags, parse, and receive the struct back.

The bundled commands run the pipeline on a sample record (demo, inspect),
browse the embedded documentation (docs), and manage persisted defaults
(config).`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if configPath != "" {
			cfg, err = config.LoadFrom(configPath)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			err = fmt.Errorf("failed to load config: %w", err)
			if isJSONOutput() {
				// A pre-run hook has to return an error to stop the
				// command, so the envelope is emitted here and cobra's
				// own printing is silenced.
				outputError(ErrConfigInvalid, err.Error(), "Fix or remove the config file; 'shogun config' shows its path")
				cmd.SilenceErrors = true
				cmd.SilenceUsage = true
			}
			return err
		}
		if cfg == nil {
			cfg = &config.Config{}
		}
		if accent := strings.TrimSpace(cfg.UI.Accent); accent != "" && !isJSONOutput() {
			if _, ok := ui.NormalizeAccentColor(accent); !ok {
				fmt.Fprintln(os.Stderr, ui.Warning(fmt.Sprintf("ignoring invalid ui.accent %q in config", accent)))
			}
		}
		ui.ConfigureTheme(cfg.UI.Accent)
		ui.ConfigureMarkdownCodeTheme(cfg.UI.CodeTheme)
		return nil
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for script use)")
}

// getConfig returns the loaded config, never nil.
func getConfig() *config.Config {
	if cfg == nil {
		return &config.Config{}
	}
	return cfg
}
