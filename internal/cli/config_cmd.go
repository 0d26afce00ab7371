package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/menpo/shogun/internal/config"
	"github.com/menpo/shogun/internal/ui"
)

type configContext struct {
	cfg    *config.Config
	path   string
	exists bool
}

var (
	configSetFormat      string
	configSetUIAccent    string
	configSetUICodeTheme string

	configUnsetFormat      bool
	configUnsetUIAccent    bool
	configUnsetUICodeTheme bool
)

// loadConfigContext resolves the config path and loads the file if it
// exists. A missing file is not an error; set creates it.
func loadConfigContext() (*configContext, error) {
	path := strings.TrimSpace(configPath)
	if path == "" {
		path = config.DefaultPath()
	}

	_, statErr := os.Stat(path)
	exists := statErr == nil

	loaded := &config.Config{}
	if exists {
		var err error
		loaded, err = config.LoadFrom(path)
		if err != nil {
			return nil, err
		}
	}

	return &configContext{cfg: loaded, path: path, exists: exists}, nil
}

func configData(ctx *configContext) map[string]any {
	return map[string]any{
		"config_path": ctx.path,
		"exists":      ctx.exists,
		"format":      strings.TrimSpace(ctx.cfg.Format),
		"ui": map[string]any{
			"accent":     strings.TrimSpace(ctx.cfg.UI.Accent),
			"code_theme": strings.TrimSpace(ctx.cfg.UI.CodeTheme),
		},
	}
}

// normalizeFormat validates a default output format.
func normalizeFormat(raw string) (string, bool) {
	format := strings.ToLower(strings.TrimSpace(raw))
	switch format {
	case "json", "toml", "yaml":
		return format, true
	default:
		return "", false
	}
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	ctx, err := loadConfigContext()
	if err != nil {
		return handleError(ErrConfigInvalid, err, "")
	}

	if isJSONOutput() {
		outputSuccess(configData(ctx), nil)
		return nil
	}

	if !ctx.exists {
		fmt.Printf("Config file does not exist: %s\n", ctx.path)
		fmt.Println("Run 'shogun config set' to create it.")
		return nil
	}

	fmt.Printf("config: %s\n", ctx.path)
	if v := strings.TrimSpace(ctx.cfg.Format); v != "" {
		fmt.Printf("format: %s\n", v)
	}
	if v := strings.TrimSpace(ctx.cfg.UI.Accent); v != "" {
		fmt.Printf("ui.accent: %s\n", v)
	}
	if v := strings.TrimSpace(ctx.cfg.UI.CodeTheme); v != "" {
		fmt.Printf("ui.code_theme: %s\n", v)
	}
	return nil
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage shogun config.toml settings",
	Long: `Manage shogun config.toml settings.

Use this to inspect and edit the persisted defaults: the output format
for 'shogun demo' and the UI theme.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set one or more config.toml fields",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := loadConfigContext()
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}

		changed := make([]string, 0, 3)

		if cmd.Flags().Changed("format") {
			value, ok := normalizeFormat(configSetFormat)
			if !ok {
				return handleErrorMsg(ErrInvalidInput, "format must be one of: json, toml, yaml", "")
			}
			ctx.cfg.Format = value
			changed = append(changed, "format")
		}

		if cmd.Flags().Changed("ui-accent") {
			value := strings.TrimSpace(configSetUIAccent)
			if value == "" {
				return handleErrorMsg(ErrInvalidInput, "ui-accent cannot be empty; use 'shogun config unset --ui-accent' to clear it", "")
			}
			if _, ok := ui.NormalizeAccentColor(value); !ok {
				return handleErrorMsg(ErrInvalidInput, fmt.Sprintf("ui-accent %q is not an ANSI 256 code (0-255), '#rrggbb', or 'none'", value), "")
			}
			ctx.cfg.UI.Accent = value
			changed = append(changed, "ui.accent")
		}

		if cmd.Flags().Changed("ui-code-theme") {
			value := strings.TrimSpace(configSetUICodeTheme)
			if value == "" {
				return handleErrorMsg(ErrInvalidInput, "ui-code-theme cannot be empty; use 'shogun config unset --ui-code-theme' to clear it", "")
			}
			ctx.cfg.UI.CodeTheme = value
			changed = append(changed, "ui.code_theme")
		}

		if len(changed) == 0 {
			return handleErrorMsg(ErrMissingArgument, "no fields provided; set at least one of --format/--ui-accent/--ui-code-theme", "")
		}

		if err := config.SaveTo(ctx.path, ctx.cfg); err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		ctx.exists = true
		if isJSONOutput() {
			data := configData(ctx)
			data["changed"] = changed
			outputSuccess(data, nil)
			return nil
		}

		fmt.Println(ui.Successf("Updated config: %s", ctx.path))
		fmt.Printf("changed: %s\n", strings.Join(changed, ", "))
		return nil
	},
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset",
	Short: "Clear one or more config.toml fields",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := loadConfigContext()
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}
		if !ctx.exists {
			return handleErrorMsg(ErrFileNotFound, fmt.Sprintf("config file not found: %s", ctx.path), "Run 'shogun config set' first")
		}

		changed := make([]string, 0, 3)
		if configUnsetFormat {
			ctx.cfg.Format = ""
			changed = append(changed, "format")
		}
		if configUnsetUIAccent {
			ctx.cfg.UI.Accent = ""
			changed = append(changed, "ui.accent")
		}
		if configUnsetUICodeTheme {
			ctx.cfg.UI.CodeTheme = ""
			changed = append(changed, "ui.code_theme")
		}

		if len(changed) == 0 {
			return handleErrorMsg(ErrMissingArgument, "no fields selected; pass one or more unset flags", "")
		}

		if err := config.SaveTo(ctx.path, ctx.cfg); err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		if isJSONOutput() {
			data := configData(ctx)
			data["changed"] = changed
			outputSuccess(data, nil)
			return nil
		}

		fmt.Println(ui.Successf("Updated config: %s", ctx.path))
		fmt.Printf("cleared: %s\n", strings.Join(changed, ", "))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configUnsetCmd)
	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current config.toml values",
		Args:  cobra.NoArgs,
		RunE:  runConfigShow,
	})

	configSetCmd.Flags().StringVar(&configSetFormat, "format", "", "Set default output format (json|toml|yaml)")
	configSetCmd.Flags().StringVar(&configSetUIAccent, "ui-accent", "", "Set UI accent color (ANSI 0-255, #rrggbb, or none)")
	configSetCmd.Flags().StringVar(&configSetUICodeTheme, "ui-code-theme", "", "Set markdown code theme name")

	configUnsetCmd.Flags().BoolVar(&configUnsetFormat, "format", false, "Clear format")
	configUnsetCmd.Flags().BoolVar(&configUnsetUIAccent, "ui-accent", false, "Clear ui.accent")
	configUnsetCmd.Flags().BoolVar(&configUnsetUICodeTheme, "ui-code-theme", false, "Clear ui.code_theme")

	rootCmd.AddCommand(configCmd)
}
