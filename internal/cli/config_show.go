package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mrz1836/postbuild/internal/config"
	"github.com/mrz1836/postbuild/internal/ctxutil"
	"github.com/mrz1836/postbuild/internal/fsops"
	"github.com/mrz1836/postbuild/internal/tui"
)

// AddConfigCommand adds the config command and its subcommands to the root command.
func AddConfigCommand(root *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect postbuild configuration",
	}
	cmd.AddCommand(newConfigShowCmd())
	root.AddCommand(cmd)
}

// configSource describes one config file considered during loading.
type configSource struct {
	Layer string `json:"layer" yaml:"layer"`
	Path  string `json:"path" yaml:"path"`
	Found bool   `json:"found" yaml:"found"`
}

// configShowResult is the JSON response of config show.
type configShowResult struct {
	Sources    []configSource `json:"sources"`
	Config     *config.Config `json:"config"`
	Validation string         `json:"validation_error,omitempty"`
}

// newConfigShowCmd creates the 'config show' subcommand.
func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display effective configuration",
		Long: `Display the effective postbuild configuration after merging, in order:
  - built-in defaults
  - ~/.postbuild/config.yaml (global)
  - .postbuild/config.yaml (project)
  - --config FILE
  - POSTBUILD_* environment variables

Text output is YAML that can be saved as a config file.

Examples:
  postbuild config show
  postbuild config show --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigShow(cmd.Context(), cmd, cmd.OutOrStdout())
		},
	}
}

// runConfigShow executes the config show command.
func runConfigShow(ctx context.Context, cmd *cobra.Command, w io.Writer) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}

	format := outputFormat(cmd)
	configFile := ""
	if f := cmd.Flag("config"); f != nil {
		configFile = f.Value.String()
	}

	cfg, err := config.Resolve(ctx, configFile, nil)
	if err != nil {
		return reportError(cmd, tui.NewOutput(errorWriter(cmd, format), format), err)
	}

	sources := configSources(configFile)
	validationErr := config.Validate(cfg)

	if format == OutputJSON {
		result := configShowResult{Sources: sources, Config: cfg}
		if validationErr != nil {
			result.Validation = validationErr.Error()
		}
		return tui.NewJSONOutput(w).JSON(result)
	}

	if err := outputYAML(w, cfg, sources); err != nil {
		return err
	}
	if validationErr != nil {
		tui.NewTTYOutput(cmd.ErrOrStderr()).Warning("configuration is incomplete: " + validationErr.Error())
	}
	return nil
}

// configSources lists the config files in merge order with whether each exists.
func configSources(explicit string) []configSource {
	var sources []configSource
	if global, err := config.GlobalConfigPath(); err == nil {
		sources = append(sources, configSource{Layer: "global", Path: global, Found: fsops.Exists(global)})
	}
	project := config.ProjectConfigPath()
	sources = append(sources, configSource{Layer: "project", Path: project, Found: fsops.Exists(project)})
	if explicit != "" {
		sources = append(sources, configSource{Layer: "explicit", Path: explicit, Found: fsops.Exists(explicit)})
	}
	return sources
}

// outputYAML writes cfg as YAML preceded by comment lines naming the sources.
func outputYAML(w io.Writer, cfg *config.Config, sources []configSource) error {
	_, _ = fmt.Fprintln(w, "# Effective postbuild configuration")
	for _, s := range sources {
		state := "not found"
		if s.Found {
			state = "loaded"
		}
		_, _ = fmt.Fprintf(w, "# %-8s %s (%s)\n", s.Layer+":", s.Path, state)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return enc.Close()
}
