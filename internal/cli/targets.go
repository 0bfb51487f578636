package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mrz1836/postbuild/internal/platform"
	"github.com/mrz1836/postbuild/internal/tui"
)

// AddTargetsCommand adds the targets command to the root command.
func AddTargetsCommand(root *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "targets",
		Short: "List supported build targets and their post-build rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTargets(cmd)
		},
	}
	root.AddCommand(cmd)
}

func runTargets(cmd *cobra.Command) error {
	format := outputFormat(cmd)
	out := tui.NewOutput(cmd.OutOrStdout(), format)

	profiles := platform.All()
	if format == OutputJSON {
		return out.JSON(profiles)
	}

	rows := make([][]string, 0, len(profiles))
	for _, p := range profiles {
		ext := p.Extension
		if ext == "" {
			ext = "-"
		}
		rows = append(rows, []string{
			string(p.Target),
			string(p.Family),
			ext,
			strconv.FormatBool(p.CleanSymbols),
			string(p.Relocation),
		})
	}
	out.Table([]string{"TARGET", "FAMILY", "EXTENSION", "CLEAN SYMBOLS", "RELOCATION"}, rows)
	return nil
}
