package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gopyfix/internal/ui/pretty"
	"github.com/yaklabco/gopyfix/pkg/config"
)

type codesFlags struct {
	format string
}

func newCodesCommand() *cobra.Command {
	flags := &codesFlags{}

	cmd := &cobra.Command{
		Use:   "codes",
		Short: "List the fixable issue codes",
		Long: `List every issue code gopyfix knows how to fix, with a description
where one exists.

Codes follow the pep8 naming scheme: E for errors, W for warnings,
D for documentation style and N for naming conventions.

Examples:
  gopyfix codes                   # List codes as a table
  gopyfix codes --format json     # List codes as JSON`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCodes(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text or json")

	return cmd
}

func runCodes(cmd *cobra.Command, flags *codesFlags) error {
	infos := config.DefaultCodeInfoProvider()

	switch flags.format {
	case "json":
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(infos); err != nil {
			return fmt.Errorf("encode codes: %w", err)
		}
		return nil
	case "text", "":
		colorMode, err := cmd.Flags().GetString("color")
		if err != nil {
			colorMode = "auto"
		}
		styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, cmd.OutOrStdout()))
		fmt.Fprint(cmd.OutOrStdout(), styles.FormatCodesTable(infos))
		return nil
	default:
		return fmt.Errorf("invalid format %q: must be text or json", flags.format)
	}
}
