package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/gopyfix/pkg/config"
)

func newCheckCommand() *cobra.Command {
	var cfg config.Config
	flags := &fixFlags{}

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Check Python files without fixing them",
		Long: `Check Python source files for common style issues without modifying
anything. The exit code is non-zero when issues are found.

Examples:
  gopyfix check                   # Check current directory
  gopyfix check src/              # Check the src directory
  gopyfix check --format json     # Output as JSON for CI`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFix(cmd, args, &cfg, flags, true)
		},
	}

	addFixFlags(cmd, &cfg, flags)

	// Fixing flags make no sense in check-only mode.
	for _, name := range []string{"dry-run", "no-backups", "copy", "fix-codes", "no-fix-codes", "eol"} {
		if f := cmd.Flags().Lookup(name); f != nil {
			f.Hidden = true
		}
	}

	return cmd
}
