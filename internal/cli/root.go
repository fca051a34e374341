// Package cli provides the Cobra command structure for gopyfix.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gopyfix/internal/logging"
	"github.com/yaklabco/gopyfix/pkg/checker"
	"github.com/yaklabco/gopyfix/pkg/config"
	"github.com/yaklabco/gopyfix/pkg/fixer"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

func init() {
	// Let config template generation list the fixable codes without the
	// config package importing the checker.
	config.DefaultCodeInfoProvider = func() []config.CodeInfo {
		infos := make([]config.CodeInfo, 0, len(fixer.FixableCodes))
		for _, code := range fixer.FixableCodes {
			infos = append(infos, config.CodeInfo{
				Code:        string(code),
				Description: checker.Descriptions[code],
			})
		}
		return infos
	}
}

// NewRootCommand creates the root gopyfix command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "gopyfix",
		Short: "A fast, self-fixing Python style checker",
		Long: `gopyfix checks Python source files for common style issues and fixes
them automatically.

It detects and repairs indentation problems, whitespace issues, blank line
conventions, long lines, compound statements and more, following the pep8
style rules. Fixing is safe by default: files are written atomically, a
backup of the original is kept, and concurrent edits are detected before
anything is overwritten.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	// Add subcommands.
	rootCmd.AddCommand(newFixCommand())
	rootCmd.AddCommand(newCheckCommand())
	rootCmd.AddCommand(newCodesCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newMigrateCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
