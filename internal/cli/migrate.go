package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gopyfix/internal/configloader"
	"github.com/yaklabco/gopyfix/internal/logging"
)

// migrateFlags holds the flags for the migrate command.
type migrateFlags struct {
	force  bool
	output string
	input  string
}

func newMigrateCommand() *cobra.Command {
	flags := &migrateFlags{}

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migrate a pep8/flake8 configuration to gopyfix",
		Long: `Convert an existing pep8, pycodestyle or flake8 configuration
(setup.cfg, tox.ini, .pep8 or .flake8) to the gopyfix format.

By default, looks for a legacy config in the current directory and writes
.gopyfix.yml. Options that have no gopyfix equivalent are dropped with a
warning.

Examples:
  gopyfix migrate                       Convert auto-detected legacy config
  gopyfix migrate --input setup.cfg     Convert a specific file
  gopyfix migrate --output custom.yml   Write to a custom file path`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runMigrate(flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing gopyfix configuration file")
	cmd.Flags().StringVarP(&flags.input, "input", "i", "", "Legacy config file to convert (default: auto-detect)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", ".gopyfix.yml", "Output file path")

	return cmd
}

func runMigrate(flags *migrateFlags) error {
	logger := logging.NewInteractive()

	// Locate the legacy config.
	inputPath := flags.input
	if inputPath == "" {
		workDir, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("get working directory: %w", err)
		}
		inputPath = configloader.FindLegacyConfig(workDir)
		if inputPath == "" {
			return fmt.Errorf("no pep8/pycodestyle/flake8 config found in %s", workDir)
		}
	}

	if !configloader.CanMigrate(inputPath) {
		return fmt.Errorf("%s carries no migratable section", inputPath)
	}

	result, err := configloader.ConvertLegacyConfig(inputPath)
	if err != nil {
		return fmt.Errorf("convert legacy config: %w", err)
	}

	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}

	// Resolve and guard the output path.
	absPath, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	if _, err := os.Stat(absPath); err == nil && !flags.force {
		return fmt.Errorf("file %q already exists; use --force to overwrite", flags.output)
	}

	header := fmt.Sprintf("# gopyfix configuration\n# Migrated from %s\n", inputPath)
	content, err := result.Config.ToYAMLWithHeader(header)
	if err != nil {
		return fmt.Errorf("encode configuration: %w", err)
	}

	if err := os.WriteFile(absPath, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("migrated configuration",
		logging.FieldPath, flags.output,
		"source", inputPath,
	)
	logger.Info("review the result; unsupported options were dropped")

	return nil
}
