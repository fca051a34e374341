package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gopyfix/internal/configloader"
	"github.com/yaklabco/gopyfix/internal/logging"
	"github.com/yaklabco/gopyfix/pkg/config"
	"github.com/yaklabco/gopyfix/pkg/reporter"
	"github.com/yaklabco/gopyfix/pkg/runner"
)

// ErrIssuesFound is returned when style issues remain after the run.
var ErrIssuesFound = errors.New("style issues found")

type fixFlags struct {
	format        string
	ignore        []string
	fixCodes      []string
	noFixCodes    []string
	eol           string
	maxLineLength int
	copyOutput    bool
	detectShebang bool
	strict        bool
	noContext     bool
	compact       bool
}

func newFixCommand() *cobra.Command {
	var cfg config.Config
	flags := &fixFlags{}

	cmd := &cobra.Command{
		Use:   "fix [paths...]",
		Short: "Fix style issues in Python files",
		Long:  fixLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFix(cmd, args, &cfg, flags, false)
		},
	}

	addFixFlags(cmd, &cfg, flags)

	return cmd
}

const fixLongDescription = `Fix Python source files for common style issues.

By default, fixes all .py and .pyw files in the current directory and
subdirectories, in place and with a backup of each original. Specify
paths to fix specific files or directories.

Examples:
  gopyfix fix                     # Fix current directory in place
  gopyfix fix src/                # Fix the src directory
  gopyfix fix setup.py            # Fix a single file
  gopyfix fix --dry-run           # Show fixes without applying
  gopyfix fix --copy              # Write results to fixed_<name> copies
  gopyfix fix --fix-codes W,E501  # Only fix whitespace and long lines
  gopyfix fix --format json       # Output as JSON for CI`

func runFix(cmd *cobra.Command, args []string, cfg *config.Config, flags *fixFlags, checkOnly bool) error {
	logger := logging.Default()

	// Map string flags to typed config values. Flags whose defaults are
	// non-zero are only applied when explicitly set, so they do not clobber
	// values from config files.
	cfg.Format = config.OutputFormat(flags.format)
	if cmd.Flags().Changed("max-line-length") {
		cfg.MaxLineLength = flags.maxLineLength
	}
	if cmd.Flags().Changed("eol") {
		cfg.EOL = flags.eol
	}
	cfg.Ignore = flags.ignore
	cfg.FixCodes = flags.fixCodes
	cfg.NoFixCodes = flags.noFixCodes

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Get the explicit config path from the root command's persistent flag.
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	loadOpts := configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cfg,
	}

	loadResult, err := configloader.Load(ctx, loadOpts)
	if err != nil {
		return errors.Join(errors.New("failed to load configuration"), err)
	}

	finalCfg := loadResult.Config

	// Merging cannot express "set to false", so boolean downgrades are
	// applied after the load.
	if flags.copyOutput {
		finalCfg.InPlace = false
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}

	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", "files", loadResult.LoadedFrom)
	}

	logger.Debug("configuration loaded",
		logging.FieldMaxLineLength, finalCfg.MaxLineLength,
		logging.FieldInPlace, finalCfg.InPlace,
		logging.FieldDryRun, finalCfg.DryRun,
		logging.FieldJobs, finalCfg.Jobs,
	)

	fixRunner := runner.New(runner.NewPipeline())

	if checkOnly {
		pipeOpts := runner.PipelineOptionsFromConfig(finalCfg)
		pipeOpts.Fix = false
		pipeOpts.DryRun = false
		fixRunner.PipelineOptions = &pipeOpts
	}

	runOpts := runner.Options{
		Paths:           args,
		WorkingDir:      workDir,
		Extensions:      runner.DefaultExtensions(),
		DetectByContent: flags.detectShebang,
		ExcludeGlobs:    finalCfg.Ignore,
		Jobs:            finalCfg.Jobs,
		Config:          finalCfg,
	}

	logger.Debug("starting run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	result, err := fixRunner.Run(ctx, runOpts)
	if err != nil {
		return errors.Join(errors.New("run failed"), err)
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	format, err := reporter.ParseFormat(flags.format)
	if err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}

	// Dry-run output defaults to diffs unless another format was requested.
	if finalCfg.DryRun && !cmd.Flags().Changed("format") {
		format = reporter.FormatDiff
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      format,
		Color:       colorMode,
		ShowContext: !flags.noContext,
		ShowSummary: true,
		GroupByFile: true,
		Compact:     flags.compact,
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	// Dry-run fixes nothing on disk, so any issue found fails the run.
	exitCode := ExitCodeFromResult(result, flags.strict || checkOnly || finalCfg.DryRun)
	if exitCode != ExitSuccess {
		return ErrIssuesFound
	}

	return nil
}

func addFixFlags(cmd *cobra.Command, cfg *config.Config, flags *fixFlags) {
	cmd.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "show fixes without applying them")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json, diff, summary")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.fixCodes, "fix-codes", nil, "issue codes to fix (prefix match)")
	cmd.Flags().StringSliceVar(&flags.noFixCodes, "no-fix-codes", nil, "issue codes never to fix (prefix match)")
	cmd.Flags().IntVar(&flags.maxLineLength, "max-line-length", 79, "maximum allowed line length")
	cmd.Flags().StringVar(&flags.eol, "eol", "", "line terminator for inserted lines: lf, crlf")
	cmd.Flags().BoolVar(&cfg.NoBackups, "no-backups", false, "disable backup creation when fixing in place")
	cmd.Flags().BoolVar(&flags.copyOutput, "copy", false, "write results to fixed_<name> copies instead of in place")
	cmd.Flags().BoolVar(&flags.detectShebang, "detect-shebang", false, "also fix extensionless files with a Python shebang")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "non-zero exit even when every issue was fixed")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output format")
}
