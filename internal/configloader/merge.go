package configloader

import "github.com/yaklabco/gopyfix/pkg/config"

// merge combines two configurations, with override taking precedence over
// base. The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Slices: override replaces base entirely if override is non-nil
//   - Nil/unset values in override do not override values in base
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.MaxLineLength != 0 {
		result.MaxLineLength = override.MaxLineLength
	}
	if override.EOL != "" {
		result.EOL = override.EOL
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	// Booleans are tricky because false is the zero value: only true in
	// the override is detectable. CLI --dry-run will override, but a
	// config file cannot unset it.
	if override.InPlace {
		result.InPlace = override.InPlace
	}
	if override.DryRun {
		result.DryRun = override.DryRun
	}
	if override.NoBackups {
		result.NoBackups = override.NoBackups
	}
	if override.Backups.Enabled {
		result.Backups.Enabled = override.Backups.Enabled
	}

	// Slices: override replaces base entirely if non-nil.
	if override.FixCodes != nil {
		result.FixCodes = override.FixCodes
	}
	if override.NoFixCodes != nil {
		result.NoFixCodes = override.NoFixCodes
	}
	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}

	return &result
}

// MergeAll merges multiple configurations in order, with later configs
// taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
