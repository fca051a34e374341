package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/gopyfix/pkg/config"
)

// envVarPrefix is the prefix for all gopyfix environment variables.
const envVarPrefix = "GOPYFIX_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field string
	typ   envFieldType
}

// envMappings maps environment variable names (without prefix) to config fields.
var envMappings = map[string]envMapping{
	"MAX_LINE_LENGTH": {field: "max_line_length", typ: envTypeInt},
	"FIX_CODES":       {field: "fix_codes", typ: envTypeSlice},
	"NO_FIX_CODES":    {field: "no_fix_codes", typ: envTypeSlice},
	"EOL":             {field: "eol", typ: envTypeString},
	"IGNORE":          {field: "ignore", typ: envTypeSlice},
	"IN_PLACE":        {field: "in_place", typ: envTypeBool},
	"DRY_RUN":         {field: "dry_run", typ: envTypeBool},
	"JOBS":            {field: "jobs", typ: envTypeInt},
	"FORMAT":          {field: "format", typ: envTypeString},
	"BACKUPS_ENABLED": {field: "backups.enabled", typ: envTypeBool},
	"NO_BACKUPS":      {field: "no_backups", typ: envTypeBool},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with GOPYFIX_ (e.g., GOPYFIX_JOBS).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// setStringField sets a string field on the config by field path.
func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "eol":
		cfg.EOL = value
	case "format":
		cfg.Format = config.OutputFormat(value)
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

// setBoolField sets a boolean field on the config by field path.
func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "in_place":
		cfg.InPlace = value
	case "dry_run":
		cfg.DryRun = value
	case "backups.enabled":
		cfg.Backups.Enabled = value
	case "no_backups":
		cfg.NoBackups = value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

// setIntField sets an integer field on the config by field path.
func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "jobs":
		cfg.Jobs = value
	case "max_line_length":
		cfg.MaxLineLength = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

// setSliceField sets a slice field on the config by field path.
func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "ignore":
		cfg.Ignore = value
	case "fix_codes":
		cfg.FixCodes = value
	case "no_fix_codes":
		cfg.NoFixCodes = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// ListEnvVars returns all supported environment variables with their
// descriptions.
func ListEnvVars() map[string]string {
	return map[string]string{
		"GOPYFIX_MAX_LINE_LENGTH": "Maximum allowed line length",
		"GOPYFIX_FIX_CODES":       "Comma-separated issue codes to fix (prefix match)",
		"GOPYFIX_NO_FIX_CODES":    "Comma-separated issue codes never to fix",
		"GOPYFIX_EOL":             "Line terminator for inserted lines: lf or crlf",
		"GOPYFIX_IGNORE":          "Comma-separated list of ignore patterns",
		"GOPYFIX_IN_PLACE":        "Overwrite originals: true or false",
		"GOPYFIX_DRY_RUN":         "Dry-run mode: true or false",
		"GOPYFIX_JOBS":            "Number of parallel workers (0 = auto)",
		"GOPYFIX_FORMAT":          "Output format: text, json, or summary",
		"GOPYFIX_BACKUPS_ENABLED": "Keep a ~ backup when fixing in place: true or false",
		"GOPYFIX_NO_BACKUPS":      "Disable backups: true or false",
	}
}
