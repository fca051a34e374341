package configloader

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/gopyfix/pkg/config"
)

// migratableSections are the ini section names whose options we understand.
var migratableSections = map[string]bool{
	"pep8":        true,
	"pycodestyle": true,
	"flake8":      true,
}

// MigrationResult holds the outcome of converting a legacy config.
type MigrationResult struct {
	// Config is the converted configuration.
	Config *config.Config

	// Warnings describe options that could not be converted.
	Warnings []string

	// SourcePath is the path to the original legacy config.
	SourcePath string
}

// CanMigrate reports whether the ini file at path carries a section we can
// convert.
func CanMigrate(path string) bool {
	sections, err := parseIniSections(path)
	if err != nil {
		return false
	}
	for name := range sections {
		if migratableSections[name] {
			return true
		}
	}
	return false
}

// GetMigrationWarning returns the warning to show for a legacy config that
// cannot be converted automatically.
func GetMigrationWarning(path string) string {
	return fmt.Sprintf("found %s but it carries no pep8/pycodestyle/flake8 section; ignoring it", path)
}

// ConvertLegacyConfig converts the pep8/pycodestyle/flake8 section of the
// ini file at path into a gopyfix configuration. Recognized options are
// max-line-length, ignore/extend-ignore (mapped to no_fix_codes), select
// (mapped to fix_codes) and exclude (mapped to ignore patterns). Everything
// else produces a warning.
func ConvertLegacyConfig(path string) (*MigrationResult, error) {
	sections, err := parseIniSections(path)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	var section map[string]string
	for _, name := range []string{"pycodestyle", "pep8", "flake8"} {
		if s, ok := sections[name]; ok {
			section = s
			break
		}
	}
	if section == nil {
		return nil, fmt.Errorf("no migratable section in %s", path)
	}

	result := &MigrationResult{Config: config.NewConfig(), SourcePath: path}
	for key, value := range section {
		switch key {
		case "max-line-length", "max_line_length":
			n, err := strconv.Atoi(value)
			if err != nil {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("%s: invalid max-line-length %q; keeping default", path, value))
				continue
			}
			result.Config.MaxLineLength = n
		case "ignore", "extend-ignore":
			result.Config.NoFixCodes = append(result.Config.NoFixCodes,
				parseSliceValue(value)...)
		case "select":
			result.Config.FixCodes = append(result.Config.FixCodes,
				parseSliceValue(value)...)
		case "exclude", "extend-exclude":
			result.Config.Ignore = append(result.Config.Ignore,
				parseSliceValue(value)...)
		default:
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s: option %q has no gopyfix equivalent; dropped", path, key))
		}
	}

	return result, nil
}

// parseIniSections reads an ini-style file into section -> key -> value.
// Indented continuation lines are joined with commas, matching how pep8
// tools list codes.
func parseIniSections(path string) (map[string]map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	sections := make(map[string]map[string]string)
	var current map[string]string
	var lastKey string

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		raw := scanner.Text()
		trimmed := strings.TrimSpace(raw)

		if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, ";") {
			continue
		}

		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			name := strings.ToLower(strings.TrimSpace(trimmed[1 : len(trimmed)-1]))
			current = make(map[string]string)
			sections[name] = current
			lastKey = ""
			continue
		}
		if current == nil {
			continue
		}

		// An indented line without a separator continues the previous value.
		if (strings.HasPrefix(raw, " ") || strings.HasPrefix(raw, "\t")) &&
			!strings.ContainsAny(trimmed, "=:") && lastKey != "" {
			current[lastKey] = current[lastKey] + "," + trimmed
			continue
		}

		key, value, found := strings.Cut(trimmed, "=")
		if !found {
			key, value, found = strings.Cut(trimmed, ":")
		}
		if !found {
			continue
		}
		lastKey = strings.ToLower(strings.TrimSpace(key))
		current[lastKey] = strings.TrimSpace(value)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return sections, nil
}
