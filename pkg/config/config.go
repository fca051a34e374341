// Package config defines core configuration types for gopyfix.
// These types are pure data structures with no dependency on the loader.
package config

// OutputFormat specifies the output format for fix reports.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatJSON    OutputFormat = "json"
	FormatSummary OutputFormat = "summary"
)

// IsValid returns true if the output format is known.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatSummary:
		return true
	default:
		return false
	}
}

// BackupsConfig controls backup behavior when fixing files in place.
type BackupsConfig struct {
	// Enabled keeps a "<name>~" copy of the original before the first save.
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
}

// Config is the root configuration structure for gopyfix.
type Config struct {
	// MaxLineLength is the limit enforced by the long-line check and fix.
	MaxLineLength int `mapstructure:"max_line_length" yaml:"max_line_length"`

	// FixCodes restricts fixing to the listed issue codes. Entries match
	// by prefix, so "E5" covers all E5xx codes. Empty means fix everything.
	FixCodes []string `mapstructure:"fix_codes" yaml:"fix_codes"`

	// NoFixCodes excludes issue codes from fixing, with the same prefix
	// semantics. Exclusions win over FixCodes.
	NoFixCodes []string `mapstructure:"no_fix_codes" yaml:"no_fix_codes"`

	// EOL forces the line terminator for newly created lines ("lf" or
	// "crlf"). Empty keeps each file's detected terminator.
	EOL string `mapstructure:"eol" yaml:"eol"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `mapstructure:"ignore" yaml:"ignore"`

	// Backups configures backup behavior for in-place fixing.
	Backups BackupsConfig `mapstructure:"backups" yaml:"backups"`

	// CLI-level options (not persisted to config files).

	// InPlace overwrites the original files. When false the fixed source
	// goes to "fixed_<name>" next to each original.
	InPlace bool `mapstructure:"-" yaml:"-"`

	// DryRun reports what would be fixed without writing anything.
	DryRun bool `mapstructure:"-" yaml:"-"`

	// Format specifies the output format.
	Format OutputFormat `mapstructure:"-" yaml:"-"`

	// Jobs specifies the number of parallel workers. 0 means GOMAXPROCS.
	Jobs int `mapstructure:"-" yaml:"-"`

	// NoBackups disables backup creation when fixing in place.
	NoBackups bool `mapstructure:"-" yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		MaxLineLength: 79,
		Backups: BackupsConfig{
			Enabled: true,
		},
		InPlace: true,
		Format:  FormatText,
		Jobs:    0,
	}
}

// EOLString resolves the configured EOL name to the terminator itself.
// The empty string means "keep the file's own terminator".
func (c *Config) EOLString() string {
	switch c.EOL {
	case "lf":
		return "\n"
	case "crlf":
		return "\r\n"
	default:
		return ""
	}
}
