package config_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gopyfix/pkg/config"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := config.NewConfig()

	assert.Equal(t, 79, cfg.MaxLineLength)
	assert.True(t, cfg.Backups.Enabled)
	assert.True(t, cfg.InPlace)
	assert.False(t, cfg.DryRun)
	assert.Equal(t, config.FormatText, cfg.Format)
	assert.Empty(t, cfg.FixCodes)
}

func TestOutputFormat_IsValid(t *testing.T) {
	assert.True(t, config.FormatText.IsValid())
	assert.True(t, config.FormatJSON.IsValid())
	assert.True(t, config.FormatSummary.IsValid())
	assert.False(t, config.OutputFormat("sarif").IsValid())
	assert.False(t, config.OutputFormat("").IsValid())
}

func TestEOLString(t *testing.T) {
	tests := []struct {
		eol  string
		want string
	}{
		{"lf", "\n"},
		{"crlf", "\r\n"},
		{"", ""},
		{"cr", ""},
	}

	for _, tt := range tests {
		cfg := &config.Config{EOL: tt.eol}
		assert.Equal(t, tt.want, cfg.EOLString(), "eol=%q", tt.eol)
	}
}

func TestFormatIssue(t *testing.T) {
	assert.Equal(t, "E501 line too long", config.FormatIssue("E501", "line too long"))
	assert.Equal(t, "D111", config.FormatIssue("D111", ""))
}

func TestConfigClone(t *testing.T) {
	t.Run("nil config returns nil", func(t *testing.T) {
		var c *config.Config
		assert.Nil(t, c.Clone())
	})

	t.Run("deep copies slices", func(t *testing.T) {
		original := &config.Config{
			MaxLineLength: 100,
			FixCodes:      []string{"E5", "W"},
			NoFixCodes:    []string{"E711"},
			Ignore:        []string{"build/**"},
		}

		clone := original.Clone()
		require.NotNil(t, clone)
		assert.Equal(t, original, clone)

		clone.FixCodes[0] = "changed"
		clone.Ignore = append(clone.Ignore, "dist/**")
		assert.Equal(t, "E5", original.FixCodes[0])
		assert.Len(t, original.Ignore, 1)
	})
}

func TestYAMLRoundTrip(t *testing.T) {
	original := config.NewConfig()
	original.MaxLineLength = 99
	original.NoFixCodes = []string{"E711", "E712"}
	original.EOL = "lf"

	data, err := original.ToYAML()
	require.NoError(t, err)

	parsed, err := config.FromYAML(data)
	require.NoError(t, err)

	assert.Equal(t, 99, parsed.MaxLineLength)
	assert.Equal(t, []string{"E711", "E712"}, parsed.NoFixCodes)
	assert.Equal(t, "lf", parsed.EOL)
	assert.True(t, parsed.Backups.Enabled)
}

func TestToYAML_CLIFieldsExcluded(t *testing.T) {
	cfg := config.NewConfig()
	cfg.DryRun = true
	cfg.Jobs = 8

	data, err := cfg.ToYAML()
	require.NoError(t, err)

	text := string(data)
	assert.NotContains(t, text, "dry")
	assert.NotContains(t, text, "jobs")
	assert.Contains(t, text, "max_line_length")
}

func TestToYAMLWithHeader(t *testing.T) {
	cfg := config.NewConfig()

	data, err := cfg.ToYAMLWithHeader("# migrated config")
	require.NoError(t, err)

	text := string(data)
	assert.True(t, strings.HasPrefix(text, "# migrated config\n\n"))
	assert.Contains(t, text, "max_line_length: 79")
}

func TestFromYAML_Invalid(t *testing.T) {
	_, err := config.FromYAML([]byte("max_line_length: [not a number"))
	assert.Error(t, err)
}

func TestGenerateTemplate_Minimal(t *testing.T) {
	data, err := config.GenerateTemplate(config.TemplateOptions{})
	require.NoError(t, err)

	text := string(data)
	assert.Contains(t, text, "# gopyfix configuration")
	assert.Contains(t, text, "max_line_length: 79")

	// The template must parse back as valid YAML.
	parsed, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, 79, parsed.MaxLineLength)
}

func TestGenerateTemplate_JSON(t *testing.T) {
	data, err := config.GenerateTemplate(config.TemplateOptions{Format: "json"})
	require.NoError(t, err)
	assert.Contains(t, string(data), "{")
}

func TestGenerateTemplate_FullWithProvider(t *testing.T) {
	prev := config.DefaultCodeInfoProvider
	defer func() { config.DefaultCodeInfoProvider = prev }()

	config.DefaultCodeInfoProvider = func() []config.CodeInfo {
		return []config.CodeInfo{
			{Code: "E501", Description: "line too long"},
			{Code: "D111"},
		}
	}

	data, err := config.GenerateTemplate(config.TemplateOptions{Full: true})
	require.NoError(t, err)

	text := string(data)
	assert.Contains(t, text, "#   E501  line too long")
	assert.Contains(t, text, "#   D111")
}
