package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full includes every fixable issue code with its description.
	// If false, generates a minimal template.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string
}

// CodeInfo contains issue-code metadata for template generation.
type CodeInfo struct {
	Code        string
	Description string
}

// CodeInfoProvider returns the known issue codes. It decouples template
// generation from the checker package to avoid import cycles; the cli
// package sets it during init.
type CodeInfoProvider func() []CodeInfo

var DefaultCodeInfoProvider CodeInfoProvider

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if strings.EqualFold(opts.Format, "json") {
		return generateJSONTemplate()
	}
	if opts.Full {
		return generateFullTemplate()
	}
	return generateMinimalTemplate(), nil
}

func generateMinimalTemplate() []byte {
	return []byte(`# gopyfix configuration
# See: https://github.com/yaklabco/gopyfix

# Maximum allowed line length
max_line_length: 79

# Issue codes to fix; prefix matching, empty means all fixable codes
# fix_codes:
#   - "W"
#   - "E501"

# Issue codes never to fix; exclusions win
# no_fix_codes:
#   - "E711"

# Line terminator for inserted lines: lf, crlf, or unset to keep the
# file's own terminator
# eol: lf

# File patterns to skip (glob patterns)
# ignore:
#   - "build/**"

# Keep a "<name>~" copy before the first in-place save
backups:
  enabled: true
`)
}

func generateFullTemplate() ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(generateMinimalTemplate())

	if DefaultCodeInfoProvider == nil {
		return buf.Bytes(), nil
	}

	buf.WriteString("\n# Fixable issue codes:\n")
	for _, info := range DefaultCodeInfoProvider() {
		if info.Description != "" {
			fmt.Fprintf(&buf, "#   %s  %s\n", info.Code, info.Description)
		} else {
			fmt.Fprintf(&buf, "#   %s\n", info.Code)
		}
	}
	return buf.Bytes(), nil
}

func generateJSONTemplate() ([]byte, error) {
	cfg := NewConfig()
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode template: %w", err)
	}
	return append(data, '\n'), nil
}
