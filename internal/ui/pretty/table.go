package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gopyfix/pkg/config"
)

const (
	codeColumnWidth = 8
	maxDescWidth    = 70
)

// FormatCodesTable renders the fixable issue codes with their descriptions.
func (s *Styles) FormatCodesTable(codes []config.CodeInfo) string {
	var builder strings.Builder

	builder.WriteString(s.TableHeader.Render(fmt.Sprintf("%-*s%s", codeColumnWidth, "CODE", "DESCRIPTION")))
	builder.WriteString("\n")
	builder.WriteString(s.TableSeparator.Render(strings.Repeat("-", codeColumnWidth+maxDescWidth)))
	builder.WriteString("\n")

	for _, info := range codes {
		desc := info.Description
		if len(desc) > maxDescWidth {
			desc = desc[:maxDescWidth-3] + "..."
		}
		builder.WriteString(fmt.Sprintf("%s%s\n",
			s.Code.Render(fmt.Sprintf("%-*s", codeColumnWidth, info.Code)),
			desc))
	}

	return builder.String()
}
