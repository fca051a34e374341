package fixer

import "strings"

// Code identifies one style issue class, e.g. "E501" or "W191".
type Code string

// FixableCodes lists every issue code the fixer knows how to repair.
var FixableCodes = []Code{
	"D111", "D112", "D113", "D121", "D131", "D141",
	"D142", "D143", "D144", "D145",
	"D221", "D222", "D231", "D242", "D243", "D244",
	"D245", "D246", "D247",
	"E101", "E111", "E121", "E122", "E123", "E124",
	"E125", "E126", "E127", "E128", "E133", "E201",
	"E202", "E203", "E211", "E221", "E222", "E223",
	"E224", "E225", "E226", "E227", "E228", "E231",
	"E241", "E242", "E251", "E261", "E262", "E271",
	"E272", "E273", "E274", "E301", "E302", "E303",
	"E304", "E401", "E501", "E502", "E701", "E702",
	"E703", "E711", "E712",
	"N804", "N805", "N806",
	"W191", "W291", "W292", "W293", "W391", "W603",
}

// Fixable reports whether a fix handler exists for code.
func Fixable(code Code) bool {
	for _, c := range FixableCodes {
		if c == code {
			return true
		}
	}
	return false
}

func mutualPrefix(a, b string) bool {
	return strings.HasPrefix(a, b) || strings.HasPrefix(b, a)
}

// codeMatch decides whether code is selected by the fix/no-fix filters.
// Filters match by prefix in either direction, so "E5" selects "E501" and
// "E501" is selected by "E". Deny entries win over allow entries; an empty
// allow list selects everything.
func codeMatch(code Code, fixCodes, noFixCodes []string) bool {
	lower := strings.ToLower(string(code))

	for _, noFix := range noFixCodes {
		if mutualPrefix(lower, strings.ToLower(noFix)) {
			return false
		}
	}
	if len(fixCodes) > 0 {
		for _, fix := range fixCodes {
			if mutualPrefix(lower, strings.ToLower(fix)) {
				return true
			}
		}
		return false
	}
	return true
}

// splitCodeList splits a comma separated code list, dropping empty entries.
func splitCodeList(s string) []string {
	var codes []string
	for _, c := range strings.Split(s, ",") {
		if c = strings.TrimSpace(c); c != "" {
			codes = append(codes, c)
		}
	}
	return codes
}
