package classify

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/resume-screener/internal/types"
)

var leadingAnd = regexp.MustCompile(`(?i)^\s*and\s+`)

// ToList normalizes a requirements-style field for display.
func ToList(l types.TextList) []string {
	return CleanList(l.Values())
}

// CleanList strips a leading "and", trims, drops empty entries and capitalizes
// each entry: first letter upper case, the rest lower case.
func CleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(leadingAnd.ReplaceAllString(item, ""))
		if item == "" {
			continue
		}
		out = append(out, capitalize(item))
	}
	return out
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

// ExperienceLines splits an experience description into its ";" separated
// bullets, dropping blanks.
func ExperienceLines(description string) []string {
	parts := strings.Split(description, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
