// Package commands rewrites literal spoken command phrases in transcript
// text into their textual effect.
package commands

import (
	"regexp"
	"strings"
)

type replacement struct {
	re    *regexp.Regexp
	token string
}

// Ordered: "new paragraph" must rewrite before "new line" could ever
// match inside it.
var replacements = []replacement{
	{regexp.MustCompile(`(?i)\bnew paragraph\b`), "\n\n"},
	{regexp.MustCompile(`(?i)\bnew line\b`), "\n"},
}

var breakSpacing = regexp.MustCompile(`[ \t]*\n[ \t]*`)

// Apply replaces whole-word command phrases case-insensitively, then
// normalizes spaces and tabs around the inserted breaks.
func Apply(text string) string {
	cleaned := strings.TrimSpace(text)
	if cleaned == "" {
		return ""
	}
	for _, r := range replacements {
		cleaned = r.re.ReplaceAllString(cleaned, r.token)
	}
	cleaned = breakSpacing.ReplaceAllString(cleaned, "\n")
	return strings.TrimSpace(cleaned)
}
