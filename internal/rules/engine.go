// Package rules applies user-defined transcript substitutions loaded from
// a plain-text rules file: one `spoken => written` pair per line, `#`
// comments, case-insensitive matching.
package rules

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
)

type rule struct {
	re          *regexp.Regexp
	replacement string
}

// Engine applies substitutions until no rule changes the text, bounded by
// a loop limit so mutually-feeding rules terminate.
type Engine struct {
	rules     []rule
	loopLimit int
}

// NewEngine loads and compiles rules from path. An empty path or a
// missing file yields a pass-through engine.
func NewEngine(path string, loopLimit int) (*Engine, error) {
	if loopLimit <= 0 {
		loopLimit = 30
	}
	if strings.TrimSpace(path) == "" {
		return &Engine{loopLimit: loopLimit}, nil
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Engine{loopLimit: loopLimit}, nil
		}
		return nil, fmt.Errorf("read rules file %q: %w", path, err)
	}

	rules, err := parseRules(string(contents))
	if err != nil {
		return nil, fmt.Errorf("parse rules file %q: %w", path, err)
	}
	return &Engine{rules: rules, loopLimit: loopLimit}, nil
}

// Len returns the number of loaded rules.
func (e *Engine) Len() int { return len(e.rules) }

// Apply transforms text deterministically.
func (e *Engine) Apply(text string) string {
	if len(e.rules) == 0 {
		return text
	}
	result := text
	for i := 0; i < e.loopLimit; i++ {
		changed := false
		for _, r := range e.rules {
			next := r.re.ReplaceAllString(result, r.replacement)
			if next != result {
				result = next
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	return result
}

func parseRules(contents string) ([]rule, error) {
	lines := strings.Split(contents, "\n")
	rules := make([]rule, 0, len(lines))

	for index, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=>", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("line %d: expected `spoken => written`", index+1)
		}
		from := strings.TrimSpace(parts[0])
		to := strings.TrimSpace(parts[1])
		if from == "" {
			return nil, fmt.Errorf("line %d: rule source cannot be empty", index+1)
		}

		re, err := regexp.Compile("(?i)" + regexp.QuoteMeta(from))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", index+1, err)
		}
		rules = append(rules, rule{re: re, replacement: to})
	}
	return rules, nil
}
