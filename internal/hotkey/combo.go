package hotkey

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Combo is the set of keys that must be concurrently pressed to trigger.
// Side-specificity is a property of the configured string: naming any
// left/right modifier variant makes matching side-specific for the whole
// session.
type Combo struct {
	keys         map[Key]struct{}
	sideSpecific bool
	spec         string
}

var sideRe = regexp.MustCompile(`_[lr]\b`)

var sidedModifierRe = regexp.MustCompile(`^(cmd|ctrl|alt|shift)_[lr]$`)

var modifierAliases = map[string]string{
	"command": "cmd",
	"control": "ctrl",
	"option":  "alt",
	"opt":     "alt",
	"super":   "cmd",
	"win":     "cmd",
}

var namedAliases = map[string]string{
	"return":    "enter",
	"escape":    "esc",
	"backspace": "delete",
}

var modifierBases = map[string]struct{}{
	"cmd":   {},
	"ctrl":  {},
	"alt":   {},
	"shift": {},
}

var namedNonModifiers = map[string]struct{}{
	"space":  {},
	"tab":    {},
	"enter":  {},
	"esc":    {},
	"delete": {},
}

// specAliases rewrites hotkey spellings that older configs used.
var specAliases = map[string]string{
	"cmd_r":                       "<cmd_r>",
	"right_cmd":                   "<cmd_r>",
	"right command":               "<cmd_r>",
	"right-command":               "<cmd_r>",
	"cmd_r+shift_r":               "<cmd_r>",
	"right command + right shift": "<cmd_r>",
	"right-command+right-shift":   "<cmd_r>",
	"<cmd_r>+<shift_r>":           "<cmd_r>",
	"<cmd_r>+<shift>":             "<cmd_r>",
	"<cmd_r>+shift_r":             "<cmd_r>",
	"cmd+shift":                   "<cmd>+<shift>",
	"cmd + shift":                 "<cmd>+<shift>",
	"command+shift":               "<cmd>+<shift>",
	"command + shift":             "<cmd>+<shift>",
	"<cmd>+shift":                 "<cmd>+<shift>",
	"cmd+<shift>":                 "<cmd>+<shift>",
}

func normalizeSpec(spec string) string {
	s := strings.TrimSpace(spec)
	s = strings.ReplaceAll(s, "+ Space", "+<space>")
	s = strings.ReplaceAll(s, "+SPACE", "+<space>")
	if alias, ok := specAliases[s]; ok {
		return alias
	}
	if alias, ok := specAliases[strings.ToLower(s)]; ok {
		return alias
	}
	return s
}

// ParseCombo parses a pynput-style hotkey string: modifier and named keys
// in angle brackets ("<cmd_r>", "<ctrl>+<alt>"), character keys bare
// ("<cmd>+k"). A combo that names a side for one modifier but not another
// could never be satisfied, so it is rejected.
func ParseCombo(spec string) (*Combo, error) {
	normalized := normalizeSpec(spec)
	if normalized == "" {
		return nil, fmt.Errorf("hotkey is empty")
	}

	sideSpecific := sideRe.MatchString(normalized)

	keys := make(map[Key]struct{})
	for _, part := range strings.Split(normalized, "+") {
		token := strings.ToLower(strings.TrimSpace(part))
		token = strings.TrimSuffix(strings.TrimPrefix(token, "<"), ">")
		if token == "" {
			return nil, fmt.Errorf("hotkey %q has an empty key", spec)
		}

		key, agnosticModifier, err := parseToken(token)
		if err != nil {
			return nil, fmt.Errorf("hotkey %q: %w", spec, err)
		}
		if sideSpecific && agnosticModifier {
			return nil, fmt.Errorf("hotkey %q mixes side-specific and side-agnostic modifiers", spec)
		}
		keys[key] = struct{}{}
	}

	return &Combo{keys: keys, sideSpecific: sideSpecific, spec: normalized}, nil
}

func parseToken(token string) (key Key, agnosticModifier bool, err error) {
	if alias, ok := modifierAliases[token]; ok {
		token = alias
	}
	if alias, ok := namedAliases[token]; ok {
		token = alias
	}

	if _, ok := modifierBases[token]; ok {
		return named(token), true, nil
	}
	if sidedModifierRe.MatchString(token) {
		return named(token), false, nil
	}
	if _, ok := namedNonModifiers[token]; ok {
		return named(token), false, nil
	}
	if utf8.RuneCountInString(token) == 1 {
		r, _ := utf8.DecodeRuneInString(token)
		return coded(r), false, nil
	}
	return Key{}, false, fmt.Errorf("unknown key %q", token)
}

// String returns the normalized combo spec.
func (c *Combo) String() string { return c.spec }

// SideSpecific reports whether left/right modifier variants are distinct
// identities for this combo.
func (c *Combo) SideSpecific() bool { return c.sideSpecific }

// Size returns the number of keys in the combo.
func (c *Combo) Size() int { return len(c.keys) }
