package hotkey

import (
	"strings"
	"unicode"
)

// Kind tags how a key identity was derived.
type Kind int

const (
	// KindNamed is a canonical named key ("cmd", "cmd_r", "space").
	KindNamed Kind = iota
	// KindCoded is a character key identified by its lower-cased rune.
	KindCoded
)

// Key is an opaque, comparable key identity.
type Key struct {
	Kind Kind
	Name string
	Code uint16
}

// RawKey is an OS-level key event identity before normalization: the
// platform virtual-key code plus the character it produced, if any.
type RawKey struct {
	Code uint16
	Char rune
}

func named(name string) Key {
	return Key{Kind: KindNamed, Name: name}
}

func coded(r rune) Key {
	return Key{Kind: KindCoded, Code: uint16(unicode.ToLower(r))}
}

// sidedModifiers maps virtual-key codes of modifier keys to their
// side-preserving names (macOS codes; the hook reports these raw).
var sidedModifiers = map[uint16]string{
	55: "cmd_l",
	54: "cmd_r",
	56: "shift_l",
	60: "shift_r",
	58: "alt_l",
	61: "alt_r",
	59: "ctrl_l",
	62: "ctrl_r",
}

// namedKeys maps non-modifier virtual-key codes to canonical names.
var namedKeys = map[uint16]string{
	49: "space",
	48: "tab",
	36: "enter",
	53: "esc",
	51: "delete",
}

// charNames covers keys whose produced character is more portable than
// the virtual-key code.
var charNames = map[rune]string{
	' ':  "space",
	'\t': "tab",
	'\r': "enter",
	'\n': "enter",
}

func baseModifier(name string) string {
	if i := strings.IndexByte(name, '_'); i > 0 {
		return name[:i]
	}
	return name
}

// normalizeRaw resolves a raw event to a key identity. Side-specific
// sessions preserve the left/right distinction of modifiers; otherwise
// both sides collapse to the base name. Unknown keys report ok=false and
// are ignored by callers.
func normalizeRaw(raw RawKey, sideSpecific bool) (Key, bool) {
	if name, ok := sidedModifiers[raw.Code]; ok {
		if !sideSpecific {
			name = baseModifier(name)
		}
		return named(name), true
	}
	if name, ok := namedKeys[raw.Code]; ok {
		return named(name), true
	}
	if name, ok := charNames[raw.Char]; ok {
		return named(name), true
	}
	if raw.Char != 0 && unicode.IsGraphic(raw.Char) {
		return coded(raw.Char), true
	}
	return Key{}, false
}
