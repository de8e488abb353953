package hotkey

import "testing"

var (
	rawCmdL   = RawKey{Code: 55}
	rawCmdR   = RawKey{Code: 54}
	rawShiftL = RawKey{Code: 56}
	rawShiftR = RawKey{Code: 60}
	rawSpace  = RawKey{Code: 49, Char: ' '}
	rawK      = RawKey{Code: 40, Char: 'k'}
)

func mustCombo(t *testing.T, spec string) *Combo {
	t.Helper()
	combo, err := ParseCombo(spec)
	if err != nil {
		t.Fatalf("parse %q failed: %v", spec, err)
	}
	return combo
}

func TestParseComboSideSpecificity(t *testing.T) {
	t.Parallel()

	cases := []struct {
		spec         string
		sideSpecific bool
		size         int
	}{
		{"<cmd_r>", true, 1},
		{"<cmd>+<shift>", false, 2},
		{"<ctrl>+<alt>+k", false, 3},
		{"k", false, 1},
		{"<shift_l>+<cmd_l>", true, 2},
	}
	for _, tc := range cases {
		combo := mustCombo(t, tc.spec)
		if combo.SideSpecific() != tc.sideSpecific {
			t.Fatalf("%q: side-specific = %v, want %v", tc.spec, combo.SideSpecific(), tc.sideSpecific)
		}
		if combo.Size() != tc.size {
			t.Fatalf("%q: size = %d, want %d", tc.spec, combo.Size(), tc.size)
		}
	}
}

func TestParseComboAliases(t *testing.T) {
	t.Parallel()

	combo := mustCombo(t, "right command")
	if combo.String() != "<cmd_r>" || !combo.SideSpecific() {
		t.Fatalf("alias not normalized: %q side=%v", combo.String(), combo.SideSpecific())
	}

	combo = mustCombo(t, "cmd+shift")
	if combo.String() != "<cmd>+<shift>" || combo.SideSpecific() {
		t.Fatalf("alias not normalized: %q side=%v", combo.String(), combo.SideSpecific())
	}
}

func TestParseComboRejectsInvalid(t *testing.T) {
	t.Parallel()

	for _, spec := range []string{"", "<cmd_r>+<alt>", "<bogus>", "<cmd>+"} {
		if _, err := ParseCombo(spec); err == nil {
			t.Fatalf("expected parse error for %q", spec)
		}
	}
}

func TestMatcherSideAgnosticCollapsesSides(t *testing.T) {
	t.Parallel()

	m := NewMatcher(mustCombo(t, "<cmd>+<shift>"))
	if ev := m.Press(rawCmdL); ev != EventNone {
		t.Fatalf("partial press fired %v", ev)
	}
	if ev := m.Press(rawShiftR); ev != EventSatisfied {
		t.Fatalf("expected satisfied edge, got %v", ev)
	}
}

func TestMatcherSideSpecificDistinguishesSides(t *testing.T) {
	t.Parallel()

	m := NewMatcher(mustCombo(t, "<cmd_r>"))
	if ev := m.Press(rawCmdL); ev != EventNone {
		t.Fatalf("left cmd matched side-specific right combo: %v", ev)
	}
	if m.PressedCount() != 0 {
		t.Fatalf("non-combo key leaked into pressed set")
	}
	if ev := m.Press(rawCmdR); ev != EventSatisfied {
		t.Fatalf("expected satisfied edge, got %v", ev)
	}
}

func TestMatcherAutorepeatFiresOnce(t *testing.T) {
	t.Parallel()

	m := NewMatcher(mustCombo(t, "<cmd>+<space>"))
	m.Press(rawCmdR)
	if ev := m.Press(rawSpace); ev != EventSatisfied {
		t.Fatalf("expected satisfied edge, got %v", ev)
	}
	for i := 0; i < 5; i++ {
		if ev := m.Press(rawSpace); ev != EventNone {
			t.Fatalf("autorepeat press %d retriggered: %v", i, ev)
		}
	}
	if m.PressedCount() != 2 {
		t.Fatalf("pressed count = %d, want 2", m.PressedCount())
	}
}

func TestMatcherReleaseEdgeAndNoLeaks(t *testing.T) {
	t.Parallel()

	m := NewMatcher(mustCombo(t, "<cmd>+<shift>"))
	m.Press(rawCmdL)
	m.Press(rawShiftL)

	if ev := m.Release(rawShiftL); ev != EventReleasedFromFull {
		t.Fatalf("expected released-from-full edge, got %v", ev)
	}
	if ev := m.Release(rawCmdL); ev != EventNone {
		t.Fatalf("second release fired again: %v", ev)
	}
	if m.PressedCount() != 0 {
		t.Fatalf("pressed set leaked %d entries", m.PressedCount())
	}
}

func TestMatcherRetriggersAfterDivergence(t *testing.T) {
	t.Parallel()

	m := NewMatcher(mustCombo(t, "<cmd>+<shift>"))
	m.Press(rawCmdR)
	m.Press(rawShiftR)
	m.Release(rawShiftR)

	// Re-pressing after the set diverged is a new excursion.
	if ev := m.Press(rawShiftL); ev != EventSatisfied {
		t.Fatalf("expected satisfied edge after divergence, got %v", ev)
	}
}

func TestMatcherIgnoresUnknownKeys(t *testing.T) {
	t.Parallel()

	m := NewMatcher(mustCombo(t, "k"))
	if ev := m.Press(RawKey{Code: 200}); ev != EventNone {
		t.Fatalf("unknown key fired %v", ev)
	}
	if ev := m.Release(RawKey{Code: 200}); ev != EventNone {
		t.Fatalf("unknown release fired %v", ev)
	}
	if ev := m.Press(rawK); ev != EventSatisfied {
		t.Fatalf("expected satisfied edge, got %v", ev)
	}
}
