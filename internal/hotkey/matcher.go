package hotkey

// Event is the edge signal produced by feeding a raw key event to the
// matcher.
type Event int

const (
	EventNone Event = iota
	// EventSatisfied fires on the edge where the pressed set first equals
	// the combo, at most once per unbroken press excursion.
	EventSatisfied
	// EventReleasedFromFull fires on the edge where the pressed set first
	// stops equaling the combo after a satisfied edge.
	EventReleasedFromFull
)

// Matcher tracks which combo keys are currently down and the activation
// latch that suppresses autorepeat retriggering. It is not goroutine-safe;
// callers serialize Press/Release under their own lock.
type Matcher struct {
	combo   *Combo
	pressed map[Key]struct{}
	latched bool
}

func NewMatcher(combo *Combo) *Matcher {
	return &Matcher{
		combo:   combo,
		pressed: make(map[Key]struct{}, combo.Size()),
	}
}

// Press records a key-down event. Keys outside the combo and unmappable
// raw events are ignored. Autorepeat presses while the full combo is held
// do not retrigger: the latch stays set until the pressed set diverges.
func (m *Matcher) Press(raw RawKey) Event {
	key, ok := normalizeRaw(raw, m.combo.sideSpecific)
	if !ok {
		return EventNone
	}
	if _, ok := m.combo.keys[key]; !ok {
		return EventNone
	}
	m.pressed[key] = struct{}{}
	if m.latched {
		return EventNone
	}
	if len(m.pressed) == len(m.combo.keys) {
		m.latched = true
		return EventSatisfied
	}
	return EventNone
}

// Release records a key-up event. The identity is removed from the
// pressed set unconditionally, regardless of latch state.
func (m *Matcher) Release(raw RawKey) Event {
	key, ok := normalizeRaw(raw, m.combo.sideSpecific)
	if !ok {
		return EventNone
	}
	delete(m.pressed, key)
	if m.latched && len(m.pressed) != len(m.combo.keys) {
		m.latched = false
		return EventReleasedFromFull
	}
	return EventNone
}

// PressedCount returns how many combo keys are currently held.
func (m *Matcher) PressedCount() int { return len(m.pressed) }

// Latched reports whether the combo has triggered during the current
// press excursion.
func (m *Matcher) Latched() bool { return m.latched }
