package domain

import "time"

// State models the recording lifecycle. Recording and Processing are
// mutually exclusive; Processing is only entered from Recording and only
// leaves back to Idle.
type State string

const (
	StateIdle       State = "idle"
	StateRecording  State = "recording"
	StateProcessing State = "processing"
)

// Mode selects the hotkey interaction style.
type Mode string

const (
	// ModeToggle flips recording on each full combo press.
	ModeToggle Mode = "toggle"
	// ModeHold records exactly while the combo is held down.
	ModeHold Mode = "hold"
)

// Clip is one completed capture: immutable after creation, consumed
// exactly once by the processing pipeline.
type Clip struct {
	Samples    []float32
	SampleRate int
	Duration   time.Duration
	StartedAt  time.Time
}

// Empty reports whether the clip carries no audio at all.
func (c Clip) Empty() bool {
	return len(c.Samples) == 0
}

// Status summarizes the controller for CLI/status output.
type Status struct {
	State State `json:"state"`
	Mode  Mode  `json:"mode"`
}

// Outcome is the aggregated result of processing one clip. Err covers
// collaborator failures; they never escalate past the worker boundary.
type Outcome struct {
	Text           string
	Emitted        bool
	Enhanced       bool
	EnhanceElapsed time.Duration
	Err            error
}
