package ports

import (
	"context"

	"localflow/internal/domain"
)

// Recorder owns a single microphone capture session.
type Recorder interface {
	// Start opens the capture stream. Calling Start while already
	// recording is a no-op.
	Start() error
	// Stop closes the stream and returns the accumulated clip. Calling
	// Stop while idle returns an empty clip and no error.
	Stop() (domain.Clip, error)
	Recording() bool
}

// Transcriber converts a clip into best-effort transcript text. An empty
// string is a valid result.
type Transcriber interface {
	Transcribe(ctx context.Context, clip domain.Clip, language string) (string, error)
}

// Enhancer rewrites transcript text preserving meaning. Implementations
// return the input unchanged on any internal failure.
type Enhancer interface {
	Enhance(ctx context.Context, text string) (string, error)
	Status() string
}

// Rewriter applies a deterministic text transform to a transcript.
type Rewriter interface {
	Apply(text string) string
}

// RewriterFunc adapts a plain function to the Rewriter interface.
type RewriterFunc func(string) string

func (f RewriterFunc) Apply(text string) string { return f(text) }

// History persists emitted transcripts. Append is best-effort; callers
// log and continue on error.
type History interface {
	Append(text string, mode domain.Mode) error
}

// Emitter delivers text to the active application (clipboard paste,
// synthetic typing, or stdout fallback).
type Emitter interface {
	Emit(text string) error
}

// Notifier surfaces user-visible advisories. Implementations never fail
// the caller.
type Notifier interface {
	Info(title, message string)
	Error(title, message string)
}
