// Package usecase orchestrates the hotkey-driven recording lifecycle and
// the clip processing worker.
package usecase

import (
	"log"
	"sync"
	"time"

	"localflow/internal/domain"
	"localflow/internal/hotkey"
	"localflow/internal/ports"
)

// minClipDuration is the floor below which a stopped clip is discarded
// as an accidental tap.
const minClipDuration = 200 * time.Millisecond

type submitter interface {
	Submit(clip domain.Clip, complete func(domain.Outcome)) bool
	Close()
}

// Controller is the single serialization point between the key-event
// callback thread, the audio callback thread, and the worker. All state
// transitions happen under its mutex; notifications and logging happen
// outside it.
type Controller struct {
	mode     domain.Mode
	matcher  *hotkey.Matcher
	recorder ports.Recorder
	pipeline submitter
	notifier ports.Notifier
	minClip  time.Duration

	mu     sync.Mutex
	state  domain.State
	closed bool
}

func NewController(
	mode domain.Mode,
	matcher *hotkey.Matcher,
	recorder ports.Recorder,
	pipeline submitter,
	notifier ports.Notifier,
) *Controller {
	return &Controller{
		mode:     mode,
		matcher:  matcher,
		recorder: recorder,
		pipeline: pipeline,
		notifier: notifier,
		minClip:  minClipDuration,
		state:    domain.StateIdle,
	}
}

// KeyDown feeds a raw key-down event from the OS hook. It never blocks
// on processing work.
func (c *Controller) KeyDown(raw hotkey.RawKey) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	if c.matcher.Press(raw) != hotkey.EventSatisfied {
		c.mu.Unlock()
		return
	}

	switch c.state {
	case domain.StateProcessing:
		c.mu.Unlock()
		c.notifier.Info("LocalFlow", "Still processing the previous clip")
		return
	case domain.StateIdle:
		if err := c.recorder.Start(); err != nil {
			c.mu.Unlock()
			log.Printf("[localflow] recording start failed: %v", err)
			c.notifier.Error("LocalFlow", "Could not start recording")
			return
		}
		c.state = domain.StateRecording
		c.mu.Unlock()
		log.Printf("[localflow] recording started")
		return
	case domain.StateRecording:
		if c.mode != domain.ModeToggle {
			// Hold mode stops on release, never on a repeated press.
			c.mu.Unlock()
			return
		}
		after := c.stopRecordingLocked()
		c.mu.Unlock()
		after()
	}
}

// KeyUp feeds a raw key-up event from the OS hook. In hold mode the
// release edge from a fully-pressed combo stops the recording; toggle
// mode ignores releases entirely.
func (c *Controller) KeyUp(raw hotkey.RawKey) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	ev := c.matcher.Release(raw)
	if ev != hotkey.EventReleasedFromFull || c.mode != domain.ModeHold || c.state != domain.StateRecording {
		c.mu.Unlock()
		return
	}
	after := c.stopRecordingLocked()
	c.mu.Unlock()
	after()
}

// stopRecordingLocked stops the recorder and routes the clip. Called
// with the mutex held; the returned func carries the logging and
// notification side effects to run after unlock.
func (c *Controller) stopRecordingLocked() func() {
	clip, err := c.recorder.Stop()
	if err != nil {
		c.state = domain.StateIdle
		return func() {
			log.Printf("[localflow] recording stop failed: %v", err)
			c.notifier.Error("LocalFlow", "Recording failed")
		}
	}
	if clip.Empty() || clip.Duration < c.minClip {
		c.state = domain.StateIdle
		return func() {
			log.Printf("[localflow] clip too short (%.2fs), discarded", clip.Duration.Seconds())
		}
	}
	if !c.pipeline.Submit(clip, c.onProcessed) {
		c.state = domain.StateIdle
		return func() {
			c.notifier.Info("LocalFlow", "Still processing the previous clip")
		}
	}
	c.state = domain.StateProcessing
	return func() {
		log.Printf("[localflow] processing %.2fs clip", clip.Duration.Seconds())
	}
}

// onProcessed is the worker's completion callback.
func (c *Controller) onProcessed(out domain.Outcome) {
	c.mu.Lock()
	if !c.closed {
		c.state = domain.StateIdle
	}
	c.mu.Unlock()

	switch {
	case out.Err != nil:
		c.notifier.Error("LocalFlow", "Processing failed")
	case out.Emitted:
		log.Printf("[localflow] emitted %d chars", len(out.Text))
	}
}

// Status reports the current state for CLI output.
func (c *Controller) Status() domain.Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return domain.Status{State: c.state, Mode: c.mode}
}

// Shutdown force-stops any active recording, discarding its clip, and
// closes the pipeline. In-flight processing is abandoned.
func (c *Controller) Shutdown() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	if c.state == domain.StateRecording {
		if _, err := c.recorder.Stop(); err != nil {
			log.Printf("[localflow] recording stop failed during shutdown: %v", err)
		}
	}
	c.state = domain.StateIdle
	c.mu.Unlock()

	c.pipeline.Close()
}
