// Package output delivers transcribed text to the active application.
package output

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/atotto/clipboard"
	"github.com/go-vgo/robotgo"
	"github.com/micmonay/keybd_event"
)

const (
	// PasteModeClipboard copies the text and synthesizes a paste chord.
	PasteModeClipboard = "clipboard"
	// PasteModeType types the text into the focused window.
	PasteModeType = "type"
)

// Emitter writes text into the active application, falling back to
// printing when input automation is unavailable.
type Emitter struct {
	autoPaste bool
	pasteMode string
	out       io.Writer

	// injectable for tests
	writeClipboard func(string) error
	sendPasteChord func() error
	typeText       func(string)
}

func NewEmitter(autoPaste bool, pasteMode string) *Emitter {
	return &Emitter{
		autoPaste:      autoPaste,
		pasteMode:      pasteMode,
		out:            os.Stdout,
		writeClipboard: clipboard.WriteAll,
		sendPasteChord: sendPasteChord,
		typeText:       robotgo.TypeStr,
	}
}

// Emit delivers text. Empty text is a no-op. On automation failure the
// text is printed instead and the error returned for logging.
func (e *Emitter) Emit(text string) error {
	if text == "" {
		return nil
	}
	if !e.autoPaste {
		fmt.Fprintln(e.out, text)
		return nil
	}

	if e.pasteMode == PasteModeType {
		e.typeText(text)
		return nil
	}

	if err := e.writeClipboard(text); err != nil {
		fmt.Fprintln(e.out, text)
		return fmt.Errorf("clipboard write: %w", err)
	}
	// Give the focused application a beat to observe the new clipboard
	// contents before the paste chord lands.
	time.Sleep(50 * time.Millisecond)
	if err := e.sendPasteChord(); err != nil {
		fmt.Fprintln(e.out, text)
		return fmt.Errorf("paste keystroke: %w", err)
	}
	return nil
}

func sendPasteChord() error {
	kb, err := keybd_event.NewKeyBonding()
	if err != nil {
		return err
	}
	if runtime.GOOS == "darwin" {
		kb.HasSuper(true)
	} else {
		kb.HasCTRL(true)
	}
	kb.SetKeys(keybd_event.VK_V)
	return kb.Launching()
}
