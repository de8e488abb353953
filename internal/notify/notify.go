// Package notify surfaces desktop notifications for recording state and
// advisories.
package notify

import (
	"log"

	"github.com/gen2brain/beeep"
)

// Beeper is a ports.Notifier backed by desktop notifications. Delivery
// failures are logged and otherwise ignored.
type Beeper struct {
	enabled bool
}

func NewBeeper(enabled bool) *Beeper {
	return &Beeper{enabled: enabled}
}

func (b *Beeper) Info(title, message string) {
	if !b.enabled {
		return
	}
	if err := beeep.Notify(title, message, ""); err != nil {
		log.Printf("notify: %v", err)
	}
}

func (b *Beeper) Error(title, message string) {
	if !b.enabled {
		return
	}
	if err := beeep.Alert(title, message, ""); err != nil {
		log.Printf("notify: %v", err)
	}
}
