// Package buttons turns sampled button levels into logical press events.
// Levels arrive already normalized (true = pressed); the detector rejects
// bounces shorter than the debounce duration and emits exactly one event
// per press, on the released-to-pressed edge.
package buttons

import (
	"time"

	"github.com/sweeney/washerd/internal/washer"
)

// Sample is one poll of all four button levels.
type Sample struct {
	Start bool
	Stop  bool
	Up    bool
	Down  bool
}

// channel tracks debounce state for a single button.
type channel struct {
	// Current stable (debounced) level
	stable bool
	// Candidate level during debounce
	pending bool
	// Whether a candidate is being observed
	hasPending bool
	// Time when the candidate level was first observed
	pendingSince time.Time
}

// Detector debounces the four buttons independently.
type Detector struct {
	debounce time.Duration
	start    channel
	stop     channel
	up       channel
	down     channel
}

// NewDetector creates a Detector with the given debounce duration.
func NewDetector(debounce time.Duration) *Detector {
	return &Detector{debounce: debounce}
}

// Process takes a new sample and returns the presses it completes, in
// fixed order: Start, Stop, Up, Down.
func (d *Detector) Process(s Sample, now time.Time) []washer.Button {
	var presses []washer.Button
	if d.processChannel(&d.start, s.Start, now) {
		presses = append(presses, washer.ButtonStart)
	}
	if d.processChannel(&d.stop, s.Stop, now) {
		presses = append(presses, washer.ButtonStop)
	}
	if d.processChannel(&d.up, s.Up, now) {
		presses = append(presses, washer.ButtonProgramUp)
	}
	if d.processChannel(&d.down, s.Down, now) {
		presses = append(presses, washer.ButtonProgramDown)
	}
	return presses
}

// processChannel handles debounce for a single button. Returns true when
// the button completes a debounced transition to pressed.
func (d *Detector) processChannel(ch *channel, level bool, now time.Time) bool {
	if level == ch.stable {
		// Back at the stable level, drop any candidate
		ch.hasPending = false
		return false
	}

	if !ch.hasPending || ch.pending != level {
		// New candidate level
		ch.pending = level
		ch.hasPending = true
		ch.pendingSince = now
		return false
	}

	// Same candidate, check debounce
	if now.Sub(ch.pendingSince) >= d.debounce {
		ch.stable = level
		ch.hasPending = false
		return ch.stable
	}

	return false
}
