// Package status provides a thread-safe status tracker for the washerd
// daemon. It is designed to be read by HTTP handlers and MQTT snapshots.
package status

import (
	"sync"
	"time"

	"github.com/sweeney/washerd/internal/washer"
)

// Config contains daemon configuration for display.
type Config struct {
	PollMs      int64
	DebounceMs  int64
	HeartbeatMs int64
	FillMs      int64
	Broker      string
	HTTPAddr    string
}

// Counts tracks phase entries since startup. Cycles counts complete
// cycles, i.e. SPIN followed by a return to IDLE.
type Counts struct {
	Fills  int
	Washes int
	Rinses int
	Spins  int
	Errors int
	Cycles int
}

// Outputs is the most recently commanded output state.
type Outputs struct {
	HotValve     bool
	ColdValve    bool
	MotorForward bool
	MotorReverse bool
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type — safe to use after the lock is released.
type Snapshot struct {
	State         washer.State
	Program       int
	Temperature   float64
	Outputs       Outputs
	Counts        Counts
	StartTime     time.Time
	Now           time.Time
	MQTTConnected bool
	Config        Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// SetState records a state notification and maintains the phase-entry
// counters. Repeated notifications for the same state do not count twice.
func (t *Tracker) SetState(state washer.State, program int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	prev := t.snap.State
	t.snap.Program = program
	if state == prev {
		return
	}
	t.snap.State = state

	switch state {
	case washer.StateFill:
		t.snap.Counts.Fills++
	case washer.StateWash:
		t.snap.Counts.Washes++
	case washer.StateRinse:
		t.snap.Counts.Rinses++
	case washer.StateSpin:
		t.snap.Counts.Spins++
	case washer.StateError:
		t.snap.Counts.Errors++
	case washer.StateIdle:
		if prev == washer.StateSpin {
			t.snap.Counts.Cycles++
		}
	}
}

// SetProgram records a program selection.
func (t *Tracker) SetProgram(program int) {
	t.mu.Lock()
	t.snap.Program = program
	t.mu.Unlock()
}

// SetTemperature records the latest temperature sample.
func (t *Tracker) SetTemperature(temp float64) {
	t.mu.Lock()
	t.snap.Temperature = temp
	t.mu.Unlock()
}

// SetOutputs records the commanded output state.
// Called from the control loop's outputs adapter.
func (t *Tracker) SetOutputs(hot, cold, forward, reverse bool) {
	t.mu.Lock()
	t.snap.Outputs = Outputs{
		HotValve:     hot,
		ColdValve:    cold,
		MotorForward: forward,
		MotorReverse: reverse,
	}
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
