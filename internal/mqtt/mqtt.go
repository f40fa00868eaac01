// Package mqtt provides MQTT publishing with abstraction for testing.
package mqtt

import (
	"encoding/json"
	"time"

	"github.com/sweeney/washerd/internal/washer"
)

// Topic is the MQTT topic for washer cycle events.
const Topic = "appliance/washer/events"

// TopicSystem is the MQTT topic for system lifecycle events.
const TopicSystem = "appliance/washer/system"

// Event kinds published on Topic.
const (
	EventStateChange   = "STATE_CHANGE"
	EventProgramSelect = "PROGRAM_SELECT"
)

// Publisher publishes events to MQTT.
type Publisher interface {
	// Publish sends a washer cycle event to the broker.
	// Returns error if publishing fails (should not crash the process).
	Publish(event WasherEvent) error

	// PublishSystem sends a system lifecycle event to the broker.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// WasherEvent represents a cycle state change or program selection.
type WasherEvent struct {
	Timestamp time.Time
	Event     string // EventStateChange or EventProgramSelect
	State     washer.State
	Program   int
}

// SystemEvent represents a system lifecycle event (e.g., startup, shutdown, heartbeat).
type SystemEvent struct {
	Timestamp  time.Time
	Event      string // e.g., "STARTUP", "SHUTDOWN", "HEARTBEAT"
	Reason     string // e.g., "SIGTERM", "SIGINT" (shutdown only)
	RawPayload []byte // Pre-formatted JSON payload; if set, FormatSystemPayload returns it directly
	Retained   bool   // Whether the message should be retained by the broker
}

// Payload represents the MQTT message payload structure.
type Payload struct {
	Washer WasherPayload `json:"washer"`
}

// WasherPayload contains the cycle event details.
type WasherPayload struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	State     string `json:"state"`
	Program   int    `json:"program"`
}

// FormatPayload creates the JSON payload for a washer cycle event.
func FormatPayload(event WasherEvent) ([]byte, error) {
	payload := Payload{
		Washer: WasherPayload{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Event,
			State:     string(event.State),
			Program:   event.Program,
		},
	}
	return json.Marshal(payload)
}

// SystemPayload represents the MQTT message payload for system events.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the system event details.
type SystemPayloadInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a system event.
// If event.RawPayload is set, it is returned directly (used for full status snapshots).
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}

	payload := SystemPayload{
		System: SystemPayloadInner{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Event,
			Reason:    event.Reason,
		},
	}
	return json.Marshal(payload)
}
