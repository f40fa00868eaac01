package status

import (
	"encoding/json"
	"time"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string      `json:"event,omitempty"`
	Reason        string      `json:"reason,omitempty"`
	State         string      `json:"state"`
	Program       int         `json:"program"`
	TemperatureC  float64     `json:"temperature_c"`
	Outputs       OutputsJSON `json:"outputs"`
	UptimeSeconds int64       `json:"uptime_seconds"`
	StartTime     string      `json:"start_time"`
	Timestamp     string      `json:"timestamp"`
	MQTT          MQTTStatus  `json:"mqtt"`
	Counts        CountsJSON  `json:"cycle_counts"`
	Config        ConfigJSON  `json:"config"`
}

// OutputsJSON is the JSON representation of commanded outputs.
type OutputsJSON struct {
	HotValve     bool `json:"hot_valve"`
	ColdValve    bool `json:"cold_valve"`
	MotorForward bool `json:"motor_forward"`
	MotorReverse bool `json:"motor_reverse"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

// CountsJSON is the JSON representation of phase-entry counts.
type CountsJSON struct {
	Fills  int `json:"fills"`
	Washes int `json:"washes"`
	Rinses int `json:"rinses"`
	Spins  int `json:"spins"`
	Errors int `json:"errors"`
	Cycles int `json:"cycles"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	PollMs      int64  `json:"poll_ms"`
	DebounceMs  int64  `json:"debounce_ms"`
	HeartbeatMs int64  `json:"heartbeat_ms"`
	FillMs      int64  `json:"fill_ms"`
	Broker      string `json:"broker"`
	HTTPAddr    string `json:"http_addr"`
}

func buildInner(snap Snapshot) StatusInner {
	state := string(snap.State)
	if state == "" {
		state = "UNKNOWN"
	}

	return StatusInner{
		State:         state,
		Program:       snap.Program,
		TemperatureC:  snap.Temperature,
		Outputs: OutputsJSON{
			HotValve:     snap.Outputs.HotValve,
			ColdValve:    snap.Outputs.ColdValve,
			MotorForward: snap.Outputs.MotorForward,
			MotorReverse: snap.Outputs.MotorReverse,
		},
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		MQTT:          MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
		Counts: CountsJSON{
			Fills:  snap.Counts.Fills,
			Washes: snap.Counts.Washes,
			Rinses: snap.Counts.Rinses,
			Spins:  snap.Counts.Spins,
			Errors: snap.Counts.Errors,
			Cycles: snap.Counts.Cycles,
		},
		Config: ConfigJSON{
			PollMs:      snap.Config.PollMs,
			DebounceMs:  snap.Config.DebounceMs,
			HeartbeatMs: snap.Config.HeartbeatMs,
			FillMs:      snap.Config.FillMs,
			Broker:      snap.Config.Broker,
			HTTPAddr:    snap.Config.HTTPAddr,
		},
	}
}

// FormatJSON returns the JSON status for the web endpoint (no event/reason).
func FormatJSON(snap Snapshot) []byte {
	data, _ := json.MarshalIndent(StatusJSON{Status: buildInner(snap)}, "", "  ")
	return data
}

// FormatStatusEvent returns the JSON status for an MQTT system event.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason

	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
