// Package washer contains the pure control logic for the wash cycle.
// This package has NO external dependencies (no GPIO, MQTT, OS, or time.Sleep).
// Time is always injectable via millisecond tick parameters.
package washer

// State represents the current phase of the wash cycle.
type State string

const (
	StateIdle  State = "IDLE"
	StateFill  State = "FILL_WATER"
	StateWash  State = "WASH"
	StateRinse State = "RINSE"
	StateSpin  State = "SPIN"
	StateError State = "ERROR"
)

// Button identifies a logical, already-debounced button press.
type Button string

const (
	ButtonStart       Button = "START"
	ButtonStop        Button = "STOP"
	ButtonProgramUp   Button = "PROGRAM_UP"
	ButtonProgramDown Button = "PROGRAM_DOWN"
)

// Direction is the motor drive direction.
type Direction string

const (
	DirectionForward Direction = "FORWARD"
	DirectionReverse Direction = "REVERSE"
)

// MaxProgram is the highest selectable program index.
const MaxProgram = 29

// FillDurationMs is the dwell time in FILL_WATER before advancing to WASH.
const FillDurationMs uint32 = 10000

// Temperature bands for valve selection during FILL_WATER (°C).
// Below the mix band only the hot valve opens, above it only the cold
// valve; inside the band (boundaries included) both valves open.
const (
	MixBandLow  = 25.0
	MixBandHigh = 35.0
)

// Control holds all mutable cycle state. It is owned exclusively by a
// Controller and mutated only from the single control-loop goroutine.
type Control struct {
	// Current phase.
	State State
	// Selected wash program, always in [0, MaxProgram]. Only changes
	// while State is IDLE.
	Program int
	// Step within a multi-step program. Always 0 for now; carried so
	// stored programs can grow steps without changing the layout.
	Step int
	// Tick value (monotonic ms) recorded at phase entry.
	PhaseStart uint32
	// Motor direction. FORWARD at init and on SPIN entry.
	Direction Direction
}

// Outputs commands the water valves and motor windings. Implementations
// must not block; failures are handled (logged) by the implementation.
type Outputs interface {
	SetValves(hot, cold bool)
	SetMotor(forward, reverse bool)
}

// StatusSink receives state and program change notifications for
// presentation. Implementations must not block the control loop.
type StatusSink interface {
	NotifyState(state State, program int)
	NotifyProgram(program int)
}

// TemperatureSensor returns a calibrated water temperature in °C.
// The read is bounded-latency and always yields a value.
type TemperatureSensor interface {
	ReadTemperature() float64
}
