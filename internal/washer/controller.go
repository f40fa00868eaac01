package washer

// Controller advances the wash cycle. It is a reactive step function over
// (state, elapsed ticks, temperature, button events): Update and HandleButton
// are synchronous, never block, and are called from a single control loop.
type Controller struct {
	control Control
	outputs Outputs
	status  StatusSink
	sensor  TemperatureSensor
}

// New creates a Controller using the given collaborators.
func New(outputs Outputs, status StatusSink, sensor TemperatureSensor) *Controller {
	return &Controller{
		outputs: outputs,
		status:  status,
		sensor:  sensor,
	}
}

// Init resets the cycle to IDLE with program 0 and notifies the sink.
func (c *Controller) Init() {
	c.control = Control{
		State:     StateIdle,
		Direction: DirectionForward,
	}
	c.status.NotifyState(c.control.State, c.control.Program)
}

// Update advances the machine by at most one transition. Output commands for
// the current phase are re-issued on every call, not only on transitions.
// nowTick is a monotonic millisecond counter; elapsed time is computed with
// unsigned subtraction so counter wraparound does not stall a phase.
func (c *Controller) Update(nowTick uint32) {
	switch c.control.State {
	case StateIdle:
		c.outputs.SetMotor(false, false)
		c.outputs.SetValves(false, false)

	case StateFill:
		hot, cold := ValvesForTemperature(c.sensor.ReadTemperature())
		c.outputs.SetValves(hot, cold)
		if nowTick-c.control.PhaseStart >= FillDurationMs {
			c.outputs.SetValves(false, false)
			c.transition(StateWash, nowTick)
		}

	case StateWash:
		// Timed forward/pause/reverse motor sequencing is not implemented
		// yet; the phase passes straight through.
		c.transition(StateRinse, nowTick)

	case StateRinse:
		c.transition(StateSpin, nowTick)

	case StateSpin:
		c.outputs.SetMotor(true, false)
		c.transition(StateIdle, nowTick)

	case StateError:
		c.outputs.SetMotor(false, false)
		c.outputs.SetValves(false, false)
		c.status.NotifyState(c.control.State, c.control.Program)

	default:
		// Unrecognized state value. Park in ERROR with outputs safed;
		// only a Stop press recovers.
		c.transition(StateError, nowTick)
	}
}

// HandleButton applies one logical button press. Presses outside their
// precondition are silently ignored. Stop is unconditional and is the only
// way out of ERROR.
func (c *Controller) HandleButton(b Button, nowTick uint32) {
	switch b {
	case ButtonStart:
		if c.control.State == StateIdle {
			c.transition(StateFill, nowTick)
		}
	case ButtonStop:
		c.transition(StateIdle, nowTick)
	case ButtonProgramUp:
		if c.control.State == StateIdle && c.control.Program < MaxProgram {
			c.control.Program++
			c.status.NotifyProgram(c.control.Program)
		}
	case ButtonProgramDown:
		if c.control.State == StateIdle && c.control.Program > 0 {
			c.control.Program--
			c.status.NotifyProgram(c.control.Program)
		}
	}
}

// transition enters the next phase, restarts the phase timer and notifies
// the sink. SPIN always runs the motor forward.
func (c *Controller) transition(next State, nowTick uint32) {
	if next == StateSpin {
		c.control.Direction = DirectionForward
	}
	c.control.State = next
	c.control.PhaseStart = nowTick
	c.status.NotifyState(c.control.State, c.control.Program)
}

// State returns the current phase.
func (c *Controller) State() State {
	return c.control.State
}

// Program returns the selected program index.
func (c *Controller) Program() int {
	return c.control.Program
}

// Snapshot returns a copy of the full control block.
func (c *Controller) Snapshot() Control {
	return c.control
}

// ValvesForTemperature selects the fill valves for a temperature sample.
// Pure function of the instantaneous sample; no hysteresis or averaging.
func ValvesForTemperature(t float64) (hot, cold bool) {
	switch {
	case t < MixBandLow:
		return true, false
	case t > MixBandHigh:
		return false, true
	default:
		return true, true
	}
}
