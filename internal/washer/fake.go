package washer

// FakeOutputs records commanded outputs for test assertions.
type FakeOutputs struct {
	// Hot, Cold, Forward and Reverse hold the most recent commands.
	Hot     bool
	Cold    bool
	Forward bool
	Reverse bool

	// History contains a snapshot of all four outputs after every
	// SetValves/SetMotor call, in call order.
	History []OutputSnapshot

	// ValveCalls and MotorCalls count the respective Set calls.
	ValveCalls int
	MotorCalls int
}

// OutputSnapshot is the commanded output state after one Set call.
type OutputSnapshot struct {
	Hot     bool
	Cold    bool
	Forward bool
	Reverse bool
}

// SetValves records a valve command.
func (f *FakeOutputs) SetValves(hot, cold bool) {
	f.Hot, f.Cold = hot, cold
	f.ValveCalls++
	f.record()
}

// SetMotor records a motor command.
func (f *FakeOutputs) SetMotor(forward, reverse bool) {
	f.Forward, f.Reverse = forward, reverse
	f.MotorCalls++
	f.record()
}

func (f *FakeOutputs) record() {
	f.History = append(f.History, OutputSnapshot{
		Hot:     f.Hot,
		Cold:    f.Cold,
		Forward: f.Forward,
		Reverse: f.Reverse,
	})
}

// StateNotice is one recorded NotifyState call.
type StateNotice struct {
	State   State
	Program int
}

// FakeSink records status notifications for test assertions.
type FakeSink struct {
	// States contains all NotifyState calls in order.
	States []StateNotice

	// Programs contains all NotifyProgram calls in order.
	Programs []int
}

// NotifyState records a state notification.
func (f *FakeSink) NotifyState(state State, program int) {
	f.States = append(f.States, StateNotice{State: state, Program: program})
}

// NotifyProgram records a program notification.
func (f *FakeSink) NotifyProgram(program int) {
	f.Programs = append(f.Programs, program)
}

// LastState returns the most recent state notification, or the zero value
// if none was recorded.
func (f *FakeSink) LastState() StateNotice {
	if len(f.States) == 0 {
		return StateNotice{}
	}
	return f.States[len(f.States)-1]
}

// FakeSensor returns a fixed temperature.
type FakeSensor struct {
	// Temperature is returned by every ReadTemperature call.
	Temperature float64

	// Reads counts ReadTemperature calls.
	Reads int
}

// ReadTemperature returns the configured temperature.
func (f *FakeSensor) ReadTemperature() float64 {
	f.Reads++
	return f.Temperature
}
