package washer

import "testing"

func newTestController(temp float64) (*Controller, *FakeOutputs, *FakeSink, *FakeSensor) {
	outputs := &FakeOutputs{}
	sink := &FakeSink{}
	sensor := &FakeSensor{Temperature: temp}
	c := New(outputs, sink, sensor)
	c.Init()
	return c, outputs, sink, sensor
}

func TestInitDefaults(t *testing.T) {
	c, _, sink, _ := newTestController(30.0)

	ctl := c.Snapshot()
	if ctl.State != StateIdle {
		t.Errorf("state: got %s, want IDLE", ctl.State)
	}
	if ctl.Program != 0 {
		t.Errorf("program: got %d, want 0", ctl.Program)
	}
	if ctl.Step != 0 {
		t.Errorf("step: got %d, want 0", ctl.Step)
	}
	if ctl.PhaseStart != 0 {
		t.Errorf("phase start: got %d, want 0", ctl.PhaseStart)
	}
	if ctl.Direction != DirectionForward {
		t.Errorf("direction: got %s, want FORWARD", ctl.Direction)
	}

	if len(sink.States) != 1 {
		t.Fatalf("expected 1 state notification, got %d", len(sink.States))
	}
	if sink.States[0] != (StateNotice{State: StateIdle, Program: 0}) {
		t.Errorf("unexpected init notification: %+v", sink.States[0])
	}
}

func TestIdleCommandsAllOutputsOff(t *testing.T) {
	c, outputs, _, _ := newTestController(30.0)

	c.Update(100)
	if outputs.Hot || outputs.Cold || outputs.Forward || outputs.Reverse {
		t.Errorf("expected all outputs off in IDLE, got %+v", outputs)
	}
	if c.State() != StateIdle {
		t.Errorf("IDLE should not advance on its own, got %s", c.State())
	}
}

func TestStartFromIdle(t *testing.T) {
	c, _, sink, _ := newTestController(30.0)

	c.HandleButton(ButtonStart, 500)
	if c.State() != StateFill {
		t.Fatalf("state: got %s, want FILL_WATER", c.State())
	}
	if got := c.Snapshot().PhaseStart; got != 500 {
		t.Errorf("phase start: got %d, want 500", got)
	}
	if sink.LastState() != (StateNotice{State: StateFill, Program: 0}) {
		t.Errorf("unexpected notification: %+v", sink.LastState())
	}
}

func TestStartIgnoredOutsideIdle(t *testing.T) {
	for _, state := range []State{StateFill, StateWash, StateRinse, StateSpin, StateError} {
		c, _, sink, _ := newTestController(30.0)
		c.control.State = state
		before := len(sink.States)

		c.HandleButton(ButtonStart, 100)
		if c.State() != state {
			t.Errorf("%s: Start changed state to %s", state, c.State())
		}
		if len(sink.States) != before {
			t.Errorf("%s: ignored Start should not notify", state)
		}
	}
}

func TestStopOverridesAnyState(t *testing.T) {
	for _, state := range []State{StateIdle, StateFill, StateWash, StateRinse, StateSpin, StateError} {
		c, _, sink, _ := newTestController(30.0)
		c.control.State = state

		c.HandleButton(ButtonStop, 1234)
		if c.State() != StateIdle {
			t.Errorf("%s: Stop yielded %s, want IDLE", state, c.State())
		}
		if got := c.Snapshot().PhaseStart; got != 1234 {
			t.Errorf("%s: phase start: got %d, want 1234", state, got)
		}
		if sink.LastState().State != StateIdle {
			t.Errorf("%s: Stop did not notify IDLE", state)
		}
	}
}

func TestProgramSelection(t *testing.T) {
	c, _, sink, _ := newTestController(30.0)

	c.HandleButton(ButtonProgramUp, 0)
	c.HandleButton(ButtonProgramUp, 0)
	if c.Program() != 2 {
		t.Errorf("program: got %d, want 2", c.Program())
	}
	c.HandleButton(ButtonProgramDown, 0)
	if c.Program() != 1 {
		t.Errorf("program: got %d, want 1", c.Program())
	}
	if len(sink.Programs) != 3 {
		t.Fatalf("expected 3 program notifications, got %d", len(sink.Programs))
	}
	want := []int{1, 2, 1}
	for i, p := range want {
		if sink.Programs[i] != p {
			t.Errorf("notification %d: got %d, want %d", i, sink.Programs[i], p)
		}
	}
}

func TestProgramFloorClamp(t *testing.T) {
	c, _, sink, _ := newTestController(30.0)

	c.HandleButton(ButtonProgramDown, 0)
	if c.Program() != 0 {
		t.Errorf("program: got %d, want 0", c.Program())
	}
	if len(sink.Programs) != 0 {
		t.Errorf("clamped press should not notify, got %d notifications", len(sink.Programs))
	}
}

func TestProgramCeilingClamp(t *testing.T) {
	c, _, sink, _ := newTestController(30.0)
	c.control.Program = MaxProgram

	c.HandleButton(ButtonProgramUp, 0)
	if c.Program() != MaxProgram {
		t.Errorf("program: got %d, want %d", c.Program(), MaxProgram)
	}
	if len(sink.Programs) != 0 {
		t.Errorf("clamped press should not notify, got %d notifications", len(sink.Programs))
	}
}

func TestProgramAlwaysInRange(t *testing.T) {
	c, _, _, _ := newTestController(30.0)

	presses := []Button{ButtonProgramDown, ButtonProgramUp, ButtonProgramDown, ButtonProgramDown}
	for i := 0; i < 100; i++ {
		c.HandleButton(presses[i%len(presses)], uint32(i))
		if p := c.Program(); p < 0 || p > MaxProgram {
			t.Fatalf("press %d: program %d out of range", i, p)
		}
	}
	for i := 0; i < 2*MaxProgram; i++ {
		c.HandleButton(ButtonProgramUp, 0)
	}
	if c.Program() != MaxProgram {
		t.Errorf("program: got %d, want %d", c.Program(), MaxProgram)
	}
}

func TestProgramLockedWhileRunning(t *testing.T) {
	c, _, _, _ := newTestController(30.0)
	c.HandleButton(ButtonStart, 0)

	c.HandleButton(ButtonProgramUp, 100)
	c.HandleButton(ButtonProgramDown, 200)
	if c.Program() != 0 {
		t.Errorf("program changed while running: got %d, want 0", c.Program())
	}
}

func TestFillTiming(t *testing.T) {
	c, _, _, _ := newTestController(30.0)
	c.control.Program = 5
	c.HandleButton(ButtonStart, 0)

	c.Update(9999)
	if c.State() != StateFill {
		t.Fatalf("at 9999ms: got %s, want FILL_WATER", c.State())
	}

	c.Update(10000)
	if c.State() != StateWash {
		t.Fatalf("at 10000ms: got %s, want WASH", c.State())
	}
	if got := c.Snapshot().PhaseStart; got != 10000 {
		t.Errorf("phase start: got %d, want 10000", got)
	}
	if c.Program() != 5 {
		t.Errorf("program: got %d, want 5", c.Program())
	}
}

func TestFillClosesValvesOnExit(t *testing.T) {
	c, outputs, _, _ := newTestController(30.0)
	c.HandleButton(ButtonStart, 0)

	c.Update(5000)
	if !outputs.Hot || !outputs.Cold {
		t.Fatalf("mix band should open both valves, got hot=%v cold=%v", outputs.Hot, outputs.Cold)
	}

	c.Update(10000)
	if outputs.Hot || outputs.Cold {
		t.Errorf("valves still open after FILL_WATER exit: hot=%v cold=%v", outputs.Hot, outputs.Cold)
	}
}

func TestFillValvePolicy(t *testing.T) {
	cases := []struct {
		temp float64
		hot  bool
		cold bool
	}{
		{24.9, true, false},
		{25.0, true, true},
		{30.0, true, true},
		{35.0, true, true},
		{35.1, false, true},
	}
	for _, tc := range cases {
		c, outputs, _, sensor := newTestController(tc.temp)
		c.HandleButton(ButtonStart, 0)

		c.Update(100)
		if outputs.Hot != tc.hot || outputs.Cold != tc.cold {
			t.Errorf("%.1f°C: got hot=%v cold=%v, want hot=%v cold=%v",
				tc.temp, outputs.Hot, outputs.Cold, tc.hot, tc.cold)
		}
		if sensor.Reads != 1 {
			t.Errorf("%.1f°C: expected 1 sensor read per update, got %d", tc.temp, sensor.Reads)
		}
	}
}

func TestValvesForTemperature(t *testing.T) {
	cases := []struct {
		temp float64
		hot  bool
		cold bool
	}{
		{-5.0, true, false},
		{24.999, true, false},
		{25.0, true, true},
		{35.0, true, true},
		{35.001, false, true},
		{90.0, false, true},
	}
	for _, tc := range cases {
		hot, cold := ValvesForTemperature(tc.temp)
		if hot != tc.hot || cold != tc.cold {
			t.Errorf("%.3f°C: got hot=%v cold=%v, want hot=%v cold=%v",
				tc.temp, hot, cold, tc.hot, tc.cold)
		}
	}
}

func TestUpdateIdempotentWithinTick(t *testing.T) {
	c, _, _, _ := newTestController(30.0)
	c.HandleButton(ButtonStart, 0)

	for i := 0; i < 10; i++ {
		c.Update(5000)
	}
	if c.State() != StateFill {
		t.Errorf("repeated updates without time advancing left %s, want FILL_WATER", c.State())
	}
}

func TestWashRinseSpinSequence(t *testing.T) {
	c, outputs, sink, _ := newTestController(30.0)
	c.control.State = StateWash

	c.Update(1000)
	if c.State() != StateRinse {
		t.Fatalf("after WASH update: got %s, want RINSE", c.State())
	}

	c.Update(1100)
	if c.State() != StateSpin {
		t.Fatalf("after RINSE update: got %s, want SPIN", c.State())
	}
	if c.Snapshot().Direction != DirectionForward {
		t.Errorf("direction on SPIN entry: got %s, want FORWARD", c.Snapshot().Direction)
	}

	c.Update(1200)
	if c.State() != StateIdle {
		t.Fatalf("after SPIN update: got %s, want IDLE", c.State())
	}
	if !outputs.Forward || outputs.Reverse {
		t.Errorf("SPIN should drive motor forward only, got forward=%v reverse=%v",
			outputs.Forward, outputs.Reverse)
	}

	want := []State{StateRinse, StateSpin, StateIdle}
	got := sink.States[len(sink.States)-3:]
	for i, s := range want {
		if got[i].State != s {
			t.Errorf("notification %d: got %s, want %s", i, got[i].State, s)
		}
	}
}

func TestCorruptStateRoutesToError(t *testing.T) {
	c, outputs, sink, _ := newTestController(30.0)
	c.control.State = State("\xff\x03")

	c.Update(100)
	if c.State() != StateError {
		t.Fatalf("corrupt state: got %s, want ERROR", c.State())
	}
	if sink.LastState().State != StateError {
		t.Errorf("ERROR entry not notified, last=%+v", sink.LastState())
	}

	c.Update(200)
	if outputs.Hot || outputs.Cold || outputs.Forward || outputs.Reverse {
		t.Errorf("expected all outputs off in ERROR, got %+v", outputs)
	}
}

func TestErrorPersistsUntilStop(t *testing.T) {
	c, _, _, _ := newTestController(30.0)
	c.control.State = StateError

	for i := 0; i < 5; i++ {
		c.Update(uint32(i * 100))
		if c.State() != StateError {
			t.Fatalf("update %d left ERROR without Stop: %s", i, c.State())
		}
	}

	c.HandleButton(ButtonStart, 600)
	if c.State() != StateError {
		t.Fatalf("Start should be ignored in ERROR, got %s", c.State())
	}

	c.HandleButton(ButtonStop, 700)
	if c.State() != StateIdle {
		t.Fatalf("Stop from ERROR: got %s, want IDLE", c.State())
	}
}

func TestFillTimingSurvivesTickWraparound(t *testing.T) {
	// Phase starts just before the 32-bit counter wraps; the elapsed time
	// computation must still see 10s after the wrap.
	start := uint32(0xFFFFF000)
	c, _, _, _ := newTestController(30.0)
	c.HandleButton(ButtonStart, start)

	c.Update(start + 9999) // wraps past zero
	if c.State() != StateFill {
		t.Fatalf("9999ms across wrap: got %s, want FILL_WATER", c.State())
	}

	c.Update(start + 10000)
	if c.State() != StateWash {
		t.Fatalf("10000ms across wrap: got %s, want WASH", c.State())
	}
}

func TestOutputAssertionWindows(t *testing.T) {
	// Run a complete cycle and check every commanded output snapshot:
	// valves open only during FILL_WATER, motor forward only from SPIN
	// until the next IDLE update clears it.
	c, outputs, _, _ := newTestController(30.0)

	c.Update(0) // IDLE
	c.HandleButton(ButtonStart, 100)

	// phases[i] holds the state the controller was in when History[i]
	// was commanded.
	phases := make([]State, len(outputs.History))
	for i := range phases {
		phases[i] = StateIdle
	}

	for _, tick := range []uint32{200, 5000, 10100, 10200, 10300, 10400, 10500} {
		before := c.State()
		c.Update(tick)
		for len(phases) < len(outputs.History) {
			phases = append(phases, before)
		}
	}

	for i, snap := range outputs.History {
		state := phases[i]
		if (snap.Hot || snap.Cold) && state != StateFill {
			t.Errorf("snapshot %d: valves open in %s", i, state)
		}
		if (snap.Forward || snap.Reverse) && state != StateSpin {
			t.Errorf("snapshot %d: motor driven in %s", i, state)
		}
	}

	if c.State() != StateIdle {
		t.Errorf("cycle did not return to IDLE, got %s", c.State())
	}
}

func TestAtMostOneNotificationPerUpdate(t *testing.T) {
	c, _, sink, _ := newTestController(30.0)
	c.HandleButton(ButtonStart, 0)

	states := []uint32{100, 9999, 10000, 10100, 10200, 10300, 10400}
	for _, tick := range states {
		before := len(sink.States)
		c.Update(tick)
		if n := len(sink.States) - before; n > 1 {
			t.Errorf("tick %d: %d notifications in one update", tick, n)
		}
	}
}

func TestStepIndexUnused(t *testing.T) {
	c, _, _, _ := newTestController(30.0)
	c.HandleButton(ButtonStart, 0)
	for _, tick := range []uint32{100, 10000, 10100, 10200, 10300} {
		c.Update(tick)
		if c.Snapshot().Step != 0 {
			t.Fatalf("tick %d: step mutated to %d", tick, c.Snapshot().Step)
		}
	}
}
