package gpio

import "errors"

// FakeDriver records output commands for test assertions.
type FakeDriver struct {
	// Hot, Cold, Forward and Reverse hold the most recent commands.
	Hot     bool
	Cold    bool
	Forward bool
	Reverse bool

	// SetError, if set, will be returned by SetValves and SetMotor.
	SetError error

	// Closed tracks if Close was called.
	Closed bool
}

// SetValves records a valve command.
func (f *FakeDriver) SetValves(hot, cold bool) error {
	if f.SetError != nil {
		return f.SetError
	}
	f.Hot, f.Cold = hot, cold
	return nil
}

// SetMotor records a motor command.
func (f *FakeDriver) SetMotor(forward, reverse bool) error {
	if f.SetError != nil {
		return f.SetError
	}
	f.Forward, f.Reverse = forward, reverse
	return nil
}

// Close marks the driver as closed.
func (f *FakeDriver) Close() error {
	f.Closed = true
	return nil
}

// FakeButtons is a test double that returns scripted button samples.
type FakeButtons struct {
	// Samples contains scripted readings. Each Read() consumes the next
	// sample; once exhausted, the last sample repeats.
	Samples []Sample

	// index tracks current position in Samples
	index int

	// Closed tracks if Close was called
	Closed bool

	// ReadError, if set, will be returned by Read()
	ReadError error
}

// NewFakeButtons creates a FakeButtons with the given samples.
func NewFakeButtons(samples []Sample) *FakeButtons {
	return &FakeButtons{Samples: samples}
}

// Read returns the next scripted sample.
func (f *FakeButtons) Read() (Sample, error) {
	if f.ReadError != nil {
		return Sample{}, f.ReadError
	}

	if len(f.Samples) == 0 {
		return Sample{}, errors.New("no samples configured")
	}

	sample := f.Samples[f.index]
	if f.index < len(f.Samples)-1 {
		f.index++
	}
	return sample, nil
}

// Close marks the reader as closed.
func (f *FakeButtons) Close() error {
	f.Closed = true
	return nil
}

// Reset resets the reader to the beginning of samples.
func (f *FakeButtons) Reset() {
	f.index = 0
	f.Closed = false
}
