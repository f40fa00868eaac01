package sensor

import "errors"

// Fake is a test double that returns scripted temperature readings.
type Fake struct {
	// Temps contains scripted readings. Each ReadTemperature() consumes
	// the next value; once exhausted, the last value repeats.
	Temps []float64

	// index tracks current position in Temps
	index int

	// Closed tracks if Close was called
	Closed bool

	// ReadError, if set, will be returned by ReadTemperature()
	ReadError error
}

// NewFake creates a Fake with the given readings.
func NewFake(temps []float64) *Fake {
	return &Fake{Temps: temps}
}

// ReadTemperature returns the next scripted reading.
func (f *Fake) ReadTemperature() (float64, error) {
	if f.ReadError != nil {
		return 0, f.ReadError
	}

	if len(f.Temps) == 0 {
		return 0, errors.New("no readings configured")
	}

	t := f.Temps[f.index]
	if f.index < len(f.Temps)-1 {
		f.index++
	}
	return t, nil
}

// Close marks the sensor as closed.
func (f *Fake) Close() error {
	f.Closed = true
	return nil
}
