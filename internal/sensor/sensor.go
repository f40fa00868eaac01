// Package sensor provides calibrated water temperature readings with
// hardware abstraction. The real implementation samples a raw ADC value
// through the Linux IIO sysfs interface; the fake returns scripted values.
package sensor

import "log"

// Sensor reads the water temperature.
type Sensor interface {
	// ReadTemperature returns the current temperature in °C.
	ReadTemperature() (float64, error)

	// Close releases sensor resources.
	Close() error
}

// Latched adapts a fallible Sensor to the control loop's no-fail contract:
// read errors are logged and the last good reading is returned instead.
// The initial value should sit in the mix band so a sensor that never
// answers commands both valves rather than scalding water.
type Latched struct {
	sensor Sensor
	last   float64
}

// NewLatched wraps s with the given initial reading.
func NewLatched(s Sensor, initial float64) *Latched {
	return &Latched{sensor: s, last: initial}
}

// ReadTemperature returns the latest good temperature reading.
func (l *Latched) ReadTemperature() float64 {
	t, err := l.sensor.ReadTemperature()
	if err != nil {
		log.Printf("temperature read error: %v", err)
		return l.last
	}
	l.last = t
	return t
}

// Close releases the underlying sensor.
func (l *Latched) Close() error {
	return l.sensor.Close()
}
