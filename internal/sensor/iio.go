package sensor

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// DefaultIIOPath is the raw ADC attribute of the first IIO device.
const DefaultIIOPath = "/sys/bus/iio/devices/iio:device0/in_voltage0_raw"

// iioFullScale is the maximum raw value of the 12-bit ADC.
const iioFullScale = 4095

// IIO reads a raw ADC value from a Linux IIO sysfs attribute and maps it
// linearly onto 0-100°C (12-bit full scale matches the thermistor frontend).
type IIO struct {
	path string
}

// NewIIO creates a sensor reading from the given sysfs attribute path.
func NewIIO(path string) *IIO {
	return &IIO{path: path}
}

// ReadTemperature samples the ADC once and converts to °C.
func (s *IIO) ReadTemperature() (float64, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return 0, fmt.Errorf("read adc: %w", err)
	}

	raw, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("parse adc value %q: %w", strings.TrimSpace(string(data)), err)
	}
	if raw < 0 || raw > iioFullScale {
		return 0, fmt.Errorf("adc value %d out of range", raw)
	}

	return float64(raw) / iioFullScale * 100.0, nil
}

// Close releases sensor resources. The sysfs attribute is opened per read,
// so there is nothing to release.
func (s *IIO) Close() error {
	return nil
}
