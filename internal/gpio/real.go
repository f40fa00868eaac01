//go:build linux

package gpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// RealDriver drives the valve and motor outputs on actual hardware using
// the Linux GPIO character device.
type RealDriver struct {
	chip    *gpiocdev.Chip
	hot     *gpiocdev.Line
	cold    *gpiocdev.Line
	forward *gpiocdev.Line
	reverse *gpiocdev.Line
}

// NewRealDriver requests the four output lines, all initially off.
func NewRealDriver(pinHot, pinCold, pinForward, pinReverse int) (*RealDriver, error) {
	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	d := &RealDriver{chip: chip}
	lines := []struct {
		name string
		pin  int
		dst  **gpiocdev.Line
	}{
		{"hot valve", pinHot, &d.hot},
		{"cold valve", pinCold, &d.cold},
		{"motor forward", pinForward, &d.forward},
		{"motor reverse", pinReverse, &d.reverse},
	}
	for _, l := range lines {
		line, err := chip.RequestLine(l.pin, gpiocdev.AsOutput(0))
		if err != nil {
			d.Close()
			return nil, fmt.Errorf("request %s pin %d: %w", l.name, l.pin, err)
		}
		*l.dst = line
	}
	return d, nil
}

// SetValves sets the water valve outputs.
func (d *RealDriver) SetValves(hot, cold bool) error {
	if err := d.hot.SetValue(boolToValue(hot)); err != nil {
		return fmt.Errorf("set hot valve: %w", err)
	}
	if err := d.cold.SetValue(boolToValue(cold)); err != nil {
		return fmt.Errorf("set cold valve: %w", err)
	}
	return nil
}

// SetMotor sets the motor winding outputs.
func (d *RealDriver) SetMotor(forward, reverse bool) error {
	if err := d.forward.SetValue(boolToValue(forward)); err != nil {
		return fmt.Errorf("set motor forward: %w", err)
	}
	if err := d.reverse.SetValue(boolToValue(reverse)); err != nil {
		return fmt.Errorf("set motor reverse: %w", err)
	}
	return nil
}

// Close drives all outputs off and releases GPIO resources. Valves and
// motor must never be left energized past process exit.
func (d *RealDriver) Close() error {
	var errs []error
	for _, line := range []*gpiocdev.Line{d.hot, d.cold, d.forward, d.reverse} {
		if line == nil {
			continue
		}
		if err := line.SetValue(0); err != nil {
			errs = append(errs, fmt.Errorf("clear output: %w", err))
		}
		if err := line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close output: %w", err))
		}
	}
	if d.chip != nil {
		if err := d.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

// RealButtons reads the four button inputs on actual hardware.
type RealButtons struct {
	chip  *gpiocdev.Chip
	start *gpiocdev.Line
	stop  *gpiocdev.Line
	up    *gpiocdev.Line
	down  *gpiocdev.Line
}

// NewRealButtons requests the button lines as inputs with pull-up, matching
// the active-low momentary switches wired to ground.
func NewRealButtons(pinStart, pinStop, pinUp, pinDown int) (*RealButtons, error) {
	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	b := &RealButtons{chip: chip}
	lines := []struct {
		name string
		pin  int
		dst  **gpiocdev.Line
	}{
		{"start", pinStart, &b.start},
		{"stop", pinStop, &b.stop},
		{"up", pinUp, &b.up},
		{"down", pinDown, &b.down},
	}
	for _, l := range lines {
		line, err := chip.RequestLine(l.pin, gpiocdev.AsInput, gpiocdev.WithPullUp)
		if err != nil {
			b.Close()
			return nil, fmt.Errorf("request %s button pin %d: %w", l.name, l.pin, err)
		}
		*l.dst = line
	}
	return b, nil
}

// Read returns the logical button levels.
// Inverts raw GPIO: raw low (0) = pressed, raw high (1) = released.
func (b *RealButtons) Read() (Sample, error) {
	var s Sample
	reads := []struct {
		name string
		line *gpiocdev.Line
		dst  *bool
	}{
		{"start", b.start, &s.Start},
		{"stop", b.stop, &s.Stop},
		{"up", b.up, &s.Up},
		{"down", b.down, &s.Down},
	}
	for _, r := range reads {
		raw, err := r.line.Value()
		if err != nil {
			return Sample{}, fmt.Errorf("read %s button: %w", r.name, err)
		}
		*r.dst = raw == 0
	}
	return s, nil
}

// Close releases GPIO resources.
func (b *RealButtons) Close() error {
	var errs []error
	for _, line := range []*gpiocdev.Line{b.start, b.stop, b.up, b.down} {
		if line == nil {
			continue
		}
		if err := line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close button: %w", err))
		}
	}
	if b.chip != nil {
		if err := b.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

func boolToValue(on bool) int {
	if on {
		return 1
	}
	return 0
}
