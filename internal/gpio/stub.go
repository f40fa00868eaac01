//go:build !linux

package gpio

import "errors"

var errUnsupported = errors.New("gpio: not supported on this platform (requires Linux)")

// RealDriver is not available on non-Linux platforms.
type RealDriver struct{}

// NewRealDriver returns an error on non-Linux platforms.
func NewRealDriver(pinHot, pinCold, pinForward, pinReverse int) (*RealDriver, error) {
	return nil, errUnsupported
}

// SetValves is not implemented on non-Linux platforms.
func (d *RealDriver) SetValves(hot, cold bool) error { return errUnsupported }

// SetMotor is not implemented on non-Linux platforms.
func (d *RealDriver) SetMotor(forward, reverse bool) error { return errUnsupported }

// Close is not implemented on non-Linux platforms.
func (d *RealDriver) Close() error { return nil }

// RealButtons is not available on non-Linux platforms.
type RealButtons struct{}

// NewRealButtons returns an error on non-Linux platforms.
func NewRealButtons(pinStart, pinStop, pinUp, pinDown int) (*RealButtons, error) {
	return nil, errUnsupported
}

// Read is not implemented on non-Linux platforms.
func (b *RealButtons) Read() (Sample, error) { return Sample{}, errUnsupported }

// Close is not implemented on non-Linux platforms.
func (b *RealButtons) Close() error { return nil }
