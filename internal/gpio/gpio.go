// Package gpio provides valve/motor output control and button input reading
// with hardware abstraction. The real implementations use the Linux GPIO
// character device; the fakes allow testing without hardware.
package gpio

// Driver commands the discrete outputs: two water valves and the two motor
// windings. Commands are idempotent; re-asserting the current level is fine.
type Driver interface {
	// SetValves sets the hot and cold water valve outputs.
	SetValves(hot, cold bool) error

	// SetMotor sets the forward and reverse motor winding outputs.
	SetMotor(forward, reverse bool) error

	// Close releases GPIO resources with all outputs driven off.
	Close() error
}

// ButtonReader reads the four momentary button levels.
type ButtonReader interface {
	// Read returns the logical button levels (true = pressed).
	// The raw GPIO values are inverted: buttons are active-low.
	Read() (Sample, error)

	// Close releases GPIO resources.
	Close() error
}

// Sample is one reading of all button levels (already in logical form).
type Sample struct {
	Start bool
	Stop  bool
	Up    bool
	Down  bool
}

// Default pin assignments (BCM numbering).
const (
	DefaultPinStart = 5
	DefaultPinStop  = 6
	DefaultPinUp    = 13
	DefaultPinDown  = 19

	DefaultPinHotValve     = 12
	DefaultPinColdValve    = 16
	DefaultPinMotorForward = 20
	DefaultPinMotorReverse = 21
)
