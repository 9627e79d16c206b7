package domain

import (
	"fmt"
	"io"
	"os"
)

// Preamp level bounds in dB.
const (
	MinusInfinityDb = -127
	UnityGainDb     = 0
)

// Control names carried by notifications.
const (
	ControlPreampLevel  = "preampLevel"
	ControlPhantomPower = "phantomPower"
)

// Device is a simulated audio interface with a preamp gain control and a
// phantom power switch. It is not safe for concurrent use.
type Device struct {
	modelName     string
	preampLevelDb int
	phantomPower  bool

	listeners []Listener
	diag      io.Writer
}

// Option configures a Device.
type Option func(*Device)

// WithDiagnostics sets where rejected writes are reported. Defaults to os.Stdout.
func WithDiagnostics(w io.Writer) Option {
	return func(d *Device) {
		if w != nil {
			d.diag = w
		}
	}
}

// NewDevice creates a device fully attenuated with phantom power off.
func NewDevice(modelName string, opts ...Option) *Device {
	d := &Device{
		modelName:     modelName,
		preampLevelDb: MinusInfinityDb,
		diag:          os.Stdout,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// ModelName returns the name the device was created with.
func (d *Device) ModelName() string {
	return d.modelName
}

// AddListener registers l. The same listener may be added more than once.
func (d *Device) AddListener(l Listener) {
	d.listeners = append(d.listeners, l)
}

// RemoveListener drops the first registration of l, if any.
func (d *Device) RemoveListener(l Listener) {
	for i, existing := range d.listeners {
		if existing == l {
			d.listeners = append(d.listeners[:i:i], d.listeners[i+1:]...)
			return
		}
	}
}

// ListenerCount returns the number of registrations.
func (d *Device) ListenerCount() int {
	return len(d.listeners)
}

// ValidatePreampLevel reports whether level is inside [MinusInfinityDb, UnityGainDb].
func ValidatePreampLevel(level int) error {
	if level < MinusInfinityDb || level > UnityGainDb {
		return fmt.Errorf("%w (got %d)", ErrPreampOutOfRange, level)
	}
	return nil
}

// SetPreampLevel applies level and notifies listeners. Out-of-range levels
// are reported on the diagnostics writer and leave the device untouched.
func (d *Device) SetPreampLevel(level int) {
	if err := ValidatePreampLevel(level); err != nil {
		fmt.Fprintf(d.diag, "Preamp level must be between %d and %d\n", MinusInfinityDb, UnityGainDb)
		return
	}
	d.preampLevelDb = level
	d.notifyListeners(ControlPreampLevel, IntValue(level))
}

// PreampLevel returns the current level in dB.
func (d *Device) PreampLevel() int {
	return d.preampLevelDb
}

// SetPhantomPower switches 48V phantom power and notifies listeners.
func (d *Device) SetPhantomPower(on bool) {
	d.phantomPower = on
	d.notifyListeners(ControlPhantomPower, BoolValue(on))
}

// PhantomPower reports whether phantom power is on.
func (d *Device) PhantomPower() bool {
	return d.phantomPower
}

// PhantomPowerString returns "on" or "off".
func (d *Device) PhantomPowerString() string {
	return OnOff(d.phantomPower)
}

// notifyListeners fans out over a snapshot so listeners may add or remove
// registrations from inside Update.
func (d *Device) notifyListeners(name string, value Value) {
	subs := make([]Listener, len(d.listeners))
	copy(subs, d.listeners)

	for _, l := range subs {
		l.Update(name, value)
	}
}
