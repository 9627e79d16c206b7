package usecase

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"device-control/internal/domain"
	"device-control/internal/logging"
)

// Command prefixes, in the order they are matched.
const (
	CommandSetPreampLevel  = "set-preamp-level"
	CommandSetPhantomPower = "set-phantom-power"
)

// CommandDispatcher is the primary port that turns one protocol line into a
// device mutation.
type CommandDispatcher interface {
	// Dispatch reports whether command was recognized. A recognized command
	// with a bad argument still returns true; the problem is written to the
	// dispatcher's output instead.
	Dispatch(command string) bool
}

type commandInteractor struct {
	device *domain.Device
	out    io.Writer
}

// NewCommandDispatcher creates a dispatcher bound to device. Argument
// diagnostics are written to out.
func NewCommandDispatcher(device *domain.Device, out io.Writer) CommandDispatcher {
	if out == nil {
		out = io.Discard
	}
	return &commandInteractor{device: device, out: out}
}

func (c *commandInteractor) Dispatch(command string) bool {
	if token, ok := FindValueString(command, CommandSetPreampLevel); ok {
		logging.Tracef("matched %s with %q", CommandSetPreampLevel, token)
		level, err := ParsePreampLevel(token)
		if err != nil {
			logging.Infof("rejected %s: %v", CommandSetPreampLevel, err)
			fmt.Fprintf(c.out, "Preamp level must be an integer between %d and %d (got %q)\n",
				domain.MinusInfinityDb, domain.UnityGainDb, token)
			return true
		}
		if err := domain.ValidatePreampLevel(level); err != nil {
			logging.Infof("rejected %s: %v", CommandSetPreampLevel, err)
		}
		c.device.SetPreampLevel(level)
		return true
	}

	if token, ok := FindValueString(command, CommandSetPhantomPower); ok {
		logging.Tracef("matched %s with %q", CommandSetPhantomPower, token)
		on, err := ParsePhantomPower(token)
		if err != nil {
			logging.Infof("rejected %s: %v", CommandSetPhantomPower, err)
			fmt.Fprintln(c.out, "Phantom can only have values [on/off or 1/0]")
			return true
		}
		c.device.SetPhantomPower(on)
		return true
	}

	logging.Debugf("unrecognized command %q", command)
	return false
}

// FindValueString strips prefix from input and removes every whitespace rune
// from what remains. ok is false when input does not start with prefix.
func FindValueString(input, prefix string) (value string, ok bool) {
	rest, ok := strings.CutPrefix(input, prefix)
	if !ok {
		return "", false
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, rest), true
}

// ParsePreampLevel parses a signed decimal level. It does not range-check.
func ParsePreampLevel(token string) (int, error) {
	level, err := strconv.Atoi(token)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", domain.ErrMalformedLevel, token)
	}
	return level, nil
}

// ParsePhantomPower maps on/1 to true and off/0 to false. Matching is case-sensitive.
func ParsePhantomPower(token string) (bool, error) {
	switch token {
	case "on", "1":
		return true, nil
	case "off", "0":
		return false, nil
	default:
		return false, fmt.Errorf("%w: %q", domain.ErrInvalidPhantomToken, token)
	}
}
