// Package selftest runs the built-in checks behind `device-control --test`.
package selftest

import (
	"fmt"
	"io"
	"path/filepath"
	"runtime"

	"device-control/internal/adapter/secondary/notify"
	"device-control/internal/domain"
	"device-control/internal/usecase"
)

// Tester counts failed checks and reports where they happened.
type Tester struct {
	errOut      io.Writer
	current     string
	numFailures int
}

// NewTester creates a tester reporting failures to errOut.
func NewTester(errOut io.Writer) *Tester {
	return &Tester{errOut: errOut}
}

// Check records a failure at the caller's location when assertion is false.
func (t *Tester) Check(assertion bool) {
	if assertion {
		return
	}
	t.numFailures++

	where := "unknown location"
	if _, file, line, ok := runtime.Caller(1); ok {
		where = fmt.Sprintf("%s:%d", filepath.Base(file), line)
	}
	if t.current != "" {
		fmt.Fprintf(t.errOut, "Test failed at %s (%s)\n", where, t.current)
		return
	}
	fmt.Fprintf(t.errOut, "Test failed at %s\n", where)
}

// Failures returns the number of failed checks so far.
func (t *Tester) Failures() int {
	return t.numFailures
}

// Case is a single named self-test.
type Case struct {
	Name string
	Run  func(t *Tester)
}

// Cases lists the built-in checks in execution order.
func Cases() []Case {
	return []Case{
		{"device can set preamp level", testDeviceCanSetPreampLevel},
		{"out of range preamp level is rejected", testOutOfRangePreampLevel},
		{"device can set phantom power", testDeviceCanSetPhantomPower},
		{"removed listener is not notified", testRemoveListener},
		{"message generator", testMessageGenerator},
		{"set-preamp-level command", testSetPreampLevelCommand},
		{"set-phantom-power command", testSetPhantomPowerCommand},
		{"malformed preamp level command", testMalformedPreampLevelCommand},
		{"unrecognized command", testUnrecognizedCommand},
	}
}

// Run executes cases and returns the number of failures. Failed checks are
// reported on errOut, the summary line on out.
func Run(out, errOut io.Writer, cases []Case) int {
	tester := NewTester(errOut)
	for _, c := range cases {
		tester.current = c.Name
		c.Run(tester)
	}
	tester.current = ""

	face := " :)"
	if tester.Failures() != 0 {
		face = " :("
	}
	fmt.Fprintf(out, "Number of test failures: %d%s\n", tester.Failures(), face)
	return tester.Failures()
}

func newQuietDevice() *domain.Device {
	return domain.NewDevice("testDevice", domain.WithDiagnostics(io.Discard))
}

func testDeviceCanSetPreampLevel(t *Tester) {
	device := newQuietDevice()
	listener := notify.NewRecorder()
	device.AddListener(listener)
	t.Check(listener.CallCount() == 0)

	device.SetPreampLevel(-12)

	t.Check(device.PreampLevel() == -12)
	t.Check(listener.CallCount() == 1)
	t.Check(listener.LatestName() == domain.ControlPreampLevel)
	level, ok := listener.LatestValue().Int()
	t.Check(ok && level == -12)
}

func testOutOfRangePreampLevel(t *Tester) {
	device := newQuietDevice()
	listener := notify.NewRecorder()
	device.AddListener(listener)

	device.SetPreampLevel(1)
	device.SetPreampLevel(-128)

	t.Check(device.PreampLevel() == domain.MinusInfinityDb)
	t.Check(listener.CallCount() == 0)
}

func testDeviceCanSetPhantomPower(t *Tester) {
	device := newQuietDevice()
	listener := notify.NewRecorder()
	device.AddListener(listener)
	t.Check(device.PhantomPowerString() == "off")

	device.SetPhantomPower(true)

	t.Check(device.PhantomPowerString() == "on")
	t.Check(listener.CallCount() == 1)
	t.Check(listener.LatestName() == domain.ControlPhantomPower)
	on, ok := listener.LatestValue().Bool()
	t.Check(ok && on)
}

func testRemoveListener(t *Tester) {
	device := newQuietDevice()
	removed := notify.NewRecorder()
	kept := notify.NewRecorder()
	device.AddListener(removed)
	device.AddListener(kept)

	device.RemoveListener(removed)
	device.SetPreampLevel(-3)

	t.Check(removed.CallCount() == 0)
	t.Check(kept.CallCount() == 1)
}

func testMessageGenerator(t *Tester) {
	device := newQuietDevice()
	generator := &domain.MessageGenerator{}
	device.AddListener(generator)

	t.Check(generator.CurrentMessage() == "")
	device.SetPreampLevel(-6)
	t.Check(generator.CurrentMessage() == "preampLevel control changed to -6")
}

func testSetPreampLevelCommand(t *Tester) {
	device := newQuietDevice()
	dispatcher := usecase.NewCommandDispatcher(device, io.Discard)
	t.Check(device.PreampLevel() == domain.MinusInfinityDb)

	succeeded := dispatcher.Dispatch("set-preamp-level -6")

	t.Check(succeeded)
	t.Check(device.PreampLevel() == -6)
}

func testSetPhantomPowerCommand(t *Tester) {
	device := newQuietDevice()
	dispatcher := usecase.NewCommandDispatcher(device, io.Discard)

	t.Check(dispatcher.Dispatch("set-phantom-power on"))
	t.Check(device.PhantomPowerString() == "on")
	t.Check(dispatcher.Dispatch("set-phantom-power 0"))
	t.Check(device.PhantomPowerString() == "off")
	t.Check(dispatcher.Dispatch("set-phantom-power kittens"))
	t.Check(device.PhantomPowerString() == "off")
}

func testMalformedPreampLevelCommand(t *Tester) {
	device := newQuietDevice()
	dispatcher := usecase.NewCommandDispatcher(device, io.Discard)

	t.Check(dispatcher.Dispatch("set-preamp-level loud"))
	t.Check(device.PreampLevel() == domain.MinusInfinityDb)
}

func testUnrecognizedCommand(t *Tester) {
	device := newQuietDevice()
	dispatcher := usecase.NewCommandDispatcher(device, io.Discard)

	t.Check(!dispatcher.Dispatch("bogus-command"))
}
