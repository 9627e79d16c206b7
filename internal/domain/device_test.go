package domain_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"device-control/internal/domain"
)

type spyListener struct {
	calls     int
	lastName  string
	lastValue domain.Value
}

func (s *spyListener) Update(name string, value domain.Value) {
	s.calls++
	s.lastName = name
	s.lastValue = value
}

type mockListener struct {
	mock.Mock
}

func (m *mockListener) Update(name string, value domain.Value) {
	m.Called(name, value)
}

func newTestDevice(t *testing.T) (*domain.Device, *bytes.Buffer) {
	t.Helper()
	var diag bytes.Buffer
	return domain.NewDevice("testDevice", domain.WithDiagnostics(&diag)), &diag
}

func TestNewDevice_Defaults(t *testing.T) {
	d, _ := newTestDevice(t)

	assert.Equal(t, "testDevice", d.ModelName())
	assert.Equal(t, domain.MinusInfinityDb, d.PreampLevel())
	assert.False(t, d.PhantomPower())
	assert.Equal(t, "off", d.PhantomPowerString())
	assert.Zero(t, d.ListenerCount())
}

func TestSetPreampLevel_InRange(t *testing.T) {
	for level := domain.MinusInfinityDb; level <= domain.UnityGainDb; level++ {
		d, diag := newTestDevice(t)
		spy := &spyListener{}
		d.AddListener(spy)

		d.SetPreampLevel(level)

		require.Equal(t, level, d.PreampLevel())
		require.Equal(t, 1, spy.calls)
		require.Equal(t, domain.ControlPreampLevel, spy.lastName)
		got, ok := spy.lastValue.Int()
		require.True(t, ok)
		require.Equal(t, level, got)
		require.Empty(t, diag.String())
	}
}

func TestSetPreampLevel_OutOfRange(t *testing.T) {
	for _, level := range []int{-128, -1000, 1, 6, 127} {
		d, diag := newTestDevice(t)
		d.SetPreampLevel(-20)
		spy := &spyListener{}
		d.AddListener(spy)

		d.SetPreampLevel(level)

		assert.Equal(t, -20, d.PreampLevel(), "level %d", level)
		assert.Zero(t, spy.calls, "level %d", level)
		assert.Equal(t, "Preamp level must be between -127 and 0\n", diag.String())
	}
}

func TestValidatePreampLevel(t *testing.T) {
	assert.NoError(t, domain.ValidatePreampLevel(-127))
	assert.NoError(t, domain.ValidatePreampLevel(0))

	err := domain.ValidatePreampLevel(3)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrPreampOutOfRange))
	assert.Contains(t, err.Error(), "got 3")
}

func TestSetPhantomPower(t *testing.T) {
	for _, on := range []bool{true, false} {
		d, _ := newTestDevice(t)
		spy := &spyListener{}
		d.AddListener(spy)

		d.SetPhantomPower(on)

		assert.Equal(t, on, d.PhantomPower())
		assert.Equal(t, domain.OnOff(on), d.PhantomPowerString())
		assert.Equal(t, 1, spy.calls)
		assert.Equal(t, domain.ControlPhantomPower, spy.lastName)
		got, ok := spy.lastValue.Bool()
		assert.True(t, ok)
		assert.Equal(t, on, got)
	}
}

func TestSetPhantomPower_RepeatedValueStillNotifies(t *testing.T) {
	d, _ := newTestDevice(t)
	spy := &spyListener{}
	d.AddListener(spy)

	d.SetPhantomPower(true)
	d.SetPhantomPower(true)

	assert.Equal(t, 2, spy.calls)
}

func TestNotify_RegistrationOrder(t *testing.T) {
	d, _ := newTestDevice(t)
	first := &mockListener{}
	second := &mockListener{}

	c1 := first.On("Update", domain.ControlPreampLevel, domain.IntValue(-6)).Return().Once()
	second.On("Update", domain.ControlPreampLevel, domain.IntValue(-6)).Return().Once().NotBefore(c1)

	d.AddListener(first)
	d.AddListener(second)
	d.SetPreampLevel(-6)

	first.AssertExpectations(t)
	second.AssertExpectations(t)
}

func TestRemoveListener(t *testing.T) {
	d, _ := newTestDevice(t)
	removed := &spyListener{}
	kept := &spyListener{}
	d.AddListener(removed)
	d.AddListener(kept)

	d.RemoveListener(removed)
	d.SetPreampLevel(-10)
	d.SetPhantomPower(true)

	assert.Zero(t, removed.calls)
	assert.Equal(t, 2, kept.calls)
	assert.Equal(t, 1, d.ListenerCount())
}

func TestRemoveListener_FirstMatchOnly(t *testing.T) {
	d, _ := newTestDevice(t)
	spy := &spyListener{}
	d.AddListener(spy)
	d.AddListener(spy)

	d.RemoveListener(spy)
	d.SetPreampLevel(-1)

	assert.Equal(t, 1, spy.calls)
	assert.Equal(t, 1, d.ListenerCount())
}

func TestRemoveListener_NotRegistered(t *testing.T) {
	d, _ := newTestDevice(t)
	kept := &spyListener{}
	d.AddListener(kept)

	d.RemoveListener(&spyListener{})

	assert.Equal(t, 1, d.ListenerCount())
}

type selfRemovingListener struct {
	device *domain.Device
	calls  int
}

func (s *selfRemovingListener) Update(string, domain.Value) {
	s.calls++
	s.device.RemoveListener(s)
}

func TestRemoveListener_DuringNotification(t *testing.T) {
	d, _ := newTestDevice(t)
	self := &selfRemovingListener{device: d}
	after := &spyListener{}
	d.AddListener(self)
	d.AddListener(after)

	d.SetPreampLevel(-3)
	d.SetPreampLevel(-4)

	assert.Equal(t, 1, self.calls)
	assert.Equal(t, 2, after.calls)
}

func TestListenerSharedAcrossDevices(t *testing.T) {
	a, _ := newTestDevice(t)
	b, _ := newTestDevice(t)
	spy := &spyListener{}
	a.AddListener(spy)
	b.AddListener(spy)

	a.SetPreampLevel(-1)
	b.SetPhantomPower(true)

	assert.Equal(t, 2, spy.calls)
	assert.Equal(t, domain.ControlPhantomPower, spy.lastName)
}
