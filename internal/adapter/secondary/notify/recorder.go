package notify

import "device-control/internal/domain"

// Recorder implements domain.Listener by counting calls and keeping the most
// recent notification. Useful for tests and the self-test harness.
type Recorder struct {
	calls     int
	lastName  string
	lastValue domain.Value
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Update counts the call and remembers name and value.
func (r *Recorder) Update(name string, value domain.Value) {
	r.calls++
	r.lastName = name
	r.lastValue = value
}

// CallCount returns how many notifications were received.
func (r *Recorder) CallCount() int {
	return r.calls
}

// LatestName returns the control name of the last notification.
func (r *Recorder) LatestName() string {
	return r.lastName
}

// LatestValue returns the payload of the last notification.
func (r *Recorder) LatestValue() domain.Value {
	return r.lastValue
}
