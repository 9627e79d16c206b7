package notify

import (
	"fmt"
	"io"

	"device-control/internal/domain"
	"device-control/internal/logging"
)

// ConsoleNotifier implements domain.Listener by formatting each change with a
// MessageGenerator and printing it.
// This is a secondary adapter.
type ConsoleNotifier struct {
	domain.MessageGenerator
	out io.Writer
}

// NewConsoleNotifier creates a notifier writing to out.
func NewConsoleNotifier(out io.Writer) *ConsoleNotifier {
	return &ConsoleNotifier{out: out}
}

// Update records the message and prints it as "Notification: <message>".
func (c *ConsoleNotifier) Update(name string, value domain.Value) {
	c.MessageGenerator.Update(name, value)
	logging.Debugf("%s changed (%s)", name, value.Kind())
	fmt.Fprintf(c.out, "Notification: %s\n", c.CurrentMessage())
}
