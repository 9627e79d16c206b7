package domain

// Listener is notified synchronously whenever a Device control changes.
// Register listeners as pointers: RemoveListener matches by interface
// equality, so the dynamic type must be comparable.
type Listener interface {
	Update(name string, value Value)
}

// MessageGenerator keeps a human-readable description of the latest change.
type MessageGenerator struct {
	currentMessage string
}

// Update overwrites the current message.
func (g *MessageGenerator) Update(name string, value Value) {
	g.currentMessage = name + " control changed to " + value.String()
}

// CurrentMessage returns the message built by the most recent Update, or ""
// if none has happened yet.
func (g *MessageGenerator) CurrentMessage() string {
	return g.currentMessage
}
