package interfaces

// EventPublisher pushes engine events to an external stream. Publishing is
// advisory: a failed publish never changes ledger state.
type EventPublisher interface {
	Publish(topic string, event any) error
}
