package interfaces

// EventPublisher is the notification sink the hosting environment provides.
// Implementations must durably record each published event.
type EventPublisher interface {
	Publish(topic string, event any) error
}
