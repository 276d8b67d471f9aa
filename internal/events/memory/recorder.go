package memory

import (
	"sync"

	"github.com/sheikh-saqib/fungible-token-ledger/internal/interfaces"
)

// Recorded is one published event together with the topic it went to.
type Recorded struct {
	Topic string
	Event any
}

// Recorder is an in-process event sink. It keeps every published event in
// order, which is what tests need to assert "success emits exactly one
// notification".
type Recorder struct {
	mu     sync.Mutex
	events []Recorded
}

func NewRecorder() *Recorder {
	return &Recorder{
		events: make([]Recorded, 0),
	}
}

// Publish records the event. It never fails.
func (r *Recorder) Publish(topic string, event any) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, Recorded{Topic: topic, Event: event})
	return nil
}

// Events returns a copy of everything recorded so far, in publish order.
func (r *Recorder) Events() []Recorded {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := make([]Recorded, len(r.events))
	copy(copied, r.events)
	return copied
}

// Len returns how many events have been recorded.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.events)
}

var _ interfaces.EventPublisher = (*Recorder)(nil)
