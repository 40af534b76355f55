package events

import (
	"context"
	"sync"
)

const DefaultMemoryCapacity = 500

// MemorySink keeps the most recent events for local queries.
type MemorySink struct {
	mu       sync.RWMutex
	capacity int
	events   []Event
}

func NewMemorySink(capacity int) *MemorySink {
	if capacity <= 0 {
		capacity = DefaultMemoryCapacity
	}
	return &MemorySink{capacity: capacity}
}

func (s *MemorySink) Name() string { return "memory" }

func (s *MemorySink) Write(_ context.Context, batch []Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, batch...)
	if over := len(s.events) - s.capacity; over > 0 {
		s.events = append([]Event(nil), s.events[over:]...)
	}
	return nil
}

func (s *MemorySink) Close() error { return nil }

// OrderHistory returns the retained events of one order in arrival order.
func (s *MemorySink) OrderHistory(_ context.Context, orderID int64) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var history []Event
	for _, e := range s.events {
		if e.OrderID == orderID {
			history = append(history, e)
		}
	}
	return history, nil
}

func (s *MemorySink) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}
