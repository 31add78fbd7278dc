package audit

import (
	"context"
	"sync"
)

// InMemoryStore keeps audit events per agent. It intentionally favors
// clarity over performance; the demo and tests do not need durability.
type InMemoryStore struct {
	mu     sync.RWMutex
	events map[string][]Event
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{events: make(map[string][]Event)}
}

func (s *InMemoryStore) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[event.AgentName] = append(s.events[event.AgentName], event)
	return nil
}

func (s *InMemoryStore) ListByAgent(_ context.Context, agentName string) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Event{}, s.events[agentName]...), nil
}

func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = make(map[string][]Event)
}
