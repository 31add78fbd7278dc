// Package commitstore holds a verifier's pending commitments between the
// commit and reveal phases. Each record is consumable exactly once.
package commitstore

import (
	"context"
	"sync"

	"creditstudio/contracts/studio"
	dErrors "creditstudio/pkg/domain-errors"
)

// ErrPending is returned when a commitment already exists for the data hash.
var ErrPending = dErrors.New(dErrors.CodeConflict, "commitment already pending for this work")

// ErrNotFound is returned when no pending commitment exists for the data hash.
var ErrNotFound = dErrors.New(dErrors.CodePrecondition, "no pending commitment for this work")

// Record is the secret material a verifier must retain to reveal later.
type Record struct {
	Scores     []uint8
	Salt       studio.Salt
	Commitment studio.Hash32
}

// InMemoryStore keeps pending commitments keyed by work data hash.
// It intentionally favors clarity over performance.
type InMemoryStore struct {
	mu      sync.RWMutex
	pending map[studio.Hash32]Record
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		pending: make(map[studio.Hash32]Record),
	}
}

// Put stores a pending commitment. Committing twice to the same work before
// revealing is a protocol violation and fails with ErrPending.
func (s *InMemoryStore) Put(_ context.Context, dataHash studio.Hash32, record Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pending[dataHash]; ok {
		return ErrPending
	}
	s.pending[dataHash] = record
	return nil
}

// Consume returns and removes the pending commitment for the data hash.
// A second consume, or a consume without a prior Put, fails with ErrNotFound.
func (s *InMemoryStore) Consume(_ context.Context, dataHash studio.Hash32) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.pending[dataHash]
	if !ok {
		return Record{}, ErrNotFound
	}
	delete(s.pending, dataHash)
	return record, nil
}

// Peek returns the pending commitment without consuming it.
func (s *InMemoryStore) Peek(_ context.Context, dataHash studio.Hash32) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.pending[dataHash]
	if !ok {
		return Record{}, ErrNotFound
	}
	return record, nil
}
