package audit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitSyncPersistsImmediately(t *testing.T) {
	store := NewInMemoryStore()
	pub := NewPublisher(store)

	err := pub.Emit(context.Background(), Event{
		AgentName: "CreditAnalyst",
		Action:    string(EventDecisionIssued),
		Decision:  "APPROVE",
	})
	require.NoError(t, err)

	events, err := store.ListByAgent(context.Background(), "CreditAnalyst")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "decision_issued", events[0].Action)
	assert.False(t, events[0].Timestamp.IsZero())
}

func TestEmitAsyncDrainsOnClose(t *testing.T) {
	store := NewInMemoryStore()
	pub := NewPublisher(store, WithAsyncBuffer(16))

	for i := 0; i < 5; i++ {
		require.NoError(t, pub.Emit(context.Background(), Event{
			AgentName: "RiskAuditor1",
			Action:    string(EventScoreCommitted),
		}))
	}
	pub.Close()

	events, err := store.ListByAgent(context.Background(), "RiskAuditor1")
	require.NoError(t, err)
	assert.Len(t, events, 5)
}

func TestEmitPreservesExplicitTimestamp(t *testing.T) {
	store := NewInMemoryStore()
	pub := NewPublisher(store)

	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, pub.Emit(context.Background(), Event{
		AgentName: "CreditAnalyst",
		Action:    string(EventWorkSubmitted),
		Timestamp: ts,
	}))

	events, _ := store.ListByAgent(context.Background(), "CreditAnalyst")
	require.Len(t, events, 1)
	assert.Equal(t, ts, events[0].Timestamp)
}
