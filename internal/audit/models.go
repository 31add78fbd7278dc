package audit

import "time"

// Event is emitted from domain logic to capture key workflow actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp time.Time
	AgentName string
	Action    string
	DataHash  string
	Decision  string
	Detail    string
	RequestID string
}

// Action names emitted across the studio workflow.
type AuditEvent string

const (
	EventAgentRegistered    AuditEvent = "agent_registered"
	EventStudioJoined       AuditEvent = "studio_joined"
	EventDecisionIssued     AuditEvent = "decision_issued"
	EventWorkSubmitted      AuditEvent = "work_submitted"
	EventScoreCommitted     AuditEvent = "score_committed"
	EventScoreRevealed      AuditEvent = "score_revealed"
	EventConsensusReached   AuditEvent = "consensus_reached"
	EventRewardsDistributed AuditEvent = "rewards_distributed"
)
