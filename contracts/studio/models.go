// Package studio defines the types that cross the boundary to the on-chain
// agent SDK. They are shared between agent implementations and transport
// layers, so they live in their own module with no internal dependencies.
package studio

import "encoding/hex"

// ContractVersion identifies the schema for studio records shared across services.
const ContractVersion = "v0.1.0"

// AgentRole distinguishes the two studio participant roles.
type AgentRole uint8

const (
	RoleWorker   AgentRole = 1
	RoleVerifier AgentRole = 2
)

// String returns the canonical role name.
func (r AgentRole) String() string {
	switch r {
	case RoleWorker:
		return "worker"
	case RoleVerifier:
		return "verifier"
	default:
		return "unknown"
	}
}

// Hash32 is a 32-byte digest as submitted on-chain (SHA-256 throughout).
type Hash32 [32]byte

// Hex returns the full lowercase hex encoding without a 0x prefix.
func (h Hash32) Hex() string { return hex.EncodeToString(h[:]) }

// ShortHex returns an abbreviated digest for logs and demo output.
func (h Hash32) ShortHex() string { return hex.EncodeToString(h[:8]) }

// IsZero reports whether the digest is all zeroes.
func (h Hash32) IsZero() bool { return h == Hash32{} }

// Salt is the random blinding value bound into a score commitment.
type Salt [32]byte

// Hex returns the full lowercase hex encoding of the salt.
func (s Salt) Hex() string { return hex.EncodeToString(s[:]) }

// TxHash identifies a submitted chain transaction.
type TxHash string

// WorkSubmission is the record a worker submits for one completed analysis.
type WorkSubmission struct {
	DataHash     Hash32 `json:"data_hash"`
	ThreadRoot   Hash32 `json:"thread_root"`
	EvidenceRoot Hash32 `json:"evidence_root"`
}

// ScoreCommitment binds a verifier to a score vector before the reveal phase.
type ScoreCommitment struct {
	DataHash   Hash32 `json:"data_hash"`
	Commitment Hash32 `json:"commitment"`
}

// ScoreReveal discloses the committed score vector together with its salt so
// the studio contract can verify it against the published commitment.
type ScoreReveal struct {
	DataHash Hash32  `json:"data_hash"`
	Scores   []uint8 `json:"scores"`
	Salt     Salt    `json:"salt"`
}

// ReputationSummary is the pass-through reputation record for one agent.
type ReputationSummary struct {
	AgentID       uint64  `json:"agent_id"`
	Role          string  `json:"role"`
	JobsCompleted int     `json:"jobs_completed"`
	AverageScore  float64 `json:"average_score"`
}
