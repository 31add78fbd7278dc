// Package chain defines the boundary to the external agent/ledger SDK. The
// studio consumes identity registration, staking, commit-reveal submission,
// and reward distribution through this interface; it never implements them.
package chain

import (
	"context"

	"creditstudio/contracts/studio"

	dErrors "creditstudio/pkg/domain-errors"
)

//go:generate mockgen -source=client.go -destination=mocks/client_mock.go -package=mocks Client

// ErrUnavailable wraps every transport-level SDK failure so the orchestration
// layer can recognize and skip over chain outages.
var ErrUnavailable = dErrors.New(dErrors.CodeChainUnavailable, "chain SDK unavailable")

// Client is one agent's handle to the chain SDK. Handles are dependency-
// injected into each component; there are no process-wide singletons.
//
// All calls are atomic from the caller's perspective: they either return a
// transaction id or an error. Retry, timeout, and nonce management belong to
// the SDK, not to callers.
type Client interface {
	// AgentID returns the agent's registry id, or found=false when the
	// agent has not been registered yet.
	AgentID(ctx context.Context) (id uint64, found bool, err error)

	// RegisterAgent registers the agent on the identity registry under the
	// given token URI and returns its new id.
	RegisterAgent(ctx context.Context, tokenURI string) (uint64, studio.TxHash, error)

	// CreateStudio deploys a studio instance bound to a logic module and
	// returns its address.
	CreateStudio(ctx context.Context, name, logicModule string, initialBudget float64) (string, error)

	// RegisterWithStudio stakes the agent into a studio under a role.
	RegisterWithStudio(ctx context.Context, studioAddr string, role studio.AgentRole, stake float64) (studio.TxHash, error)

	// SubmitWork publishes the digests of one completed analysis.
	SubmitWork(ctx context.Context, studioAddr string, sub studio.WorkSubmission) (studio.TxHash, error)

	// CommitScore publishes a score commitment for the commit phase.
	CommitScore(ctx context.Context, studioAddr string, c studio.ScoreCommitment) (studio.TxHash, error)

	// RevealScore discloses the committed vector and salt for verification.
	RevealScore(ctx context.Context, studioAddr string, r studio.ScoreReveal) (studio.TxHash, error)

	// CloseEpoch triggers on-chain reward distribution for an epoch.
	CloseEpoch(ctx context.Context, studioAddr string, epoch uint64) (studio.TxHash, error)

	// ReputationSummary is an opaque pass-through reputation query.
	ReputationSummary(ctx context.Context, agentID uint64) (studio.ReputationSummary, error)

	// WithdrawRewards withdraws the agent's pending studio rewards.
	WithdrawRewards(ctx context.Context, studioAddr string) (studio.TxHash, error)
}
