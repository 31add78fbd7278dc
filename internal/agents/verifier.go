package agents

import (
	"context"
	"fmt"
	"log/slog"

	"creditstudio/contracts/studio"
	"creditstudio/internal/audit"
	"creditstudio/internal/chain"
	"creditstudio/internal/underwriting"
	"creditstudio/internal/verification"
	dErrors "creditstudio/pkg/domain-errors"
)

// VerifierAgent is an independent auditor: it registers an identity, stakes
// into the studio as a verifier, and plays commit-reveal over its scores.
type VerifierAgent struct {
	name    string
	domain  string
	client  chain.Client
	scoring *verification.Service
	auditor AuditPublisher
	logger  *slog.Logger

	agentID    uint64
	registered bool
	studioAddr string
}

// VerifierOption configures the VerifierAgent.
type VerifierOption func(*VerifierAgent)

// WithVerifierLogger sets the logger for the verifier agent.
func WithVerifierLogger(l *slog.Logger) VerifierOption {
	return func(v *VerifierAgent) {
		v.logger = l
	}
}

// NewVerifier creates a verifier agent.
// Panics if the chain client, scoring service, or auditor is nil.
func NewVerifier(name, domain string, client chain.Client, scoring *verification.Service, auditor AuditPublisher, opts ...VerifierOption) *VerifierAgent {
	if client == nil {
		panic("agents.NewVerifier: chain client is required")
	}
	if scoring == nil {
		panic("agents.NewVerifier: scoring service is required")
	}
	if auditor == nil {
		panic("agents.NewVerifier: auditor is required")
	}
	v := &VerifierAgent{
		name:    name,
		domain:  domain,
		client:  client,
		scoring: scoring,
		auditor: auditor,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// AgentID returns the registered on-chain id. Zero until Register succeeds.
func (v *VerifierAgent) AgentID() uint64 { return v.agentID }

// Name returns the agent's display name.
func (v *VerifierAgent) Name() string { return v.name }

// Register ensures the verifier has an on-chain identity. Idempotent.
func (v *VerifierAgent) Register(ctx context.Context) (uint64, error) {
	if id, found, err := v.client.AgentID(ctx); err != nil {
		return 0, err
	} else if found {
		v.agentID = id
		v.registered = true
		return id, nil
	}

	id, tx, err := v.client.RegisterAgent(ctx, tokenURI(v.domain))
	if err != nil {
		return 0, err
	}
	v.agentID = id
	v.registered = true

	v.emitAudit(ctx, audit.EventAgentRegistered, fmt.Sprintf("tx=%s", tx))
	if v.logger != nil {
		v.logger.InfoContext(ctx, "agent registered", "agent", v.name, "agent_id", id, "tx", string(tx))
	}
	return id, nil
}

// JoinStudio stakes the verifier into the studio and binds the scoring
// service to it. Requires Register first.
func (v *VerifierAgent) JoinStudio(ctx context.Context, studioAddr string, stake float64) error {
	if !v.registered {
		return dErrors.New(dErrors.CodePrecondition, "verifier must register before joining a studio")
	}
	tx, err := v.client.RegisterWithStudio(ctx, studioAddr, studio.RoleVerifier, stake)
	if err != nil {
		return err
	}
	v.studioAddr = studioAddr
	v.scoring.Bind(studioAddr, v.agentID)

	v.emitAudit(ctx, audit.EventStudioJoined, fmt.Sprintf("studio=%s tx=%s", studioAddr, tx))
	return nil
}

// Audit assesses a decision record. Pure local computation.
func (v *VerifierAgent) Audit(ctx context.Context, dataHash studio.Hash32, d *underwriting.Decision) (*verification.AuditReport, error) {
	return v.scoring.Audit(ctx, dataHash, d)
}

// CommitScore publishes the binding commitment for an audit report.
func (v *VerifierAgent) CommitScore(ctx context.Context, report *verification.AuditReport) (studio.TxHash, error) {
	return v.scoring.Commit(ctx, report)
}

// RevealScore discloses the previously committed score vector.
func (v *VerifierAgent) RevealScore(ctx context.Context, dataHash studio.Hash32) (studio.TxHash, error) {
	return v.scoring.Reveal(ctx, dataHash)
}

// WithdrawRewards withdraws the verifier's pending studio rewards.
func (v *VerifierAgent) WithdrawRewards(ctx context.Context) (studio.TxHash, error) {
	if v.studioAddr == "" {
		return "", dErrors.New(dErrors.CodePrecondition, "verifier is not bound to a studio")
	}
	return v.client.WithdrawRewards(ctx, v.studioAddr)
}

func (v *VerifierAgent) emitAudit(ctx context.Context, action audit.AuditEvent, detail string) {
	event := audit.Event{
		AgentName: v.name,
		Action:    string(action),
		Detail:    detail,
	}
	if err := v.auditor.Emit(ctx, event); err != nil && v.logger != nil {
		v.logger.WarnContext(ctx, "failed to emit verifier audit event", "action", string(action), "error", err)
	}
}
