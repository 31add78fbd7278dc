// Package agents wires the underwriting and verification engines to on-chain
// identities. Each agent owns its own chain handle; nothing here is shared
// process-wide.
package agents

import (
	"context"
	"fmt"
	"log/slog"

	"creditstudio/contracts/studio"
	"creditstudio/internal/audit"
	"creditstudio/internal/canonical"
	"creditstudio/internal/chain"
	"creditstudio/internal/platform/middleware"
	"creditstudio/internal/underwriting"
	dErrors "creditstudio/pkg/domain-errors"
)

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// WorkSubmissionResult ties a decision record to its published digests.
type WorkSubmissionResult struct {
	DataHash studio.Hash32
	TxHash   studio.TxHash
}

// WorkerAgent is the analyst: it registers an identity, stakes into the
// studio as a worker, produces decisions, and publishes their digests.
type WorkerAgent struct {
	name    string
	domain  string
	client  chain.Client
	engine  *underwriting.Service
	auditor AuditPublisher
	logger  *slog.Logger

	agentID    uint64
	registered bool
	studioAddr string
}

// WorkerOption configures the WorkerAgent.
type WorkerOption func(*WorkerAgent)

// WithWorkerLogger sets the logger for the worker agent.
func WithWorkerLogger(l *slog.Logger) WorkerOption {
	return func(w *WorkerAgent) {
		w.logger = l
	}
}

// NewWorker creates a worker agent.
// Panics if the chain client, engine, or auditor is nil.
func NewWorker(name, domain string, client chain.Client, engine *underwriting.Service, auditor AuditPublisher, opts ...WorkerOption) *WorkerAgent {
	if client == nil {
		panic("agents.NewWorker: chain client is required")
	}
	if engine == nil {
		panic("agents.NewWorker: underwriting engine is required")
	}
	if auditor == nil {
		panic("agents.NewWorker: auditor is required")
	}
	w := &WorkerAgent{
		name:    name,
		domain:  domain,
		client:  client,
		engine:  engine,
		auditor: auditor,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// AgentID returns the registered on-chain id. Zero until Register succeeds.
func (w *WorkerAgent) AgentID() uint64 { return w.agentID }

// Name returns the agent's display name.
func (w *WorkerAgent) Name() string { return w.name }

// Register ensures the agent has an on-chain identity. Idempotent: an
// existing registration is reused rather than re-submitted.
func (w *WorkerAgent) Register(ctx context.Context) (uint64, error) {
	if id, found, err := w.client.AgentID(ctx); err != nil {
		return 0, err
	} else if found {
		w.agentID = id
		w.registered = true
		if w.logger != nil {
			w.logger.InfoContext(ctx, "agent already registered", "agent", w.name, "agent_id", id)
		}
		return id, nil
	}

	id, tx, err := w.client.RegisterAgent(ctx, tokenURI(w.domain))
	if err != nil {
		return 0, err
	}
	w.agentID = id
	w.registered = true

	w.emitAudit(ctx, audit.EventAgentRegistered, "", fmt.Sprintf("tx=%s", tx))
	if w.logger != nil {
		w.logger.InfoContext(ctx, "agent registered", "agent", w.name, "agent_id", id, "tx", string(tx))
	}
	return id, nil
}

// JoinStudio stakes the worker into the studio. Requires Register first.
func (w *WorkerAgent) JoinStudio(ctx context.Context, studioAddr string, stake float64) error {
	if !w.registered {
		return dErrors.New(dErrors.CodePrecondition, "worker must register before joining a studio")
	}
	tx, err := w.client.RegisterWithStudio(ctx, studioAddr, studio.RoleWorker, stake)
	if err != nil {
		return err
	}
	w.studioAddr = studioAddr

	w.emitAudit(ctx, audit.EventStudioJoined, "", fmt.Sprintf("studio=%s tx=%s", studioAddr, tx))
	return nil
}

// Analyze produces a decision record for the application.
func (w *WorkerAgent) Analyze(ctx context.Context, app underwriting.Application) (*underwriting.Decision, error) {
	return w.engine.Analyze(ctx, app, w.agentID)
}

// SubmitWork publishes the content address of a decision record along with
// the conversation and evidence digests. Requires JoinStudio first.
func (w *WorkerAgent) SubmitWork(ctx context.Context, d *underwriting.Decision, threadID, evidenceID string) (WorkSubmissionResult, error) {
	if w.studioAddr == "" {
		return WorkSubmissionResult{}, dErrors.New(dErrors.CodePrecondition, "worker is not bound to a studio")
	}

	dataHash, err := canonical.Hash(d)
	if err != nil {
		return WorkSubmissionResult{}, dErrors.Wrap(err, dErrors.CodeInternal, "hashing decision record")
	}

	tx, err := w.client.SubmitWork(ctx, w.studioAddr, studio.WorkSubmission{
		DataHash:     dataHash,
		ThreadRoot:   canonical.HashString("xmtp_" + threadID),
		EvidenceRoot: canonical.HashString("ipfs_" + evidenceID),
	})
	if err != nil {
		return WorkSubmissionResult{}, err
	}

	w.emitAudit(ctx, audit.EventWorkSubmitted, dataHash.Hex(), fmt.Sprintf("tx=%s", tx))
	if w.logger != nil {
		w.logger.InfoContext(ctx, "work submitted",
			"agent", w.name,
			"data_hash", dataHash.ShortHex(),
			"tx", string(tx),
		)
	}
	return WorkSubmissionResult{DataHash: dataHash, TxHash: tx}, nil
}

// Reputation queries the agent's on-chain reputation summary.
func (w *WorkerAgent) Reputation(ctx context.Context) (studio.ReputationSummary, error) {
	if !w.registered {
		return studio.ReputationSummary{}, dErrors.New(dErrors.CodePrecondition, "worker is not registered")
	}
	return w.client.ReputationSummary(ctx, w.agentID)
}

// WithdrawRewards withdraws the worker's pending studio rewards.
func (w *WorkerAgent) WithdrawRewards(ctx context.Context) (studio.TxHash, error) {
	if w.studioAddr == "" {
		return "", dErrors.New(dErrors.CodePrecondition, "worker is not bound to a studio")
	}
	return w.client.WithdrawRewards(ctx, w.studioAddr)
}

func (w *WorkerAgent) emitAudit(ctx context.Context, action audit.AuditEvent, dataHash, detail string) {
	event := audit.Event{
		AgentName: w.name,
		Action:    string(action),
		DataHash:  dataHash,
		Detail:    detail,
		RequestID: middleware.GetRequestID(ctx),
	}
	if err := w.auditor.Emit(ctx, event); err != nil && w.logger != nil {
		w.logger.WarnContext(ctx, "failed to emit worker audit event", "action", string(action), "error", err)
	}
}

// tokenURI derives the identity registry token URI from the agent's domain.
func tokenURI(domain string) string {
	return fmt.Sprintf("https://%s/.well-known/agent.json", domain)
}
