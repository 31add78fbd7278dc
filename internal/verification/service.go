package verification

import (
	"context"
	"log/slog"
	"time"

	"creditstudio/contracts/studio"
	"creditstudio/internal/audit"
	"creditstudio/internal/chain"
	"creditstudio/internal/platform/middleware"
	"creditstudio/internal/underwriting"
	"creditstudio/internal/verification/commitstore"
	"creditstudio/internal/verification/metrics"
	dErrors "creditstudio/pkg/domain-errors"
)

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service is one verifier's scoring engine. It assesses decision records and
// drives the commit-reveal protocol against the chain. Not safe to share
// across verifiers; each verifier owns its own Service and chain handle.
type Service struct {
	client  chain.Client
	commits *commitstore.InMemoryStore
	auditor AuditPublisher
	metrics *metrics.Metrics
	logger  *slog.Logger
	now     func() time.Time

	agentName  string
	verifierID uint64
	studioAddr string
}

// Option configures the Service.
type Option func(*Service)

// WithMetrics sets the metrics collector for the service.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithLogger sets the logger for the service.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

// WithClock overrides the timestamp source for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// New creates a verifier scoring service.
// Panics if the chain client or auditor is nil.
func New(agentName string, client chain.Client, auditor AuditPublisher, opts ...Option) *Service {
	if client == nil {
		panic("verification.New: chain client is required")
	}
	if auditor == nil {
		panic("verification.New: auditor is required for the scoring audit trail")
	}
	s := &Service{
		client:    client,
		commits:   commitstore.NewInMemoryStore(),
		auditor:   auditor,
		agentName: agentName,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Bind attaches the service to a studio after the verifier has staked in.
// Commit and Reveal refuse to run unbound.
func (s *Service) Bind(studioAddr string, verifierID uint64) {
	s.studioAddr = studioAddr
	s.verifierID = verifierID
}

func (s *Service) requireBinding() error {
	if s.studioAddr == "" {
		return dErrors.New(dErrors.CodePrecondition, "verifier is not bound to a studio")
	}
	return nil
}

// Audit assesses a decision record across all eight dimensions. Pure
// computation; nothing is published until Commit.
func (s *Service) Audit(ctx context.Context, dataHash studio.Hash32, d *underwriting.Decision) (*AuditReport, error) {
	if d == nil {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "decision record is required")
	}

	scores, notes := assessDecision(d)
	final := weightedScore(scores)

	verdict := VerdictNeedsReview
	if final >= approvalThreshold {
		verdict = VerdictApproved
	}

	report := &AuditReport{
		VerifierID:     s.verifierID,
		DataHash:       dataHash,
		Scores:         scores,
		Dimensions:     Dimensions,
		FinalScore:     final,
		Recommendation: verdict,
		AuditNotes:     notes,
		Timestamp:      s.now().UTC(),
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "audit complete",
			"verifier", s.agentName,
			"data_hash", dataHash.ShortHex(),
			"final_score", final,
			"verdict", string(verdict),
		)
	}
	if s.metrics != nil {
		s.metrics.IncrementAudits(string(verdict))
		s.metrics.ObserveFinalScore(final)
	}
	return report, nil
}

// Commit publishes a binding commitment to the report's score vector. The
// scores and salt stay local until Reveal.
func (s *Service) Commit(ctx context.Context, report *AuditReport) (studio.TxHash, error) {
	if err := s.requireBinding(); err != nil {
		return "", err
	}

	salt, err := NewSalt()
	if err != nil {
		return "", err
	}
	commitment := Commitment(report.Scores, salt)

	if err := s.commits.Put(ctx, report.DataHash, commitstore.Record{
		Scores:     report.Scores[:],
		Salt:       salt,
		Commitment: commitment,
	}); err != nil {
		return "", err
	}

	tx, err := s.client.CommitScore(ctx, s.studioAddr, studio.ScoreCommitment{
		DataHash:   report.DataHash,
		Commitment: commitment,
	})
	if err != nil {
		// Roll the pending record back so a retry can re-commit.
		_, _ = s.commits.Consume(ctx, report.DataHash)
		return "", err
	}

	s.emitAudit(ctx, audit.EventScoreCommitted, report.DataHash, "")
	if s.metrics != nil {
		s.metrics.IncrementCommitted()
	}
	return tx, nil
}

// Reveal discloses the committed scores and salt. Consumes the pending
// commitment; revealing twice for the same work fails.
func (s *Service) Reveal(ctx context.Context, dataHash studio.Hash32) (studio.TxHash, error) {
	if err := s.requireBinding(); err != nil {
		return "", err
	}

	record, err := s.commits.Consume(ctx, dataHash)
	if err != nil {
		return "", err
	}

	tx, err := s.client.RevealScore(ctx, s.studioAddr, studio.ScoreReveal{
		DataHash: dataHash,
		Scores:   record.Scores,
		Salt:     record.Salt,
	})
	if err != nil {
		return "", err
	}

	s.emitAudit(ctx, audit.EventScoreRevealed, dataHash, "")
	if s.metrics != nil {
		s.metrics.IncrementRevealed()
	}
	return tx, nil
}

func (s *Service) emitAudit(ctx context.Context, action audit.AuditEvent, dataHash studio.Hash32, detail string) {
	event := audit.Event{
		Timestamp: s.now().UTC(),
		AgentName: s.agentName,
		Action:    string(action),
		DataHash:  dataHash.Hex(),
		Detail:    detail,
		RequestID: middleware.GetRequestID(ctx),
	}
	if err := s.auditor.Emit(ctx, event); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "failed to emit verification audit event",
			"action", string(action),
			"error", err,
		)
	}
}
