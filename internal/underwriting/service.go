// Package underwriting implements the rule-based credit decision engine.
package underwriting

import (
	"context"
	"log/slog"
	"time"

	"creditstudio/internal/audit"
	"creditstudio/internal/canonical"
	"creditstudio/internal/platform/middleware"
	"creditstudio/internal/underwriting/metrics"
	dErrors "creditstudio/pkg/domain-errors"
)

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service evaluates loan applications and produces immutable decision
// records. The rules are deterministic so decisions can be re-derived and
// verified from the application alone.
type Service struct {
	auditor AuditPublisher
	metrics *metrics.Metrics
	logger  *slog.Logger
	now     func() time.Time
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

// New creates a new underwriting service.
// Panics if the auditor is nil - decisions must leave an audit trail.
func New(auditor AuditPublisher, opts ...Option) *Service {
	if auditor == nil {
		panic("underwriting.New: auditor is required for the decision audit trail")
	}
	s := &Service{
		auditor: auditor,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Analyze evaluates one application and returns the full decision record.
// analystID identifies the on-chain agent issuing the decision.
func (s *Service) Analyze(ctx context.Context, app Application, analystID uint64) (*Decision, error) {
	start := s.now()
	defer func() {
		if s.metrics != nil {
			s.metrics.ObserveAnalyzeDuration(float64(time.Since(start).Milliseconds()))
		}
	}()

	profile := app.Resolve()
	if err := profile.Validate(); err != nil {
		return nil, err
	}

	riskScore, factors := scoreRisk(profile)
	rec, terms := recommendTerms(profile, riskScore)
	creditRisk, incomeStability, debtCapacity := categoricalRatings(profile)

	decision := &Decision{
		Application: profile,
		AnalystID:   analystID,
		Timestamp:   start.UTC(),
		RiskAssessment: RiskAssessment{
			OverallRiskScore: riskScore,
			RiskLevel:        riskLevel(riskScore),
			RiskFactors:      factors,
			CreditRisk:       creditRisk,
			IncomeStability:  incomeStability,
			DebtCapacity:     debtCapacity,
		},
		FinancialRatios: financialRatios(profile, terms),
		Recommendation:  rec,
		RecommendedTerms: terms,
		ComplianceChecks: ComplianceChecks{
			KYCVerified:        true,
			AMLCleared:         true,
			IncomeVerified:     true,
			EmploymentVerified: true,
		},
		Reasoning: narrative(profile, riskScore, rec, factors),
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "decision issued",
			"applicant", profile.ApplicantName,
			"risk_score", riskScore,
			"recommendation", string(rec),
		)
	}

	s.emitAudit(ctx, decision)

	if s.metrics != nil {
		s.metrics.IncrementDecisions(string(rec))
		s.metrics.ObserveRiskScore(riskScore)
	}

	return decision, nil
}

// emitAudit publishes a decision audit event. Best-effort: an audit sink
// outage must not block the applicant-facing decision.
func (s *Service) emitAudit(ctx context.Context, d *Decision) {
	hash, err := canonical.Hash(d)
	if err != nil {
		if s.logger != nil {
			s.logger.WarnContext(ctx, "failed to hash decision for audit", "error", err)
		}
		return
	}

	event := audit.Event{
		Timestamp: d.Timestamp,
		AgentName: d.Application.ApplicantName,
		Action:    string(audit.EventDecisionIssued),
		DataHash:  hash.Hex(),
		Decision:  string(d.Recommendation),
		RequestID: middleware.GetRequestID(ctx),
	}
	if err := s.auditor.Emit(ctx, event); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "failed to emit decision audit event", "error", err)
	}
}

// Validate rejects resolved profiles that cannot be meaningfully scored.
func (p ApplicantProfile) Validate() error {
	if p.AnnualIncome <= 0 {
		return dErrors.New(dErrors.CodeValidation, "annual income must be positive")
	}
	if p.RequestedAmount <= 0 {
		return dErrors.New(dErrors.CodeValidation, "requested amount must be positive")
	}
	if p.DebtToIncome < 0 {
		return dErrors.New(dErrors.CodeValidation, "debt-to-income ratio cannot be negative")
	}
	return nil
}
