// Package workflow drives one complete studio run: setup, analysis, work
// submission, commit-reveal verification, and reward distribution.
package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"creditstudio/contracts/studio"
	"creditstudio/internal/agents"
	"creditstudio/internal/audit"
	"creditstudio/internal/canonical"
	"creditstudio/internal/chain"
	"creditstudio/internal/consensus"
	"creditstudio/internal/platform/middleware"
	"creditstudio/internal/platform/tracer"
	"creditstudio/internal/underwriting"
	"creditstudio/internal/verification"
	dErrors "creditstudio/pkg/domain-errors"
)

// PlaceholderTx stands in for a transaction id when the chain SDK is
// unavailable. Chain failures degrade the trail, never the run.
const PlaceholderTx = studio.TxHash("0x" + "0000000000000000000000000000000000000000000000000000000000000000")

// LogicModule names the on-chain validation module the studio binds to.
const LogicModule = "CreditAssessmentValidator"

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Config carries the economic parameters of a run.
type Config struct {
	StudioName     string
	InitialBudget  float64
	StakeAmount    float64
	BaseReward     float64
	VerifierReward float64
}

// VerifierOutcome records one verifier's part in the run.
type VerifierOutcome struct {
	VerifierName string                    `json:"verifier_name"`
	Report       *verification.AuditReport `json:"report"`
	CommitTx     studio.TxHash             `json:"commit_tx"`
	RevealTx     studio.TxHash             `json:"reveal_tx"`
}

// RunReport is the complete record of one workflow run.
type RunReport struct {
	StudioAddr  string                   `json:"studio_addr"`
	Decision    *underwriting.Decision   `json:"decision"`
	DataHash    studio.Hash32            `json:"-"`
	DataHashHex string                   `json:"data_hash"`
	WorkTx      studio.TxHash            `json:"work_tx"`
	Verifiers   []VerifierOutcome        `json:"verifiers"`
	Consensus   *consensus.Result        `json:"consensus"`
	Rewards     consensus.RewardSplit    `json:"rewards"`
	EpochTx     studio.TxHash            `json:"epoch_tx"`
	Reputation  studio.ReputationSummary `json:"reputation"`
	ChainNotes  []string                 `json:"chain_notes,omitempty"`
	StartedAt   time.Time                `json:"started_at"`
	CompletedAt time.Time                `json:"completed_at"`
}

// Orchestrator runs the five-phase studio workflow. The operator client
// deploys the studio and closes epochs; worker and verifiers act through
// their own handles.
type Orchestrator struct {
	operator   chain.Client
	worker     *agents.WorkerAgent
	verifiers  []*agents.VerifierAgent
	aggregator *consensus.Aggregator
	auditor    AuditPublisher
	cfg        Config
	tracer     tracer.Tracer
	logger     *slog.Logger
	now        func() time.Time
}

// Option configures the Orchestrator.
type Option func(*Orchestrator)

// WithTracer sets the tracer for workflow spans.
func WithTracer(t tracer.Tracer) Option {
	return func(o *Orchestrator) {
		o.tracer = t
	}
}

// WithLogger sets the logger for the orchestrator.
func WithLogger(l *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = l
	}
}

// WithClock overrides the timestamp source for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		o.now = now
	}
}

// New creates an orchestrator.
// Panics on missing dependencies; a run without verifiers cannot reach
// consensus, so at least one is required.
func New(operator chain.Client, worker *agents.WorkerAgent, verifiers []*agents.VerifierAgent, aggregator *consensus.Aggregator, auditor AuditPublisher, cfg Config, opts ...Option) *Orchestrator {
	if operator == nil {
		panic("workflow.New: operator chain client is required")
	}
	if worker == nil {
		panic("workflow.New: worker agent is required")
	}
	if len(verifiers) == 0 {
		panic("workflow.New: at least one verifier agent is required")
	}
	if aggregator == nil {
		panic("workflow.New: consensus aggregator is required")
	}
	if auditor == nil {
		panic("workflow.New: auditor is required")
	}
	o := &Orchestrator{
		operator:   operator,
		worker:     worker,
		verifiers:  verifiers,
		aggregator: aggregator,
		auditor:    auditor,
		cfg:        cfg,
		tracer:     tracer.NewNoop(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run executes all five phases for one application. Chain outages are noted
// in the report and replaced by placeholders; only local failures (a decision
// that cannot be produced, consensus that cannot be computed) abort the run.
func (o *Orchestrator) Run(ctx context.Context, app underwriting.Application) (*RunReport, error) {
	ctx, span := o.tracer.Start(ctx, tracer.SpanWorkflowRun)
	var runErr error
	defer func() { span.End(runErr) }()

	report := &RunReport{StartedAt: o.now().UTC()}

	if runErr = o.runSetup(ctx, report); runErr != nil {
		return nil, runErr
	}
	if runErr = o.runAnalysis(ctx, app, report); runErr != nil {
		return nil, runErr
	}
	o.runSubmit(ctx, report)
	if runErr = o.runVerify(ctx, report); runErr != nil {
		return nil, runErr
	}
	if runErr = o.runRewards(ctx, report); runErr != nil {
		return nil, runErr
	}

	report.CompletedAt = o.now().UTC()
	span.SetAttributes(
		tracer.Float64(tracer.AttrFinalScore, report.Consensus.FinalScore),
		tracer.String(tracer.AttrRecommendation, string(report.Consensus.Recommendation)),
	)
	return report, nil
}

// runSetup deploys the studio and stakes every agent in. A studio that
// cannot be deployed still yields a local run under a placeholder address.
func (o *Orchestrator) runSetup(ctx context.Context, report *RunReport) error {
	ctx, span := o.tracer.Start(ctx, tracer.SpanPhaseSetup)
	defer span.End(nil)

	// The operator needs a registry identity of its own to deploy the
	// studio and close epochs.
	if _, found, err := o.operator.AgentID(ctx); err != nil {
		o.noteChainFailure(ctx, report, "operator identity", err)
	} else if !found {
		if _, _, err := o.operator.RegisterAgent(ctx, tokenURI("operator")); err != nil {
			o.noteChainFailure(ctx, report, "operator registration", err)
		}
	}

	addr, err := o.operator.CreateStudio(ctx, o.cfg.StudioName, LogicModule, o.cfg.InitialBudget)
	if err != nil {
		addr = "studio-local"
		o.noteChainFailure(ctx, report, "create_studio", err)
	}
	report.StudioAddr = addr

	if _, err := o.worker.Register(ctx); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "registering worker")
	}
	if err := o.worker.JoinStudio(ctx, addr, o.cfg.StakeAmount); err != nil {
		o.noteChainFailure(ctx, report, "worker join", err)
	}

	for _, v := range o.verifiers {
		if _, err := v.Register(ctx); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, fmt.Sprintf("registering verifier %s", v.Name()))
		}
		if err := v.JoinStudio(ctx, addr, o.cfg.StakeAmount); err != nil {
			o.noteChainFailure(ctx, report, fmt.Sprintf("%s join", v.Name()), err)
		}
	}
	return nil
}

// runAnalysis produces the decision record. This is the one phase with no
// chain interaction and no degraded mode.
func (o *Orchestrator) runAnalysis(ctx context.Context, app underwriting.Application, report *RunReport) error {
	ctx, span := o.tracer.Start(ctx, tracer.SpanPhaseAnalysis)

	decision, err := o.worker.Analyze(ctx, app)
	span.End(err)
	if err != nil {
		return err
	}
	report.Decision = decision
	return nil
}

// runSubmit publishes the decision digests. On failure the content address
// is still derived locally so verification can proceed.
func (o *Orchestrator) runSubmit(ctx context.Context, report *RunReport) {
	ctx, span := o.tracer.Start(ctx, tracer.SpanPhaseSubmit)
	defer span.End(nil)

	result, err := o.worker.SubmitWork(ctx, report.Decision, threadID(report.StudioAddr), evidenceID(report.StudioAddr))
	if err != nil {
		o.noteChainFailure(ctx, report, "submit_work", err)
		hash, hashErr := canonical.Hash(report.Decision)
		if hashErr == nil {
			result = agents.WorkSubmissionResult{DataHash: hash, TxHash: PlaceholderTx}
		}
	}
	report.DataHash = result.DataHash
	report.DataHashHex = result.DataHash.Hex()
	report.WorkTx = result.TxHash
	span.SetAttributes(tracer.String(tracer.AttrDataHash, result.DataHash.ShortHex()))
}

// runVerify has every verifier audit the record in parallel, then plays the
// commit and reveal rounds strictly in sequence: every commit lands before
// the first reveal.
func (o *Orchestrator) runVerify(ctx context.Context, report *RunReport) error {
	ctx, span := o.tracer.Start(ctx, tracer.SpanPhaseVerify)
	defer span.End(nil)
	span.SetAttributes(tracer.Int64(tracer.AttrVerifierCount, int64(len(o.verifiers))))

	outcomes := make([]VerifierOutcome, len(o.verifiers))

	g, auditCtx := errgroup.WithContext(ctx)
	for i, v := range o.verifiers {
		i, v := i, v
		g.Go(func() error {
			spanCtx, auditSpan := o.tracer.Start(auditCtx, tracer.SpanVerifierAudit,
				tracer.String(tracer.AttrDataHash, report.DataHash.ShortHex()),
			)
			r, err := v.Audit(spanCtx, report.DataHash, report.Decision)
			auditSpan.End(err)
			if err != nil {
				return fmt.Errorf("verifier %s audit: %w", v.Name(), err)
			}
			outcomes[i] = VerifierOutcome{VerifierName: v.Name(), Report: r}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, v := range o.verifiers {
		tx, err := v.CommitScore(ctx, outcomes[i].Report)
		if err != nil {
			o.noteChainFailure(ctx, report, fmt.Sprintf("%s commit", v.Name()), err)
			tx = PlaceholderTx
		}
		outcomes[i].CommitTx = tx
		span.AddEvent(tracer.EventScoreCommitted)
	}
	for i, v := range o.verifiers {
		tx, err := v.RevealScore(ctx, report.DataHash)
		if err != nil {
			o.noteChainFailure(ctx, report, fmt.Sprintf("%s reveal", v.Name()), err)
			tx = PlaceholderTx
		}
		outcomes[i].RevealTx = tx
		span.AddEvent(tracer.EventScoreRevealed)
	}

	report.Verifiers = outcomes
	return nil
}

// runRewards computes consensus over the audit vectors, distributes the
// payout, and records the epoch close.
func (o *Orchestrator) runRewards(ctx context.Context, report *RunReport) error {
	ctx, span := o.tracer.Start(ctx, tracer.SpanPhaseRewards)
	defer span.End(nil)

	reveals := make([][]uint8, 0, len(report.Verifiers))
	for _, outcome := range report.Verifiers {
		reveals = append(reveals, outcome.Report.Scores[:])
	}
	result, err := o.aggregator.Aggregate(reveals)
	if err != nil {
		return err
	}
	report.Consensus = result
	report.Rewards = consensus.Rewards(result, o.cfg.BaseReward, o.cfg.VerifierReward)

	o.emitAudit(ctx, audit.EventConsensusReached, report,
		fmt.Sprintf("final=%.2f verdict=%s", result.FinalScore, result.Recommendation))

	tx, err := o.operator.CloseEpoch(ctx, report.StudioAddr, 1)
	if err != nil {
		o.noteChainFailure(ctx, report, "close_epoch", err)
		tx = PlaceholderTx
	}
	report.EpochTx = tx

	if _, err := o.worker.WithdrawRewards(ctx); err != nil {
		o.noteChainFailure(ctx, report, "worker withdraw", err)
	}
	for _, v := range o.verifiers {
		if _, err := v.WithdrawRewards(ctx); err != nil {
			o.noteChainFailure(ctx, report, fmt.Sprintf("%s withdraw", v.Name()), err)
		}
	}

	if rep, err := o.worker.Reputation(ctx); err != nil {
		o.noteChainFailure(ctx, report, "reputation query", err)
	} else {
		report.Reputation = rep
	}

	o.emitAudit(ctx, audit.EventRewardsDistributed, report,
		fmt.Sprintf("worker=%.4f verifier=%.4f", report.Rewards.WorkerReward, report.Rewards.PerVerifierReward))
	return nil
}

// noteChainFailure records a degraded chain interaction. Failures are never
// retried; the run continues with placeholders.
func (o *Orchestrator) noteChainFailure(ctx context.Context, report *RunReport, op string, err error) {
	report.ChainNotes = append(report.ChainNotes, fmt.Sprintf("%s: %v", op, err))
	if o.logger != nil {
		o.logger.WarnContext(ctx, "chain interaction failed, continuing with placeholder",
			"op", op,
			"error", err,
		)
	}
}

func (o *Orchestrator) emitAudit(ctx context.Context, action audit.AuditEvent, report *RunReport, detail string) {
	event := audit.Event{
		AgentName: o.cfg.StudioName,
		Action:    string(action),
		DataHash:  report.DataHashHex,
		Detail:    detail,
		RequestID: middleware.GetRequestID(ctx),
	}
	if err := o.auditor.Emit(ctx, event); err != nil && o.logger != nil {
		o.logger.WarnContext(ctx, "failed to emit workflow audit event", "action", string(action), "error", err)
	}
}

// threadID and evidenceID derive stable per-run identifiers for the
// conversation and evidence digests.
func threadID(studioAddr string) string   { return "thread-" + studioAddr }
func evidenceID(studioAddr string) string { return "evidence-" + studioAddr }

// tokenURI derives a registry token URI for the studio operator.
func tokenURI(name string) string {
	return fmt.Sprintf("https://studio.example.com/%s.json", name)
}
