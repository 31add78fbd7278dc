// Package consensus collapses independently revealed score vectors into a
// single weighted outcome and computes the reward split.
package consensus

import (
	"log/slog"
	"math"

	"creditstudio/internal/verification"
	dErrors "creditstudio/pkg/domain-errors"
)

// Result is the aggregated outcome over all revealed score vectors.
type Result struct {
	VerifierCount  int                                 `json:"verifier_count"`
	DimensionMeans [verification.NumDimensions]float64 `json:"dimension_means"`
	Dimensions     [verification.NumDimensions]string  `json:"dimensions"`
	FinalScore     float64                             `json:"final_score"`
	Recommendation verification.VerifierVerdict        `json:"recommendation"`
}

// Aggregator computes consensus over revealed vectors.
type Aggregator struct {
	minVerifiers int
	logger       *slog.Logger
}

// Option configures the Aggregator.
type Option func(*Aggregator)

// WithMinVerifiers sets the quorum required before consensus is computed.
func WithMinVerifiers(n int) Option {
	return func(a *Aggregator) {
		if n > 0 {
			a.minVerifiers = n
		}
	}
}

// WithLogger sets the logger for the aggregator.
func WithLogger(l *slog.Logger) Option {
	return func(a *Aggregator) {
		a.logger = l
	}
}

// New creates an aggregator. The default quorum is a single verifier.
func New(opts ...Option) *Aggregator {
	a := &Aggregator{minVerifiers: 1}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Aggregate computes the dimension-wise mean of the revealed vectors, then
// the weighted final score. Means are rounded to two decimals before
// weighting so published figures and the final score agree.
func (a *Aggregator) Aggregate(reveals [][]uint8) (*Result, error) {
	if len(reveals) < a.minVerifiers {
		return nil, dErrors.New(dErrors.CodePrecondition, "not enough revealed scores for consensus")
	}
	for _, scores := range reveals {
		if len(scores) != verification.NumDimensions {
			return nil, dErrors.New(dErrors.CodeInvalidInput, "revealed score vector has wrong width")
		}
	}

	var means [verification.NumDimensions]float64
	for dim := 0; dim < verification.NumDimensions; dim++ {
		sum := 0.0
		for _, scores := range reveals {
			sum += float64(scores[dim])
		}
		means[dim] = round2(sum / float64(len(reveals)))
	}

	var weightedSum, totalWeight float64
	for dim, mean := range means {
		weightedSum += mean * verification.Weights[dim]
		totalWeight += verification.Weights[dim]
	}
	final := round2(weightedSum / totalWeight)

	verdict := verification.VerdictNeedsReview
	if final >= 70 {
		verdict = verification.VerdictApproved
	}

	if a.logger != nil {
		a.logger.Info("consensus reached",
			"verifiers", len(reveals),
			"final_score", final,
			"verdict", string(verdict),
		)
	}

	return &Result{
		VerifierCount:  len(reveals),
		DimensionMeans: means,
		Dimensions:     verification.Dimensions,
		FinalScore:     final,
		Recommendation: verdict,
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
