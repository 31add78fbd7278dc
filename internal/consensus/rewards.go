package consensus

import "math"

// RewardSplit is the payout for one completed analysis: the worker's share
// scales with the consensus score, each verifier earns a flat audit fee.
type RewardSplit struct {
	WorkerReward      float64 `json:"worker_reward"`
	PerVerifierReward float64 `json:"per_verifier_reward"`
	VerifierCount     int     `json:"verifier_count"`
	Total             float64 `json:"total"`
}

// Rewards computes the payout split for a consensus result.
// baseReward is the full worker payout at a perfect score; verifierReward is
// the flat per-audit fee.
func Rewards(result *Result, baseReward, verifierReward float64) RewardSplit {
	worker := round4(baseReward * result.FinalScore / 100)
	return RewardSplit{
		WorkerReward:      worker,
		PerVerifierReward: verifierReward,
		VerifierCount:     result.VerifierCount,
		Total:             round4(worker + verifierReward*float64(result.VerifierCount)),
	}
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
