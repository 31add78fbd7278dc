// Package verification implements the verifier side of the studio: auditing
// decision records across eight fixed dimensions and playing the
// commit-reveal protocol that keeps scores independent.
package verification

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"time"

	"creditstudio/contracts/studio"
)

// Thresholds for the verifier's own recommendation.
const approvalThreshold = 70.0

// VerifierVerdict is the audit-level recommendation, distinct from the
// worker's credit recommendation.
type VerifierVerdict string

const (
	VerdictApproved    VerifierVerdict = "APPROVED"
	VerdictNeedsReview VerifierVerdict = "NEEDS_REVIEW"
)

// AuditReport is one verifier's complete assessment of a decision record.
type AuditReport struct {
	VerifierID     uint64                `json:"verifier_id"`
	DataHash       studio.Hash32         `json:"-"`
	Scores         [NumDimensions]uint8  `json:"scores"`
	Dimensions     [NumDimensions]string `json:"dimensions"`
	FinalScore     float64               `json:"final_score"`
	Recommendation VerifierVerdict       `json:"recommendation"`
	AuditNotes     []string              `json:"audit_notes"`
	Timestamp      time.Time             `json:"timestamp"`
}

// weightedScore collapses a score vector into a single weighted average,
// rounded to two decimals.
func weightedScore(scores [NumDimensions]uint8) float64 {
	var sum, weight float64
	for i, s := range scores {
		sum += float64(s) * Weights[i]
		weight += Weights[i]
	}
	v := sum / weight
	return float64(int(v*100+0.5)) / 100
}

// NewSalt returns 32 bytes of cryptographic randomness for a commitment.
func NewSalt() (studio.Salt, error) {
	var salt studio.Salt
	if _, err := rand.Read(salt[:]); err != nil {
		return studio.Salt{}, fmt.Errorf("generating commitment salt: %w", err)
	}
	return salt, nil
}

// Commitment computes the binding digest for a score vector:
// SHA-256 over the eight score bytes followed by the 32-byte salt.
func Commitment(scores [NumDimensions]uint8, salt studio.Salt) studio.Hash32 {
	h := sha256.New()
	h.Write(scores[:])
	h.Write(salt[:])
	var digest studio.Hash32
	copy(digest[:], h.Sum(nil))
	return digest
}
