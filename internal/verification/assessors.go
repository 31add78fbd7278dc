package verification

import (
	"fmt"
	"math"

	"creditstudio/internal/underwriting"
)

// assessDecision scores a decision record across all eight dimensions and
// collects the observations that justify each score. Every assessor is a
// pure function of the record, so two honest verifiers auditing the same
// record produce identical vectors.
func assessDecision(d *underwriting.Decision) ([NumDimensions]uint8, []string) {
	var scores [NumDimensions]uint8
	var notes []string

	assessors := [NumDimensions]func(*underwriting.Decision) (int, string){
		assessInitiative,
		assessCollaboration,
		assessReasoningDepth,
		assessCompliance,
		assessEfficiency,
		assessAccuracy,
		assessRiskAssessment,
		assessDocumentation,
	}
	for i, assess := range assessors {
		score, note := assess(d)
		scores[i] = clampScore(score)
		if note != "" {
			notes = append(notes, note)
		}
	}
	return scores, notes
}

// assessInitiative rewards thorough self-directed analysis: a substantial
// written rationale and multiple independently identified risk factors.
func assessInitiative(d *underwriting.Decision) (int, string) {
	score := 75
	if len(d.Reasoning) > 500 {
		score += 10
	}
	if len(d.RiskAssessment.RiskFactors) >= 2 {
		score += 10
	}
	return score, fmt.Sprintf("Initiative: %d risk factors identified", len(d.RiskAssessment.RiskFactors))
}

func assessCollaboration(_ *underwriting.Decision) (int, string) {
	return StubCollaborationScore, ""
}

// assessReasoningDepth checks that the analysis covers risk scoring, the
// affordability ratios, and a non-trivial narrative.
func assessReasoningDepth(d *underwriting.Decision) (int, string) {
	score := 70
	if d.RiskAssessment.RiskLevel != "" {
		score += 10
	}
	if d.FinancialRatios != (underwriting.FinancialRatios{}) {
		score += 10
	}
	if len(d.Reasoning) > 300 {
		score += 5
	}
	return score, ""
}

// assessCompliance maps the fraction of regulatory flags set onto [0, 100].
func assessCompliance(d *underwriting.Decision) (int, string) {
	count := d.ComplianceChecks.Count()
	score := count * 100 / 4
	return score, fmt.Sprintf("Compliance: %d/4 checks passed", count)
}

func assessEfficiency(_ *underwriting.Decision) (int, string) {
	return StubEfficiencyScore, ""
}

// assessAccuracy re-derives the payment arithmetic and checks the quoted
// rate is within commercial bounds.
func assessAccuracy(d *underwriting.Decision) (int, string) {
	score := 80
	terms := d.RecommendedTerms
	if terms.InterestRate >= 5 && terms.InterestRate <= 20 {
		score += 5
	}
	if terms.ApprovedAmount > 0 && terms.TermMonths > 0 {
		expected := terms.ApprovedAmount / float64(terms.TermMonths) * (1 + terms.InterestRate/100/12)
		if math.Abs(terms.MonthlyPayment-expected) < 10 {
			score += 10
		}
	}
	return score, ""
}

// assessRiskAssessment rewards both breadth of identified factors and the
// presence of the categorical sub-ratings.
func assessRiskAssessment(d *underwriting.Decision) (int, string) {
	score := 75
	factorPoints := 5 * len(d.RiskAssessment.RiskFactors)
	if factorPoints > 15 {
		factorPoints = 15
	}
	score += factorPoints
	for _, rating := range []string{
		d.RiskAssessment.CreditRisk,
		d.RiskAssessment.IncomeStability,
		d.RiskAssessment.DebtCapacity,
	} {
		if rating != "" {
			score += 3
		}
	}
	return score, ""
}

// assessDocumentation counts the populated sections of the record and
// rewards a detailed narrative.
func assessDocumentation(d *underwriting.Decision) (int, string) {
	sections := 0
	if d.Application.CreditScore > 0 {
		sections++
	}
	if d.RiskAssessment.RiskLevel != "" {
		sections++
	}
	if d.Recommendation != "" {
		sections++
	}
	if d.RecommendedTerms.TermMonths > 0 {
		sections++
	}
	if d.Reasoning != "" {
		sections++
	}

	score := 75 + 3*sections
	if len(d.Reasoning) > 400 {
		score += 5
	}
	return score, fmt.Sprintf("Documentation: %d/5 sections present", sections)
}

func clampScore(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return uint8(v)
}
