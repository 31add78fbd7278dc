package underwriting

import "math"

// Risk factor labels attached by the rule chain.
const (
	factorModerateCredit  = "Moderate credit score"
	factorLowCredit       = "Low credit score"
	factorHighDTI         = "High debt-to-income ratio"
	factorVeryHighDTI     = "Very high debt-to-income ratio"
	factorLimitedEmployed = "Limited employment history"
)

// Recommendation thresholds on the overall risk score.
const (
	approveThreshold     = 20
	conditionalThreshold = 40
	declineThreshold     = 60
)

// scoreRisk applies the additive risk rules across the three independent
// factors. The result is in [0, 95] by construction: 40 + 35 + 20.
func scoreRisk(p ApplicantProfile) (int, []string) {
	score := 0
	factors := []string{}

	// Credit score band
	switch {
	case p.CreditScore >= 750:
		// no risk points
	case p.CreditScore >= 700:
		score += 10
	case p.CreditScore >= 650:
		score += 25
		factors = append(factors, factorModerateCredit)
	default:
		score += 40
		factors = append(factors, factorLowCredit)
	}

	// Debt-to-income band
	switch {
	case p.DebtToIncome <= 0.28:
		// no risk points
	case p.DebtToIncome <= 0.36:
		score += 10
	case p.DebtToIncome <= 0.43:
		score += 20
		factors = append(factors, factorHighDTI)
	default:
		score += 35
		factors = append(factors, factorVeryHighDTI)
	}

	// Employment stability
	switch {
	case p.EmploymentYears >= 5:
		// no risk points
	case p.EmploymentYears >= 2:
		score += 10
	default:
		score += 20
		factors = append(factors, factorLimitedEmployed)
	}

	return score, factors
}

// riskLevel buckets the aggregate score.
func riskLevel(score int) RiskLevel {
	switch {
	case score <= approveThreshold:
		return RiskLow
	case score <= conditionalThreshold:
		return RiskMedium
	default:
		return RiskHigh
	}
}

// recommendTerms maps the risk score onto a recommendation and loan terms.
func recommendTerms(p ApplicantProfile, score int) (Recommendation, RecommendedTerms) {
	var (
		rec    Recommendation
		amount float64
		rate   float64
	)
	switch {
	case score <= approveThreshold:
		rec = RecommendApprove
		amount = p.RequestedAmount
		rate = 6.5 + float64(score)*0.1
	case score <= conditionalThreshold:
		rec = RecommendApproveWithConditions
		amount = math.Trunc(p.RequestedAmount * 0.9)
		rate = 8.0 + float64(score)*0.1
	case score <= declineThreshold:
		rec = RecommendConditional
		amount = math.Trunc(p.RequestedAmount * 0.75)
		rate = 10.0 + float64(score)*0.1
	default:
		rec = RecommendDecline
		amount = 0
		rate = 0
	}

	terms := RecommendedTerms{
		ApprovedAmount: amount,
		InterestRate:   round2(rate),
		TermMonths:     TermMonths,
	}
	if amount > 0 {
		terms.MonthlyPayment = round2(amount / TermMonths * (1 + rate/100/12))
	}
	return rec, terms
}

// categoricalRatings derives the qualitative sub-ratings auditors check for.
func categoricalRatings(p ApplicantProfile) (creditRisk, incomeStability, debtCapacity string) {
	switch {
	case p.CreditScore >= 700:
		creditRisk = "LOW"
	case p.CreditScore >= 650:
		creditRisk = "MEDIUM"
	default:
		creditRisk = "HIGH"
	}

	switch {
	case p.EmploymentYears >= 5:
		incomeStability = "HIGH"
	case p.EmploymentYears >= 2:
		incomeStability = "MEDIUM"
	default:
		incomeStability = "LOW"
	}

	if p.DebtToIncome <= 0.36 {
		debtCapacity = "ADEQUATE"
	} else {
		debtCapacity = "STRAINED"
	}
	return creditRisk, incomeStability, debtCapacity
}

// financialRatios computes the affordability block. Payment-to-income uses
// the simple annual rate markup and is zero for declined applications.
func financialRatios(p ApplicantProfile, terms RecommendedTerms) FinancialRatios {
	ratios := FinancialRatios{
		DebtToIncome: p.DebtToIncome,
		LoanToValue:  0, // no collateral modeled
	}
	if terms.ApprovedAmount > 0 && p.AnnualIncome > 0 {
		monthlyCost := terms.ApprovedAmount / TermMonths * (1 + terms.InterestRate/100)
		ratios.PaymentToIncome = monthlyCost / (p.AnnualIncome / 12)
	}
	return ratios
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
