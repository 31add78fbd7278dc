package underwriting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func profile(credit int, income, dti float64, years int, amount float64) ApplicantProfile {
	return ApplicantProfile{
		ApplicantName:   "Test Applicant",
		CreditScore:     credit,
		AnnualIncome:    income,
		DebtToIncome:    dti,
		EmploymentYears: years,
		RequestedAmount: amount,
	}
}

func TestScoreRisk_StrongProfileHasZeroRisk(t *testing.T) {
	score, factors := scoreRisk(profile(780, 120000, 0.20, 6, 30000))

	assert.Equal(t, 0, score)
	assert.Empty(t, factors)
}

func TestScoreRisk_WeakProfileAccumulatesAllFactors(t *testing.T) {
	score, factors := scoreRisk(profile(600, 30000, 0.50, 1, 25000))

	assert.Equal(t, 95, score)
	assert.Equal(t, []string{
		"Low credit score",
		"Very high debt-to-income ratio",
		"Limited employment history",
	}, factors)
}

func TestScoreRisk_BandBoundaries(t *testing.T) {
	tests := []struct {
		name  string
		p     ApplicantProfile
		score int
	}{
		{"credit 750 boundary", profile(750, 100000, 0.20, 6, 10000), 0},
		{"credit 749 falls to next band", profile(749, 100000, 0.20, 6, 10000), 10},
		{"credit 700 boundary", profile(700, 100000, 0.20, 6, 10000), 10},
		{"credit 650 boundary", profile(650, 100000, 0.20, 6, 10000), 25},
		{"dti 0.28 boundary", profile(780, 100000, 0.28, 6, 10000), 0},
		{"dti 0.36 boundary", profile(780, 100000, 0.36, 6, 10000), 10},
		{"dti 0.43 boundary", profile(780, 100000, 0.43, 6, 10000), 20},
		{"dti above 0.43", profile(780, 100000, 0.44, 6, 10000), 35},
		{"employment 5y boundary", profile(780, 100000, 0.20, 5, 10000), 0},
		{"employment 2y boundary", profile(780, 100000, 0.20, 2, 10000), 10},
		{"employment 1y", profile(780, 100000, 0.20, 1, 10000), 20},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			score, _ := scoreRisk(tc.p)
			assert.Equal(t, tc.score, score)
		})
	}
}

func TestRiskLevel_Buckets(t *testing.T) {
	assert.Equal(t, RiskLow, riskLevel(0))
	assert.Equal(t, RiskLow, riskLevel(20))
	assert.Equal(t, RiskMedium, riskLevel(21))
	assert.Equal(t, RiskMedium, riskLevel(40))
	assert.Equal(t, RiskHigh, riskLevel(41))
	assert.Equal(t, RiskHigh, riskLevel(95))
}

func TestRecommendTerms_Approve(t *testing.T) {
	p := profile(720, 85000, 0.28, 5, 50000)
	score, _ := scoreRisk(p)
	require.Equal(t, 10, score)

	rec, terms := recommendTerms(p, score)

	assert.Equal(t, RecommendApprove, rec)
	assert.Equal(t, 50000.0, terms.ApprovedAmount)
	assert.Equal(t, 7.5, terms.InterestRate)
	assert.Equal(t, 60, terms.TermMonths)
	assert.InDelta(t, 838.54, terms.MonthlyPayment, 0.001)
}

func TestRecommendTerms_ApproveWithConditionsReducesAmount(t *testing.T) {
	p := profile(700, 90000, 0.40, 5, 33333)
	score, _ := scoreRisk(p)
	require.Equal(t, 30, score)

	rec, terms := recommendTerms(p, score)

	assert.Equal(t, RecommendApproveWithConditions, rec)
	assert.Equal(t, 29999.0, terms.ApprovedAmount) // trunc(33333 * 0.9)
	assert.Equal(t, 11.0, terms.InterestRate)
}

func TestRecommendTerms_ConditionalReducesAmountFurther(t *testing.T) {
	p := profile(640, 60000, 0.40, 3, 20001)
	score, _ := scoreRisk(p)
	require.Equal(t, 55, score)

	rec, terms := recommendTerms(p, score)

	assert.Equal(t, RecommendConditional, rec)
	assert.Equal(t, 15000.0, terms.ApprovedAmount) // trunc(20001 * 0.75)
	assert.Equal(t, 15.5, terms.InterestRate)
}

func TestRecommendTerms_DeclineZeroesTerms(t *testing.T) {
	p := profile(600, 30000, 0.50, 1, 25000)
	score, _ := scoreRisk(p)
	require.Equal(t, 95, score)

	rec, terms := recommendTerms(p, score)

	assert.Equal(t, RecommendDecline, rec)
	assert.Equal(t, 0.0, terms.ApprovedAmount)
	assert.Equal(t, 0.0, terms.InterestRate)
	assert.Equal(t, 0.0, terms.MonthlyPayment)
}

func TestCategoricalRatings(t *testing.T) {
	creditRisk, incomeStability, debtCapacity := categoricalRatings(profile(720, 85000, 0.28, 5, 50000))
	assert.Equal(t, "LOW", creditRisk)
	assert.Equal(t, "HIGH", incomeStability)
	assert.Equal(t, "ADEQUATE", debtCapacity)

	creditRisk, incomeStability, debtCapacity = categoricalRatings(profile(610, 40000, 0.45, 1, 10000))
	assert.Equal(t, "HIGH", creditRisk)
	assert.Equal(t, "LOW", incomeStability)
	assert.Equal(t, "STRAINED", debtCapacity)
}

func TestFinancialRatios_PaymentToIncome(t *testing.T) {
	p := profile(720, 85000, 0.28, 5, 50000)
	_, terms := recommendTerms(p, 10)

	ratios := financialRatios(p, terms)

	assert.Equal(t, 0.28, ratios.DebtToIncome)
	assert.Equal(t, 0.0, ratios.LoanToValue)
	// 50000/60 * 1.075 divided by monthly income of 85000/12.
	assert.InDelta(t, 0.1265, ratios.PaymentToIncome, 0.0005)
}

func TestFinancialRatios_DeclinedHasZeroPaymentRatio(t *testing.T) {
	p := profile(600, 30000, 0.50, 1, 25000)
	ratios := financialRatios(p, RecommendedTerms{})

	assert.Equal(t, 0.0, ratios.PaymentToIncome)
}

func TestApplicationResolve_AppliesDefaults(t *testing.T) {
	p := Application{}.Resolve()

	assert.Equal(t, "Applicant", p.ApplicantName)
	assert.Equal(t, DefaultCreditScore, p.CreditScore)
	assert.Equal(t, DefaultAnnualIncome, p.AnnualIncome)
	assert.Equal(t, DefaultDebtToIncome, p.DebtToIncome)
	assert.Equal(t, DefaultEmploymentYears, p.EmploymentYears)
	assert.Equal(t, DefaultRequestedAmount, p.RequestedAmount)
}

func TestApplicationResolve_ZeroValuesAreKept(t *testing.T) {
	dti := 0.0
	p := Application{DebtToIncome: &dti}.Resolve()

	assert.Equal(t, 0.0, p.DebtToIncome)
}
