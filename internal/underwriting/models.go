// Package underwriting implements the worker's rule-based credit decision
// engine: a deterministic mapping from an application record to a risk score,
// recommendation, and loan terms.
package underwriting

import "time"

// Default substitutions for absent application fields.
const (
	DefaultCreditScore     = 650
	DefaultAnnualIncome    = 50000.0
	DefaultDebtToIncome    = 0.35
	DefaultEmploymentYears = 2
	DefaultRequestedAmount = 25000.0
)

// TermMonths is the fixed loan term applied to every recommendation.
const TermMonths = 60

// Application is a loan application as submitted. Pointer fields distinguish
// absent values (which fall back to the documented defaults) from legitimate
// zeroes such as a 0.0 debt-to-income ratio. Immutable once submitted.
type Application struct {
	ApplicantName   string   `json:"applicant_name,omitempty"`
	CreditScore     *int     `json:"credit_score,omitempty"`
	AnnualIncome    *float64 `json:"annual_income,omitempty"`
	DebtToIncome    *float64 `json:"debt_to_income,omitempty"`
	EmploymentYears *int     `json:"employment_years,omitempty"`
	RequestedAmount *float64 `json:"requested_amount,omitempty"`
	Collateral      string   `json:"collateral,omitempty"`
	Purpose         string   `json:"purpose,omitempty"`
}

// ApplicantProfile is the application after default substitution; every
// field is concrete. This is what the rule chain evaluates and what the
// decision record embeds.
type ApplicantProfile struct {
	ApplicantName   string  `json:"applicant_name"`
	CreditScore     int     `json:"credit_score"`
	AnnualIncome    float64 `json:"annual_income"`
	DebtToIncome    float64 `json:"debt_to_income"`
	EmploymentYears int     `json:"employment_years"`
	RequestedAmount float64 `json:"requested_amount"`
	Collateral      string  `json:"collateral,omitempty"`
	Purpose         string  `json:"purpose,omitempty"`
}

// Resolve applies the default substitutions. Malformed or missing fields are
// recovered locally; this is the only "failure" path the engine has.
func (a Application) Resolve() ApplicantProfile {
	p := ApplicantProfile{
		ApplicantName:   a.ApplicantName,
		CreditScore:     DefaultCreditScore,
		AnnualIncome:    DefaultAnnualIncome,
		DebtToIncome:    DefaultDebtToIncome,
		EmploymentYears: DefaultEmploymentYears,
		RequestedAmount: DefaultRequestedAmount,
		Collateral:      a.Collateral,
		Purpose:         a.Purpose,
	}
	if p.ApplicantName == "" {
		p.ApplicantName = "Applicant"
	}
	if a.CreditScore != nil {
		p.CreditScore = *a.CreditScore
	}
	if a.AnnualIncome != nil {
		p.AnnualIncome = *a.AnnualIncome
	}
	if a.DebtToIncome != nil {
		p.DebtToIncome = *a.DebtToIncome
	}
	if a.EmploymentYears != nil {
		p.EmploymentYears = *a.EmploymentYears
	}
	if a.RequestedAmount != nil {
		p.RequestedAmount = *a.RequestedAmount
	}
	return p
}

// RiskLevel buckets the overall risk score.
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// Recommendation enumerates the decision outcomes.
type Recommendation string

const (
	RecommendApprove               Recommendation = "APPROVE"
	RecommendApproveWithConditions Recommendation = "APPROVE_WITH_CONDITIONS"
	RecommendConditional           Recommendation = "CONDITIONAL"
	RecommendDecline               Recommendation = "DECLINE"
)

// RiskAssessment carries the aggregate risk score plus the categorical
// sub-ratings downstream auditors look for.
type RiskAssessment struct {
	OverallRiskScore int       `json:"overall_risk_score"`
	RiskLevel        RiskLevel `json:"risk_level"`
	RiskFactors      []string  `json:"risk_factors"`
	CreditRisk       string    `json:"credit_risk"`
	IncomeStability  string    `json:"income_stability"`
	DebtCapacity     string    `json:"debt_capacity"`
}

// FinancialRatios summarizes the affordability arithmetic behind the terms.
type FinancialRatios struct {
	DebtToIncome    float64 `json:"debt_to_income"`
	PaymentToIncome float64 `json:"payment_to_income"`
	LoanToValue     float64 `json:"loan_to_value"`
}

// RecommendedTerms are the loan terms attached to a non-declined decision.
type RecommendedTerms struct {
	ApprovedAmount float64 `json:"approved_amount"`
	InterestRate   float64 `json:"interest_rate"`
	TermMonths     int     `json:"term_months"`
	MonthlyPayment float64 `json:"monthly_payment"`
}

// ComplianceChecks are the four regulatory flags attached to a decision.
//
// All four are hardcoded true by the engine: no real KYC/AML verification is
// performed at this layer. This is a declared stub policy, not an oversight;
// wiring it to a real compliance provider is a deliberate product decision
// that must not happen silently.
type ComplianceChecks struct {
	KYCVerified        bool `json:"kyc_verified"`
	AMLCleared         bool `json:"aml_cleared"`
	IncomeVerified     bool `json:"income_verified"`
	EmploymentVerified bool `json:"employment_verified"`
}

// Count returns how many of the four flags are set.
func (c ComplianceChecks) Count() int {
	n := 0
	for _, ok := range []bool{c.KYCVerified, c.AMLCleared, c.IncomeVerified, c.EmploymentVerified} {
		if ok {
			n++
		}
	}
	return n
}

// Decision is the complete, immutable credit decision record. It is
// content-addressed by the SHA-256 hash of its canonical serialization.
type Decision struct {
	Application      ApplicantProfile `json:"application"`
	AnalystID        uint64           `json:"analyst_id"`
	Timestamp        time.Time        `json:"timestamp"`
	RiskAssessment   RiskAssessment   `json:"risk_assessment"`
	FinancialRatios  FinancialRatios  `json:"financial_ratios"`
	Recommendation   Recommendation   `json:"recommendation"`
	RecommendedTerms RecommendedTerms `json:"recommended_terms"`
	ComplianceChecks ComplianceChecks `json:"compliance_checks"`
	Reasoning        string           `json:"reasoning"`
}
