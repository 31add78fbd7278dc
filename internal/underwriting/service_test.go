package underwriting

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"creditstudio/internal/audit"
)

type ServiceSuite struct {
	suite.Suite

	store   *audit.InMemoryStore
	service *Service
	now     time.Time
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.store = audit.NewInMemoryStore()
	s.now = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	s.service = New(
		audit.NewPublisher(s.store),
		WithClock(func() time.Time { return s.now }),
	)
}

func application(credit int, income, dti float64, years int, amount float64) Application {
	return Application{
		ApplicantName:   "Jordan Reyes",
		CreditScore:     &credit,
		AnnualIncome:    &income,
		DebtToIncome:    &dti,
		EmploymentYears: &years,
		RequestedAmount: &amount,
	}
}

func (s *ServiceSuite) TestAnalyze_ApprovesStrongApplicant() {
	decision, err := s.service.Analyze(context.Background(), application(720, 85000, 0.28, 5, 50000), 7)
	s.Require().NoError(err)

	s.Equal(uint64(7), decision.AnalystID)
	s.Equal(s.now, decision.Timestamp)
	s.Equal(10, decision.RiskAssessment.OverallRiskScore)
	s.Equal(RiskLow, decision.RiskAssessment.RiskLevel)
	s.Empty(decision.RiskAssessment.RiskFactors)
	s.Equal(RecommendApprove, decision.Recommendation)
	s.Equal(50000.0, decision.RecommendedTerms.ApprovedAmount)
	s.Equal(7.5, decision.RecommendedTerms.InterestRate)
	s.Equal(60, decision.RecommendedTerms.TermMonths)
}

func (s *ServiceSuite) TestAnalyze_DeclinesWeakApplicant() {
	decision, err := s.service.Analyze(context.Background(), application(600, 30000, 0.50, 1, 25000), 7)
	s.Require().NoError(err)

	s.Equal(95, decision.RiskAssessment.OverallRiskScore)
	s.Equal(RiskHigh, decision.RiskAssessment.RiskLevel)
	s.Len(decision.RiskAssessment.RiskFactors, 3)
	s.Equal(RecommendDecline, decision.Recommendation)
	s.Equal(0.0, decision.RecommendedTerms.ApprovedAmount)
	s.Equal(0.0, decision.FinancialRatios.PaymentToIncome)
}

func (s *ServiceSuite) TestAnalyze_EmptyApplicationUsesDefaults() {
	decision, err := s.service.Analyze(context.Background(), Application{}, 7)
	s.Require().NoError(err)

	// Defaults are 650 / 0.35 / 2 years, which score 25 + 10 + 10.
	s.Equal(45, decision.RiskAssessment.OverallRiskScore)
	s.Equal(RecommendConditional, decision.Recommendation)
	s.Equal(18750.0, decision.RecommendedTerms.ApprovedAmount)
	s.Equal("Applicant", decision.Application.ApplicantName)
}

func (s *ServiceSuite) TestAnalyze_ComplianceFlagsAlwaysSet() {
	decision, err := s.service.Analyze(context.Background(), Application{}, 7)
	s.Require().NoError(err)

	s.Equal(4, decision.ComplianceChecks.Count())
}

func (s *ServiceSuite) TestAnalyze_ReasoningMentionsKeyFindings() {
	decision, err := s.service.Analyze(context.Background(), application(720, 85000, 0.28, 5, 50000), 7)
	s.Require().NoError(err)

	s.Contains(decision.Reasoning, "Jordan Reyes")
	s.Contains(decision.Reasoning, "720 (Good)")
	s.Contains(decision.Reasoning, "5 years (Stable)")
	s.Contains(decision.Reasoning, "Recommendation: APPROVE")
}

func (s *ServiceSuite) TestAnalyze_EmitsAuditEvent() {
	_, err := s.service.Analyze(context.Background(), application(720, 85000, 0.28, 5, 50000), 7)
	s.Require().NoError(err)

	events, err := s.store.ListByAgent(context.Background(), "Jordan Reyes")
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.Equal(string(audit.EventDecisionIssued), events[0].Action)
	s.Equal(string(RecommendApprove), events[0].Decision)
	s.NotEmpty(events[0].DataHash)
}

func (s *ServiceSuite) TestAnalyze_DeterministicForSameInput() {
	first, err := s.service.Analyze(context.Background(), application(690, 72000, 0.30, 4, 40000), 7)
	s.Require().NoError(err)
	second, err := s.service.Analyze(context.Background(), application(690, 72000, 0.30, 4, 40000), 7)
	s.Require().NoError(err)

	s.Equal(first, second)
}

func (s *ServiceSuite) TestAnalyze_RejectsNonPositiveIncome() {
	income := -1.0
	_, err := s.service.Analyze(context.Background(), Application{AnnualIncome: &income}, 7)
	s.Require().Error(err)
	s.Contains(err.Error(), "annual income")
}
