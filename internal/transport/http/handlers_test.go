package httptransport

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"creditstudio/internal/agentauth"
	"creditstudio/internal/agents"
	"creditstudio/internal/audit"
	"creditstudio/internal/chain"
	"creditstudio/internal/consensus"
	"creditstudio/internal/platform/health"
	"creditstudio/internal/underwriting"
	"creditstudio/internal/verification"
	"creditstudio/internal/workflow"
)

type HandlersSuite struct {
	suite.Suite

	server *httptest.Server
	auth   *agentauth.Service
}

func TestHandlersSuite(t *testing.T) {
	suite.Run(t, new(HandlersSuite))
}

func (s *HandlersSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	publisher := audit.NewPublisher(audit.NewInMemoryStore())
	sim := chain.NewSimulator("testnet")

	engine := underwriting.New(publisher)
	worker := agents.NewWorker(
		"credit-analyst", "analyst.example.com",
		sim.NewClient("credit-analyst", "analyst.example.com"),
		engine, publisher,
	)
	verifiers := make([]*agents.VerifierAgent, 0, 2)
	for i := 1; i <= 2; i++ {
		name := fmt.Sprintf("verifier-%d", i)
		domain := fmt.Sprintf("verifier%d.example.com", i)
		client := sim.NewClient(name, domain)
		verifiers = append(verifiers,
			agents.NewVerifier(name, domain, client, verification.New(name, client, publisher), publisher))
	}
	runner := workflow.New(
		sim.NewClient("operator", "studio.example.com"),
		worker, verifiers, consensus.New(), publisher,
		workflow.Config{
			StudioName:     "Credit Assessment Studio",
			InitialBudget:  1,
			StakeAmount:    0.01,
			BaseReward:     0.1,
			VerifierReward: 0.01,
		},
	)

	s.auth = agentauth.NewService("test-signing-key", 15*time.Minute)
	handler := NewHandler(engine, runner, s.auth, logger)
	s.server = httptest.NewServer(NewRouter(handler, health.New("test"), logger, 30*time.Second))
	s.T().Cleanup(s.server.Close)
}

func (s *HandlersSuite) postJSON(path string, body any, headers map[string]string) *http.Response {
	payload, err := json.Marshal(body)
	s.Require().NoError(err)

	req, err := http.NewRequest(http.MethodPost, s.server.URL+path, bytes.NewReader(payload))
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := s.server.Client().Do(req)
	s.Require().NoError(err)
	return resp
}

func (s *HandlersSuite) decode(resp *http.Response, out any) {
	defer resp.Body.Close()
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(out))
}

func (s *HandlersSuite) sessionToken() string {
	resp := s.postJSON("/agents/register", map[string]string{"agent_name": "operator-cli"}, nil)
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	var reg agentauth.Registration
	s.decode(resp, &reg)

	resp = s.postJSON("/agents/token", map[string]string{
		"agent_name": "operator-cli",
		"api_key":    reg.APIKey,
	}, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var tok struct {
		Token string `json:"token"`
	}
	s.decode(resp, &tok)
	return tok.Token
}

func (s *HandlersSuite) TestEvaluate_ReturnsDecision() {
	resp := s.postJSON("/applications/evaluate", map[string]any{
		"applicant_name":   "Jordan Reyes",
		"credit_score":     720,
		"annual_income":    85000,
		"debt_to_income":   0.28,
		"employment_years": 5,
		"requested_amount": 50000,
	}, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var decision underwriting.Decision
	s.decode(resp, &decision)
	s.Equal(underwriting.RecommendApprove, decision.Recommendation)
	s.Equal(50000.0, decision.RecommendedTerms.ApprovedAmount)
	s.Equal(7.5, decision.RecommendedTerms.InterestRate)
}

func (s *HandlersSuite) TestEvaluate_MalformedPayload() {
	req, err := http.NewRequest(http.MethodPost, s.server.URL+"/applications/evaluate", bytes.NewReader([]byte("{not json")))
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.server.Client().Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *HandlersSuite) TestEvaluate_ValidationFailure() {
	resp := s.postJSON("/applications/evaluate", map[string]any{"annual_income": -5}, nil)
	defer resp.Body.Close()
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *HandlersSuite) TestAgentRegister_DuplicateConflicts() {
	resp := s.postJSON("/agents/register", map[string]string{"agent_name": "dup"}, nil)
	resp.Body.Close()
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	resp = s.postJSON("/agents/register", map[string]string{"agent_name": "dup"}, nil)
	defer resp.Body.Close()
	s.Equal(http.StatusConflict, resp.StatusCode)
}

func (s *HandlersSuite) TestAgentToken_WrongKeyUnauthorized() {
	resp := s.postJSON("/agents/register", map[string]string{"agent_name": "keyed"}, nil)
	resp.Body.Close()
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	resp = s.postJSON("/agents/token", map[string]string{"agent_name": "keyed", "api_key": "wrong"}, nil)
	defer resp.Body.Close()
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *HandlersSuite) TestWorkflowRun_RequiresSession() {
	resp := s.postJSON("/workflow/run", map[string]any{}, nil)
	defer resp.Body.Close()
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *HandlersSuite) TestWorkflowRun_FullRun() {
	token := s.sessionToken()

	resp := s.postJSON("/workflow/run", map[string]any{
		"applicant_name":   "Jordan Reyes",
		"credit_score":     720,
		"annual_income":    85000,
		"debt_to_income":   0.28,
		"employment_years": 5,
		"requested_amount": 50000,
	}, map[string]string{"Authorization": "Bearer " + token})
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var report workflow.RunReport
	s.decode(resp, &report)
	s.NotEmpty(report.StudioAddr)
	s.Require().NotNil(report.Consensus)
	s.Equal(2, report.Consensus.VerifierCount)
	s.GreaterOrEqual(report.Consensus.FinalScore, 70.0)
	s.Len(report.Verifiers, 2)
}

func (s *HandlersSuite) TestHealth() {
	resp, err := s.server.Client().Get(s.server.URL + "/health")
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)
}

func (s *HandlersSuite) TestMetricsEndpoint() {
	resp, err := s.server.Client().Get(s.server.URL + "/metrics")
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)
}
