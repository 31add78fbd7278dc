package agents

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"creditstudio/contracts/studio"
	"creditstudio/internal/audit"
	"creditstudio/internal/canonical"
	"creditstudio/internal/chain/mocks"
	"creditstudio/internal/underwriting"
	"creditstudio/internal/verification"
	dErrors "creditstudio/pkg/domain-errors"
)

const testStudioAddr = "0xstudio"

type AgentsSuite struct {
	suite.Suite

	ctrl     *gomock.Controller
	client   *mocks.MockClient
	store    *audit.InMemoryStore
	worker   *WorkerAgent
	verifier *VerifierAgent
}

func TestAgentsSuite(t *testing.T) {
	suite.Run(t, new(AgentsSuite))
}

func (s *AgentsSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.client = mocks.NewMockClient(s.ctrl)
	s.store = audit.NewInMemoryStore()
	publisher := audit.NewPublisher(s.store)

	engine := underwriting.New(publisher)
	s.worker = NewWorker("credit-analyst", "analyst.example.com", s.client, engine, publisher)

	scoring := verification.New("verifier-1", s.client, publisher)
	s.verifier = NewVerifier("verifier-1", "verifier1.example.com", s.client, scoring, publisher)
}

func (s *AgentsSuite) TestWorkerRegister_ReusesExistingIdentity() {
	s.client.EXPECT().AgentID(gomock.Any()).Return(uint64(7), true, nil)

	id, err := s.worker.Register(context.Background())
	s.Require().NoError(err)
	s.Equal(uint64(7), id)
	s.Equal(uint64(7), s.worker.AgentID())
}

func (s *AgentsSuite) TestWorkerRegister_NewIdentity() {
	s.client.EXPECT().AgentID(gomock.Any()).Return(uint64(0), false, nil)
	s.client.EXPECT().
		RegisterAgent(gomock.Any(), "https://analyst.example.com/.well-known/agent.json").
		Return(uint64(3), studio.TxHash("0xreg"), nil)

	id, err := s.worker.Register(context.Background())
	s.Require().NoError(err)
	s.Equal(uint64(3), id)

	events, err := s.store.ListByAgent(context.Background(), "credit-analyst")
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.Equal(string(audit.EventAgentRegistered), events[0].Action)
}

func (s *AgentsSuite) TestWorkerJoinStudio_RequiresRegistration() {
	err := s.worker.JoinStudio(context.Background(), testStudioAddr, 0.01)
	s.True(dErrors.HasCode(err, dErrors.CodePrecondition))
}

func (s *AgentsSuite) TestWorkerJoinStudio_StakesAsWorker() {
	s.client.EXPECT().AgentID(gomock.Any()).Return(uint64(7), true, nil)
	s.client.EXPECT().
		RegisterWithStudio(gomock.Any(), testStudioAddr, studio.RoleWorker, 0.01).
		Return(studio.TxHash("0xjoin"), nil)

	_, err := s.worker.Register(context.Background())
	s.Require().NoError(err)
	s.Require().NoError(s.worker.JoinStudio(context.Background(), testStudioAddr, 0.01))
}

func (s *AgentsSuite) TestWorkerSubmitWork_RequiresStudio() {
	_, err := s.worker.SubmitWork(context.Background(), &underwriting.Decision{}, "thread", "evidence")
	s.True(dErrors.HasCode(err, dErrors.CodePrecondition))
}

func (s *AgentsSuite) TestWorkerSubmitWork_PublishesDigests() {
	s.client.EXPECT().AgentID(gomock.Any()).Return(uint64(7), true, nil)
	s.client.EXPECT().
		RegisterWithStudio(gomock.Any(), testStudioAddr, studio.RoleWorker, 0.01).
		Return(studio.TxHash("0xjoin"), nil)

	_, err := s.worker.Register(context.Background())
	s.Require().NoError(err)
	s.Require().NoError(s.worker.JoinStudio(context.Background(), testStudioAddr, 0.01))

	decision, err := s.worker.Analyze(context.Background(), underwriting.Application{})
	s.Require().NoError(err)
	expectedHash, err := canonical.Hash(decision)
	s.Require().NoError(err)

	var submitted studio.WorkSubmission
	s.client.EXPECT().
		SubmitWork(gomock.Any(), testStudioAddr, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, sub studio.WorkSubmission) (studio.TxHash, error) {
			submitted = sub
			return studio.TxHash("0xwork"), nil
		})

	result, err := s.worker.SubmitWork(context.Background(), decision, "thread-1", "evidence-1")
	s.Require().NoError(err)
	s.Equal(expectedHash, result.DataHash)
	s.Equal(expectedHash, submitted.DataHash)
	s.Equal(canonical.HashString("xmtp_thread-1"), submitted.ThreadRoot)
	s.Equal(canonical.HashString("ipfs_evidence-1"), submitted.EvidenceRoot)
}

func (s *AgentsSuite) TestVerifierJoinStudio_BindsScoring() {
	s.client.EXPECT().AgentID(gomock.Any()).Return(uint64(12), true, nil)
	s.client.EXPECT().
		RegisterWithStudio(gomock.Any(), testStudioAddr, studio.RoleVerifier, 0.01).
		Return(studio.TxHash("0xjoin"), nil)

	_, err := s.verifier.Register(context.Background())
	s.Require().NoError(err)
	s.Require().NoError(s.verifier.JoinStudio(context.Background(), testStudioAddr, 0.01))

	// The scoring service is bound, so commit no longer fails the
	// studio-binding precondition.
	decision, err := s.worker.Analyze(context.Background(), underwriting.Application{})
	s.Require().NoError(err)
	var hash studio.Hash32
	hash[0] = 1
	report, err := s.verifier.Audit(context.Background(), hash, decision)
	s.Require().NoError(err)
	s.Equal(uint64(12), report.VerifierID)

	s.client.EXPECT().
		CommitScore(gomock.Any(), testStudioAddr, gomock.Any()).
		Return(studio.TxHash("0xcommit"), nil)
	_, err = s.verifier.CommitScore(context.Background(), report)
	s.NoError(err)
}

func (s *AgentsSuite) TestVerifierRegister_ChainFailurePropagates() {
	s.client.EXPECT().AgentID(gomock.Any()).Return(uint64(0), false, nil)
	s.client.EXPECT().
		RegisterAgent(gomock.Any(), gomock.Any()).
		Return(uint64(0), studio.TxHash(""), dErrors.New(dErrors.CodeChainUnavailable, "sdk down"))

	_, err := s.verifier.Register(context.Background())
	s.True(dErrors.HasCode(err, dErrors.CodeChainUnavailable))
}
