package chain

import (
	"context"
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"creditstudio/contracts/studio"

	dErrors "creditstudio/pkg/domain-errors"
)

type SimulatorSuite struct {
	suite.Suite
	sim      *Simulator
	worker   *SimClient
	verifier *SimClient
	addr     string
}

func TestSimulatorSuite(t *testing.T) {
	suite.Run(t, new(SimulatorSuite))
}

func (s *SimulatorSuite) SetupTest() {
	s.sim = NewSimulator("ethereum-sepolia")
	s.worker = s.sim.NewClient("CreditAnalyst", "analyst.creditstudio.example")
	s.verifier = s.sim.NewClient("RiskAuditor1", "riskauditor1.creditstudio.example")

	ctx := context.Background()
	_, _, err := s.worker.RegisterAgent(ctx, "https://creditstudio.example/.well-known/worker.json")
	s.Require().NoError(err)
	_, _, err = s.verifier.RegisterAgent(ctx, "https://creditstudio.example/.well-known/auditor.json")
	s.Require().NoError(err)

	s.addr, err = s.worker.CreateStudio(ctx, "Credit Assessment Studio", "0xfinance", 0)
	s.Require().NoError(err)

	_, err = s.worker.RegisterWithStudio(ctx, s.addr, studio.RoleWorker, 0.01)
	s.Require().NoError(err)
	_, err = s.verifier.RegisterWithStudio(ctx, s.addr, studio.RoleVerifier, 0.01)
	s.Require().NoError(err)
}

func (s *SimulatorSuite) TestRegisterAgentAssignsSequentialIDs() {
	id, found, err := s.worker.AgentID(context.Background())
	s.Require().NoError(err)
	s.True(found)
	s.Equal(uint64(1), id)

	id, found, err = s.verifier.AgentID(context.Background())
	s.Require().NoError(err)
	s.True(found)
	s.Equal(uint64(2), id)
}

func (s *SimulatorSuite) TestRegisterAgentTwiceConflicts() {
	_, _, err := s.worker.RegisterAgent(context.Background(), "https://creditstudio.example/again.json")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))
}

func (s *SimulatorSuite) TestSubmitWorkRequiresWorkerRole() {
	sub := studio.WorkSubmission{DataHash: sha256.Sum256([]byte("analysis"))}

	_, err := s.verifier.SubmitWork(context.Background(), s.addr, sub)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeForbidden))

	tx, err := s.worker.SubmitWork(context.Background(), s.addr, sub)
	s.Require().NoError(err)
	s.NotEmpty(tx)
}

func (s *SimulatorSuite) TestRevealVerifiedAgainstCommitment() {
	ctx := context.Background()
	dataHash := studio.Hash32(sha256.Sum256([]byte("analysis")))
	scores := []uint8{85, 90, 88, 95, 82, 91, 87, 90}
	salt := studio.Salt{1, 2, 3}

	payload := append(append([]byte{}, scores...), salt[:]...)
	commitment := studio.Hash32(sha256.Sum256(payload))

	_, err := s.verifier.CommitScore(ctx, s.addr, studio.ScoreCommitment{DataHash: dataHash, Commitment: commitment})
	s.Require().NoError(err)

	// Wrong salt must be rejected.
	_, err = s.verifier.RevealScore(ctx, s.addr, studio.ScoreReveal{DataHash: dataHash, Scores: scores, Salt: studio.Salt{9}})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))

	_, err = s.verifier.RevealScore(ctx, s.addr, studio.ScoreReveal{DataHash: dataHash, Scores: scores, Salt: salt})
	s.Require().NoError(err)

	reveals := s.sim.RevealedScores(s.addr, dataHash)
	s.Require().Len(reveals, 1)
	s.Equal(scores, reveals[0].Scores)
}

func (s *SimulatorSuite) TestRevealWithoutCommitmentFails() {
	_, err := s.verifier.RevealScore(context.Background(), s.addr, studio.ScoreReveal{
		DataHash: sha256.Sum256([]byte("never committed")),
		Scores:   []uint8{1, 2, 3, 4, 5, 6, 7, 8},
	})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodePrecondition))
}

func (s *SimulatorSuite) TestFailingOpsReturnUnavailable() {
	sim := NewSimulator("ethereum-sepolia", WithFailingOps("submit_work"))
	worker := sim.NewClient("CreditAnalyst", "analyst.creditstudio.example")
	ctx := context.Background()

	_, _, err := worker.RegisterAgent(ctx, "https://creditstudio.example/worker.json")
	require.NoError(s.T(), err)
	addr, err := worker.CreateStudio(ctx, "Credit Assessment Studio", "0xfinance", 0)
	require.NoError(s.T(), err)
	_, err = worker.RegisterWithStudio(ctx, addr, studio.RoleWorker, 0.01)
	require.NoError(s.T(), err)

	_, err = worker.SubmitWork(ctx, addr, studio.WorkSubmission{})
	require.Error(s.T(), err)
	require.True(s.T(), dErrors.HasCode(err, dErrors.CodeChainUnavailable))
}
