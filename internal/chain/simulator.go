package chain

import (
	"context"
	"crypto/sha256"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"creditstudio/contracts/studio"

	dErrors "creditstudio/pkg/domain-errors"
)

// Simulator is an in-memory stand-in for the chain network, shared by every
// agent handle it issues. It keeps the registry, studio membership, and
// commit-reveal records so the demo and tests can run without a network.
//
// Reveals are verified against the published commitment the way the studio
// contract would: SHA-256(scores || salt) must match or the reveal is
// rejected.
type Simulator struct {
	mu        sync.Mutex
	network   string
	nextAgent uint64
	agents    map[string]uint64 // agent name -> registry id
	studios   map[string]*simStudio
	failOps   map[string]bool

	reputations map[uint64]*studio.ReputationSummary
}

type simStudio struct {
	name        string
	logicModule string
	members     map[uint64]studio.AgentRole
	work        map[studio.Hash32]studio.WorkSubmission
	commitments map[studio.Hash32]map[uint64]studio.Hash32 // data hash -> agent -> commitment
	reveals     map[studio.Hash32]map[uint64]studio.ScoreReveal
}

// SimulatorOption configures the Simulator.
type SimulatorOption func(*Simulator)

// WithFailingOps makes the named operations (e.g. "submit_work",
// "commit_score") return ErrUnavailable, for exercising skip-and-continue
// handling at the orchestration layer.
func WithFailingOps(ops ...string) SimulatorOption {
	return func(s *Simulator) {
		for _, op := range ops {
			s.failOps[op] = true
		}
	}
}

// NewSimulator creates a simulator for the named network.
func NewSimulator(network string, opts ...SimulatorOption) *Simulator {
	s := &Simulator{
		network:     network,
		nextAgent:   1,
		agents:      make(map[string]uint64),
		studios:     make(map[string]*simStudio),
		failOps:     make(map[string]bool),
		reputations: make(map[uint64]*studio.ReputationSummary),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewClient issues a per-agent handle bound to this simulated network.
func (s *Simulator) NewClient(agentName, agentDomain string) *SimClient {
	return &SimClient{sim: s, agentName: agentName, agentDomain: agentDomain}
}

// RevealedScores returns the verified reveals recorded for one data hash,
// in no particular order.
func (s *Simulator) RevealedScores(studioAddr string, dataHash studio.Hash32) []studio.ScoreReveal {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.studios[studioAddr]
	if !ok {
		return nil
	}
	reveals := make([]studio.ScoreReveal, 0, len(st.reveals[dataHash]))
	for _, r := range st.reveals[dataHash] {
		reveals = append(reveals, r)
	}
	return reveals
}

func (s *Simulator) failing(op string) bool {
	return s.failOps[op]
}

func newTxHash() studio.TxHash {
	digest := sha256.Sum256([]byte(uuid.New().String()))
	return studio.TxHash("0x" + fmt.Sprintf("%x", digest))
}

// SimClient implements Client against the shared Simulator.
type SimClient struct {
	sim         *Simulator
	agentName   string
	agentDomain string
}

var _ Client = (*SimClient)(nil)

func (c *SimClient) AgentID(_ context.Context) (uint64, bool, error) {
	c.sim.mu.Lock()
	defer c.sim.mu.Unlock()
	id, ok := c.sim.agents[c.agentName]
	return id, ok, nil
}

func (c *SimClient) RegisterAgent(_ context.Context, tokenURI string) (uint64, studio.TxHash, error) {
	if tokenURI == "" {
		return 0, "", dErrors.New(dErrors.CodeInvalidInput, "token URI must not be empty")
	}
	c.sim.mu.Lock()
	defer c.sim.mu.Unlock()
	if c.sim.failing("register_agent") {
		return 0, "", ErrUnavailable
	}
	if id, ok := c.sim.agents[c.agentName]; ok {
		return id, "", dErrors.New(dErrors.CodeConflict, "agent already registered")
	}
	id := c.sim.nextAgent
	c.sim.nextAgent++
	c.sim.agents[c.agentName] = id
	c.sim.reputations[id] = &studio.ReputationSummary{AgentID: id}
	return id, newTxHash(), nil
}

func (c *SimClient) CreateStudio(_ context.Context, name, logicModule string, _ float64) (string, error) {
	c.sim.mu.Lock()
	defer c.sim.mu.Unlock()
	if c.sim.failing("create_studio") {
		return "", ErrUnavailable
	}
	addr := "0x" + uuid.New().String()[:8] + uuid.New().String()[:8]
	c.sim.studios[addr] = &simStudio{
		name:        name,
		logicModule: logicModule,
		members:     make(map[uint64]studio.AgentRole),
		work:        make(map[studio.Hash32]studio.WorkSubmission),
		commitments: make(map[studio.Hash32]map[uint64]studio.Hash32),
		reveals:     make(map[studio.Hash32]map[uint64]studio.ScoreReveal),
	}
	return addr, nil
}

func (c *SimClient) RegisterWithStudio(_ context.Context, studioAddr string, role studio.AgentRole, stake float64) (studio.TxHash, error) {
	if stake <= 0 {
		return "", dErrors.New(dErrors.CodeInvalidInput, "stake must be positive")
	}
	c.sim.mu.Lock()
	defer c.sim.mu.Unlock()
	if c.sim.failing("register_with_studio") {
		return "", ErrUnavailable
	}
	st, agentID, err := c.lookupLocked(studioAddr)
	if err != nil {
		return "", err
	}
	st.members[agentID] = role
	return newTxHash(), nil
}

func (c *SimClient) SubmitWork(_ context.Context, studioAddr string, sub studio.WorkSubmission) (studio.TxHash, error) {
	c.sim.mu.Lock()
	defer c.sim.mu.Unlock()
	if c.sim.failing("submit_work") {
		return "", ErrUnavailable
	}
	st, agentID, err := c.lookupLocked(studioAddr)
	if err != nil {
		return "", err
	}
	if st.members[agentID] != studio.RoleWorker {
		return "", dErrors.New(dErrors.CodeForbidden, "only workers may submit work")
	}
	st.work[sub.DataHash] = sub
	rep := c.sim.reputations[agentID]
	rep.JobsCompleted++
	rep.Role = studio.RoleWorker.String()
	return newTxHash(), nil
}

func (c *SimClient) CommitScore(_ context.Context, studioAddr string, commit studio.ScoreCommitment) (studio.TxHash, error) {
	c.sim.mu.Lock()
	defer c.sim.mu.Unlock()
	if c.sim.failing("commit_score") {
		return "", ErrUnavailable
	}
	st, agentID, err := c.lookupLocked(studioAddr)
	if err != nil {
		return "", err
	}
	if st.members[agentID] != studio.RoleVerifier {
		return "", dErrors.New(dErrors.CodeForbidden, "only verifiers may commit scores")
	}
	if st.commitments[commit.DataHash] == nil {
		st.commitments[commit.DataHash] = make(map[uint64]studio.Hash32)
	}
	st.commitments[commit.DataHash][agentID] = commit.Commitment
	return newTxHash(), nil
}

func (c *SimClient) RevealScore(_ context.Context, studioAddr string, reveal studio.ScoreReveal) (studio.TxHash, error) {
	c.sim.mu.Lock()
	defer c.sim.mu.Unlock()
	if c.sim.failing("reveal_score") {
		return "", ErrUnavailable
	}
	st, agentID, err := c.lookupLocked(studioAddr)
	if err != nil {
		return "", err
	}
	commitment, ok := st.commitments[reveal.DataHash][agentID]
	if !ok {
		return "", dErrors.New(dErrors.CodePrecondition, "no commitment published for this data hash")
	}
	if recomputeCommitment(reveal.Scores, reveal.Salt) != commitment {
		return "", dErrors.New(dErrors.CodeInvalidInput, "reveal does not match published commitment")
	}
	if st.reveals[reveal.DataHash] == nil {
		st.reveals[reveal.DataHash] = make(map[uint64]studio.ScoreReveal)
	}
	st.reveals[reveal.DataHash][agentID] = reveal
	return newTxHash(), nil
}

func (c *SimClient) CloseEpoch(_ context.Context, studioAddr string, _ uint64) (studio.TxHash, error) {
	c.sim.mu.Lock()
	defer c.sim.mu.Unlock()
	if c.sim.failing("close_epoch") {
		return "", ErrUnavailable
	}
	if _, _, err := c.lookupLocked(studioAddr); err != nil {
		return "", err
	}
	return newTxHash(), nil
}

func (c *SimClient) ReputationSummary(_ context.Context, agentID uint64) (studio.ReputationSummary, error) {
	c.sim.mu.Lock()
	defer c.sim.mu.Unlock()
	rep, ok := c.sim.reputations[agentID]
	if !ok {
		return studio.ReputationSummary{}, dErrors.New(dErrors.CodeNotFound, "agent not registered")
	}
	return *rep, nil
}

func (c *SimClient) WithdrawRewards(_ context.Context, studioAddr string) (studio.TxHash, error) {
	c.sim.mu.Lock()
	defer c.sim.mu.Unlock()
	if c.sim.failing("withdraw_rewards") {
		return "", ErrUnavailable
	}
	if _, _, err := c.lookupLocked(studioAddr); err != nil {
		return "", err
	}
	return newTxHash(), nil
}

// lookupLocked resolves the studio and the calling agent. Callers must hold
// the simulator mutex.
func (c *SimClient) lookupLocked(studioAddr string) (*simStudio, uint64, error) {
	st, ok := c.sim.studios[studioAddr]
	if !ok {
		return nil, 0, dErrors.New(dErrors.CodeNotFound, "unknown studio address")
	}
	agentID, ok := c.sim.agents[c.agentName]
	if !ok {
		return nil, 0, dErrors.New(dErrors.CodePrecondition, "agent not registered on identity registry")
	}
	return st, agentID, nil
}

// recomputeCommitment mirrors the contract-side commitment check: one byte
// per dimension score, followed by the 32-byte salt.
func recomputeCommitment(scores []uint8, salt studio.Salt) studio.Hash32 {
	payload := make([]byte, 0, len(scores)+len(salt))
	payload = append(payload, scores...)
	payload = append(payload, salt[:]...)
	return sha256.Sum256(payload)
}
