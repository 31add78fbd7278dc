// Package agentauth issues and validates session tokens for API callers.
// Callers register once for an API key, then exchange the key for short-lived
// JWTs on every session.
package agentauth

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	dErrors "creditstudio/pkg/domain-errors"
	"creditstudio/pkg/secrets"
)

const issuer = "creditstudio"

// SessionClaims are the JWT claims carried by an API session token.
type SessionClaims struct {
	AgentName string `json:"agent_name"`
	jwt.RegisteredClaims
}

// Registration is returned once at register time. The plaintext key is never
// stored and cannot be recovered.
type Registration struct {
	AgentID   uuid.UUID `json:"agent_id"`
	AgentName string    `json:"agent_name"`
	APIKey    string    `json:"api_key"`
	CreatedAt time.Time `json:"created_at"`
}

type record struct {
	id        uuid.UUID
	keyHash   string
	createdAt time.Time
}

// Service registers API agents and issues session tokens.
type Service struct {
	signingKey []byte
	tokenTTL   time.Duration
	now        func() time.Time

	mu     sync.RWMutex
	agents map[string]record
}

// NewService creates an auth service.
// Panics on an empty signing key - misconfigured auth must not boot.
func NewService(signingKey string, tokenTTL time.Duration) *Service {
	if signingKey == "" {
		panic("agentauth.NewService: signing key is required")
	}
	return &Service{
		signingKey: []byte(signingKey),
		tokenTTL:   tokenTTL,
		now:        time.Now,
		agents:     make(map[string]record),
	}
}

// Register creates an API agent and returns its one-time-visible key.
func (s *Service) Register(_ context.Context, agentName string) (Registration, error) {
	if agentName == "" {
		return Registration{}, dErrors.New(dErrors.CodeValidation, "agent name must not be empty")
	}

	key, err := secrets.Generate()
	if err != nil {
		return Registration{}, dErrors.Wrap(err, dErrors.CodeInternal, "generating API key")
	}
	hash, err := secrets.Hash(key)
	if err != nil {
		return Registration{}, dErrors.Wrap(err, dErrors.CodeInternal, "hashing API key")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.agents[agentName]; ok {
		return Registration{}, dErrors.New(dErrors.CodeConflict, "agent name already registered")
	}
	rec := record{id: uuid.New(), keyHash: hash, createdAt: s.now().UTC()}
	s.agents[agentName] = rec

	return Registration{
		AgentID:   rec.id,
		AgentName: agentName,
		APIKey:    key,
		CreatedAt: rec.createdAt,
	}, nil
}

// IssueToken exchanges a valid API key for a signed session token.
func (s *Service) IssueToken(_ context.Context, agentName, apiKey string) (string, time.Time, error) {
	s.mu.RLock()
	rec, ok := s.agents[agentName]
	s.mu.RUnlock()
	if !ok || secrets.Verify(apiKey, rec.keyHash) != nil {
		// Same error for unknown agent and bad key.
		return "", time.Time{}, dErrors.New(dErrors.CodeUnauthorized, "invalid agent credentials")
	}

	now := s.now()
	expiresAt := now.Add(s.tokenTTL)
	claims := SessionClaims{
		AgentName: agentName,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    issuer,
			Subject:   rec.id.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		return "", time.Time{}, dErrors.Wrap(err, dErrors.CodeInternal, "signing session token")
	}
	return token, expiresAt, nil
}

// Validate parses and verifies a session token string.
func (s *Service) Validate(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return s.signingKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(func() time.Time { return s.now() }),
	)
	if err != nil || !token.Valid {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid session token")
	}
	return claims, nil
}
