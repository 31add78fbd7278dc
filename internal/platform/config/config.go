// Package config defines service configuration and its loading rules.
//
// Defaults are layered under an optional YAML file and CREDIT_STUDIO_*
// environment variables, highest last.
package config

import "time"

// Config contains process configuration for the studio service and demo.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// Environment names the deployment environment reported by health checks.
	Environment string `koanf:"environment"`

	// Network selects the chain network the SDK binds to.
	Network string `koanf:"network"`

	// StudioName is used when the orchestrator creates a studio.
	StudioName string `koanf:"studio_name"`

	// StakeAmount is the stake (in ETH) posted when joining a studio.
	StakeAmount float64 `koanf:"stake_amount"`

	// InitialBudget funds the studio reward pool at creation (in ETH).
	InitialBudget float64 `koanf:"initial_budget"`

	// BaseReward is the per-epoch worker reward pool (in ETH).
	BaseReward float64 `koanf:"base_reward"`

	// VerifierReward is the flat per-verifier reward (in ETH).
	VerifierReward float64 `koanf:"verifier_reward"`

	// VerifierCount sets how many verifier agents the demo runs.
	VerifierCount int `koanf:"verifier_count"`

	// MinVerifiers is the consensus quorum; 1 accepts any participation.
	MinVerifiers int `koanf:"min_verifiers"`

	// JWTSigningKey signs agent session tokens for the operator API.
	JWTSigningKey string `koanf:"jwt_signing_key"`

	// TokenTTL bounds agent session token lifetime.
	TokenTTL time.Duration `koanf:"token_ttl"`

	// RequestTimeout bounds each HTTP request.
	RequestTimeout time.Duration `koanf:"request_timeout"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:       "info",
		Addr:           ":8080",
		Environment:    "development",
		Network:        "ethereum-sepolia",
		StudioName:     "Credit Assessment Studio",
		StakeAmount:    0.01,
		InitialBudget:  1.0,
		BaseReward:     0.1,
		VerifierReward: 0.01,
		VerifierCount:  3,
		MinVerifiers:   1,
		JWTSigningKey:  "dev-secret-key-change-in-production",
		TokenTTL:       15 * time.Minute,
		RequestTimeout: 30 * time.Second,
	}
}
