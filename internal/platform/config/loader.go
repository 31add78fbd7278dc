package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	dErrors "creditstudio/pkg/domain-errors"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if CREDIT_STUDIO_CONFIG is set
//  3. env (prefix CREDIT_STUDIO_)
func Load() (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("CREDIT_STUDIO_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "could not read config file")
		}
	}

	// Environment variables: CREDIT_STUDIO_ADDR, CREDIT_STUDIO_BASE_REWARD, ...
	// Keys map to the flat koanf tags on the struct; underscores are preserved.
	envProvider := env.Provider("CREDIT_STUDIO_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "credit_studio_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not read environment")
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "could not unmarshal config")
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Addr == "" {
		return dErrors.New(dErrors.CodeValidation, "addr must not be empty")
	}
	if c.VerifierCount < 1 {
		return dErrors.New(dErrors.CodeValidation, "verifier_count must be at least 1")
	}
	if c.MinVerifiers < 1 || c.MinVerifiers > c.VerifierCount {
		return dErrors.New(dErrors.CodeValidation, "min_verifiers must be between 1 and verifier_count")
	}
	if c.BaseReward < 0 || c.VerifierReward < 0 || c.StakeAmount < 0 {
		return dErrors.New(dErrors.CodeValidation, "reward and stake amounts must not be negative")
	}
	return nil
}
