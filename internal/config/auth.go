package config

import (
	"fmt"
	"time"
)

const minSecretLength = 16

// AuthConfig holds admin token configuration.
type AuthConfig struct {
	// Secret signs admin tokens. An empty secret disables every write endpoint.
	Secret string
	// Issuer is stamped into issued tokens and checked on validation.
	Issuer string
	// TokenTTL is the lifetime of tokens minted by scoreboardctl.
	TokenTTL time.Duration
	// AdminSubjects restricts admin access to these subjects when non-empty.
	AdminSubjects []string
}

// LoadAuthConfigFromEnv loads auth configuration from environment variables.
func LoadAuthConfigFromEnv() AuthConfig {
	return AuthConfig{
		Secret:        GetEnv("AUTH_SECRET", ""),
		Issuer:        GetEnv("AUTH_ISSUER", "softball-scoreboard"),
		TokenTTL:      GetEnvDuration("AUTH_TOKEN_TTL", 24*time.Hour),
		AdminSubjects: GetEnvList("AUTH_ADMIN_SUBJECTS", nil),
	}
}

// Enabled reports whether admin tokens can be validated.
func (c AuthConfig) Enabled() bool {
	return c.Secret != ""
}

// Validate validates auth configuration.
func (c AuthConfig) Validate() error {
	if c.Secret != "" && len(c.Secret) < minSecretLength {
		return fmt.Errorf("AUTH_SECRET must be at least %d characters", minSecretLength)
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TokenTTL must be greater than 0")
	}
	return nil
}
