package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"time"
)

// DefaultTokenIssuer is the "iss" claim of session tokens.
const DefaultTokenIssuer = "resume-builder"

// JWTConfig holds configuration for session token signing and validation.
type JWTConfig struct {
	Secret          string
	ExpirationHours int
	Issuer          string
	// Ephemeral is set when the secret was generated at startup; tokens do not
	// survive a restart.
	Ephemeral bool
}

// NewJWTConfig creates a session token configuration from environment variables.
// It reads JWT_SECRET, JWT_EXPIRATION_HOURS (default: 24) and JWT_ISSUER. When
// allowEphemeral is set and JWT_SECRET is empty, a random secret is generated.
func NewJWTConfig(allowEphemeral bool) (*JWTConfig, error) {
	config := &JWTConfig{
		Secret: os.Getenv("JWT_SECRET"),
		Issuer: os.Getenv("JWT_ISSUER"),
	}
	if config.Issuer == "" {
		config.Issuer = DefaultTokenIssuer
	}

	if config.Secret == "" {
		if !allowEphemeral {
			return nil, fmt.Errorf("JWT_SECRET is required but not set")
		}
		secret, err := randomSecret()
		if err != nil {
			return nil, fmt.Errorf("failed to generate session secret: %w", err)
		}
		config.Secret = secret
		config.Ephemeral = true
	}

	expirationStr := os.Getenv("JWT_EXPIRATION_HOURS")
	if expirationStr == "" {
		expirationStr = "24" // default
	}
	expirationHours, err := strconv.Atoi(expirationStr)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRATION_HOURS: %v", err)
	}
	config.ExpirationHours = expirationHours

	if err := config.normalize(); err != nil {
		return nil, err
	}
	return config, nil
}

// Expiration returns the token lifetime.
func (c *JWTConfig) Expiration() time.Duration {
	return time.Duration(c.ExpirationHours) * time.Hour
}

// normalize validates the configuration.
func (c *JWTConfig) normalize() error {
	if len(c.Secret) < 16 {
		return fmt.Errorf("JWT_SECRET must be at least 16 characters")
	}
	if c.ExpirationHours < 1 {
		return fmt.Errorf("JWT_EXPIRATION_HOURS must be at least 1 hour, got: %d", c.ExpirationHours)
	}
	return nil
}

func randomSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
