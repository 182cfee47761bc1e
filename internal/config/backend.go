package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"

	"golang.org/x/crypto/bcrypt"
)

// Environment variables read by the reference backend.
const (
	EnvJWTSecret      = "SCREENER_JWT_SECRET"
	EnvJWTTTLHours    = "SCREENER_JWT_TTL_HOURS"
	EnvBcryptCost     = "SCREENER_BCRYPT_COST"
	EnvPasswordPepper = "SCREENER_PASSWORD_PEPPER"
)

// JWTConfig holds configuration for token generation and validation.
type JWTConfig struct {
	Secret          string
	ExpirationHours int
}

// NewJWTConfig reads the signing secret and token lifetime (default 24h) from
// the environment. Without a secret, a random one is generated so a local
// backend can start; tokens then do not survive a restart.
func NewJWTConfig() (*JWTConfig, error) {
	secret := os.Getenv(EnvJWTSecret)
	if secret == "" {
		generated, err := randomSecret()
		if err != nil {
			return nil, err
		}
		secret = generated
	}

	hours := 24
	if v := os.Getenv(EnvJWTTTLHours); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %v", EnvJWTTTLHours, err)
		}
		hours = n
	}

	cfg := &JWTConfig{Secret: secret, ExpirationHours: hours}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *JWTConfig) normalize() error {
	if c.Secret == "" {
		return fmt.Errorf("jwt secret cannot be empty")
	}
	if c.ExpirationHours < 1 {
		return fmt.Errorf("token lifetime must be at least 1 hour, got: %d", c.ExpirationHours)
	}
	return nil
}

func randomSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate jwt secret: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// PasswordConfig holds configuration for password hashing and verification.
type PasswordConfig struct {
	BcryptCost int
	Pepper     string // optional global secret appended before hashing
}

// NewPasswordConfig reads the bcrypt cost (default 12) and optional pepper.
func NewPasswordConfig() (*PasswordConfig, error) {
	cost := 12
	if v := os.Getenv(EnvBcryptCost); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %v", EnvBcryptCost, err)
		}
		cost = n
	}

	cfg := &PasswordConfig{
		BcryptCost: cost,
		Pepper:     os.Getenv(EnvPasswordPepper),
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *PasswordConfig) normalize() error {
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > 14 {
		return fmt.Errorf("bcrypt cost out of range: %d (must be %d-14)", c.BcryptCost, bcrypt.MinCost)
	}
	return nil
}

// HashPassword hashes a password using bcrypt (with optional pepper).
func (c *PasswordConfig) HashPassword(pw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pw+c.Pepper), c.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword verifies a password against a stored hash (with optional pepper).
func (c *PasswordConfig) VerifyPassword(pw, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(pw+c.Pepper)) == nil
}
