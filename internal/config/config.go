package config

import (
	"errors"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the full application configuration, parsed from the
// environment. A .env file is honored when present.
type Config struct {
	Server ServerConfig
	Mongo  MongoConfig
	Token  TokenConfig
	Social SocialConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `env:"PORT"             envDefault:"5000"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// MongoConfig holds document store settings.
type MongoConfig struct {
	URI      string `env:"MONGODB_URI"      envDefault:"mongodb://localhost:27017"`
	Database string `env:"MONGODB_DATABASE" envDefault:"shagun"`
}

// TokenConfig holds session token settings. Tokens are long-lived bearer
// credentials with no refresh rotation.
type TokenConfig struct {
	Secret    string        `env:"JWT_SECRET"`
	ExpiresIn time.Duration `env:"JWT_EXPIRES_IN" envDefault:"720h"`
	Issuer    string        `env:"JWT_ISSUER"     envDefault:"shagun-api"`
}

// SocialConfig holds social login verification credentials. An empty
// value leaves the corresponding provider in trust-the-client mode.
type SocialConfig struct {
	GoogleClientID string `env:"GOOGLE_CLIENT_ID"`
	FacebookVerify bool   `env:"FACEBOOK_VERIFY_TOKENS"`
	AppleClientID  string `env:"APPLE_CLIENT_ID"`
}

// Load parses the configuration from the environment.
func Load() (*Config, error) {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Token.Secret == "" {
		return errors.New("missing JWT_SECRET environment variable")
	}
	if c.Token.ExpiresIn <= 0 {
		return errors.New("JWT_EXPIRES_IN must be positive")
	}

	return nil
}
