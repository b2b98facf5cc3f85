// Package config loads the server configuration from the environment.
// A .env file in the working directory is read first when present.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
)

type Config struct {
	Host    string `env:"HOST,default=0.0.0.0"`
	Port    int    `env:"PORT,default=8080"`
	BaseURL string `env:"BASE_URL,default=http://localhost:8080"`

	BadgerFilepath string        `env:"BADGER_FILEPATH,default=./data"`
	GCInterval     time.Duration `env:"GC_INTERVAL,default=10m"`

	AdminPassword     string        `env:"ADMIN_PASSWORD"`
	AdminPasswordHash string        `env:"ADMIN_PASSWORD_HASH"`
	JWTSecret         string        `env:"JWT_SECRET,required=true"`
	AuthTokenDuration time.Duration `env:"AUTH_TOKEN_DURATION,default=12h"`

	// MatchMaxSteps bounds the backtracking search of one draw; <= 0 is unbounded.
	MatchMaxSteps int `env:"MATCH_MAX_STEPS,default=1000000"`
	MaxImageBytes int `env:"MAX_IMAGE_BYTES,default=5242880"`

	// LogFile receives the log; when empty the log goes to the console.
	LogFile string `env:"LOG_FILE"`
	Verbose bool   `env:"VERBOSE,default=false"`
}

// Load reads .env (if any) and the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	es, err := env.EnvironToEnvSet(os.Environ())
	if err != nil {
		return Config{}, err
	}
	return Parse(es)
}

// Parse builds a Config from an explicit variable set.
func Parse(es env.EnvSet) (Config, error) {
	var cfg Config
	if err := env.Unmarshal(es, &cfg); err != nil {
		return Config{}, fmt.Errorf("config error: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return cfg, nil
}

func (c Config) validate() error {
	if c.AdminPassword == "" && c.AdminPasswordHash == "" {
		return errors.New("ADMIN_PASSWORD or ADMIN_PASSWORD_HASH is required")
	}
	if len(c.JWTSecret) < 16 {
		return errors.New("JWT_SECRET must be at least 16 characters")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Port)
	}
	if _, err := url.ParseRequestURI(c.BaseURL); err != nil {
		return fmt.Errorf("invalid BASE_URL: %w", err)
	}
	if c.MaxImageBytes <= 0 {
		return fmt.Errorf("invalid MAX_IMAGE_BYTES %d", c.MaxImageBytes)
	}
	if c.GCInterval <= 0 {
		return fmt.Errorf("invalid GC_INTERVAL %s", c.GCInterval)
	}
	return nil
}

// Addr is the listen address.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
