package config

import (
	"testing"
	"time"

	"github.com/Netflix/go-env"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	req := require.New(t)
	cfg, err := Parse(env.EnvSet{
		"ADMIN_PASSWORD": "secret",
		"JWT_SECRET":     "0123456789abcdef",
		"BASE_URL":       "https://santa.example.com/",
	})
	req.NoError(err)
	req.Equal("0.0.0.0:8080", cfg.Addr())
	req.Equal("https://santa.example.com", cfg.BaseURL)
	req.Equal(12*time.Hour, cfg.AuthTokenDuration)
	req.Equal(10*time.Minute, cfg.GCInterval)
	req.Equal(1_000_000, cfg.MatchMaxSteps)
	req.Equal(5*1024*1024, cfg.MaxImageBytes)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		es   env.EnvSet
	}{
		{"Missing JWT secret", env.EnvSet{"ADMIN_PASSWORD": "secret"}},
		{"Short JWT secret", env.EnvSet{"ADMIN_PASSWORD": "secret", "JWT_SECRET": "short"}},
		{"Missing admin password", env.EnvSet{"JWT_SECRET": "0123456789abcdef"}},
		{"Bad port", env.EnvSet{"ADMIN_PASSWORD": "secret", "JWT_SECRET": "0123456789abcdef", "PORT": "70000"}},
		{"Bad base URL", env.EnvSet{"ADMIN_PASSWORD": "secret", "JWT_SECRET": "0123456789abcdef", "BASE_URL": "not a url"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.es)
			require.Error(t, err)
		})
	}
}
