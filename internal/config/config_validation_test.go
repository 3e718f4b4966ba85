package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validServerConfig() *StructuredConfig {
	cfg := defaultConfig()
	cfg.App.AccessTokenSignKey = "access"
	cfg.App.RefreshTokenSignKey = "refresh"
	cfg.Storage.DB.DSN = "postgres://localhost/jobs"
	return cfg
}

func TestStructuredConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *StructuredConfig)
		wantErr error
	}{
		{
			name:   "valid",
			mutate: func(cfg *StructuredConfig) {},
		},
		{
			name:    "missing access key",
			mutate:  func(cfg *StructuredConfig) { cfg.App.AccessTokenSignKey = "" },
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name: "identical sign keys",
			mutate: func(cfg *StructuredConfig) {
				cfg.App.RefreshTokenSignKey = cfg.App.AccessTokenSignKey
			},
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name:    "zero refresh duration",
			mutate:  func(cfg *StructuredConfig) { cfg.App.RefreshTokenDuration = 0 },
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name:    "hash cost too low",
			mutate:  func(cfg *StructuredConfig) { cfg.App.PasswordHashCost = 3 },
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name:    "empty dsn",
			mutate:  func(cfg *StructuredConfig) { cfg.Storage.DB.DSN = "" },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "unknown driver",
			mutate:  func(cfg *StructuredConfig) { cfg.Storage.DB.Driver = "mongo" },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name: "redis without window",
			mutate: func(cfg *StructuredConfig) {
				cfg.RateLimit.RedisAddress = "localhost:6379"
				cfg.RateLimit.Window = 0
			},
			wantErr: ErrInvalidRateLimitConfigs,
		},
		{
			name:    "zero cleanup interval",
			mutate:  func(cfg *StructuredConfig) { cfg.Workers.CleanupInterval = 0 },
			wantErr: ErrInvalidWorkerConfigs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validServerConfig()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestClientConfig_Validate(t *testing.T) {
	cfg := &ClientConfig{Adapter: ClientAdapter{
		HTTPAddress:    "localhost:8080",
		RequestTimeout: time.Second,
		SessionFile:    "/tmp/s.json",
	}}
	assert.NoError(t, cfg.validate())

	cfg.Adapter.HTTPAddress = ""
	assert.ErrorIs(t, cfg.validate(), ErrInvalidAdapterConfigs)
}

func TestApp_Tokens_HashKeyFallback(t *testing.T) {
	app := App{
		AccessTokenSignKey:   "a",
		RefreshTokenSignKey:  "r",
		AccessTokenDuration:  time.Minute,
		RefreshTokenDuration: time.Hour,
		TokenIssuer:          "iss",
	}

	tokens := app.Tokens()
	assert.Equal(t, "r", tokens.RefreshHashKey)
	assert.Equal(t, []byte("a"), tokens.AccessSignKey)
	assert.Equal(t, time.Hour, tokens.RefreshDuration)

	app.RefreshTokenHashKey = "h"
	assert.Equal(t, "h", app.Tokens().RefreshHashKey)
}
