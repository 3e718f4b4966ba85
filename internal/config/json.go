package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON field names and
// string durations.
type StructuredJSONConfig struct {
	App struct {
		AccessTokenSignKey    string   `json:"access_token_sign_key"`
		RefreshTokenSignKey   string   `json:"refresh_token_sign_key"`
		AccessTokenDuration   Duration `json:"access_token_duration"`
		RefreshTokenDuration  Duration `json:"refresh_token_duration"`
		TokenIssuer           string   `json:"token_issuer"`
		RefreshTokenHashKey   string   `json:"refresh_token_hash_key"`
		PasswordHashCost      int      `json:"password_hash_cost"`
		AllowMultipleSessions bool     `json:"allow_multiple_sessions"`
		Version               string   `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			Driver          string   `json:"driver"`
			DSN             string   `json:"dsn"`
			MaxOpenConns    int      `json:"max_open_conns"`
			MaxIdleConns    int      `json:"max_idle_conns"`
			ConnMaxLifetime Duration `json:"conn_max_lifetime"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		GRPCAddress    string   `json:"grpc_address"`
		RequestTimeout Duration `json:"request_timeout"`
		TrustProxy     bool     `json:"trust_proxy"`
	} `json:"server,omitempty"`

	RateLimit struct {
		RedisAddress  string   `json:"redis_address"`
		RedisPassword string   `json:"redis_password"`
		RedisDB       int      `json:"redis_db"`
		Requests      int      `json:"requests"`
		Window        Duration `json:"window"`
	} `json:"rate_limit,omitempty"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
		SessionFile    string   `json:"session_file"`
	} `json:"adapter,omitempty"`

	Workers struct {
		CleanupInterval  Duration `json:"cleanup_interval"`
		SessionRetention Duration `json:"session_retention"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			AccessTokenSignKey:    jsonCfg.App.AccessTokenSignKey,
			RefreshTokenSignKey:   jsonCfg.App.RefreshTokenSignKey,
			AccessTokenDuration:   time.Duration(jsonCfg.App.AccessTokenDuration),
			RefreshTokenDuration:  time.Duration(jsonCfg.App.RefreshTokenDuration),
			TokenIssuer:           jsonCfg.App.TokenIssuer,
			RefreshTokenHashKey:   jsonCfg.App.RefreshTokenHashKey,
			PasswordHashCost:      jsonCfg.App.PasswordHashCost,
			AllowMultipleSessions: jsonCfg.App.AllowMultipleSessions,
			Version:               jsonCfg.App.Version,
		},
		Storage: Storage{
			DB: DB{
				Driver:          jsonCfg.Storage.DB.Driver,
				DSN:             jsonCfg.Storage.DB.DSN,
				MaxOpenConns:    jsonCfg.Storage.DB.MaxOpenConns,
				MaxIdleConns:    jsonCfg.Storage.DB.MaxIdleConns,
				ConnMaxLifetime: time.Duration(jsonCfg.Storage.DB.ConnMaxLifetime),
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			GRPCAddress:    jsonCfg.Server.GRPCAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
			TrustProxy:     jsonCfg.Server.TrustProxy,
		},
		RateLimit: RateLimit{
			RedisAddress:  jsonCfg.RateLimit.RedisAddress,
			RedisPassword: jsonCfg.RateLimit.RedisPassword,
			RedisDB:       jsonCfg.RateLimit.RedisDB,
			Requests:      jsonCfg.RateLimit.Requests,
			Window:        time.Duration(jsonCfg.RateLimit.Window),
		},
		Adapter: Adapter{
			HTTPAddress:    jsonCfg.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
			SessionFile:    jsonCfg.Adapter.SessionFile,
		},
		Workers: Workers{
			CleanupInterval:  time.Duration(jsonCfg.Workers.CleanupInterval),
			SessionRetention: time.Duration(jsonCfg.Workers.SessionRetention),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
