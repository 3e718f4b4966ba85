package config

import "time"

// Built-in fallbacks, merged last so every other source takes precedence.
const (
	DefaultAccessTokenDuration  = 15 * time.Minute
	DefaultRefreshTokenDuration = 7 * 24 * time.Hour
	DefaultTokenIssuer          = "go-job-tracker"
	DefaultPasswordHashCost     = 10

	DefaultHTTPAddress    = "localhost:8080"
	DefaultRequestTimeout = 30 * time.Second
	DefaultDBDriver       = DriverPostgres

	DefaultRateLimitRequests = 100
	DefaultRateLimitWindow   = 15 * time.Minute

	DefaultCleanupInterval  = time.Hour
	DefaultSessionRetention = 24 * time.Hour

	DefaultSessionFile = ".job-tracker-session.json"
)

// Supported values of [DB.Driver].
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			AccessTokenDuration:  DefaultAccessTokenDuration,
			RefreshTokenDuration: DefaultRefreshTokenDuration,
			TokenIssuer:          DefaultTokenIssuer,
			PasswordHashCost:     DefaultPasswordHashCost,
		},
		Storage: Storage{
			DB: DB{
				Driver: DefaultDBDriver,
			},
		},
		Server: Server{
			HTTPAddress:    DefaultHTTPAddress,
			RequestTimeout: DefaultRequestTimeout,
		},
		RateLimit: RateLimit{
			Requests: DefaultRateLimitRequests,
			Window:   DefaultRateLimitWindow,
		},
		Adapter: Adapter{
			HTTPAddress:    DefaultHTTPAddress,
			RequestTimeout: DefaultRequestTimeout,
			SessionFile:    DefaultSessionFile,
		},
		Workers: Workers{
			CleanupInterval:  DefaultCleanupInterval,
			SessionRetention: DefaultSessionRetention,
		},
	}
}
