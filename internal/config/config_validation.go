// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

const (
	minPasswordHashCost = 4
	maxPasswordHashCost = 31
)

// validate checks that the final merged [StructuredConfig] satisfies all
// server invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	app := cfg.App
	if app.AccessTokenSignKey == "" || app.RefreshTokenSignKey == "" {
		return fmt.Errorf("%w: both token sign keys are required", ErrInvalidAppConfigs)
	}
	if app.AccessTokenSignKey == app.RefreshTokenSignKey {
		return fmt.Errorf("%w: access and refresh sign keys must differ", ErrInvalidAppConfigs)
	}
	if app.AccessTokenDuration <= 0 || app.RefreshTokenDuration <= 0 {
		return fmt.Errorf("%w: token durations must be positive", ErrInvalidAppConfigs)
	}
	if app.PasswordHashCost < minPasswordHashCost || app.PasswordHashCost > maxPasswordHashCost {
		return fmt.Errorf("%w: password hash cost %d out of range", ErrInvalidAppConfigs, app.PasswordHashCost)
	}

	db := cfg.Storage.DB
	if db.DSN == "" {
		return fmt.Errorf("%w: empty DSN", ErrInvalidStorageConfigs)
	}
	if db.Driver != DriverPostgres && db.Driver != DriverSQLite {
		return fmt.Errorf("%w: unknown driver %q", ErrInvalidStorageConfigs, db.Driver)
	}

	if cfg.Server.HTTPAddress == "" {
		return fmt.Errorf("%w: empty http address", ErrInvalidServerConfigs)
	}

	if cfg.RateLimit.RedisAddress != "" && (cfg.RateLimit.Requests <= 0 || cfg.RateLimit.Window <= 0) {
		return ErrInvalidRateLimitConfigs
	}

	if cfg.Workers.CleanupInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout == 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Adapter.SessionFile == "" {
		return ErrInvalidAdapterConfigs
	}

	return nil
}
