// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// Database drivers accepted by [StructuredConfig.validate].
const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite3"
)

// Bolt drivers accepted by [StructuredConfig.validate].
const (
	BoltDriverGPIO = "gpio"
	BoltDriverMock = "mock"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// startup invariants before it is used.
//
// Returns nil if the configuration is valid, or a descriptive sentinel
// error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}
	switch cfg.Storage.DB.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	if cfg.App.TokenSignKey == "" || cfg.App.TokenIssuer == "" || cfg.App.TokenDuration == 0 {
		return ErrInvalidAppConfigs
	}
	if cfg.App.HashKey == "" {
		return ErrInvalidAppConfigs
	}

	switch cfg.Hardware.BoltDriver {
	case BoltDriverGPIO, BoltDriverMock, "":
	default:
		return ErrInvalidHardwareConfigs
	}

	return nil
}
