package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, empty DSN or an unsupported driver).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidServerConfigs indicates invalid server settings
	// (for example, missing HTTP listen address).
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, missing token sign key or hash key).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidHardwareConfigs indicates invalid hardware driver settings
	// (for example, an unknown bolt driver name).
	ErrInvalidHardwareConfigs = errors.New("invalid hardware configuration")
)
