package config

import "errors"

// Validation errors returned when required configuration groups are
// incomplete or invalid.
var (
	// ErrInvalidSessionConfigs indicates invalid session settings
	// (for example, an empty signing secret).
	ErrInvalidSessionConfigs = errors.New("invalid session configuration")
	// ErrInvalidHasherConfigs indicates an out-of-range work factor or pool size.
	ErrInvalidHasherConfigs = errors.New("invalid hasher configuration")
	// ErrInvalidStorageConfigs indicates an unknown driver or a missing DSN.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidServerConfigs indicates a missing listen address.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidAdapterConfigs indicates invalid client adapter settings
	// (for example, missing HTTP address or request timeout).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
)
