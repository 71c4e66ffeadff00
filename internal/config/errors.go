package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, an empty database DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidCryptoConfigs indicates that the credential encryption key
	// is missing.
	ErrInvalidCryptoConfigs = errors.New("invalid crypto configuration")
	// ErrInvalidAuthConfigs indicates that the token-verification mode is
	// ambiguous: either both the shared secret and the JWKS URL were
	// supplied, or neither was.
	ErrInvalidAuthConfigs = errors.New("invalid auth configuration: set exactly one of token secret or JWKS URL")
)
