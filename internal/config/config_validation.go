// SPDX-License-Identifier: Apache-2.0

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Invariants:
//   - a database DSN must be configured;
//   - the credential encryption key must be configured;
//   - exactly one token-verification mode must be configured: either the
//     shared HMAC secret or the JWKS endpoint URL, not both and not neither.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Crypto.EncryptionKey == "" {
		return ErrInvalidCryptoConfigs
	}

	hasSecret := cfg.Auth.TokenSecret != ""
	hasJWKS := cfg.Auth.JWKSURL != ""
	if hasSecret == hasJWKS {
		return ErrInvalidAuthConfigs
	}

	return nil
}
