// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/costhook/costhook/internal/logger"
)

// jwksDocument is the wire shape of an RFC 7517 JWKS endpoint response.
type jwksDocument struct {
	Keys []jwksKey `json:"keys"`
}

// jwksKey is a single JSON Web Key. Only RSA signing keys are consumed;
// entries of any other type are skipped during refresh.
type jwksKey struct {
	KeyType   string `json:"kty"`
	KeyID     string `json:"kid"`
	Algorithm string `json:"alg"`
	Use       string `json:"use"`

	// Modulus and Exponent are base64url (no padding) big-endian integers.
	Modulus  string `json:"n"`
	Exponent string `json:"e"`
}

// KeySet is a lazily populated cache of RSA public keys fetched from a JWKS
// endpoint. The first token verification triggers a fetch; a token carrying
// an unknown kid triggers one more fetch before failing, which covers
// provider-side key rotation without a background refresher.
//
// KeySet is safe for concurrent use.
type KeySet struct {
	url     string
	client  *resty.Client
	timeout time.Duration
	logger  *logger.Logger

	mu   sync.RWMutex
	keys map[string]*rsa.PublicKey
}

// NewKeySet constructs a KeySet for the given JWKS endpoint. No network
// call happens until the first KeyFor.
func NewKeySet(url string, timeout time.Duration, logger *logger.Logger) *KeySet {
	return &KeySet{
		url:     url,
		client:  resty.New(),
		timeout: timeout,
		logger:  logger,
	}
}

// KeyFor resolves the RSA public key for the given key id.
//
// Lookup order: the in-memory cache first; on a miss the JWKS document is
// re-fetched once and the lookup retried. A kid that is still unknown after
// a fresh fetch yields ErrUnknownSigningKey.
func (k *KeySet) KeyFor(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	k.mu.RLock()
	key, found := k.keys[kid]
	k.mu.RUnlock()

	if found {
		return key, nil
	}

	if err := k.refresh(ctx); err != nil {
		return nil, err
	}

	k.mu.RLock()
	key, found = k.keys[kid]
	k.mu.RUnlock()

	if !found {
		return nil, fmt.Errorf("%w: kid=%s", ErrUnknownSigningKey, kid)
	}

	return key, nil
}

// refresh fetches the JWKS document and atomically replaces the cache with
// the RSA keys it contains. Keys that fail to decode are skipped with a
// warning rather than failing the whole refresh.
func (k *KeySet) refresh(ctx context.Context) error {
	fetchCtx, cancel := context.WithTimeout(ctx, k.timeout)
	defer cancel()

	var document jwksDocument
	response, err := k.client.R().
		SetContext(fetchCtx).
		SetResult(&document).
		Get(k.url)
	if err != nil {
		k.logger.Err(err).Str("func", "*KeySet.refresh").Str("url", k.url).Msg("JWKS request failed")
		return fmt.Errorf("%w: %w", ErrJWKSFetchFailed, err)
	}
	if !response.IsSuccess() {
		k.logger.Error().
			Str("func", "*KeySet.refresh").
			Str("url", k.url).
			Int("status", response.StatusCode()).
			Msg("JWKS endpoint returned non-success status")
		return fmt.Errorf("%w: status %d", ErrJWKSFetchFailed, response.StatusCode())
	}

	fresh := make(map[string]*rsa.PublicKey, len(document.Keys))
	for _, jwk := range document.Keys {
		if jwk.KeyType != "RSA" || jwk.KeyID == "" {
			continue
		}

		publicKey, parseErr := jwk.rsaPublicKey()
		if parseErr != nil {
			k.logger.Warn().
				Err(parseErr).
				Str("func", "*KeySet.refresh").
				Str("kid", jwk.KeyID).
				Msg("skipping JWKS key that failed to decode")
			continue
		}

		fresh[jwk.KeyID] = publicKey
	}

	k.mu.Lock()
	k.keys = fresh
	k.mu.Unlock()

	k.logger.Debug().Str("func", "*KeySet.refresh").Int("keys", len(fresh)).Msg("JWKS cache refreshed")
	return nil
}

// rsaPublicKey decodes the base64url modulus and exponent into an
// *rsa.PublicKey.
func (j jwksKey) rsaPublicKey() (*rsa.PublicKey, error) {
	modulusBytes, err := base64.RawURLEncoding.DecodeString(j.Modulus)
	if err != nil {
		return nil, fmt.Errorf("decoding modulus: %w", err)
	}

	exponentBytes, err := base64.RawURLEncoding.DecodeString(j.Exponent)
	if err != nil {
		return nil, fmt.Errorf("decoding exponent: %w", err)
	}
	if len(exponentBytes) == 0 || len(exponentBytes) > 8 {
		return nil, fmt.Errorf("exponent has unexpected length %d", len(exponentBytes))
	}

	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(modulusBytes),
		E: int(new(big.Int).SetBytes(exponentBytes).Int64()),
	}, nil
}
