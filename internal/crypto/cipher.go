// SPDX-License-Identifier: Apache-2.0

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
)

// credentialCipher is the private implementation of [CredentialCipher].
// It holds the derived 256-bit key for the lifetime of the process. Key
// rotation is out of scope: the same key must stay configured for as long
// as encrypted rows exist.
type credentialCipher struct {
	key []byte
}

// keyStretchSalt domain-separates credential-cipher key derivation from any
// other Argon2id use of the same passphrase. The salt can be public; the
// passphrase is the secret.
var keyStretchSalt = []byte("costhook/credential-cipher/v1")

// NewCredentialCipher constructs a [CredentialCipher] from the configured
// encryption key.
//
// Two key formats are accepted:
//   - base64 (standard encoding) of exactly 32 bytes — used verbatim;
//   - any other non-empty string — stretched to a 256-bit key with Argon2id
//     using the parameters recommended by OWASP (2024): 1 iteration, 64 MiB
//     memory, 4 threads.
//
// Returns an error if the key is empty.
func NewCredentialCipher(encryptionKey string) (CredentialCipher, error) {
	if encryptionKey == "" {
		return nil, fmt.Errorf("empty encryption key")
	}

	if raw, err := base64.StdEncoding.DecodeString(encryptionKey); err == nil && len(raw) == 32 {
		return &credentialCipher{key: raw}, nil
	}

	key := argon2.IDKey([]byte(encryptionKey), keyStretchSalt, 1, 64*1024, 4, 32)
	return &credentialCipher{key: key}, nil
}

// Encrypt implements [CredentialCipher]. It marshals credentials to JSON,
// then encrypts the plaintext with AES-256-GCM. The output is a Base64
// (standard encoding) string of the blob: nonce (12 bytes) ‖ ciphertext.
// Returns an error if marshalling, cipher creation, or nonce generation fails.
func (c *credentialCipher) Encrypt(credentials map[string]any) (string, error) {
	// 1. Serialize to JSON
	plaintext, err := json.Marshal(credentials)
	if err != nil {
		return "", fmt.Errorf("marshal credentials: %w", err)
	}

	// 2. Build AES-GCM cipher from the process key
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("create gcm: %w", err)
	}

	// 3. Generate a random nonce
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	// 4. Encrypt: nonce || ciphertext
	ciphertext := gcm.Seal(nil, nonce, plaintext, nil)
	blob := append(nonce, ciphertext...)

	return base64.StdEncoding.EncodeToString(blob), nil
}

// Decrypt implements [CredentialCipher]. It Base64-decodes encrypted, splits
// out the nonce, decrypts the ciphertext with AES-256-GCM, and unmarshals
// the resulting JSON into a credentials map.
//
// The blob must be at least as long as the GCM nonce (12 bytes). Returns an
// error if any step (decoding, cipher creation, decryption, or
// unmarshalling) fails; an authentication-tag mismatch means the ciphertext
// was corrupted or encrypted under a different key.
func (c *credentialCipher) Decrypt(encrypted string) (map[string]any, error) {
	// 1. Decode base64 blob
	blob, err := base64.StdEncoding.DecodeString(encrypted)
	if err != nil {
		return nil, fmt.Errorf("decode base64: %w", err)
	}

	// 2. Build AES-GCM cipher from the process key
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}

	// 3. Split nonce and ciphertext
	nonceSize := gcm.NonceSize()
	if len(blob) < nonceSize {
		return nil, fmt.Errorf("ciphertext too short")
	}
	nonce, ciphertext := blob[:nonceSize], blob[nonceSize:]

	// 4. Decrypt and verify auth tag
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("decrypt credentials: %w", err)
	}

	// 5. Unmarshal JSON into a map
	var credentials map[string]any
	if err := json.Unmarshal(plaintext, &credentials); err != nil {
		return nil, fmt.Errorf("unmarshal credentials: %w", err)
	}

	return credentials, nil
}
