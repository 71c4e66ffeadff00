// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/costhook/costhook/internal/config"
	"github.com/costhook/costhook/internal/logger"
	"github.com/costhook/costhook/models"
)

const testSecret = "test-signing-secret"

func newSecretAuthService() AuthService {
	return NewAuthService(config.Auth{
		TokenSecret: testSecret,
		Audience:    "authenticated",
	}, logger.Nop())
}

func signHS256(t *testing.T, claims models.TokenClaims, secret string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func validClaims(subject string) models.TokenClaims {
	return models.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Audience:  jwt.ClaimStrings{"authenticated"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		Email: "user@example.com",
		Role:  "authenticated",
	}
}

func TestVerifyToken_SharedSecret_Valid(t *testing.T) {
	authUserID := uuid.New()
	tokenString := signHS256(t, validClaims(authUserID.String()), testSecret)

	claims, err := newSecretAuthService().VerifyToken(context.Background(), tokenString)
	require.NoError(t, err)
	assert.Equal(t, authUserID, claims.AuthUserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, "authenticated", claims.Role)
}

func TestVerifyToken_SharedSecret_Expired(t *testing.T) {
	claims := validClaims(uuid.New().String())
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	tokenString := signHS256(t, claims, testSecret)

	_, err := newSecretAuthService().VerifyToken(context.Background(), tokenString)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTokenIsExpired))
}

func TestVerifyToken_SharedSecret_WrongSecret(t *testing.T) {
	tokenString := signHS256(t, validClaims(uuid.New().String()), "a different secret")

	_, err := newSecretAuthService().VerifyToken(context.Background(), tokenString)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestVerifyToken_SharedSecret_WrongAudience(t *testing.T) {
	claims := validClaims(uuid.New().String())
	claims.Audience = jwt.ClaimStrings{"anon"}
	tokenString := signHS256(t, claims, testSecret)

	_, err := newSecretAuthService().VerifyToken(context.Background(), tokenString)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestVerifyToken_SharedSecret_MissingExpiry(t *testing.T) {
	claims := validClaims(uuid.New().String())
	claims.ExpiresAt = nil
	tokenString := signHS256(t, claims, testSecret)

	_, err := newSecretAuthService().VerifyToken(context.Background(), tokenString)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestVerifyToken_SharedSecret_SubjectNotUUID(t *testing.T) {
	tokenString := signHS256(t, validClaims("not-a-uuid"), testSecret)

	_, err := newSecretAuthService().VerifyToken(context.Background(), tokenString)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestVerifyToken_SharedSecret_RejectsRS256(t *testing.T) {
	// Algorithm confusion: an RS256 token must never be accepted by the
	// HMAC verifier, even before any signature check.
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, validClaims(uuid.New().String()))
	tokenString, err := token.SignedString(privateKey)
	require.NoError(t, err)

	_, verifyErr := newSecretAuthService().VerifyToken(context.Background(), tokenString)
	require.Error(t, verifyErr)
	assert.True(t, errors.Is(verifyErr, ErrInvalidToken))
}

func TestVerifyToken_SharedSecret_Malformed(t *testing.T) {
	_, err := newSecretAuthService().VerifyToken(context.Background(), "not even a token")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

// ─────────────────────────────────────────────
// Public-key (JWKS) mode
// ─────────────────────────────────────────────

// jwksTestServer serves an in-memory JWKS document that a test can swap out
// to simulate key rotation.
type jwksTestServer struct {
	server *httptest.Server
	keys   map[string]*rsa.PrivateKey
}

func newJWKSTestServer(t *testing.T, kids ...string) *jwksTestServer {
	t.Helper()

	jts := &jwksTestServer{keys: make(map[string]*rsa.PrivateKey)}
	for _, kid := range kids {
		privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
		require.NoError(t, err)
		jts.keys[kid] = privateKey
	}

	jts.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		document := jwksDocument{}
		for kid, privateKey := range jts.keys {
			document.Keys = append(document.Keys, jwksKey{
				KeyType:   "RSA",
				KeyID:     kid,
				Algorithm: "RS256",
				Use:       "sig",
				Modulus:   base64.RawURLEncoding.EncodeToString(privateKey.N.Bytes()),
				Exponent:  base64.RawURLEncoding.EncodeToString(big.NewInt(int64(privateKey.E)).Bytes()),
			})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(document)
	}))
	t.Cleanup(jts.server.Close)

	return jts
}

func (j *jwksTestServer) sign(t *testing.T, kid string, claims models.TokenClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = kid
	tokenString, err := token.SignedString(j.keys[kid])
	require.NoError(t, err)
	return tokenString
}

func (j *jwksTestServer) authService() AuthService {
	return NewAuthService(config.Auth{
		JWKSURL:            j.server.URL,
		Audience:           "authenticated",
		JWKSRefreshTimeout: 5 * time.Second,
	}, logger.Nop())
}

func TestVerifyToken_JWKS_Valid(t *testing.T) {
	jwks := newJWKSTestServer(t, "key-1")
	authUserID := uuid.New()

	tokenString := jwks.sign(t, "key-1", validClaims(authUserID.String()))

	claims, err := jwks.authService().VerifyToken(context.Background(), tokenString)
	require.NoError(t, err)
	assert.Equal(t, authUserID, claims.AuthUserID)
}

func TestVerifyToken_JWKS_UnknownKid(t *testing.T) {
	jwks := newJWKSTestServer(t, "key-1")

	// Sign with a key the endpoint never serves.
	rogue := newJWKSTestServer(t, "rogue-kid")
	tokenString := rogue.sign(t, "rogue-kid", validClaims(uuid.New().String()))

	_, err := jwks.authService().VerifyToken(context.Background(), tokenString)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestVerifyToken_JWKS_KeyRotation(t *testing.T) {
	jwks := newJWKSTestServer(t, "key-1")
	svc := jwks.authService()

	// Warm the cache with the first key.
	first := jwks.sign(t, "key-1", validClaims(uuid.New().String()))
	_, err := svc.VerifyToken(context.Background(), first)
	require.NoError(t, err)

	// Rotate: add a second key server-side. The unknown kid triggers a
	// refresh rather than an immediate failure.
	rotated, rotateErr := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, rotateErr)
	jwks.keys["key-2"] = rotated

	second := jwks.sign(t, "key-2", validClaims(uuid.New().String()))
	_, err = svc.VerifyToken(context.Background(), second)
	require.NoError(t, err)
}

func TestVerifyToken_JWKS_RejectsHS256(t *testing.T) {
	jwks := newJWKSTestServer(t, "key-1")

	// A forged HMAC token must be rejected in public-key mode regardless of
	// what secret it was signed with.
	tokenString := signHS256(t, validClaims(uuid.New().String()), "attacker-controlled")

	_, err := jwks.authService().VerifyToken(context.Background(), tokenString)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestVerifyToken_JWKS_EndpointDown(t *testing.T) {
	jwks := newJWKSTestServer(t, "key-1")
	tokenString := jwks.sign(t, "key-1", validClaims(uuid.New().String()))

	svc := jwks.authService()
	jwks.server.Close()

	_, err := svc.VerifyToken(context.Background(), tokenString)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}
