// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/costhook/costhook/internal/config"
	"github.com/costhook/costhook/internal/logger"
	"github.com/costhook/costhook/models"
)

// authService is the concrete implementation of AuthService.
// It verifies bearer tokens issued by the external identity provider in one
// of two modes, chosen at startup by configuration:
//
//   - shared-secret mode: HS256 signatures checked against TokenSecret;
//   - public-key mode: RS256 signatures checked against RSA keys resolved
//     through the injected [KeySet] JWKS cache.
//
// The service never issues tokens; identity lives entirely with the external
// provider.
type authService struct {
	// tokenSecret is the pre-shared HMAC secret for shared-secret mode.
	// Empty when the service runs in public-key mode.
	tokenSecret string

	// keySet resolves RSA public keys by key id in public-key mode.
	// Nil when the service runs in shared-secret mode.
	keySet *KeySet

	// audience is the required "aud" claim. Tokens carrying a different
	// audience are rejected during parsing.
	audience string

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs an AuthService from cfg. Configuration
// validation guarantees that exactly one of TokenSecret and JWKSURL is set,
// so the mode is unambiguous here.
//
// The returned service is safe for concurrent use.
func NewAuthService(cfg config.Auth, logger *logger.Logger) AuthService {
	var keySet *KeySet
	if cfg.JWKSURL != "" {
		keySet = NewKeySet(cfg.JWKSURL, cfg.JWKSRefreshTimeout, logger)
	}

	return &authService{
		tokenSecret: cfg.TokenSecret,
		keySet:      keySet,
		audience:    cfg.Audience,
		logger:      logger,
	}
}

// VerifyToken validates a raw bearer token and returns its decoded claims.
//
// The signature, expiry, and audience are all checked during parsing; the
// subject claim is then parsed into claims.AuthUserID so downstream code
// works with a typed UUID.
//
// Returns:
//   - ErrTokenIsExpired when the token is structurally valid but past exp.
//   - ErrInvalidToken for every other failure (bad signature, wrong
//     audience, wrong algorithm, malformed subject, unknown kid).
//
// Both sentinels map to 401 at the HTTP layer; they are distinguished only
// for logging.
func (a *authService) VerifyToken(ctx context.Context, tokenString string) (models.TokenClaims, error) {
	log := logger.FromContext(ctx)

	claims := models.TokenClaims{}
	_, err := jwt.ParseWithClaims(tokenString, &claims, a.keyFunc(ctx),
		jwt.WithAudience(a.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			log.Debug().Str("func", "*authService.VerifyToken").Msg("token is expired")
			return models.TokenClaims{}, ErrTokenIsExpired
		}
		log.Err(err).Str("func", "*authService.VerifyToken").Msg("token verification failed")
		return models.TokenClaims{}, ErrInvalidToken
	}

	authUserID, err := claims.GetAuthUserID()
	if err != nil {
		log.Err(err).Str("func", "*authService.VerifyToken").Msg("token subject is not a UUID")
		return models.TokenClaims{}, ErrInvalidToken
	}
	claims.AuthUserID = authUserID

	return claims, nil
}

// keyFunc returns the jwt.Keyfunc for the configured verification mode.
//
// Algorithm confusion is rejected in both modes: shared-secret mode accepts
// only HMAC signing methods; public-key mode accepts only RS256. A token
// signed with the "wrong family" never reaches signature comparison.
func (a *authService) keyFunc(ctx context.Context) jwt.Keyfunc {
	if a.keySet == nil {
		return func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("%w: unexpected signing method %v", ErrInvalidToken, token.Header["alg"])
			}
			return []byte(a.tokenSecret), nil
		}
	}

	return func(token *jwt.Token) (any, error) {
		if token.Method.Alg() != jwt.SigningMethodRS256.Alg() {
			return nil, fmt.Errorf("%w: unexpected signing method %v", ErrInvalidToken, token.Header["alg"])
		}

		kid, ok := token.Header["kid"].(string)
		if !ok || kid == "" {
			return nil, fmt.Errorf("%w: token header carries no kid", ErrInvalidToken)
		}

		return a.keySet.KeyFor(ctx, kid)
	}
}
