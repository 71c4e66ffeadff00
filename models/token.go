package models

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenClaims is the verified identity extracted from a bearer token issued
// by the external identity provider.
//
// It embeds [jwt.RegisteredClaims] so the standard claim set (sub, exp, aud,
// iss) is available to the JWT parser, and adds the provider-specific email
// and role claims.
//
// AuthUserID is a cached, parsed copy of the "sub" claim converted to
// [uuid.UUID]. It is populated after successful verification and avoids
// repeated string-to-UUID parsing downstream.
type TokenClaims struct {
	// RegisteredClaims provides access to the standard JWT claim set
	// (sub, exp, iat, nbf, iss, aud, jti) as defined by RFC 7519.
	jwt.RegisteredClaims

	// Email is the "email" claim set by the identity provider. May be empty.
	Email string `json:"email,omitempty"`

	// Role is the provider-assigned role claim (e.g. "authenticated").
	Role string `json:"role,omitempty"`

	// AuthUserID is the subject parsed as a UUID. Internal server-side
	// cache, excluded from JSON serialization.
	AuthUserID uuid.UUID `json:"-"`
}

// GetAuthUserID extracts the subject claim, parses it as a UUID, and
// returns the result.
//
// Returns an error if the subject claim is missing, empty, or is not a
// well-formed UUID.
func (c *TokenClaims) GetAuthUserID() (uuid.UUID, error) {
	sub, err := c.GetSubject()
	if err != nil {
		return uuid.Nil, fmt.Errorf("error extracting subject from token: %w", err)
	}

	id, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, fmt.Errorf("error converting token subject to UUID: %w", err)
	}

	return id, nil
}
