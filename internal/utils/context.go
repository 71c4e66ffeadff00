// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys,
// HTTP response writing, and identifier generation.
package utils

import (
	"context"

	"github.com/google/uuid"

	"github.com/costhook/costhook/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// ProfileIDCtxKey is the key used to store the authenticated caller's
// profile identifier in the context. Set by the auth middleware after the
// profile has been resolved (or lazily created) for the token subject.
//
// Example of writing a value to the context:
//
//	ctx := context.WithValue(ctx, utils.ProfileIDCtxKey, profile.ID)
var ProfileIDCtxKey = contextKey("profileID")

// ClaimsCtxKey is the key used to store the verified token claims in the
// context. Set by the auth middleware alongside ProfileIDCtxKey.
var ClaimsCtxKey = contextKey("tokenClaims")

// GetProfileIDFromContext retrieves the caller's profile identifier from the
// context.
//
// Returns the profile ID and an ok flag:
//   - ok == true  — value is found and has the correct uuid.UUID type
//   - ok == false — value is missing or has an unexpected type
func GetProfileIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	profileID, ok := ctx.Value(ProfileIDCtxKey).(uuid.UUID)
	return profileID, ok
}

// GetClaimsFromContext retrieves the verified token claims from the context.
//
// Returns the claims and an ok flag analogous to GetProfileIDFromContext.
func GetClaimsFromContext(ctx context.Context) (models.TokenClaims, bool) {
	claims, ok := ctx.Value(ClaimsCtxKey).(models.TokenClaims)
	return claims, ok
}
