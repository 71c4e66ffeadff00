package models

import (
	"time"

	"github.com/google/uuid"
)

// UserProfile is the application-side extension of an externally managed
// identity. The identity provider owns authentication; this record only adds
// app-specific fields keyed on the provider's subject id.
//
// Exactly one profile exists per AuthUserID. Profiles are created lazily on
// the first authenticated request and are never deleted by the application.
type UserProfile struct {
	// ID is the internal unique identifier of the profile.
	ID uuid.UUID `json:"id"`

	// AuthUserID is the subject id assigned by the external identity
	// provider ("sub" claim). Unique across all profiles.
	AuthUserID uuid.UUID `json:"auth_user_id"`

	// DisplayName is an optional user-chosen name. Nil when unset.
	DisplayName *string `json:"display_name"`

	// Timezone is an IANA timezone name used when bucketing costs by
	// calendar period. Defaults to "UTC".
	Timezone string `json:"timezone"`

	// CreatedAt and UpdatedAt are assigned by the database.
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the UserProfile model.
func (UserProfile) TableName() string {
	return "user_profiles"
}

// UserProfileUpdate carries the fields of a partial profile update.
// Nil pointers mean "leave the stored value unchanged".
type UserProfileUpdate struct {
	DisplayName *string `json:"display_name"`
	Timezone    *string `json:"timezone"`
}

// Empty reports whether the update would change nothing.
func (u UserProfileUpdate) Empty() bool {
	return u.DisplayName == nil && u.Timezone == nil
}
