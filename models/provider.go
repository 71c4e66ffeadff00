package models

import (
	"time"

	"github.com/google/uuid"
)

// ProviderType identifies the third-party vendor a provider account belongs to.
type ProviderType string

// Known vendor kinds. The set is closed; anything else is rejected by
// validation and by a CHECK constraint on the providers table.
const (
	ProviderSupabase  ProviderType = "supabase"
	ProviderVercel    ProviderType = "vercel"
	ProviderResend    ProviderType = "resend"
	ProviderStripe    ProviderType = "stripe"
	ProviderOpenAI    ProviderType = "openai"
	ProviderAnthropic ProviderType = "anthropic"
)

// ProviderStatus describes the sync state of a connected provider account.
type ProviderStatus string

const (
	StatusConnected ProviderStatus = "connected"
	StatusError     ProviderStatus = "error"
	StatusSyncing   ProviderStatus = "syncing"
	StatusPending   ProviderStatus = "pending"
)

// Provider is a connected third-party vendor account whose costs are tracked.
//
// CredentialsEncrypted holds the AES-GCM ciphertext of the credentials JSON
// object and is never serialized into API responses.
type Provider struct {
	ID     uuid.UUID    `json:"id"`
	UserID uuid.UUID    `json:"user_id"`
	Type   ProviderType `json:"type"`
	Name   string       `json:"name"`

	// CredentialsEncrypted is the at-rest form of the provider credentials.
	// Excluded from JSON: credentials are accepted on create/update but
	// never echoed back.
	CredentialsEncrypted string `json:"-"`

	Status     ProviderStatus `json:"status"`
	LastSyncAt *time.Time     `json:"last_sync_at"`
	LastError  *string        `json:"last_error"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Provider model.
func (Provider) TableName() string {
	return "providers"
}

// ProviderCreate is the request body for registering a new provider account.
// Credentials arrive in plaintext over the wire and are encrypted before
// they reach storage.
type ProviderCreate struct {
	Name        string         `json:"name"`
	Type        ProviderType   `json:"type"`
	Credentials map[string]any `json:"credentials"`
}

// ProviderUpdate carries a partial provider update.
//
// A nil Credentials map means "leave the stored ciphertext unchanged". JSON
// decoding collapses an explicit null and an absent field into the same nil
// map, so both are treated as no-change; clearing credentials is not
// supported (the column is non-nullable).
//
// Status, LastSyncAt and LastError are not settable over the wire; they are
// populated by sync tooling through the service layer.
type ProviderUpdate struct {
	Name        *string        `json:"name"`
	Credentials map[string]any `json:"credentials"`

	Status     *ProviderStatus `json:"-"`
	LastSyncAt *time.Time      `json:"-"`
	LastError  *string         `json:"-"`
}

// Empty reports whether the update would change nothing.
func (u ProviderUpdate) Empty() bool {
	return u.Name == nil && u.Credentials == nil &&
		u.Status == nil && u.LastSyncAt == nil && u.LastError == nil
}

// ValidProviderType reports whether t is one of the known vendor kinds.
func ValidProviderType(t ProviderType) bool {
	switch t {
	case ProviderSupabase, ProviderVercel, ProviderResend,
		ProviderStripe, ProviderOpenAI, ProviderAnthropic:
		return true
	}
	return false
}
