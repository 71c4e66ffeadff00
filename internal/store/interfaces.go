package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/costhook/costhook/models"
)

// ErrorClassificator decides whether a failed database operation is worth
// retrying. The application performs no automatic retries; classification is
// used for logging and for operator-facing diagnostics.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// UserProfileRepository persists application profiles keyed on the external
// identity provider's subject id.
type UserProfileRepository interface {
	// FindByAuthUserID returns the profile owned by the given auth subject,
	// or ErrProfileNotFound.
	FindByAuthUserID(ctx context.Context, authUserID uuid.UUID) (models.UserProfile, error)

	// Create inserts a new profile and returns it with server-assigned
	// timestamps. A duplicate auth subject id yields ErrProfileAlreadyExists.
	Create(ctx context.Context, profile models.UserProfile) (models.UserProfile, error)

	// Update applies the non-nil fields of update to the profile and
	// returns the stored row as of after the write.
	Update(ctx context.Context, profileID uuid.UUID, update models.UserProfileUpdate) (models.UserProfile, error)
}

// ProviderRepository persists connected vendor accounts. Credentials reach
// this layer already encrypted; the repository never sees plaintext.
type ProviderRepository interface {
	// FindByID returns the provider with the given id, or ErrProviderNotFound.
	// Ownership is NOT checked here; the service layer compares the returned
	// UserID against the caller's profile id.
	FindByID(ctx context.Context, providerID uuid.UUID) (models.Provider, error)

	// FindByUser returns all providers owned by the given profile,
	// newest first.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]models.Provider, error)

	// Create inserts a new provider and returns it with server-assigned
	// timestamps and defaults.
	Create(ctx context.Context, provider models.Provider) (models.Provider, error)

	// Update applies the non-nil fields of update (including a replacement
	// ciphertext, if any) and returns the stored row as of after the write.
	Update(ctx context.Context, providerID uuid.UUID, encryptedCredentials *string, update models.ProviderUpdate) (models.Provider, error)

	// Delete removes the provider. Its cost records are removed by the
	// ON DELETE CASCADE constraint. Returns ErrProviderNotFound when no
	// row was deleted.
	Delete(ctx context.Context, providerID uuid.UUID) error
}

// CostRecordRepository persists billing line items. Ownership is transitive
// through the provider, so every listing joins the providers table.
type CostRecordRepository interface {
	// FindByUser returns the cost records whose provider belongs to userID,
	// narrowed by the optional filters, ordered by period start descending.
	FindByUser(ctx context.Context, userID uuid.UUID, filters models.CostFilters) ([]models.CostRecord, error)

	// Create inserts one cost record and returns it with the
	// server-assigned creation timestamp.
	Create(ctx context.Context, record models.CostRecordCreate) (models.CostRecord, error)

	// CreateBatch inserts several cost records in a single transaction.
	// Used by sync tooling when importing a vendor invoice.
	CreateBatch(ctx context.Context, records []models.CostRecordCreate) error
}
