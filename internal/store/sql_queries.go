package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/costhook/costhook/models"
)

const (
	profileColumns = "id, auth_user_id, display_name, timezone, created_at, updated_at"

	createProfile = `INSERT INTO user_profiles (id, auth_user_id, display_name, timezone)
    VALUES ($1, $2, $3, $4)
    RETURNING id, auth_user_id, display_name, timezone, created_at, updated_at;`

	findProfileByAuthUserID = `SELECT id, auth_user_id, display_name, timezone, created_at, updated_at
    FROM user_profiles
    WHERE auth_user_id = $1;`

	providerColumns = "id, user_id, type, name, credentials_encrypted, status, last_sync_at, last_error, created_at, updated_at"

	createProvider = `INSERT INTO providers (id, user_id, type, name, credentials_encrypted)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING id, user_id, type, name, credentials_encrypted, status, last_sync_at, last_error, created_at, updated_at;`

	findProviderByID = `SELECT id, user_id, type, name, credentials_encrypted, status, last_sync_at, last_error, created_at, updated_at
    FROM providers
    WHERE id = $1;`

	findProvidersByUser = `SELECT id, user_id, type, name, credentials_encrypted, status, last_sync_at, last_error, created_at, updated_at
    FROM providers
    WHERE user_id = $1
    ORDER BY created_at DESC;`

	deleteProvider = `DELETE FROM providers
    WHERE id = $1;`

	costRecordColumns = "id, provider_id, amount, service, period_start, period_end, metadata_json, created_at"

	createCostRecord = `INSERT INTO cost_records (id, provider_id, amount, service, period_start, period_end, metadata_json)
    VALUES ($1, $2, $3, $4, $5, $6, $7)
    RETURNING id, provider_id, amount, service, period_start, period_end, metadata_json, created_at;`
)

// psql is the squirrel statement builder configured for PostgreSQL
// positional placeholders ($1, $2, ...).
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// buildUpdateProfileQuery builds the partial UPDATE for a user profile.
// Only non-nil fields of update are added to the SET clause; updated_at is
// always refreshed. Returns ErrEmptyUpdate when nothing would change.
func buildUpdateProfileQuery(profileID uuid.UUID, update models.UserProfileUpdate) (string, []any, error) {
	if update.Empty() {
		return "", nil, ErrEmptyUpdate
	}

	builder := psql.Update("user_profiles").
		Set("updated_at", sq.Expr("NOW()"))

	if update.DisplayName != nil {
		builder = builder.Set("display_name", *update.DisplayName)
	}
	if update.Timezone != nil {
		builder = builder.Set("timezone", *update.Timezone)
	}

	query, args, err := builder.
		Where(sq.Eq{"id": profileID}).
		Suffix("RETURNING " + profileColumns).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildUpdateProviderQuery builds the partial UPDATE for a provider.
// encryptedCredentials is the replacement ciphertext, already produced by the
// credential cipher; nil leaves the stored blob untouched.
func buildUpdateProviderQuery(providerID uuid.UUID, encryptedCredentials *string, update models.ProviderUpdate) (string, []any, error) {
	if update.Empty() && encryptedCredentials == nil {
		return "", nil, ErrEmptyUpdate
	}

	builder := psql.Update("providers").
		Set("updated_at", sq.Expr("NOW()"))

	if update.Name != nil {
		builder = builder.Set("name", *update.Name)
	}
	if encryptedCredentials != nil {
		builder = builder.Set("credentials_encrypted", *encryptedCredentials)
	}
	if update.Status != nil {
		builder = builder.Set("status", string(*update.Status))
	}
	if update.LastSyncAt != nil {
		builder = builder.Set("last_sync_at", *update.LastSyncAt)
	}
	if update.LastError != nil {
		builder = builder.Set("last_error", *update.LastError)
	}

	query, args, err := builder.
		Where(sq.Eq{"id": providerID}).
		Suffix("RETURNING " + providerColumns).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildListCostRecordsQuery builds the filtered cost-record listing.
//
// The join to providers both resolves transitive ownership (cost records
// carry no user id column) and serves the provider-type filter. Every
// non-nil filter is conjunctive; date bounds are inclusive.
func buildListCostRecordsQuery(userID uuid.UUID, filters models.CostFilters) (string, []any, error) {
	builder := psql.
		Select(
			"cr.id", "cr.provider_id", "cr.amount", "cr.service",
			"cr.period_start", "cr.period_end", "cr.metadata_json", "cr.created_at",
		).
		From("cost_records cr").
		Join("providers p ON p.id = cr.provider_id").
		Where(sq.Eq{"p.user_id": userID})

	if filters.ProviderID != nil {
		builder = builder.Where(sq.Eq{"cr.provider_id": *filters.ProviderID})
	}
	if filters.ProviderType != nil {
		builder = builder.Where(sq.Eq{"p.type": string(*filters.ProviderType)})
	}
	if filters.StartDate != nil {
		builder = builder.Where(sq.GtOrEq{"cr.period_start": *filters.StartDate})
	}
	if filters.EndDate != nil {
		builder = builder.Where(sq.LtOrEq{"cr.period_end": *filters.EndDate})
	}

	query, args, err := builder.
		OrderBy("cr.period_start DESC").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}
