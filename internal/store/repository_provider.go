package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/costhook/costhook/internal/logger"
	"github.com/costhook/costhook/internal/utils"
	"github.com/costhook/costhook/models"
)

// providerRepository is the PostgreSQL-backed implementation of
// [ProviderRepository]. It executes all provider CRUD operations against the
// "providers" table using the embedded [*DB] connection.
//
// Credentials cross this boundary only as ciphertext: encryption happens in
// the service layer before Create/Update is called.
type providerRepository struct {
	*DB
	logger  *logger.Logger
	uuidGen *utils.UUIDGenerator
}

// NewProviderRepository constructs a [ProviderRepository] backed by the
// provided database connection and logger.
func NewProviderRepository(db *DB, logger *logger.Logger) ProviderRepository {
	logger.Debug().Msg("creating provider repository")
	return &providerRepository{
		DB:      db,
		logger:  logger,
		uuidGen: utils.NewUUIDGenerator(),
	}
}

// FindByID retrieves one provider row by primary key.
//
// Ownership is deliberately not part of the WHERE clause: the service layer
// compares the returned UserID against the caller and reports
// [ErrProviderNotFound] on mismatch, so a foreign id and an absent id are
// indistinguishable to the API client.
func (p *providerRepository) FindByID(ctx context.Context, providerID uuid.UUID) (models.Provider, error) {
	log := logger.FromContext(ctx)

	var provider models.Provider
	row := p.DB.QueryRowContext(ctx, findProviderByID, providerID)

	if err := scanProvider(row, &provider); err != nil {
		if isNoRows(err) {
			return models.Provider{}, ErrProviderNotFound
		}
		log.Err(err).
			Str("func", "*providerRepository.FindByID").
			Str("provider_id", providerID.String()).
			Msg("failed to scan provider row")
		return models.Provider{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return provider, nil
}

// FindByUser returns every provider owned by the given profile, ordered by
// creation time descending. Returns an empty slice when the user has no
// providers.
func (p *providerRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]models.Provider, error) {
	log := logger.FromContext(ctx)

	rows, err := p.DB.QueryContext(ctx, findProvidersByUser, userID)
	if err != nil {
		log.Err(err).
			Str("func", "*providerRepository.FindByUser").
			Str("user_id", userID.String()).
			Msg("failed to execute query for listing providers")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	providers := make([]models.Provider, 0, 8)

	for rows.Next() {
		var provider models.Provider
		if scanErr := scanProvider(rows, &provider); scanErr != nil {
			log.Err(scanErr).
				Str("func", "*providerRepository.FindByUser").
				Str("user_id", userID.String()).
				Msg("failed to scan provider row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		providers = append(providers, provider)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "*providerRepository.FindByUser").
			Str("user_id", userID.String()).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return providers, nil
}

// Create persists a new provider and returns the fully populated
// [models.Provider] with server-assigned fields (Status default,
// CreatedAt, UpdatedAt).
func (p *providerRepository) Create(ctx context.Context, provider models.Provider) (models.Provider, error) {
	log := logger.FromContext(ctx)

	if provider.ID == uuid.Nil {
		provider.ID = p.uuidGen.Generate()
	}

	row := p.DB.QueryRowContext(ctx, createProvider,
		provider.ID, provider.UserID, string(provider.Type), provider.Name, provider.CredentialsEncrypted)

	var created models.Provider
	if err := scanProvider(row, &created); err != nil {
		log.Err(err).
			Str("func", "*providerRepository.Create").
			Str("user_id", provider.UserID.String()).
			Msg("failed to insert provider")
		return models.Provider{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return created, nil
}

// Update applies the non-nil fields of update to the provider row and
// returns the post-write state read back through the RETURNING clause.
//
// encryptedCredentials carries the replacement ciphertext when the caller
// supplied new credentials; nil leaves the stored blob untouched.
func (p *providerRepository) Update(ctx context.Context, providerID uuid.UUID, encryptedCredentials *string, update models.ProviderUpdate) (models.Provider, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateProviderQuery(providerID, encryptedCredentials, update)
	if err != nil {
		log.Err(err).
			Str("func", "*providerRepository.Update").
			Str("provider_id", providerID.String()).
			Msg("failed to create query")
		return models.Provider{}, err
	}

	var updated models.Provider
	row := p.DB.QueryRowContext(ctx, query, args...)

	if err := scanProvider(row, &updated); err != nil {
		if isNoRows(err) {
			return models.Provider{}, ErrProviderNotFound
		}
		log.Err(err).
			Str("func", "*providerRepository.Update").
			Str("provider_id", providerID.String()).
			Msg("failed to scan updated provider row")
		return models.Provider{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return updated, nil
}

// Delete removes the provider row. Cost records referencing it are removed
// by the ON DELETE CASCADE constraint on cost_records.provider_id.
//
// Returns [ErrProviderNotFound] when no row matched the id.
func (p *providerRepository) Delete(ctx context.Context, providerID uuid.UUID) error {
	log := logger.FromContext(ctx)

	result, err := p.DB.ExecContext(ctx, deleteProvider, providerID)
	if err != nil {
		log.Err(err).
			Str("func", "*providerRepository.Delete").
			Str("provider_id", providerID.String()).
			Msg("failed to execute delete")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrProviderNotFound
	}

	return nil
}

// rowScanner abstracts *sql.Row and *sql.Rows so provider scanning lives in
// one place.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProvider(row rowScanner, provider *models.Provider) error {
	return row.Scan(
		&provider.ID,
		&provider.UserID,
		&provider.Type,
		&provider.Name,
		&provider.CredentialsEncrypted,
		&provider.Status,
		&provider.LastSyncAt,
		&provider.LastError,
		&provider.CreatedAt,
		&provider.UpdatedAt,
	)
}
