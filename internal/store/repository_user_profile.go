package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"

	"github.com/costhook/costhook/internal/logger"
	"github.com/costhook/costhook/internal/utils"
	"github.com/costhook/costhook/models"
)

// userProfileRepository is the PostgreSQL-backed implementation of
// [UserProfileRepository]. It handles profile creation and lookup against
// the "user_profiles" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userProfileRepository struct {
	logger  *logger.Logger
	db      *DB
	uuidGen *utils.UUIDGenerator
}

// NewUserProfileRepository constructs a [UserProfileRepository] backed by
// the provided database connection and logger.
func NewUserProfileRepository(db *DB, logger *logger.Logger) UserProfileRepository {
	logger.Debug().Msg("creating user profile repository")
	return &userProfileRepository{
		db:      db,
		logger:  logger,
		uuidGen: utils.NewUUIDGenerator(),
	}
}

// FindByAuthUserID retrieves the profile whose auth subject id matches
// authUserID.
//
// Error handling:
//   - sql.ErrNoRows → [ErrProfileNotFound].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userProfileRepository) FindByAuthUserID(ctx context.Context, authUserID uuid.UUID) (models.UserProfile, error) {
	log := logger.FromContext(ctx)

	var profile models.UserProfile
	row := r.db.QueryRowContext(ctx, findProfileByAuthUserID, authUserID)

	if err := row.Scan(
		&profile.ID,
		&profile.AuthUserID,
		&profile.DisplayName,
		&profile.Timezone,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	); err != nil {
		if isNoRows(err) {
			return models.UserProfile{}, ErrProfileNotFound
		}
		log.Err(err).Str("func", "*userProfileRepository.FindByAuthUserID").Msg("error: scanning error")
		return models.UserProfile{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return profile, nil
}

// Create persists a new profile record and returns the fully populated
// [models.UserProfile] with server-assigned fields (CreatedAt, UpdatedAt).
//
// The INSERT uses the [createProfile] prepared query which returns all
// columns via a RETURNING clause, so the caller receives the canonical
// database representation of the newly created profile.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) on auth_user_id →
//     [ErrProfileAlreadyExists]. This is the losing side of the concurrent
//     get-or-create race; callers retry the lookup.
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userProfileRepository) Create(ctx context.Context, profile models.UserProfile) (models.UserProfile, error) {
	log := logger.FromContext(ctx)

	if profile.ID == uuid.Nil {
		profile.ID = r.uuidGen.Generate()
	}
	if profile.Timezone == "" {
		profile.Timezone = "UTC"
	}

	row := r.db.QueryRowContext(ctx, createProfile, profile.ID, profile.AuthUserID, profile.DisplayName, profile.Timezone)

	var created models.UserProfile
	if err := row.Scan(
		&created.ID,
		&created.AuthUserID,
		&created.DisplayName,
		&created.Timezone,
		&created.CreatedAt,
		&created.UpdatedAt,
	); err != nil {
		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			log.Debug().Str("func", "*userProfileRepository.Create").Msg("profile insert lost the get-or-create race")
			return models.UserProfile{}, ErrProfileAlreadyExists
		default:
			log.Err(err).Str("func", "*userProfileRepository.Create").Msg("error: scanning error")
			return models.UserProfile{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return created, nil
}

// Update applies the non-nil fields of update to the profile row and
// returns the stored row as of after the write. The UPDATE carries a
// RETURNING clause, so the post-commit state (including the refreshed
// updated_at) is read back in the same round trip.
//
// Error handling:
//   - No fields to apply → [ErrEmptyUpdate].
//   - No matching row → [ErrProfileNotFound].
func (r *userProfileRepository) Update(ctx context.Context, profileID uuid.UUID, update models.UserProfileUpdate) (models.UserProfile, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateProfileQuery(profileID, update)
	if err != nil {
		log.Err(err).Str("func", "*userProfileRepository.Update").Msg("failed to create query")
		return models.UserProfile{}, err
	}

	var updated models.UserProfile
	row := r.db.QueryRowContext(ctx, query, args...)

	if err := row.Scan(
		&updated.ID,
		&updated.AuthUserID,
		&updated.DisplayName,
		&updated.Timezone,
		&updated.CreatedAt,
		&updated.UpdatedAt,
	); err != nil {
		if isNoRows(err) {
			return models.UserProfile{}, ErrProfileNotFound
		}
		log.Err(err).Str("func", "*userProfileRepository.Update").Msg("error: scanning error")
		return models.UserProfile{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return updated, nil
}
