package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/costhook/costhook/internal/logger"
	"github.com/costhook/costhook/internal/store"
	"github.com/costhook/costhook/models"
)

func newTestProfileService(repo *mockProfileRepository) ProfileService {
	return NewProfileService(repo, logger.Nop())
}

func claimsFor(authUserID uuid.UUID) models.TokenClaims {
	return models.TokenClaims{AuthUserID: authUserID}
}

func TestProfileGetOrCreate_ExistingProfile(t *testing.T) {
	authUserID := uuid.New()
	existing := models.UserProfile{ID: uuid.New(), AuthUserID: authUserID, Timezone: "UTC"}

	createCalled := false
	repo := &mockProfileRepository{
		findByAuthUserIDFn: func(ctx context.Context, id uuid.UUID) (models.UserProfile, error) {
			assert.Equal(t, authUserID, id)
			return existing, nil
		},
		createFn: func(ctx context.Context, profile models.UserProfile) (models.UserProfile, error) {
			createCalled = true
			return profile, nil
		},
	}

	got, err := newTestProfileService(repo).GetOrCreate(context.Background(), claimsFor(authUserID))
	require.NoError(t, err)
	assert.Equal(t, existing, got)
	assert.False(t, createCalled, "existing profile must not trigger an insert")
}

func TestProfileGetOrCreate_FirstContactCreates(t *testing.T) {
	authUserID := uuid.New()
	created := models.UserProfile{ID: uuid.New(), AuthUserID: authUserID, Timezone: "UTC"}

	repo := &mockProfileRepository{
		findByAuthUserIDFn: func(ctx context.Context, id uuid.UUID) (models.UserProfile, error) {
			return models.UserProfile{}, store.ErrProfileNotFound
		},
		createFn: func(ctx context.Context, profile models.UserProfile) (models.UserProfile, error) {
			assert.Equal(t, authUserID, profile.AuthUserID)
			return created, nil
		},
	}

	got, err := newTestProfileService(repo).GetOrCreate(context.Background(), claimsFor(authUserID))
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestProfileGetOrCreate_LostRaceRetriesLookup(t *testing.T) {
	authUserID := uuid.New()
	winner := models.UserProfile{ID: uuid.New(), AuthUserID: authUserID, Timezone: "UTC"}

	lookups := 0
	repo := &mockProfileRepository{
		findByAuthUserIDFn: func(ctx context.Context, id uuid.UUID) (models.UserProfile, error) {
			lookups++
			if lookups == 1 {
				return models.UserProfile{}, store.ErrProfileNotFound
			}
			return winner, nil
		},
		createFn: func(ctx context.Context, profile models.UserProfile) (models.UserProfile, error) {
			return models.UserProfile{}, store.ErrProfileAlreadyExists
		},
	}

	got, err := newTestProfileService(repo).GetOrCreate(context.Background(), claimsFor(authUserID))
	require.NoError(t, err)
	assert.Equal(t, winner, got)
	assert.Equal(t, 2, lookups, "losing the insert race must retry the lookup")
}

func TestProfileGetOrCreate_NilSubjectRejected(t *testing.T) {
	_, err := newTestProfileService(&mockProfileRepository{}).
		GetOrCreate(context.Background(), models.TokenClaims{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidDataProvided))
}

func TestProfileGetOrCreate_LookupErrorPropagates(t *testing.T) {
	dbErr := errors.New("connection lost")
	repo := &mockProfileRepository{
		findByAuthUserIDFn: func(ctx context.Context, id uuid.UUID) (models.UserProfile, error) {
			return models.UserProfile{}, dbErr
		},
	}

	_, err := newTestProfileService(repo).GetOrCreate(context.Background(), claimsFor(uuid.New()))
	require.Error(t, err)
	assert.True(t, errors.Is(err, dbErr))
}

func TestProfileUpdate_Success(t *testing.T) {
	profileID := uuid.New()
	name := "Ada"
	updated := models.UserProfile{ID: profileID, DisplayName: &name, Timezone: "UTC"}

	repo := &mockProfileRepository{
		updateFn: func(ctx context.Context, id uuid.UUID, update models.UserProfileUpdate) (models.UserProfile, error) {
			assert.Equal(t, profileID, id)
			require.NotNil(t, update.DisplayName)
			assert.Equal(t, name, *update.DisplayName)
			return updated, nil
		},
	}

	got, err := newTestProfileService(repo).Update(context.Background(), profileID,
		models.UserProfileUpdate{DisplayName: &name})
	require.NoError(t, err)
	assert.Equal(t, updated, got)
}

func TestProfileUpdate_EmptyRejected(t *testing.T) {
	updateCalled := false
	repo := &mockProfileRepository{
		updateFn: func(ctx context.Context, id uuid.UUID, update models.UserProfileUpdate) (models.UserProfile, error) {
			updateCalled = true
			return models.UserProfile{}, nil
		},
	}

	_, err := newTestProfileService(repo).Update(context.Background(), uuid.New(), models.UserProfileUpdate{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidDataProvided))
	assert.False(t, updateCalled, "empty update must not reach the repository")
}

func TestProfileUpdate_NotFoundPropagates(t *testing.T) {
	tz := "UTC"
	repo := &mockProfileRepository{
		updateFn: func(ctx context.Context, id uuid.UUID, update models.UserProfileUpdate) (models.UserProfile, error) {
			return models.UserProfile{}, store.ErrProfileNotFound
		},
	}

	_, err := newTestProfileService(repo).Update(context.Background(), uuid.New(),
		models.UserProfileUpdate{Timezone: &tz})
	require.Error(t, err)
	assert.True(t, errors.Is(err, store.ErrProfileNotFound))
}
