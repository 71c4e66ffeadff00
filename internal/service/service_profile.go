package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/costhook/costhook/internal/logger"
	"github.com/costhook/costhook/internal/store"
	"github.com/costhook/costhook/models"
)

// profileService is the concrete implementation of ProfileService. Profiles
// are created implicitly on first authenticated request; there is no
// explicit sign-up endpoint.
type profileService struct {
	profileRepository store.UserProfileRepository
	logger            *logger.Logger
}

// NewProfileService constructs a ProfileService backed by the given
// repository.
func NewProfileService(profileRepository store.UserProfileRepository, logger *logger.Logger) ProfileService {
	return &profileService{
		profileRepository: profileRepository,
		logger:            logger,
	}
}

// GetOrCreate returns the profile for the authenticated subject, creating
// it on first contact.
//
// Two requests for a brand-new user can race: both miss the lookup and both
// insert. The unique constraint on auth_user_id lets exactly one insert win;
// the loser observes store.ErrProfileAlreadyExists and retries the lookup,
// so both callers converge on the same row.
func (p *profileService) GetOrCreate(ctx context.Context, claims models.TokenClaims) (models.UserProfile, error) {
	log := logger.FromContext(ctx)

	if claims.AuthUserID == uuid.Nil {
		log.Error().Str("func", "*profileService.GetOrCreate").Msg("claims carry no auth user id")
		return models.UserProfile{}, ErrInvalidDataProvided
	}

	profile, err := p.profileRepository.FindByAuthUserID(ctx, claims.AuthUserID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, store.ErrProfileNotFound) {
		return models.UserProfile{}, fmt.Errorf("profile lookup failed: %w", err)
	}

	created, createErr := p.profileRepository.Create(ctx, models.UserProfile{
		AuthUserID: claims.AuthUserID,
	})
	if createErr == nil {
		log.Info().
			Str("func", "*profileService.GetOrCreate").
			Str("profile_id", created.ID.String()).
			Msg("created profile on first authenticated request")
		return created, nil
	}

	if errors.Is(createErr, store.ErrProfileAlreadyExists) {
		// Lost the race; the winning insert is committed, so the retry hits.
		return p.profileRepository.FindByAuthUserID(ctx, claims.AuthUserID)
	}

	return models.UserProfile{}, fmt.Errorf("profile creation failed: %w", createErr)
}

// Update applies the non-nil fields of update to the caller's own profile.
// An update with no fields set is rejected with ErrInvalidDataProvided
// before touching the database.
func (p *profileService) Update(ctx context.Context, profileID uuid.UUID, update models.UserProfileUpdate) (models.UserProfile, error) {
	log := logger.FromContext(ctx)

	if update.Empty() {
		log.Debug().Str("func", "*profileService.Update").Msg("empty profile update rejected")
		return models.UserProfile{}, ErrInvalidDataProvided
	}

	updated, err := p.profileRepository.Update(ctx, profileID, update)
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("profile update failed: %w", err)
	}

	return updated, nil
}
