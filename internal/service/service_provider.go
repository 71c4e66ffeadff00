// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/costhook/costhook/internal/crypto"
	"github.com/costhook/costhook/internal/logger"
	"github.com/costhook/costhook/internal/store"
	"github.com/costhook/costhook/models"
)

// providerService is the concrete implementation of ProviderService.
//
// It owns two cross-cutting rules:
//   - credentials are encrypted with the injected cipher before anything
//     reaches the repository, and are never decrypted on the read path;
//   - ownership is enforced here, not in SQL: a provider belonging to a
//     different user is reported as ErrProviderNotFound, so foreign and
//     absent ids are indistinguishable to the API client.
type providerService struct {
	providerRepository store.ProviderRepository
	cipher             crypto.CredentialCipher
	logger             *logger.Logger
}

// NewProviderService constructs a ProviderService backed by the given
// repository and credential cipher.
func NewProviderService(providerRepository store.ProviderRepository, cipher crypto.CredentialCipher, logger *logger.Logger) ProviderService {
	return &providerService{
		providerRepository: providerRepository,
		cipher:             cipher,
		logger:             logger,
	}
}

// Create encrypts the supplied credentials and persists a new provider
// connection owned by userID.
func (s *providerService) Create(ctx context.Context, userID uuid.UUID, create models.ProviderCreate) (models.Provider, error) {
	log := logger.FromContext(ctx)

	encrypted, err := s.cipher.Encrypt(create.Credentials)
	if err != nil {
		log.Err(err).Str("func", "*providerService.Create").Msg("failed to encrypt provider credentials")
		return models.Provider{}, fmt.Errorf("%w: %w", ErrCredentialsSealFailed, err)
	}

	created, err := s.providerRepository.Create(ctx, models.Provider{
		UserID:               userID,
		Type:                 create.Type,
		Name:                 create.Name,
		CredentialsEncrypted: encrypted,
	})
	if err != nil {
		return models.Provider{}, fmt.Errorf("provider creation failed: %w", err)
	}

	log.Info().
		Str("func", "*providerService.Create").
		Str("provider_id", created.ID.String()).
		Str("type", string(created.Type)).
		Msg("provider connected")

	return created, nil
}

// Get returns the provider with the given id if it is owned by userID.
func (s *providerService) Get(ctx context.Context, userID, providerID uuid.UUID) (models.Provider, error) {
	return s.findOwned(ctx, userID, providerID)
}

// List returns every provider owned by userID, newest first.
func (s *providerService) List(ctx context.Context, userID uuid.UUID) ([]models.Provider, error) {
	providers, err := s.providerRepository.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("provider listing failed: %w", err)
	}
	return providers, nil
}

// Update applies a partial update to an owned provider.
//
// Credentials are re-encrypted only when the caller supplied a credentials
// object; a missing or JSON-null credentials field leaves the stored blob
// untouched (Go decoding cannot tell null from absent, so both mean
// "no change"). An update carrying no fields at all is a no-op that returns
// the current row.
func (s *providerService) Update(ctx context.Context, userID, providerID uuid.UUID, update models.ProviderUpdate) (models.Provider, error) {
	log := logger.FromContext(ctx)

	current, err := s.findOwned(ctx, userID, providerID)
	if err != nil {
		return models.Provider{}, err
	}

	var encryptedCredentials *string
	if update.Credentials != nil {
		encrypted, encErr := s.cipher.Encrypt(update.Credentials)
		if encErr != nil {
			log.Err(encErr).
				Str("func", "*providerService.Update").
				Str("provider_id", providerID.String()).
				Msg("failed to encrypt replacement credentials")
			return models.Provider{}, fmt.Errorf("%w: %w", ErrCredentialsSealFailed, encErr)
		}
		encryptedCredentials = &encrypted
	}

	if update.Empty() && encryptedCredentials == nil {
		return current, nil
	}

	updated, err := s.providerRepository.Update(ctx, providerID, encryptedCredentials, update)
	if err != nil {
		return models.Provider{}, fmt.Errorf("provider update failed: %w", err)
	}

	return updated, nil
}

// Delete removes an owned provider. Its cost records go with it via the
// ON DELETE CASCADE constraint.
func (s *providerService) Delete(ctx context.Context, userID, providerID uuid.UUID) error {
	if _, err := s.findOwned(ctx, userID, providerID); err != nil {
		return err
	}

	if err := s.providerRepository.Delete(ctx, providerID); err != nil {
		return fmt.Errorf("provider deletion failed: %w", err)
	}

	return nil
}

// findOwned fetches a provider and enforces ownership. A row owned by a
// different user yields store.ErrProviderNotFound, same as no row at all.
func (s *providerService) findOwned(ctx context.Context, userID, providerID uuid.UUID) (models.Provider, error) {
	log := logger.FromContext(ctx)

	provider, err := s.providerRepository.FindByID(ctx, providerID)
	if err != nil {
		return models.Provider{}, err
	}

	if provider.UserID != userID {
		log.Warn().
			Str("func", "*providerService.findOwned").
			Str("provider_id", providerID.String()).
			Str("owner_id", provider.UserID.String()).
			Str("caller_id", userID.String()).
			Msg("provider access denied, reporting not found")
		return models.Provider{}, store.ErrProviderNotFound
	}

	return provider, nil
}
