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

// costService is the concrete implementation of CostService.
type costService struct {
	costRepository     store.CostRecordRepository
	providerRepository store.ProviderRepository
	logger             *logger.Logger
}

// NewCostService constructs a CostService backed by the given repositories.
func NewCostService(costRepository store.CostRecordRepository, providerRepository store.ProviderRepository, logger *logger.Logger) CostService {
	return &costService{
		costRepository:     costRepository,
		providerRepository: providerRepository,
		logger:             logger,
	}
}

// List returns the caller's cost records narrowed by the given filters.
//
// Scoping is structural: the repository query joins providers on the
// caller's user id, so a provider_id filter pointing at someone else's
// provider simply yields an empty list rather than an error.
func (s *costService) List(ctx context.Context, userID uuid.UUID, filters models.CostFilters) ([]models.CostRecord, error) {
	records, err := s.costRepository.FindByUser(ctx, userID, filters)
	if err != nil {
		return nil, fmt.Errorf("cost record listing failed: %w", err)
	}
	return records, nil
}

// Import stores a batch of cost records for one owned provider in a single
// transaction. It backs sync tooling that pulls vendor invoices; a partial
// import never happens.
//
// Records pointing at a different provider than providerID are rejected
// before the transaction starts.
func (s *costService) Import(ctx context.Context, userID, providerID uuid.UUID, records []models.CostRecordCreate) error {
	log := logger.FromContext(ctx)

	provider, err := s.providerRepository.FindByID(ctx, providerID)
	if err != nil {
		return err
	}
	if provider.UserID != userID {
		return store.ErrProviderNotFound
	}

	for _, record := range records {
		if record.ProviderID != providerID {
			log.Error().
				Str("func", "*costService.Import").
				Str("expected_provider_id", providerID.String()).
				Str("record_provider_id", record.ProviderID.String()).
				Msg("import batch mixes providers")
			return ErrInvalidDataProvided
		}
	}

	if err := s.costRepository.CreateBatch(ctx, records); err != nil {
		if errors.Is(err, store.ErrExecutingStatement) {
			return fmt.Errorf("%w: %w", store.ErrCostRecordNotSaved, err)
		}
		return fmt.Errorf("cost record import failed: %w", err)
	}

	log.Info().
		Str("func", "*costService.Import").
		Str("provider_id", providerID.String()).
		Int("records", len(records)).
		Msg("imported cost records")

	return nil
}
