package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/costhook/costhook/models"
)

type AuthService interface {
	VerifyToken(ctx context.Context, tokenString string) (models.TokenClaims, error)
}

type ProfileService interface {
	GetOrCreate(ctx context.Context, claims models.TokenClaims) (models.UserProfile, error)
	Update(ctx context.Context, profileID uuid.UUID, update models.UserProfileUpdate) (models.UserProfile, error)
}

type ProviderService interface {
	Create(ctx context.Context, userID uuid.UUID, create models.ProviderCreate) (models.Provider, error)
	Get(ctx context.Context, userID, providerID uuid.UUID) (models.Provider, error)
	List(ctx context.Context, userID uuid.UUID) ([]models.Provider, error)
	Update(ctx context.Context, userID, providerID uuid.UUID, update models.ProviderUpdate) (models.Provider, error)
	Delete(ctx context.Context, userID, providerID uuid.UUID) error
}

type CostService interface {
	List(ctx context.Context, userID uuid.UUID, filters models.CostFilters) ([]models.CostRecord, error)
	Import(ctx context.Context, userID, providerID uuid.UUID, records []models.CostRecordCreate) error
}
