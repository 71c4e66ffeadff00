package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/costhook/costhook/models"
)

// ─────────────────────────────────────────────
// Mock: store.UserProfileRepository
// ─────────────────────────────────────────────

type mockProfileRepository struct {
	findByAuthUserIDFn func(ctx context.Context, authUserID uuid.UUID) (models.UserProfile, error)
	createFn           func(ctx context.Context, profile models.UserProfile) (models.UserProfile, error)
	updateFn           func(ctx context.Context, profileID uuid.UUID, update models.UserProfileUpdate) (models.UserProfile, error)
}

func (m *mockProfileRepository) FindByAuthUserID(ctx context.Context, authUserID uuid.UUID) (models.UserProfile, error) {
	if m.findByAuthUserIDFn != nil {
		return m.findByAuthUserIDFn(ctx, authUserID)
	}
	return models.UserProfile{}, nil
}

func (m *mockProfileRepository) Create(ctx context.Context, profile models.UserProfile) (models.UserProfile, error) {
	if m.createFn != nil {
		return m.createFn(ctx, profile)
	}
	return profile, nil
}

func (m *mockProfileRepository) Update(ctx context.Context, profileID uuid.UUID, update models.UserProfileUpdate) (models.UserProfile, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, profileID, update)
	}
	return models.UserProfile{}, nil
}

// ─────────────────────────────────────────────
// Mock: store.ProviderRepository
// ─────────────────────────────────────────────

type mockProviderRepository struct {
	findByIDFn   func(ctx context.Context, providerID uuid.UUID) (models.Provider, error)
	findByUserFn func(ctx context.Context, userID uuid.UUID) ([]models.Provider, error)
	createFn     func(ctx context.Context, provider models.Provider) (models.Provider, error)
	updateFn     func(ctx context.Context, providerID uuid.UUID, encryptedCredentials *string, update models.ProviderUpdate) (models.Provider, error)
	deleteFn     func(ctx context.Context, providerID uuid.UUID) error
}

func (m *mockProviderRepository) FindByID(ctx context.Context, providerID uuid.UUID) (models.Provider, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, providerID)
	}
	return models.Provider{}, nil
}

func (m *mockProviderRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]models.Provider, error) {
	if m.findByUserFn != nil {
		return m.findByUserFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockProviderRepository) Create(ctx context.Context, provider models.Provider) (models.Provider, error) {
	if m.createFn != nil {
		return m.createFn(ctx, provider)
	}
	return provider, nil
}

func (m *mockProviderRepository) Update(ctx context.Context, providerID uuid.UUID, encryptedCredentials *string, update models.ProviderUpdate) (models.Provider, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, providerID, encryptedCredentials, update)
	}
	return models.Provider{}, nil
}

func (m *mockProviderRepository) Delete(ctx context.Context, providerID uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, providerID)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock: store.CostRecordRepository
// ─────────────────────────────────────────────

type mockCostRepository struct {
	findByUserFn  func(ctx context.Context, userID uuid.UUID, filters models.CostFilters) ([]models.CostRecord, error)
	createFn      func(ctx context.Context, record models.CostRecordCreate) (models.CostRecord, error)
	createBatchFn func(ctx context.Context, records []models.CostRecordCreate) error
}

func (m *mockCostRepository) FindByUser(ctx context.Context, userID uuid.UUID, filters models.CostFilters) ([]models.CostRecord, error) {
	if m.findByUserFn != nil {
		return m.findByUserFn(ctx, userID, filters)
	}
	return nil, nil
}

func (m *mockCostRepository) Create(ctx context.Context, record models.CostRecordCreate) (models.CostRecord, error) {
	if m.createFn != nil {
		return m.createFn(ctx, record)
	}
	return models.CostRecord{}, nil
}

func (m *mockCostRepository) CreateBatch(ctx context.Context, records []models.CostRecordCreate) error {
	if m.createBatchFn != nil {
		return m.createBatchFn(ctx, records)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock: crypto.CredentialCipher
// ─────────────────────────────────────────────

type mockCipher struct {
	encryptFn func(credentials map[string]any) (string, error)
	decryptFn func(encrypted string) (map[string]any, error)
}

func (m *mockCipher) Encrypt(credentials map[string]any) (string, error) {
	if m.encryptFn != nil {
		return m.encryptFn(credentials)
	}
	return "sealed", nil
}

func (m *mockCipher) Decrypt(encrypted string) (map[string]any, error) {
	if m.decryptFn != nil {
		return m.decryptFn(encrypted)
	}
	return map[string]any{}, nil
}
