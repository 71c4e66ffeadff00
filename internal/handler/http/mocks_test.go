package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/costhook/costhook/internal/logger"
	"github.com/costhook/costhook/internal/service"
	"github.com/costhook/costhook/internal/utils"
	"github.com/costhook/costhook/internal/validators"
	"github.com/costhook/costhook/models"
)

// ─────────────────────────────────────────────
// Mocks: service layer
// ─────────────────────────────────────────────

type mockAuthSvc struct {
	verifyTokenFn func(ctx context.Context, tokenString string) (models.TokenClaims, error)
}

func (m *mockAuthSvc) VerifyToken(ctx context.Context, tokenString string) (models.TokenClaims, error) {
	if m.verifyTokenFn != nil {
		return m.verifyTokenFn(ctx, tokenString)
	}
	return models.TokenClaims{}, nil
}

type mockProfileSvc struct {
	getOrCreateFn func(ctx context.Context, claims models.TokenClaims) (models.UserProfile, error)
	updateFn      func(ctx context.Context, profileID uuid.UUID, update models.UserProfileUpdate) (models.UserProfile, error)
}

func (m *mockProfileSvc) GetOrCreate(ctx context.Context, claims models.TokenClaims) (models.UserProfile, error) {
	if m.getOrCreateFn != nil {
		return m.getOrCreateFn(ctx, claims)
	}
	return models.UserProfile{}, nil
}

func (m *mockProfileSvc) Update(ctx context.Context, profileID uuid.UUID, update models.UserProfileUpdate) (models.UserProfile, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, profileID, update)
	}
	return models.UserProfile{}, nil
}

type mockProviderSvc struct {
	createFn func(ctx context.Context, userID uuid.UUID, create models.ProviderCreate) (models.Provider, error)
	getFn    func(ctx context.Context, userID, providerID uuid.UUID) (models.Provider, error)
	listFn   func(ctx context.Context, userID uuid.UUID) ([]models.Provider, error)
	updateFn func(ctx context.Context, userID, providerID uuid.UUID, update models.ProviderUpdate) (models.Provider, error)
	deleteFn func(ctx context.Context, userID, providerID uuid.UUID) error
}

func (m *mockProviderSvc) Create(ctx context.Context, userID uuid.UUID, create models.ProviderCreate) (models.Provider, error) {
	if m.createFn != nil {
		return m.createFn(ctx, userID, create)
	}
	return models.Provider{}, nil
}

func (m *mockProviderSvc) Get(ctx context.Context, userID, providerID uuid.UUID) (models.Provider, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID, providerID)
	}
	return models.Provider{}, nil
}

func (m *mockProviderSvc) List(ctx context.Context, userID uuid.UUID) ([]models.Provider, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockProviderSvc) Update(ctx context.Context, userID, providerID uuid.UUID, update models.ProviderUpdate) (models.Provider, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, userID, providerID, update)
	}
	return models.Provider{}, nil
}

func (m *mockProviderSvc) Delete(ctx context.Context, userID, providerID uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, providerID)
	}
	return nil
}

type mockCostSvc struct {
	listFn   func(ctx context.Context, userID uuid.UUID, filters models.CostFilters) ([]models.CostRecord, error)
	importFn func(ctx context.Context, userID, providerID uuid.UUID, records []models.CostRecordCreate) error
}

func (m *mockCostSvc) List(ctx context.Context, userID uuid.UUID, filters models.CostFilters) ([]models.CostRecord, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID, filters)
	}
	return nil, nil
}

func (m *mockCostSvc) Import(ctx context.Context, userID, providerID uuid.UUID, records []models.CostRecordCreate) error {
	if m.importFn != nil {
		return m.importFn(ctx, userID, providerID, records)
	}
	return nil
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

// testServices bundles the mocks a test cares about; nil fields get a
// do-nothing mock.
type testServices struct {
	auth     *mockAuthSvc
	profile  *mockProfileSvc
	provider *mockProviderSvc
	cost     *mockCostSvc
}

// newTestHandler returns a *Handler (not http.Handler) so individual handler
// methods can be called directly without going through the router.
func newTestHandler(t *testing.T, mocks testServices) *Handler {
	t.Helper()

	if mocks.auth == nil {
		mocks.auth = &mockAuthSvc{}
	}
	if mocks.profile == nil {
		mocks.profile = &mockProfileSvc{}
	}
	if mocks.provider == nil {
		mocks.provider = &mockProviderSvc{}
	}
	if mocks.cost == nil {
		mocks.cost = &mockCostSvc{}
	}

	return &Handler{
		logger:    logger.Nop(),
		validator: validators.NewRequestValidator(),
		services: &service.Services{
			AuthService:     mocks.auth,
			ProfileService:  mocks.profile,
			ProviderService: mocks.provider,
			CostService:     mocks.cost,
		},
	}
}

// encodeBody serialises v to JSON and returns it as an io.Reader.
func encodeBody(t *testing.T, v any) io.Reader {
	t.Helper()
	buf := &bytes.Buffer{}
	require.NoError(t, json.NewEncoder(buf).Encode(v))
	return buf
}

// ctxWithProfile returns a context carrying the given profile id and claims,
// mimicking what the auth middleware injects.
func ctxWithProfile(profileID uuid.UUID) context.Context {
	claims := models.TokenClaims{AuthUserID: uuid.New()}
	ctx := context.WithValue(context.Background(), utils.ClaimsCtxKey, claims)
	return context.WithValue(ctx, utils.ProfileIDCtxKey, profileID)
}
