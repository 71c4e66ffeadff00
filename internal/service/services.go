package service

import (
	"github.com/costhook/costhook/internal/config"
	"github.com/costhook/costhook/internal/crypto"
	"github.com/costhook/costhook/internal/logger"
	"github.com/costhook/costhook/internal/store"
)

type Services struct {
	AuthService     AuthService
	ProfileService  ProfileService
	ProviderService ProviderService
	CostService     CostService
}

func NewServices(storages store.Storages, cipher crypto.CredentialCipher, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		AuthService:     NewAuthService(cfg.Auth, logger),
		ProfileService:  NewProfileService(storages.UserProfileRepository, logger),
		ProviderService: NewProviderService(storages.ProviderRepository, cipher, logger),
		CostService:     NewCostService(storages.CostRecordRepository, storages.ProviderRepository, logger),
	}
}
