package store

import (
	"context"

	"github.com/costhook/costhook/internal/config"
	"github.com/costhook/costhook/internal/logger"
)

// Storages bundles all repositories over a single database connection.
type Storages struct {
	DB *DB

	UserProfileRepository UserProfileRepository
	ProviderRepository    ProviderRepository
	CostRecordRepository  CostRecordRepository
}

// NewStorages connects to PostgreSQL and wires every repository to the
// shared connection pool.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	return &Storages{
		DB:                    db,
		UserProfileRepository: NewUserProfileRepository(db, log),
		ProviderRepository:    NewProviderRepository(db, log),
		CostRecordRepository:  NewCostRecordRepository(db, log),
	}, nil
}
