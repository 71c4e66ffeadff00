package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/costhook/costhook/internal/logger"
	"github.com/costhook/costhook/internal/utils"
	"github.com/costhook/costhook/models"
)

// costRecordRepository is the PostgreSQL-backed implementation of
// [CostRecordRepository]. Every listing joins the providers table because
// cost records carry no user id column: ownership is always resolved
// transitively through the owning provider.
type costRecordRepository struct {
	*DB
	logger  *logger.Logger
	uuidGen *utils.UUIDGenerator
}

// NewCostRecordRepository constructs a [CostRecordRepository] backed by the
// provided database connection and logger.
func NewCostRecordRepository(db *DB, logger *logger.Logger) CostRecordRepository {
	logger.Debug().Msg("creating cost record repository")
	return &costRecordRepository{
		DB:      db,
		logger:  logger,
		uuidGen: utils.NewUUIDGenerator(),
	}
}

// FindByUser retrieves the cost records visible to userID, narrowed by the
// optional filters in [models.CostFilters].
//
// Filtering is always applied by the providers join on user id. Every
// non-nil filter adds a conjunctive WHERE clause; results are ordered by
// period start descending.
//
// Returns the matched records or an error if the query fails, a row cannot
// be scanned, or an iteration error is detected after the result set is
// exhausted.
func (c *costRecordRepository) FindByUser(ctx context.Context, userID uuid.UUID, filters models.CostFilters) ([]models.CostRecord, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListCostRecordsQuery(userID, filters)
	if err != nil {
		log.Err(err).
			Str("func", "costRecordRepository.FindByUser").
			Str("user_id", userID.String()).
			Msg("failed to create query")
		return nil, err
	}

	rows, err := c.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "costRecordRepository.FindByUser").
			Str("user_id", userID.String()).
			Msg("failed to execute query for listing cost records")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	records := make([]models.CostRecord, 0, 50)

	for rows.Next() {
		var record models.CostRecord

		scanErr := rows.Scan(
			&record.ID,
			&record.ProviderID,
			&record.Amount,
			&record.Service,
			&record.PeriodStart,
			&record.PeriodEnd,
			&record.MetadataJSON,
			&record.CreatedAt,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "costRecordRepository.FindByUser").
				Str("user_id", userID.String()).
				Msg("failed to scan cost record row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		records = append(records, record)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "costRecordRepository.FindByUser").
			Str("user_id", userID.String()).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return records, nil
}

// Create inserts one cost record and returns the stored row with the
// server-assigned creation timestamp read back through RETURNING.
func (c *costRecordRepository) Create(ctx context.Context, record models.CostRecordCreate) (models.CostRecord, error) {
	log := logger.FromContext(ctx)

	row := c.DB.QueryRowContext(ctx, createCostRecord,
		c.uuidGen.Generate(), record.ProviderID, record.Amount, record.Service,
		record.PeriodStart, record.PeriodEnd, record.MetadataJSON)

	var created models.CostRecord
	if err := row.Scan(
		&created.ID,
		&created.ProviderID,
		&created.Amount,
		&created.Service,
		&created.PeriodStart,
		&created.PeriodEnd,
		&created.MetadataJSON,
		&created.CreatedAt,
	); err != nil {
		log.Err(err).
			Str("func", "costRecordRepository.Create").
			Str("provider_id", record.ProviderID.String()).
			Msg("failed to insert cost record")
		return models.CostRecord{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return created, nil
}

// CreateBatch inserts all records inside a single transaction using one
// prepared statement, so a vendor invoice import is all-or-nothing.
//
// An execution error aborts the transaction; the classifier result is
// logged so operators can tell transient failures (deadlock, lost
// connection) from permanent ones.
func (c *costRecordRepository) CreateBatch(ctx context.Context, records []models.CostRecordCreate) error {
	log := logger.FromContext(ctx)

	if len(records) == 0 {
		return nil
	}

	// begin transaction
	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "costRecordRepository.CreateBatch").Msg("error during opening transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	// prepare statement
	stmt, err := tx.PrepareContext(ctx, createCostRecord)
	if err != nil {
		log.Err(err).Str("func", "costRecordRepository.CreateBatch").Msg("error during preparing statement")
		return fmt.Errorf("%w: %w", ErrPreparingStatement, err)
	}
	defer stmt.Close()

	for idx, record := range records {
		row := stmt.QueryRowContext(ctx,
			c.uuidGen.Generate(), record.ProviderID, record.Amount, record.Service,
			record.PeriodStart, record.PeriodEnd, record.MetadataJSON)

		var inserted models.CostRecord
		if scanErr := row.Scan(
			&inserted.ID,
			&inserted.ProviderID,
			&inserted.Amount,
			&inserted.Service,
			&inserted.PeriodStart,
			&inserted.PeriodEnd,
			&inserted.MetadataJSON,
			&inserted.CreatedAt,
		); scanErr != nil {
			log.Err(scanErr).
				Str("func", "costRecordRepository.CreateBatch").
				Int("iteration", idx).
				Bool("retryable", c.errorClassificator.Classify(scanErr) == Retryable).
				Msg("error executing prepared statement for cost record")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, scanErr)
		}
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).Str("func", "costRecordRepository.CreateBatch").Msg("error committing transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
	}

	return nil
}
