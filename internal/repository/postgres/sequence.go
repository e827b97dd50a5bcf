package postgres

import (
	"context"

	"github.com/tagihin/tagihin/internal/domain/sequence"
	ierr "github.com/tagihin/tagihin/internal/errors"
	"github.com/tagihin/tagihin/internal/logger"
	"github.com/tagihin/tagihin/internal/postgres"
)

type sequenceRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewSequenceRepository(db *postgres.DB, logger *logger.Logger) sequence.Repository {
	return &sequenceRepository{db: db, logger: logger}
}

// Next increments and returns the counter for (company, prefix, date code)
// in a single statement. The upsert takes a row lock, so two concurrent
// callers are serialized by the database and always observe distinct values.
func (r *sequenceRepository) Next(ctx context.Context, companyID, prefix, dateCode string) (int64, error) {
	query := `
		INSERT INTO document_sequences (company_id, prefix, date_code, last_value)
		VALUES (:company_id, :prefix, :date_code, 1)
		ON CONFLICT (company_id, prefix, date_code)
		DO UPDATE SET last_value = document_sequences.last_value + 1
		RETURNING last_value`

	rows, err := r.db.NamedQueryContext(ctx, query, map[string]interface{}{
		"company_id": companyID,
		"prefix":     prefix,
		"date_code":  dateCode,
	})
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to allocate document number").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	if !rows.Next() {
		return 0, ierr.NewError("document sequence returned no value").
			WithHint("Failed to allocate document number").
			Mark(ierr.ErrDatabase)
	}

	var next int64
	if err := rows.Scan(&next); err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to allocate document number").
			Mark(ierr.ErrDatabase)
	}
	return next, nil
}
