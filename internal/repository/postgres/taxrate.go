package postgres

import (
	"context"

	"github.com/tagihin/tagihin/internal/domain/taxrate"
	ierr "github.com/tagihin/tagihin/internal/errors"
	"github.com/tagihin/tagihin/internal/logger"
	"github.com/tagihin/tagihin/internal/postgres"
	"github.com/tagihin/tagihin/internal/types"
)

type taxRateRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewTaxRateRepository(db *postgres.DB, logger *logger.Logger) taxrate.Repository {
	return &taxRateRepository{db: db, logger: logger}
}

func (r *taxRateRepository) Create(ctx context.Context, t *taxrate.TaxRate) error {
	query := `
		INSERT INTO tax_rates (
			id, company_id, name, rate,
			status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :company_id, :name, :rate,
			:status, :created_at, :updated_at, :created_by, :updated_by
		)`

	if _, err := r.db.NamedExecContext(ctx, query, t); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create tax rate").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *taxRateRepository) Get(ctx context.Context, id string) (*taxrate.TaxRate, error) {
	rows, err := r.db.NamedQueryContext(ctx,
		`SELECT * FROM tax_rates WHERE id = :id AND company_id = :company_id AND status != :deleted`,
		map[string]interface{}{
			"id":         id,
			"company_id": types.GetCompanyID(ctx),
			"deleted":    types.StatusDeleted,
		})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to get tax rate").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, ierr.NewErrorf("tax rate %s not found", id).
			WithHint("Tax rate not found").
			Mark(ierr.ErrNotFound)
	}

	var t taxrate.TaxRate
	if err := rows.StructScan(&t); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to scan tax rate").
			Mark(ierr.ErrDatabase)
	}
	return &t, nil
}

func (r *taxRateRepository) List(ctx context.Context, filter *types.Filter) ([]*taxrate.TaxRate, error) {
	query := `
		SELECT * FROM tax_rates
		WHERE company_id = :company_id AND status != :deleted
		ORDER BY name LIMIT :limit OFFSET :offset`

	rows, err := r.db.NamedQueryContext(ctx, query, map[string]interface{}{
		"company_id": types.GetCompanyID(ctx),
		"deleted":    types.StatusDeleted,
		"limit":      filter.GetLimit(),
		"offset":     filter.GetOffset(),
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list tax rates").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	var taxRates []*taxrate.TaxRate
	for rows.Next() {
		var t taxrate.TaxRate
		if err := rows.StructScan(&t); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to scan tax rate").
				Mark(ierr.ErrDatabase)
		}
		taxRates = append(taxRates, &t)
	}
	return taxRates, nil
}

func (r *taxRateRepository) Update(ctx context.Context, t *taxrate.TaxRate) error {
	query := `
		UPDATE tax_rates SET
			name = :name,
			rate = :rate,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id AND company_id = :company_id`

	if _, err := r.db.NamedExecContext(ctx, query, t); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update tax rate").
			Mark(ierr.ErrDatabase)
	}
	return nil
}
