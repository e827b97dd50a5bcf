package postgres

import (
	"context"

	"github.com/tagihin/tagihin/internal/domain/quotation"
	ierr "github.com/tagihin/tagihin/internal/errors"
	"github.com/tagihin/tagihin/internal/logger"
	"github.com/tagihin/tagihin/internal/postgres"
	"github.com/tagihin/tagihin/internal/types"
)

type quotationRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewQuotationRepository(db *postgres.DB, logger *logger.Logger) quotation.Repository {
	return &quotationRepository{db: db, logger: logger}
}

func (r *quotationRepository) CreateWithLineItems(ctx context.Context, q *quotation.Quotation) error {
	r.logger.Debugw("creating quotation",
		"quotation_id", q.ID,
		"quotation_number", q.QuotationNumber,
		"company_id", q.CompanyID,
		"line_items", len(q.LineItems),
	)

	return r.db.WithTx(ctx, func(ctx context.Context) error {
		query := `
			INSERT INTO quotations (
				id, company_id, quotation_number, client_id, issue_date,
				valid_until, subtotal, tax_amount, total, quotation_status,
				invoice_id, notes,
				status, created_at, updated_at, created_by, updated_by
			) VALUES (
				:id, :company_id, :quotation_number, :client_id, :issue_date,
				:valid_until, :subtotal, :tax_amount, :total, :quotation_status,
				:invoice_id, :notes,
				:status, :created_at, :updated_at, :created_by, :updated_by
			)`

		if _, err := r.db.NamedExecContext(ctx, query, q); err != nil {
			return ierr.WithError(err).
				WithHint("Failed to create quotation").
				Mark(ierr.ErrDatabase)
		}

		lineQuery := `
			INSERT INTO quotation_line_items (
				id, company_id, quotation_id, product_id, description,
				quantity, unit_price, tax_rate_id, tax_rate, amount,
				status, created_at, updated_at, created_by, updated_by
			) VALUES (
				:id, :company_id, :quotation_id, :product_id, :description,
				:quantity, :unit_price, :tax_rate_id, :tax_rate, :amount,
				:status, :created_at, :updated_at, :created_by, :updated_by
			)`

		for _, li := range q.LineItems {
			if _, err := r.db.NamedExecContext(ctx, lineQuery, li); err != nil {
				return ierr.WithError(err).
					WithHint("Failed to create quotation line item").
					Mark(ierr.ErrDatabase)
			}
		}
		return nil
	})
}

func (r *quotationRepository) Get(ctx context.Context, id string) (*quotation.Quotation, error) {
	rows, err := r.db.NamedQueryContext(ctx,
		`SELECT * FROM quotations WHERE id = :id AND company_id = :company_id AND status != :deleted`,
		map[string]interface{}{
			"id":         id,
			"company_id": types.GetCompanyID(ctx),
			"deleted":    types.StatusDeleted,
		})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to get quotation").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, ierr.NewErrorf("quotation %s not found", id).
			WithHint("Quotation not found").
			Mark(ierr.ErrNotFound)
	}

	var q quotation.Quotation
	if err := rows.StructScan(&q); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to scan quotation").
			Mark(ierr.ErrDatabase)
	}

	lineItems, err := r.getLineItems(ctx, q.ID)
	if err != nil {
		return nil, err
	}
	q.LineItems = lineItems
	return &q, nil
}

func (r *quotationRepository) getLineItems(ctx context.Context, quotationID string) ([]*quotation.LineItem, error) {
	rows, err := r.db.NamedQueryContext(ctx,
		`SELECT * FROM quotation_line_items WHERE quotation_id = :quotation_id ORDER BY created_at, id`,
		map[string]interface{}{
			"quotation_id": quotationID,
		})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to get quotation line items").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	var items []*quotation.LineItem
	for rows.Next() {
		var li quotation.LineItem
		if err := rows.StructScan(&li); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to scan quotation line item").
				Mark(ierr.ErrDatabase)
		}
		items = append(items, &li)
	}
	return items, nil
}

func (r *quotationRepository) List(ctx context.Context, filter *types.QuotationFilter) ([]*quotation.Quotation, error) {
	query := `SELECT * FROM quotations WHERE company_id = :company_id AND status != :deleted`
	args := map[string]interface{}{
		"company_id": types.GetCompanyID(ctx),
		"deleted":    types.StatusDeleted,
		"limit":      filter.GetLimit(),
		"offset":     filter.GetOffset(),
	}
	if filter != nil && filter.Status != "" {
		query += ` AND quotation_status = :quotation_status`
		args["quotation_status"] = filter.Status
	}
	if filter != nil && filter.ClientID != "" {
		query += ` AND client_id = :client_id`
		args["client_id"] = filter.ClientID
	}
	query += ` ORDER BY created_at DESC LIMIT :limit OFFSET :offset`

	rows, err := r.db.NamedQueryContext(ctx, query, args)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list quotations").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	var quotations []*quotation.Quotation
	for rows.Next() {
		var q quotation.Quotation
		if err := rows.StructScan(&q); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to scan quotation").
				Mark(ierr.ErrDatabase)
		}
		quotations = append(quotations, &q)
	}
	return quotations, nil
}

func (r *quotationRepository) Count(ctx context.Context, filter *types.QuotationFilter) (int, error) {
	query := `SELECT COUNT(*) FROM quotations WHERE company_id = :company_id AND status != :deleted`
	args := map[string]interface{}{
		"company_id": types.GetCompanyID(ctx),
		"deleted":    types.StatusDeleted,
	}
	if filter != nil && filter.Status != "" {
		query += ` AND quotation_status = :quotation_status`
		args["quotation_status"] = filter.Status
	}

	rows, err := r.db.NamedQueryContext(ctx, query, args)
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count quotations").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	var count int
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return 0, ierr.WithError(err).
				WithHint("Failed to scan quotation count").
				Mark(ierr.ErrDatabase)
		}
	}
	return count, nil
}

func (r *quotationRepository) Update(ctx context.Context, q *quotation.Quotation) error {
	query := `
		UPDATE quotations SET
			valid_until = :valid_until,
			subtotal = :subtotal,
			tax_amount = :tax_amount,
			total = :total,
			quotation_status = :quotation_status,
			invoice_id = :invoice_id,
			notes = :notes,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id AND company_id = :company_id`

	r.logger.Debugw("updating quotation",
		"quotation_id", q.ID,
		"quotation_status", q.QuotationStatus,
	)

	if _, err := r.db.NamedExecContext(ctx, query, q); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update quotation").
			Mark(ierr.ErrDatabase)
	}
	return nil
}
