package postgres

import (
	"context"

	"github.com/tagihin/tagihin/internal/domain/invoice"
	ierr "github.com/tagihin/tagihin/internal/errors"
	"github.com/tagihin/tagihin/internal/logger"
	"github.com/tagihin/tagihin/internal/postgres"
	"github.com/tagihin/tagihin/internal/types"
)

type invoiceRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewInvoiceRepository(db *postgres.DB, logger *logger.Logger) invoice.Repository {
	return &invoiceRepository{db: db, logger: logger}
}

func (r *invoiceRepository) CreateWithLineItems(ctx context.Context, inv *invoice.Invoice) error {
	r.logger.Debugw("creating invoice",
		"invoice_id", inv.ID,
		"invoice_number", inv.InvoiceNumber,
		"company_id", inv.CompanyID,
		"line_items", len(inv.LineItems),
	)

	return r.db.WithTx(ctx, func(ctx context.Context) error {
		query := `
			INSERT INTO invoices (
				id, company_id, invoice_number, client_id, bank_account_id,
				quotation_id, issue_date, due_date, subtotal, tax_amount, total,
				invoice_status, paid_at, notes,
				status, created_at, updated_at, created_by, updated_by
			) VALUES (
				:id, :company_id, :invoice_number, :client_id, :bank_account_id,
				:quotation_id, :issue_date, :due_date, :subtotal, :tax_amount, :total,
				:invoice_status, :paid_at, :notes,
				:status, :created_at, :updated_at, :created_by, :updated_by
			)`

		if _, err := r.db.NamedExecContext(ctx, query, inv); err != nil {
			return ierr.WithError(err).
				WithHint("Failed to create invoice").
				Mark(ierr.ErrDatabase)
		}

		lineQuery := `
			INSERT INTO invoice_line_items (
				id, company_id, invoice_id, product_id, description,
				quantity, unit_price, tax_rate_id, tax_rate, amount,
				status, created_at, updated_at, created_by, updated_by
			) VALUES (
				:id, :company_id, :invoice_id, :product_id, :description,
				:quantity, :unit_price, :tax_rate_id, :tax_rate, :amount,
				:status, :created_at, :updated_at, :created_by, :updated_by
			)`

		for _, li := range inv.LineItems {
			if _, err := r.db.NamedExecContext(ctx, lineQuery, li); err != nil {
				return ierr.WithError(err).
					WithHint("Failed to create invoice line item").
					Mark(ierr.ErrDatabase)
			}
		}
		return nil
	})
}

func (r *invoiceRepository) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	rows, err := r.db.NamedQueryContext(ctx,
		`SELECT * FROM invoices WHERE id = :id AND company_id = :company_id AND status != :deleted`,
		map[string]interface{}{
			"id":         id,
			"company_id": types.GetCompanyID(ctx),
			"deleted":    types.StatusDeleted,
		})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to get invoice").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, ierr.NewErrorf("invoice %s not found", id).
			WithHint("Invoice not found").
			Mark(ierr.ErrNotFound)
	}

	var inv invoice.Invoice
	if err := rows.StructScan(&inv); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to scan invoice").
			Mark(ierr.ErrDatabase)
	}

	lineItems, err := r.getLineItems(ctx, inv.ID)
	if err != nil {
		return nil, err
	}
	inv.LineItems = lineItems
	return &inv, nil
}

func (r *invoiceRepository) getLineItems(ctx context.Context, invoiceID string) ([]*invoice.LineItem, error) {
	rows, err := r.db.NamedQueryContext(ctx,
		`SELECT * FROM invoice_line_items WHERE invoice_id = :invoice_id ORDER BY created_at, id`,
		map[string]interface{}{
			"invoice_id": invoiceID,
		})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to get invoice line items").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	var items []*invoice.LineItem
	for rows.Next() {
		var li invoice.LineItem
		if err := rows.StructScan(&li); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to scan invoice line item").
				Mark(ierr.ErrDatabase)
		}
		items = append(items, &li)
	}
	return items, nil
}

func (r *invoiceRepository) List(ctx context.Context, filter *types.InvoiceFilter) ([]*invoice.Invoice, error) {
	query := `SELECT * FROM invoices WHERE company_id = :company_id AND status != :deleted`
	args := map[string]interface{}{
		"company_id": types.GetCompanyID(ctx),
		"deleted":    types.StatusDeleted,
		"limit":      filter.GetLimit(),
		"offset":     filter.GetOffset(),
	}
	if filter != nil && filter.Status != "" {
		query += ` AND invoice_status = :invoice_status`
		args["invoice_status"] = filter.Status
	}
	if filter != nil && filter.ClientID != "" {
		query += ` AND client_id = :client_id`
		args["client_id"] = filter.ClientID
	}
	query += ` ORDER BY created_at DESC LIMIT :limit OFFSET :offset`

	rows, err := r.db.NamedQueryContext(ctx, query, args)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list invoices").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	var invoices []*invoice.Invoice
	for rows.Next() {
		var inv invoice.Invoice
		if err := rows.StructScan(&inv); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to scan invoice").
				Mark(ierr.ErrDatabase)
		}
		invoices = append(invoices, &inv)
	}
	return invoices, nil
}

func (r *invoiceRepository) Count(ctx context.Context, filter *types.InvoiceFilter) (int, error) {
	query := `SELECT COUNT(*) FROM invoices WHERE company_id = :company_id AND status != :deleted`
	args := map[string]interface{}{
		"company_id": types.GetCompanyID(ctx),
		"deleted":    types.StatusDeleted,
	}
	if filter != nil && filter.Status != "" {
		query += ` AND invoice_status = :invoice_status`
		args["invoice_status"] = filter.Status
	}
	if filter != nil && filter.ClientID != "" {
		query += ` AND client_id = :client_id`
		args["client_id"] = filter.ClientID
	}

	rows, err := r.db.NamedQueryContext(ctx, query, args)
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count invoices").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	var count int
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return 0, ierr.WithError(err).
				WithHint("Failed to scan invoice count").
				Mark(ierr.ErrDatabase)
		}
	}
	return count, nil
}

func (r *invoiceRepository) Update(ctx context.Context, inv *invoice.Invoice) error {
	query := `
		UPDATE invoices SET
			bank_account_id = :bank_account_id,
			quotation_id = :quotation_id,
			due_date = :due_date,
			subtotal = :subtotal,
			tax_amount = :tax_amount,
			total = :total,
			invoice_status = :invoice_status,
			paid_at = :paid_at,
			notes = :notes,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id AND company_id = :company_id`

	r.logger.Debugw("updating invoice",
		"invoice_id", inv.ID,
		"invoice_status", inv.InvoiceStatus,
	)

	if _, err := r.db.NamedExecContext(ctx, query, inv); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update invoice").
			Mark(ierr.ErrDatabase)
	}
	return nil
}
