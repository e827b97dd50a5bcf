package postgres

import (
	"context"
	"time"

	"github.com/tagihin/tagihin/internal/domain/billing"
	ierr "github.com/tagihin/tagihin/internal/errors"
	"github.com/tagihin/tagihin/internal/logger"
	"github.com/tagihin/tagihin/internal/postgres"
	"github.com/tagihin/tagihin/internal/types"
)

type subscriptionInvoiceRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewSubscriptionInvoiceRepository(db *postgres.DB, logger *logger.Logger) billing.Repository {
	return &subscriptionInvoiceRepository{db: db, logger: logger}
}

func (r *subscriptionInvoiceRepository) Create(ctx context.Context, inv *billing.SubscriptionInvoice) error {
	query := `
		INSERT INTO subscription_invoices (
			id, company_id, user_id, invoice_number, description, plan_name,
			billing_cycle, amount, period_start, period_end, invoice_date,
			due_date, invoice_status, external_order_id, payment_provider,
			snap_token, redirect_url, transaction_id, payment_method,
			payment_payload, paid_at, auto_generated, billed_for_renewal_date,
			status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :company_id, :user_id, :invoice_number, :description, :plan_name,
			:billing_cycle, :amount, :period_start, :period_end, :invoice_date,
			:due_date, :invoice_status, :external_order_id, :payment_provider,
			:snap_token, :redirect_url, :transaction_id, :payment_method,
			:payment_payload, :paid_at, :auto_generated, :billed_for_renewal_date,
			:status, :created_at, :updated_at, :created_by, :updated_by
		)`

	r.logger.Debugw("creating subscription invoice",
		"subscription_invoice_id", inv.ID,
		"user_id", inv.UserID,
		"invoice_number", inv.InvoiceNumber,
	)

	if _, err := r.db.NamedExecContext(ctx, query, inv); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create subscription invoice").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *subscriptionInvoiceRepository) Get(ctx context.Context, id string) (*billing.SubscriptionInvoice, error) {
	rows, err := r.db.NamedQueryContext(ctx,
		`SELECT * FROM subscription_invoices WHERE id = :id`,
		map[string]interface{}{
			"id": id,
		})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to get subscription invoice").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, ierr.NewErrorf("subscription invoice %s not found", id).
			WithHint("Subscription invoice not found").
			Mark(ierr.ErrNotFound)
	}

	var inv billing.SubscriptionInvoice
	if err := rows.StructScan(&inv); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to scan subscription invoice").
			Mark(ierr.ErrDatabase)
	}
	return &inv, nil
}

func (r *subscriptionInvoiceRepository) GetByOrderID(ctx context.Context, orderID string) (*billing.SubscriptionInvoice, error) {
	rows, err := r.db.NamedQueryContext(ctx,
		`SELECT * FROM subscription_invoices WHERE external_order_id = :external_order_id`,
		map[string]interface{}{
			"external_order_id": orderID,
		})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to get subscription invoice").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, ierr.NewErrorf("subscription invoice with order id %s not found", orderID).
			WithHint("Order not found").
			Mark(ierr.ErrNotFound)
	}

	var inv billing.SubscriptionInvoice
	if err := rows.StructScan(&inv); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to scan subscription invoice").
			Mark(ierr.ErrDatabase)
	}
	return &inv, nil
}

func (r *subscriptionInvoiceRepository) List(ctx context.Context, filter *types.SubscriptionInvoiceFilter) ([]*billing.SubscriptionInvoice, error) {
	query := `SELECT * FROM subscription_invoices WHERE 1 = 1`
	args := map[string]interface{}{
		"limit":  filter.GetLimit(),
		"offset": filter.GetOffset(),
	}
	if filter != nil && filter.UserID != "" {
		query += ` AND user_id = :user_id`
		args["user_id"] = filter.UserID
	}
	if filter != nil && filter.Status != "" {
		query += ` AND invoice_status = :invoice_status`
		args["invoice_status"] = filter.Status
	}
	query += ` ORDER BY created_at DESC LIMIT :limit OFFSET :offset`

	rows, err := r.db.NamedQueryContext(ctx, query, args)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list subscription invoices").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	var invoices []*billing.SubscriptionInvoice
	for rows.Next() {
		var inv billing.SubscriptionInvoice
		if err := rows.StructScan(&inv); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to scan subscription invoice").
				Mark(ierr.ErrDatabase)
		}
		invoices = append(invoices, &inv)
	}
	return invoices, nil
}

func (r *subscriptionInvoiceRepository) Update(ctx context.Context, inv *billing.SubscriptionInvoice) error {
	query := `
		UPDATE subscription_invoices SET
			invoice_status = :invoice_status,
			external_order_id = :external_order_id,
			payment_provider = :payment_provider,
			snap_token = :snap_token,
			redirect_url = :redirect_url,
			transaction_id = :transaction_id,
			payment_method = :payment_method,
			payment_payload = :payment_payload,
			paid_at = :paid_at,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id`

	r.logger.Debugw("updating subscription invoice",
		"subscription_invoice_id", inv.ID,
		"invoice_status", inv.InvoiceStatus,
	)

	if _, err := r.db.NamedExecContext(ctx, query, inv); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update subscription invoice").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *subscriptionInvoiceRepository) FindOpenForUser(ctx context.Context, userID string, plan types.PlanName, renewalDate time.Time) (*billing.SubscriptionInvoice, error) {
	query := `
		SELECT * FROM subscription_invoices
		WHERE user_id = :user_id
		AND plan_name = :plan_name
		AND billed_for_renewal_date::date = :renewal_date
		AND invoice_status IN ('draft', 'sent', 'overdue')
		ORDER BY created_at DESC
		LIMIT 1`

	rows, err := r.db.NamedQueryContext(ctx, query, map[string]interface{}{
		"user_id":      userID,
		"plan_name":    plan,
		"renewal_date": renewalDate.Format("2006-01-02"),
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to find open subscription invoice").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, ierr.NewErrorf("no open subscription invoice for user %s", userID).
			WithHint("Subscription invoice not found").
			Mark(ierr.ErrNotFound)
	}

	var inv billing.SubscriptionInvoice
	if err := rows.StructScan(&inv); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to scan subscription invoice").
			Mark(ierr.ErrDatabase)
	}
	return &inv, nil
}

func (r *subscriptionInvoiceRepository) ExistsForRenewal(ctx context.Context, userID string, renewalDate time.Time) (bool, error) {
	query := `
		SELECT COUNT(*) FROM subscription_invoices
		WHERE user_id = :user_id
		AND billed_for_renewal_date::date = :renewal_date`

	rows, err := r.db.NamedQueryContext(ctx, query, map[string]interface{}{
		"user_id":      userID,
		"renewal_date": renewalDate.Format("2006-01-02"),
	})
	if err != nil {
		return false, ierr.WithError(err).
			WithHint("Failed to check renewal invoice").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	var count int
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return false, ierr.WithError(err).
				WithHint("Failed to scan renewal invoice count").
				Mark(ierr.ErrDatabase)
		}
	}
	return count > 0, nil
}
