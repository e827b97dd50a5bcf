package postgres

import (
	"context"

	"github.com/tagihin/tagihin/internal/domain/bankaccount"
	ierr "github.com/tagihin/tagihin/internal/errors"
	"github.com/tagihin/tagihin/internal/logger"
	"github.com/tagihin/tagihin/internal/postgres"
	"github.com/tagihin/tagihin/internal/types"
)

type bankAccountRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewBankAccountRepository(db *postgres.DB, logger *logger.Logger) bankaccount.Repository {
	return &bankAccountRepository{db: db, logger: logger}
}

func (r *bankAccountRepository) Create(ctx context.Context, b *bankaccount.BankAccount) error {
	query := `
		INSERT INTO bank_accounts (
			id, company_id, bank_name, account_name, account_number,
			status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :company_id, :bank_name, :account_name, :account_number,
			:status, :created_at, :updated_at, :created_by, :updated_by
		)`

	if _, err := r.db.NamedExecContext(ctx, query, b); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create bank account").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *bankAccountRepository) Get(ctx context.Context, id string) (*bankaccount.BankAccount, error) {
	rows, err := r.db.NamedQueryContext(ctx,
		`SELECT * FROM bank_accounts WHERE id = :id AND company_id = :company_id AND status != :deleted`,
		map[string]interface{}{
			"id":         id,
			"company_id": types.GetCompanyID(ctx),
			"deleted":    types.StatusDeleted,
		})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to get bank account").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, ierr.NewErrorf("bank account %s not found", id).
			WithHint("Bank account not found").
			Mark(ierr.ErrNotFound)
	}

	var b bankaccount.BankAccount
	if err := rows.StructScan(&b); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to scan bank account").
			Mark(ierr.ErrDatabase)
	}
	return &b, nil
}

func (r *bankAccountRepository) List(ctx context.Context, filter *types.Filter) ([]*bankaccount.BankAccount, error) {
	query := `
		SELECT * FROM bank_accounts
		WHERE company_id = :company_id AND status != :deleted
		ORDER BY bank_name LIMIT :limit OFFSET :offset`

	rows, err := r.db.NamedQueryContext(ctx, query, map[string]interface{}{
		"company_id": types.GetCompanyID(ctx),
		"deleted":    types.StatusDeleted,
		"limit":      filter.GetLimit(),
		"offset":     filter.GetOffset(),
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list bank accounts").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	var accounts []*bankaccount.BankAccount
	for rows.Next() {
		var b bankaccount.BankAccount
		if err := rows.StructScan(&b); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to scan bank account").
				Mark(ierr.ErrDatabase)
		}
		accounts = append(accounts, &b)
	}
	return accounts, nil
}

func (r *bankAccountRepository) Update(ctx context.Context, b *bankaccount.BankAccount) error {
	query := `
		UPDATE bank_accounts SET
			bank_name = :bank_name,
			account_name = :account_name,
			account_number = :account_number,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id AND company_id = :company_id`

	if _, err := r.db.NamedExecContext(ctx, query, b); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update bank account").
			Mark(ierr.ErrDatabase)
	}
	return nil
}
