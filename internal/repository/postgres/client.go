package postgres

import (
	"context"

	"github.com/tagihin/tagihin/internal/domain/client"
	ierr "github.com/tagihin/tagihin/internal/errors"
	"github.com/tagihin/tagihin/internal/logger"
	"github.com/tagihin/tagihin/internal/postgres"
	"github.com/tagihin/tagihin/internal/types"
)

type clientRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewClientRepository(db *postgres.DB, logger *logger.Logger) client.Repository {
	return &clientRepository{db: db, logger: logger}
}

func (r *clientRepository) Create(ctx context.Context, c *client.Client) error {
	query := `
		INSERT INTO clients (
			id, company_id, name, email, phone, address, tax_id,
			status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :company_id, :name, :email, :phone, :address, :tax_id,
			:status, :created_at, :updated_at, :created_by, :updated_by
		)`

	r.logger.Debugw("creating client", "client_id", c.ID, "company_id", c.CompanyID)

	if _, err := r.db.NamedExecContext(ctx, query, c); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create client").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *clientRepository) Get(ctx context.Context, id string) (*client.Client, error) {
	rows, err := r.db.NamedQueryContext(ctx,
		`SELECT * FROM clients WHERE id = :id AND company_id = :company_id AND status != :deleted`,
		map[string]interface{}{
			"id":         id,
			"company_id": types.GetCompanyID(ctx),
			"deleted":    types.StatusDeleted,
		})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to get client").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, ierr.NewErrorf("client %s not found", id).
			WithHint("Client not found").
			Mark(ierr.ErrNotFound)
	}

	var c client.Client
	if err := rows.StructScan(&c); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to scan client").
			Mark(ierr.ErrDatabase)
	}
	return &c, nil
}

func (r *clientRepository) List(ctx context.Context, filter *types.Filter) ([]*client.Client, error) {
	query := `
		SELECT * FROM clients
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
			WithHint("Failed to list clients").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	var clients []*client.Client
	for rows.Next() {
		var c client.Client
		if err := rows.StructScan(&c); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to scan client").
				Mark(ierr.ErrDatabase)
		}
		clients = append(clients, &c)
	}
	return clients, nil
}

func (r *clientRepository) Update(ctx context.Context, c *client.Client) error {
	query := `
		UPDATE clients SET
			name = :name,
			email = :email,
			phone = :phone,
			address = :address,
			tax_id = :tax_id,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id AND company_id = :company_id`

	if _, err := r.db.NamedExecContext(ctx, query, c); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update client").
			Mark(ierr.ErrDatabase)
	}
	return nil
}
