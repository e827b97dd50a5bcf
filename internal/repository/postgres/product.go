package postgres

import (
	"context"

	"github.com/tagihin/tagihin/internal/domain/product"
	ierr "github.com/tagihin/tagihin/internal/errors"
	"github.com/tagihin/tagihin/internal/logger"
	"github.com/tagihin/tagihin/internal/postgres"
	"github.com/tagihin/tagihin/internal/types"
)

type productRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewProductRepository(db *postgres.DB, logger *logger.Logger) product.Repository {
	return &productRepository{db: db, logger: logger}
}

func (r *productRepository) Create(ctx context.Context, p *product.Product) error {
	query := `
		INSERT INTO products (
			id, company_id, name, description, unit, unit_price,
			status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :company_id, :name, :description, :unit, :unit_price,
			:status, :created_at, :updated_at, :created_by, :updated_by
		)`

	r.logger.Debugw("creating product", "product_id", p.ID, "company_id", p.CompanyID)

	if _, err := r.db.NamedExecContext(ctx, query, p); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create product").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *productRepository) Get(ctx context.Context, id string) (*product.Product, error) {
	rows, err := r.db.NamedQueryContext(ctx,
		`SELECT * FROM products WHERE id = :id AND company_id = :company_id AND status != :deleted`,
		map[string]interface{}{
			"id":         id,
			"company_id": types.GetCompanyID(ctx),
			"deleted":    types.StatusDeleted,
		})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to get product").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, ierr.NewErrorf("product %s not found", id).
			WithHint("Product not found").
			Mark(ierr.ErrNotFound)
	}

	var p product.Product
	if err := rows.StructScan(&p); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to scan product").
			Mark(ierr.ErrDatabase)
	}
	return &p, nil
}

func (r *productRepository) List(ctx context.Context, filter *types.Filter) ([]*product.Product, error) {
	query := `
		SELECT * FROM products
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
			WithHint("Failed to list products").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	var products []*product.Product
	for rows.Next() {
		var p product.Product
		if err := rows.StructScan(&p); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to scan product").
				Mark(ierr.ErrDatabase)
		}
		products = append(products, &p)
	}
	return products, nil
}

func (r *productRepository) Update(ctx context.Context, p *product.Product) error {
	query := `
		UPDATE products SET
			name = :name,
			description = :description,
			unit = :unit,
			unit_price = :unit_price,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id AND company_id = :company_id`

	if _, err := r.db.NamedExecContext(ctx, query, p); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update product").
			Mark(ierr.ErrDatabase)
	}
	return nil
}
