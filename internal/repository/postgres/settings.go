package postgres

import (
	"context"

	"github.com/tagihin/tagihin/internal/domain/settings"
	ierr "github.com/tagihin/tagihin/internal/errors"
	"github.com/tagihin/tagihin/internal/logger"
	"github.com/tagihin/tagihin/internal/postgres"
	"github.com/tagihin/tagihin/internal/types"
)

type settingsRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewSettingsRepository(db *postgres.DB, logger *logger.Logger) settings.Repository {
	return &settingsRepository{db: db, logger: logger}
}

func (r *settingsRepository) Get(ctx context.Context, key string) (*settings.Setting, error) {
	rows, err := r.db.NamedQueryContext(ctx,
		`SELECT * FROM settings WHERE key = :key AND company_id = :company_id`,
		map[string]interface{}{
			"key":        key,
			"company_id": types.GetCompanyID(ctx),
		})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to get setting").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, ierr.NewErrorf("setting %s not found", key).
			WithHint("Setting not found").
			Mark(ierr.ErrNotFound)
	}

	var s settings.Setting
	if err := rows.StructScan(&s); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to scan setting").
			Mark(ierr.ErrDatabase)
	}
	return &s, nil
}

func (r *settingsRepository) List(ctx context.Context) ([]*settings.Setting, error) {
	rows, err := r.db.NamedQueryContext(ctx,
		`SELECT * FROM settings WHERE company_id = :company_id ORDER BY key`,
		map[string]interface{}{
			"company_id": types.GetCompanyID(ctx),
		})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list settings").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	var result []*settings.Setting
	for rows.Next() {
		var s settings.Setting
		if err := rows.StructScan(&s); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to scan setting").
				Mark(ierr.ErrDatabase)
		}
		result = append(result, &s)
	}
	return result, nil
}

func (r *settingsRepository) Upsert(ctx context.Context, s *settings.Setting) error {
	query := `
		INSERT INTO settings (
			id, company_id, key, value,
			status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :company_id, :key, :value,
			:status, :created_at, :updated_at, :created_by, :updated_by
		)
		ON CONFLICT (company_id, key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at,
			updated_by = EXCLUDED.updated_by`

	r.logger.Debugw("upserting setting", "key", s.Key, "company_id", s.CompanyID)

	if _, err := r.db.NamedExecContext(ctx, query, s); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to save setting").
			Mark(ierr.ErrDatabase)
	}
	return nil
}
