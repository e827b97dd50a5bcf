package postgres

import (
	"context"

	"github.com/tagihin/tagihin/internal/domain/auditlog"
	ierr "github.com/tagihin/tagihin/internal/errors"
	"github.com/tagihin/tagihin/internal/logger"
	"github.com/tagihin/tagihin/internal/postgres"
	"github.com/tagihin/tagihin/internal/types"
)

type auditLogRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewAuditLogRepository(db *postgres.DB, logger *logger.Logger) auditlog.Repository {
	return &auditLogRepository{db: db, logger: logger}
}

func (r *auditLogRepository) Create(ctx context.Context, log *auditlog.AuditLog) error {
	query := `
		INSERT INTO audit_logs (
			id, company_id, user_id, action, entity_type, entity_id,
			details, ip_address, user_agent, request_id, created_at
		) VALUES (
			:id, :company_id, :user_id, :action, :entity_type, :entity_id,
			:details, :ip_address, :user_agent, :request_id, :created_at
		)`

	if _, err := r.db.NamedExecContext(ctx, query, log); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create audit log").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *auditLogRepository) List(ctx context.Context, filter *types.AuditLogFilter) ([]*auditlog.AuditLog, error) {
	query := `SELECT * FROM audit_logs WHERE company_id = :company_id`
	args := map[string]interface{}{
		"company_id": types.GetCompanyID(ctx),
		"limit":      filter.GetLimit(),
		"offset":     filter.GetOffset(),
	}
	if filter != nil {
		if filter.Action != "" {
			query += ` AND action = :action`
			args["action"] = filter.Action
		}
		if filter.EntityType != "" {
			query += ` AND entity_type = :entity_type`
			args["entity_type"] = filter.EntityType
		}
		if filter.EntityID != "" {
			query += ` AND entity_id = :entity_id`
			args["entity_id"] = filter.EntityID
		}
		if filter.UserID != "" {
			query += ` AND user_id = :user_id`
			args["user_id"] = filter.UserID
		}
	}
	query += ` ORDER BY created_at DESC LIMIT :limit OFFSET :offset`

	rows, err := r.db.NamedQueryContext(ctx, query, args)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list audit logs").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	var logs []*auditlog.AuditLog
	for rows.Next() {
		var l auditlog.AuditLog
		if err := rows.StructScan(&l); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to scan audit log").
				Mark(ierr.ErrDatabase)
		}
		logs = append(logs, &l)
	}
	return logs, nil
}
