package postgres

import (
	"context"
	"time"

	"github.com/tagihin/tagihin/internal/domain/user"
	ierr "github.com/tagihin/tagihin/internal/errors"
	"github.com/tagihin/tagihin/internal/logger"
	"github.com/tagihin/tagihin/internal/postgres"
	"github.com/tagihin/tagihin/internal/types"
)

type userRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewUserRepository(db *postgres.DB, logger *logger.Logger) user.Repository {
	return &userRepository{db: db, logger: logger}
}

func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (
			id, company_id, name, email, plan_name, plan_renews_at,
			status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :company_id, :name, :email, :plan_name, :plan_renews_at,
			:status, :created_at, :updated_at, :created_by, :updated_by
		)`

	r.logger.Debugw("creating user", "user_id", u.ID, "company_id", u.CompanyID)

	if _, err := r.db.NamedExecContext(ctx, query, u); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create user").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *userRepository) Get(ctx context.Context, id string) (*user.User, error) {
	rows, err := r.db.NamedQueryContext(ctx, `SELECT * FROM users WHERE id = :id`, map[string]interface{}{
		"id": id,
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to get user").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, ierr.NewErrorf("user %s not found", id).
			WithHint("User not found").
			Mark(ierr.ErrNotFound)
	}

	var u user.User
	if err := rows.StructScan(&u); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to scan user").
			Mark(ierr.ErrDatabase)
	}
	return &u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	rows, err := r.db.NamedQueryContext(ctx, `SELECT * FROM users WHERE email = :email`, map[string]interface{}{
		"email": email,
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to get user").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, ierr.NewErrorf("user with email %s not found", email).
			WithHint("User not found").
			Mark(ierr.ErrNotFound)
	}

	var u user.User
	if err := rows.StructScan(&u); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to scan user").
			Mark(ierr.ErrDatabase)
	}
	return &u, nil
}

func (r *userRepository) Update(ctx context.Context, u *user.User) error {
	query := `
		UPDATE users SET
			name = :name,
			email = :email,
			plan_name = :plan_name,
			plan_renews_at = :plan_renews_at,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id`

	r.logger.Debugw("updating user", "user_id", u.ID, "plan_name", u.PlanName)

	if _, err := r.db.NamedExecContext(ctx, query, u); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update user").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *userRepository) FindRenewalsDue(ctx context.Context, renewsAt time.Time) ([]*user.User, error) {
	query := `
		SELECT * FROM users
		WHERE plan_name != :free_plan
		AND plan_renews_at IS NOT NULL
		AND plan_renews_at::date = :renews_at
		AND status = :status
		ORDER BY id`

	rows, err := r.db.NamedQueryContext(ctx, query, map[string]interface{}{
		"free_plan": types.PlanFree,
		"renews_at": renewsAt.Format("2006-01-02"),
		"status":    types.StatusActive,
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to find renewals due").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	var users []*user.User
	for rows.Next() {
		var u user.User
		if err := rows.StructScan(&u); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to scan user").
				Mark(ierr.ErrDatabase)
		}
		users = append(users, &u)
	}
	return users, nil
}
