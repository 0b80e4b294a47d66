package repository

import (
	"context"
	"errors"
	"fmt"

	"coffee-reservation/internal/data/entity"
	"coffee-reservation/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type AdminUserRepository interface {
	FindActiveByUsername(ctx context.Context, username string) (*entity.AdminUser, error)
	FindByID(ctx context.Context, id int64) (*entity.AdminUser, error)
	TouchLastLogin(ctx context.Context, id int64) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}

type adminUserRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAdminUserRepository(db database.PgxIface, log *zap.Logger) AdminUserRepository {
	return &adminUserRepository{
		db:  db,
		log: log.With(zap.String("repository", "admin_user")),
	}
}

const adminUserColumns = `id, username, email, password_hash, full_name, role,
	       is_active, last_login, created_at, updated_at`

func scanAdminUser(row pgx.Row) (*entity.AdminUser, error) {
	var u entity.AdminUser
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.FullName,
		&u.Role,
		&u.IsActive,
		&u.LastLogin,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *adminUserRepository) FindActiveByUsername(ctx context.Context, username string) (*entity.AdminUser, error) {
	query := `SELECT ` + adminUserColumns + `
		FROM admin_users
		WHERE username = $1 AND is_active = true
	`

	user, err := scanAdminUser(r.db.QueryRow(ctx, query, username))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find admin by username",
			zap.Error(err),
			zap.String("username", username),
		)
		return nil, fmt.Errorf("find admin by username %s: %w", username, err)
	}

	return user, nil
}

func (r *adminUserRepository) FindByID(ctx context.Context, id int64) (*entity.AdminUser, error) {
	query := `SELECT ` + adminUserColumns + ` FROM admin_users WHERE id = $1`

	user, err := scanAdminUser(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find admin by ID",
			zap.Error(err),
			zap.Int64("admin_id", id),
		)
		return nil, fmt.Errorf("find admin by ID %d: %w", id, err)
	}

	return user, nil
}

func (r *adminUserRepository) TouchLastLogin(ctx context.Context, id int64) error {
	query := `
		UPDATE admin_users
		SET last_login = NOW(), updated_at = NOW()
		WHERE id = $1
	`

	if _, err := r.db.Exec(ctx, query, id); err != nil {
		r.log.Error("Failed to touch last login",
			zap.Error(err),
			zap.Int64("admin_id", id),
		)
		return fmt.Errorf("touch last login for admin %d: %w", id, err)
	}

	return nil
}

func (r *adminUserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	query := `
		UPDATE admin_users
		SET password_hash = $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, id, passwordHash)
	if err != nil {
		r.log.Error("Failed to update admin password",
			zap.Error(err),
			zap.Int64("admin_id", id),
		)
		return fmt.Errorf("update password for admin %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("admin %d not found", id)
	}

	return nil
}
