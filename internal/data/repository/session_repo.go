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

type SessionRepository interface {
	Create(ctx context.Context, session *entity.AdminSession) error
	// FindValidSession resolves a token to its active admin user.
	FindValidSession(ctx context.Context, token string) (*entity.AdminUser, error)
	Delete(ctx context.Context, token string) error
	CleanExpired(ctx context.Context) error
}

type sessionRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSessionRepository(db database.PgxIface, log *zap.Logger) SessionRepository {
	return &sessionRepository{
		db:  db,
		log: log.With(zap.String("repository", "session")),
	}
}

func (r *sessionRepository) Create(ctx context.Context, session *entity.AdminSession) error {
	query := `
		INSERT INTO admin_sessions (user_id, session_token, expires_at)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		session.UserID,
		session.SessionToken,
		session.ExpiresAt,
	).Scan(&session.ID, &session.CreatedAt)

	if err != nil {
		r.log.Error("Failed to create session",
			zap.Error(err),
			zap.Int64("user_id", session.UserID),
		)
		return fmt.Errorf("create session: %w", err)
	}

	return nil
}

func (r *sessionRepository) FindValidSession(ctx context.Context, token string) (*entity.AdminUser, error) {
	query := `
		SELECT u.id, u.username, u.email, u.password_hash, u.full_name, u.role,
		       u.is_active, u.last_login, u.created_at, u.updated_at
		FROM admin_sessions s
		JOIN admin_users u ON s.user_id = u.id
		WHERE s.session_token = $1
		  AND s.expires_at > NOW()
		  AND u.is_active = true
	`

	user, err := scanAdminUser(r.db.QueryRow(ctx, query, token))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find valid session", zap.Error(err))
		return nil, fmt.Errorf("find valid session: %w", err)
	}

	return user, nil
}

func (r *sessionRepository) Delete(ctx context.Context, token string) error {
	query := `DELETE FROM admin_sessions WHERE session_token = $1`

	if _, err := r.db.Exec(ctx, query, token); err != nil {
		r.log.Error("Failed to delete session", zap.Error(err))
		return fmt.Errorf("delete session: %w", err)
	}

	return nil
}

func (r *sessionRepository) CleanExpired(ctx context.Context) error {
	query := `DELETE FROM admin_sessions WHERE expires_at <= NOW()`

	result, err := r.db.Exec(ctx, query)
	if err != nil {
		r.log.Error("Failed to clean expired sessions", zap.Error(err))
		return fmt.Errorf("clean expired sessions: %w", err)
	}

	if n := result.RowsAffected(); n > 0 {
		r.log.Info("Expired sessions removed", zap.Int64("count", n))
	}

	return nil
}
