package repository

import (
	"context"
	"errors"
	"fmt"

	"coffee-reservation/internal/data/entity"
	"coffee-reservation/internal/domain"
	"coffee-reservation/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type CoffeeRepository interface {
	Create(ctx context.Context, option *entity.CoffeeOption) error
	FindActive(ctx context.Context) ([]*entity.CoffeeOption, error)
	FindActiveByID(ctx context.Context, id string) (*entity.CoffeeOption, error)
	Update(ctx context.Context, option *entity.CoffeeOption) (*entity.CoffeeOption, error)
	Deactivate(ctx context.Context, id string) error
}

type coffeeRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCoffeeRepository(db database.PgxIface, log *zap.Logger) CoffeeRepository {
	return &coffeeRepository{
		db:  db,
		log: log.With(zap.String("repository", "coffee")),
	}
}

func (r *coffeeRepository) Create(ctx context.Context, option *entity.CoffeeOption) error {
	query := `
		INSERT INTO coffee_options (id, name, price, description)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		option.ID,
		option.Name,
		option.Price,
		option.Description,
	).Scan(&option.CreatedAt, &option.UpdatedAt)

	if err != nil {
		r.log.Error("Failed to create coffee option",
			zap.Error(err),
			zap.String("coffee_id", option.ID),
		)
		return fmt.Errorf("create coffee option %s: %w", option.ID, err)
	}

	option.IsActive = true
	return nil
}

func (r *coffeeRepository) FindActive(ctx context.Context) ([]*entity.CoffeeOption, error) {
	query := `
		SELECT id, name, price, description, is_active, created_at, updated_at
		FROM coffee_options
		WHERE is_active = true
		ORDER BY price ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list active coffee options", zap.Error(err))
		return nil, fmt.Errorf("list active coffee options: %w", err)
	}
	defer rows.Close()

	var options []*entity.CoffeeOption
	for rows.Next() {
		var option entity.CoffeeOption
		err := rows.Scan(
			&option.ID,
			&option.Name,
			&option.Price,
			&option.Description,
			&option.IsActive,
			&option.CreatedAt,
			&option.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan coffee option row: %w", err)
		}
		options = append(options, &option)
	}

	return options, rows.Err()
}

func (r *coffeeRepository) FindActiveByID(ctx context.Context, id string) (*entity.CoffeeOption, error) {
	query := `
		SELECT id, name, price, description, is_active, created_at, updated_at
		FROM coffee_options
		WHERE id = $1 AND is_active = true
	`

	var option entity.CoffeeOption
	err := r.db.QueryRow(ctx, query, id).Scan(
		&option.ID,
		&option.Name,
		&option.Price,
		&option.Description,
		&option.IsActive,
		&option.CreatedAt,
		&option.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find coffee option",
			zap.Error(err),
			zap.String("coffee_id", id),
		)
		return nil, fmt.Errorf("find coffee option %s: %w", id, err)
	}

	return &option, nil
}

func (r *coffeeRepository) Update(ctx context.Context, option *entity.CoffeeOption) (*entity.CoffeeOption, error) {
	query := `
		UPDATE coffee_options
		SET name = $2, price = $3, description = $4, is_active = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING id, name, price, description, is_active, created_at, updated_at
	`

	var updated entity.CoffeeOption
	err := r.db.QueryRow(ctx, query,
		option.ID,
		option.Name,
		option.Price,
		option.Description,
		option.IsActive,
	).Scan(
		&updated.ID,
		&updated.Name,
		&updated.Price,
		&updated.Description,
		&updated.IsActive,
		&updated.CreatedAt,
		&updated.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to update coffee option",
			zap.Error(err),
			zap.String("coffee_id", option.ID),
		)
		return nil, fmt.Errorf("update coffee option %s: %w", option.ID, err)
	}

	return &updated, nil
}

// Deactivate is the catalog's soft delete; the row is kept so past
// reservations retain their name/price reference.
func (r *coffeeRepository) Deactivate(ctx context.Context, id string) error {
	query := `
		UPDATE coffee_options
		SET is_active = false, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to deactivate coffee option",
			zap.Error(err),
			zap.String("coffee_id", id),
		)
		return fmt.Errorf("deactivate coffee option %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrCoffeeNotFound
	}

	r.log.Info("Coffee option deactivated", zap.String("coffee_id", id))
	return nil
}
