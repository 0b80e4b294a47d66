package usecase

import (
	"context"
	"errors"
	"fmt"

	"coffee-reservation/internal/data/entity"
	"coffee-reservation/internal/data/repository"
	"coffee-reservation/internal/domain"
	"coffee-reservation/internal/dto/request"
	"coffee-reservation/internal/dto/response"
	"coffee-reservation/pkg/utils"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

type CatalogService interface {
	ListActive(ctx context.Context) ([]response.CoffeeOptionResponse, error)
	Create(ctx context.Context, req *request.CreateCoffeeRequest) (*response.CoffeeOptionResponse, error)
	Update(ctx context.Context, req *request.UpdateCoffeeRequest) (*response.CoffeeOptionResponse, error)
	Delete(ctx context.Context, id string) error
}

type catalogService struct {
	coffee repository.CoffeeRepository
	log    *zap.Logger
}

func NewCatalogService(coffee repository.CoffeeRepository, log *zap.Logger) CatalogService {
	return &catalogService{
		coffee: coffee,
		log:    log.With(zap.String("service", "catalog")),
	}
}

func (s *catalogService) ListActive(ctx context.Context) ([]response.CoffeeOptionResponse, error) {
	options, err := s.coffee.FindActive(ctx)
	if err != nil {
		return nil, err
	}

	return response.CoffeeOptionsToResponse(options), nil
}

func (s *catalogService) Create(ctx context.Context, req *request.CreateCoffeeRequest) (*response.CoffeeOptionResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create coffee validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	option := &entity.CoffeeOption{
		ID:          utils.Slugify(req.Name),
		Name:        req.Name,
		Price:       req.Price,
		Description: optional(req.Description),
	}

	if err := s.coffee.Create(ctx, option); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, fmt.Errorf("coffee option %s already exists", option.ID)
		}
		return nil, err
	}

	s.log.Info("Coffee option created",
		zap.String("coffee_id", option.ID),
		zap.Int64("price", option.Price),
	)

	resp := response.CoffeeOptionToResponse(option)
	return &resp, nil
}

func (s *catalogService) Update(ctx context.Context, req *request.UpdateCoffeeRequest) (*response.CoffeeOptionResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update coffee validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	option := &entity.CoffeeOption{
		ID:          req.ID,
		Name:        req.Name,
		Price:       req.Price,
		Description: optional(req.Description),
		IsActive:    *req.IsActive,
	}

	updated, err := s.coffee.Update(ctx, option)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, domain.ErrCoffeeNotFound
	}

	s.log.Info("Coffee option updated",
		zap.String("coffee_id", updated.ID),
		zap.Bool("is_active", updated.IsActive),
	)

	resp := response.CoffeeOptionToResponse(updated)
	return &resp, nil
}

func (s *catalogService) Delete(ctx context.Context, id string) error {
	if err := s.coffee.Deactivate(ctx, id); err != nil {
		return err
	}

	s.log.Info("Coffee option deleted", zap.String("coffee_id", id))
	return nil
}
