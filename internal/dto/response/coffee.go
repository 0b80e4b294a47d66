package response

import (
	"time"

	"coffee-reservation/internal/data/entity"
)

type CoffeeOptionResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Price       int64     `json:"price"`
	Description *string   `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func CoffeeOptionToResponse(option *entity.CoffeeOption) CoffeeOptionResponse {
	return CoffeeOptionResponse{
		ID:          option.ID,
		Name:        option.Name,
		Price:       option.Price,
		Description: option.Description,
		IsActive:    option.IsActive,
		CreatedAt:   option.CreatedAt,
		UpdatedAt:   option.UpdatedAt,
	}
}

func CoffeeOptionsToResponse(options []*entity.CoffeeOption) []CoffeeOptionResponse {
	out := make([]CoffeeOptionResponse, len(options))
	for i, option := range options {
		out[i] = CoffeeOptionToResponse(option)
	}
	return out
}
