package request

type CreateCoffeeRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Price       int64  `json:"price" validate:"required,gt=0"`
	Description string `json:"description" validate:"omitempty,max=500"`
}

type UpdateCoffeeRequest struct {
	ID          string `json:"id" validate:"required"`
	Name        string `json:"name" validate:"required,max=100"`
	Price       int64  `json:"price" validate:"required,gt=0"`
	Description string `json:"description" validate:"omitempty,max=500"`
	IsActive    *bool  `json:"is_active" validate:"required"`
}

type DeleteCoffeeRequest struct {
	ID string `json:"id" validate:"required"`
}
