package entity

import (
	"time"
)

// CoffeeOption is a purchasable menu item. Deletion is a soft flag flip
// so historical reservations keep a valid price/name reference.
type CoffeeOption struct {
	ID          string    `db:"id"` // stable slug
	Name        string    `db:"name"`
	Price       int64     `db:"price"` // whole currency units
	Description *string   `db:"description"`
	IsActive    bool      `db:"is_active"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}
