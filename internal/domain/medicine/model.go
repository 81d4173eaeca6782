package medicine

import (
	"time"

	"github.com/google/uuid"
)

// Medicine is one inventory item.
type Medicine struct {
	ID         uuid.UUID `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	Category   string    `db:"category" json:"category"`
	Stock      int       `db:"stock" json:"stock"`
	Unit       string    `db:"unit" json:"unit"`
	ExpiryDate time.Time `db:"expiry_date" json:"expiryDate"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time `db:"updated_at" json:"updatedAt"`
}

// Input carries the writable inventory fields. ExpiryDate arrives as a
// YYYY-MM-DD string.
type Input struct {
	Name       string `json:"name" validate:"required"`
	Category   string `json:"category"`
	Stock      int    `json:"stock" validate:"min=0"`
	Unit       string `json:"unit"`
	ExpiryDate string `json:"expiryDate" validate:"required"`
}
