package patient

import (
	"time"

	"github.com/google/uuid"
)

// Patient is a resident registered with the clinic.
type Patient struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	FirstName string     `db:"first_name" json:"firstName"`
	LastName  string     `db:"last_name" json:"lastName"`
	Age       int        `db:"age" json:"age"`
	Sex       string     `db:"sex" json:"sex"`
	Address   string     `db:"address" json:"address"`
	Purok     string     `db:"purok" json:"purok"`
	Contact   string     `db:"contact" json:"contact"`
	LastVisit *time.Time `db:"last_visit" json:"lastVisit,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time  `db:"updated_at" json:"updatedAt"`
}

// Input carries the writable patient fields. Latitude/Longitude are only
// consulted on create, when no purok was chosen and the browser shared a
// position fix.
type Input struct {
	FirstName string   `json:"firstName" validate:"required"`
	LastName  string   `json:"lastName" validate:"required"`
	Age       int      `json:"age" validate:"min=0,max=150"`
	Sex       string   `json:"sex" validate:"required,sex"`
	Address   string   `json:"address"`
	Purok     string   `json:"purok"`
	Contact   string   `json:"contact"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}
