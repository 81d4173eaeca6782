package account

import (
	"time"

	"github.com/google/uuid"
)

// User maps to the users table. Credential hashes never leave the API: both
// carry `json:"-"` so no handler can serialize them by accident.
type User struct {
	ID                 uuid.UUID `db:"id" json:"id"`
	Username           string    `db:"username" json:"username"`
	PasswordHash       string    `db:"password_hash" json:"-"`
	Name               string    `db:"name" json:"name"`
	Role               string    `db:"role" json:"role"`
	RecoveryQuestion   string    `db:"recovery_question" json:"recoveryQuestion"`
	RecoveryAnswerHash string    `db:"recovery_answer_hash" json:"-"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time `db:"updated_at" json:"updated_at"`
}

// UpdateProfileInput carries the editable profile fields. Username and Name
// are always written; the credential fields are only written when non-empty.
type UpdateProfileInput struct {
	Username         string `json:"username" validate:"required,min=3"`
	Name             string `json:"name" validate:"required"`
	Password         string `json:"password"`
	RecoveryQuestion string `json:"recoveryQuestion"`
	RecoveryAnswer   string `json:"recoveryAnswer"`
}
