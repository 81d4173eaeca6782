package consultation

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("consultation not found")

type Repository interface {
	Create(ctx context.Context, cons *Consultation) error
	GetByID(ctx context.Context, id uuid.UUID) (*Consultation, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*Consultation, int, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Consultation, error)
}
