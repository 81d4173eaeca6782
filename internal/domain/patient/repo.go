package patient

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("patient not found")

type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	Update(ctx context.Context, p *Patient) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, search string, limit, offset int) ([]*Patient, int, error)
	All(ctx context.Context) ([]*Patient, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	RecordVisit(ctx context.Context, id uuid.UUID, visited time.Time) error
}
