package medicine

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("medicine not found")

type Repository interface {
	Create(ctx context.Context, m *Medicine) error
	GetByID(ctx context.Context, id uuid.UUID) (*Medicine, error)
	Update(ctx context.Context, m *Medicine) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, search string, limit, offset int) ([]*Medicine, int, error)
	LowStock(ctx context.Context, threshold int) ([]*Medicine, error)
	Expiring(ctx context.Context, before time.Time) ([]*Medicine, error)
}
