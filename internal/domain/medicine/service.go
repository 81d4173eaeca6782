package medicine

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrNonaRv/jamindan-e-clonic/internal/platform/validation"
)

type Service struct {
	repo              Repository
	lowStockThreshold int
}

func NewService(repo Repository, lowStockThreshold int) *Service {
	return &Service{repo: repo, lowStockThreshold: lowStockThreshold}
}

func (s *Service) Create(ctx context.Context, in Input) (*Medicine, error) {
	m, err := fromInput(in)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Medicine, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, in Input) (*Medicine, error) {
	m, err := fromInput(in)
	if err != nil {
		return nil, err
	}
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	m.ID = current.ID
	m.CreatedAt = current.CreatedAt
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, search string, limit, offset int) ([]*Medicine, int, error) {
	return s.repo.List(ctx, strings.TrimSpace(search), limit, offset)
}

// LowStock lists items below the configured stock threshold.
func (s *Service) LowStock(ctx context.Context) ([]*Medicine, error) {
	return s.repo.LowStock(ctx, s.lowStockThreshold)
}

// Expiring lists items whose expiry date falls within the next given number
// of days.
func (s *Service) Expiring(ctx context.Context, days int) ([]*Medicine, error) {
	if days <= 0 {
		days = 90
	}
	return s.repo.Expiring(ctx, time.Now().AddDate(0, 0, days))
}

func fromInput(in Input) (*Medicine, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, validation.Errorf("name is required")
	}
	if in.Stock < 0 {
		return nil, validation.Errorf("stock cannot be negative")
	}
	expiry, err := time.Parse("2006-01-02", in.ExpiryDate)
	if err != nil {
		return nil, validation.Errorf("invalid expiry date %q", in.ExpiryDate)
	}
	return &Medicine{
		Name:       name,
		Category:   strings.TrimSpace(in.Category),
		Stock:      in.Stock,
		Unit:       strings.TrimSpace(in.Unit),
		ExpiryDate: expiry,
	}, nil
}
