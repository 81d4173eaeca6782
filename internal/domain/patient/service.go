package patient

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrNonaRv/jamindan-e-clonic/internal/geo"
	"github.com/MrNonaRv/jamindan-e-clonic/internal/platform/validation"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create registers a patient. When no purok was chosen but the client shared
// coordinates, the nearest purok reference point is assigned. The first visit
// is stamped at registration time.
func (s *Service) Create(ctx context.Context, in Input) (*Patient, error) {
	if err := validateInput(&in); err != nil {
		return nil, err
	}

	purok := in.Purok
	if purok == "" {
		zone, err := geo.Assign(in.Latitude, in.Longitude)
		switch {
		case errors.Is(err, geo.ErrLocationUnavailable):
			// No fix shared; the purok stays unset until edited.
		case err != nil:
			return nil, err
		default:
			purok = zone.Name
		}
	}

	now := time.Now()
	p := &Patient{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Age:       in.Age,
		Sex:       in.Sex,
		Address:   in.Address,
		Purok:     purok,
		Contact:   in.Contact,
		LastVisit: &now,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, in Input) (*Patient, error) {
	if err := validateInput(&in); err != nil {
		return nil, err
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p.FirstName = in.FirstName
	p.LastName = in.LastName
	p.Age = in.Age
	p.Sex = in.Sex
	p.Address = in.Address
	p.Purok = in.Purok
	p.Contact = in.Contact
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, search string, limit, offset int) ([]*Patient, int, error) {
	return s.repo.List(ctx, strings.TrimSpace(search), limit, offset)
}

// All returns every patient, ordered by name. Used by the CSV export.
func (s *Service) All(ctx context.Context) ([]*Patient, error) {
	return s.repo.All(ctx)
}

// Exists reports whether a patient row is present. Consultations check this
// before recording a visit.
func (s *Service) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.repo.Exists(ctx, id)
}

// RecordVisit moves the patient's last visit date forward.
func (s *Service) RecordVisit(ctx context.Context, id uuid.UUID, visited time.Time) error {
	return s.repo.RecordVisit(ctx, id, visited)
}

func validateInput(in *Input) error {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Purok = strings.TrimSpace(in.Purok)
	in.Contact = strings.TrimSpace(in.Contact)
	in.Address = strings.TrimSpace(in.Address)

	if in.FirstName == "" || in.LastName == "" {
		return validation.Errorf("first and last name are required")
	}
	if in.Age < 0 || in.Age > 150 {
		return validation.Errorf("age must be between 0 and 150")
	}
	if in.Sex != "Male" && in.Sex != "Female" {
		return validation.Errorf("sex must be Male or Female")
	}
	if in.Purok != "" && !geo.IsPurok(in.Purok) {
		return validation.Errorf("unknown purok %q", in.Purok)
	}
	return nil
}
