package consultation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrNonaRv/jamindan-e-clonic/internal/platform/validation"
)

var ErrPatientNotFound = errors.New("patient not found")

// PatientDirectory is the slice of the patient service consultations need:
// confirming the patient exists and moving their last visit forward.
type PatientDirectory interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	RecordVisit(ctx context.Context, id uuid.UUID, visited time.Time) error
}

// TxRunner runs fn atomically. A nil runner executes fn directly, which the
// in-memory tests rely on.
type TxRunner func(ctx context.Context, fn func(ctx context.Context) error) error

type Service struct {
	repo     Repository
	patients PatientDirectory
	runTx    TxRunner
}

func NewService(repo Repository, patients PatientDirectory, runTx TxRunner) *Service {
	if runTx == nil {
		runTx = func(ctx context.Context, fn func(ctx context.Context) error) error {
			return fn(ctx)
		}
	}
	return &Service{repo: repo, patients: patients, runTx: runTx}
}

// Create records a visit and advances the patient's last visit date in the
// same transaction.
func (s *Service) Create(ctx context.Context, in Input) (*Consultation, error) {
	patientID, err := uuid.Parse(in.PatientID)
	if err != nil {
		return nil, validation.Errorf("invalid patient id")
	}
	if strings.TrimSpace(in.ChiefComplaint) == "" {
		return nil, validation.Errorf("chief complaint is required")
	}
	if strings.TrimSpace(in.Diagnosis) == "" {
		return nil, validation.Errorf("diagnosis is required")
	}

	visitDate, err := parseDate(in.Date, time.Now())
	if err != nil {
		return nil, validation.Errorf("invalid date %q", in.Date)
	}
	var followUp *time.Time
	if in.FollowUp != "" {
		f, err := parseDate(in.FollowUp, time.Time{})
		if err != nil {
			return nil, validation.Errorf("invalid follow-up date %q", in.FollowUp)
		}
		followUp = &f
	}

	exists, err := s.patients.Exists(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrPatientNotFound
	}

	cons := &Consultation{
		PatientID:      patientID,
		Date:           visitDate,
		ChiefComplaint: strings.TrimSpace(in.ChiefComplaint),
		Diagnosis:      strings.TrimSpace(in.Diagnosis),
		Treatment:      strings.TrimSpace(in.Treatment),
		PrescribedMeds: SplitMeds(in.PrescribedMeds),
		FollowUp:       followUp,
	}

	err = s.runTx(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, cons); err != nil {
			return err
		}
		return s.patients.RecordVisit(ctx, patientID, visitDate)
	})
	if err != nil {
		return nil, err
	}
	return cons, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Consultation, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Consultation, int, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Consultation, error) {
	return s.repo.ListByPatient(ctx, patientID)
}

// SplitMeds turns the form's comma-separated medicine text into a clean
// slice: entries trimmed, blanks dropped.
func SplitMeds(raw string) []string {
	var meds []string
	for _, part := range strings.Split(raw, ",") {
		if med := strings.TrimSpace(part); med != "" {
			meds = append(meds, med)
		}
	}
	return meds
}

func parseDate(s string, fallback time.Time) (time.Time, error) {
	if s == "" {
		if fallback.IsZero() {
			return time.Time{}, fmt.Errorf("empty date")
		}
		return time.Date(fallback.Year(), fallback.Month(), fallback.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Parse("2006-01-02", s)
}
