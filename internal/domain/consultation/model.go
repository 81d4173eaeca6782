package consultation

import (
	"time"

	"github.com/google/uuid"
)

// Consultation records one clinic visit.
type Consultation struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	PatientID      uuid.UUID  `db:"patient_id" json:"patientId"`
	Date           time.Time  `db:"visit_date" json:"date"`
	ChiefComplaint string     `db:"chief_complaint" json:"chiefComplaint"`
	Diagnosis      string     `db:"diagnosis" json:"diagnosis"`
	Treatment      string     `db:"treatment" json:"treatment"`
	PrescribedMeds []string   `db:"prescribed_meds" json:"prescribedMeds"`
	FollowUp       *time.Time `db:"follow_up" json:"followUp,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updatedAt"`
}

// Input is the create payload. Dates arrive as YYYY-MM-DD strings and
// PrescribedMeds as the raw comma-separated text the form collects.
type Input struct {
	PatientID      string `json:"patientId" validate:"required"`
	Date           string `json:"date"`
	ChiefComplaint string `json:"chiefComplaint" validate:"required"`
	Diagnosis      string `json:"diagnosis" validate:"required"`
	Treatment      string `json:"treatment"`
	PrescribedMeds string `json:"prescribedMeds"`
	FollowUp       string `json:"followUp"`
}
