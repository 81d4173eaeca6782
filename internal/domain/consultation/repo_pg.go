package consultation

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MrNonaRv/jamindan-e-clonic/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type consultationRepoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &consultationRepoPG{pool: pool}
}

func (r *consultationRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const consultationCols = `id, patient_id, visit_date, chief_complaint,
	diagnosis, treatment, prescribed_meds, follow_up, created_at, updated_at`

func scanConsultation(row pgx.Row) (*Consultation, error) {
	var cons Consultation
	err := row.Scan(&cons.ID, &cons.PatientID, &cons.Date, &cons.ChiefComplaint,
		&cons.Diagnosis, &cons.Treatment, &cons.PrescribedMeds, &cons.FollowUp,
		&cons.CreatedAt, &cons.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cons, nil
}

func (r *consultationRepoPG) Create(ctx context.Context, cons *Consultation) error {
	cons.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO consultations (id, patient_id, visit_date, chief_complaint,
			diagnosis, treatment, prescribed_meds, follow_up)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		cons.ID, cons.PatientID, cons.Date, cons.ChiefComplaint,
		cons.Diagnosis, cons.Treatment, cons.PrescribedMeds, cons.FollowUp)
	return err
}

func (r *consultationRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Consultation, error) {
	return scanConsultation(r.conn(ctx).QueryRow(ctx,
		`SELECT `+consultationCols+` FROM consultations WHERE id = $1`, id))
}

func (r *consultationRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM consultations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *consultationRepoPG) List(ctx context.Context, limit, offset int) ([]*Consultation, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM consultations`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+consultationCols+` FROM consultations
		ORDER BY visit_date DESC, created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Consultation
	for rows.Next() {
		cons, err := scanConsultation(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, cons)
	}
	return items, total, rows.Err()
}

func (r *consultationRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Consultation, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+consultationCols+` FROM consultations
		WHERE patient_id = $1 ORDER BY visit_date DESC, created_at DESC`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Consultation
	for rows.Next() {
		cons, err := scanConsultation(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, cons)
	}
	return items, rows.Err()
}
