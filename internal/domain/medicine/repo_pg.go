package medicine

import (
	"context"
	"errors"
	"time"

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

type medicineRepoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &medicineRepoPG{pool: pool}
}

func (r *medicineRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const medicineCols = `id, name, category, stock, unit, expiry_date, created_at, updated_at`

func scanMedicine(row pgx.Row) (*Medicine, error) {
	var m Medicine
	err := row.Scan(&m.ID, &m.Name, &m.Category, &m.Stock, &m.Unit,
		&m.ExpiryDate, &m.CreatedAt, &m.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func collect(rows pgx.Rows) ([]*Medicine, error) {
	defer rows.Close()
	var items []*Medicine
	for rows.Next() {
		m, err := scanMedicine(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

func (r *medicineRepoPG) Create(ctx context.Context, m *Medicine) error {
	m.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO medicines (id, name, category, stock, unit, expiry_date)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		m.ID, m.Name, m.Category, m.Stock, m.Unit, m.ExpiryDate)
	return err
}

func (r *medicineRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Medicine, error) {
	return scanMedicine(r.conn(ctx).QueryRow(ctx,
		`SELECT `+medicineCols+` FROM medicines WHERE id = $1`, id))
}

func (r *medicineRepoPG) Update(ctx context.Context, m *Medicine) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE medicines SET name=$2, category=$3, stock=$4, unit=$5,
			expiry_date=$6, updated_at=NOW()
		WHERE id = $1`,
		m.ID, m.Name, m.Category, m.Stock, m.Unit, m.ExpiryDate)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *medicineRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM medicines WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *medicineRepoPG) List(ctx context.Context, search string, limit, offset int) ([]*Medicine, int, error) {
	pattern := "%" + search + "%"

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `
		SELECT COUNT(*) FROM medicines
		WHERE name ILIKE $1 OR category ILIKE $1`, pattern).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+medicineCols+` FROM medicines
		WHERE name ILIKE $1 OR category ILIKE $1
		ORDER BY name LIMIT $2 OFFSET $3`, pattern, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	items, err := collect(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *medicineRepoPG) LowStock(ctx context.Context, threshold int) ([]*Medicine, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+medicineCols+` FROM medicines
		WHERE stock < $1 ORDER BY stock, name`, threshold)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

func (r *medicineRepoPG) Expiring(ctx context.Context, before time.Time) ([]*Medicine, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+medicineCols+` FROM medicines
		WHERE expiry_date < $1 ORDER BY expiry_date, name`, before)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}
