package analytics

import (
	"context"
	"time"

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

type analyticsRepoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &analyticsRepoPG{pool: pool}
}

func (r *analyticsRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *analyticsRepoPG) TotalPatients(ctx context.Context) (int, error) {
	var n int
	err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM patients`).Scan(&n)
	return n, err
}

func (r *analyticsRepoPG) ConsultationsOn(ctx context.Context, day time.Time) (int, error) {
	var n int
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM consultations WHERE visit_date::date = $1::date`, day).Scan(&n)
	return n, err
}

func (r *analyticsRepoPG) LowStockCount(ctx context.Context, threshold int) (int, error) {
	var n int
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM medicines WHERE stock < $1`, threshold).Scan(&n)
	return n, err
}

func (r *analyticsRepoPG) ActivePuroks(ctx context.Context) (int, error) {
	var n int
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(DISTINCT purok) FROM patients WHERE purok <> ''`).Scan(&n)
	return n, err
}

func (r *analyticsRepoPG) PurokDistribution(ctx context.Context) ([]PurokCount, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT purok, COUNT(*) FROM patients
		WHERE purok <> '' GROUP BY purok ORDER BY purok`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PurokCount
	for rows.Next() {
		var pc PurokCount
		if err := rows.Scan(&pc.Name, &pc.Patients); err != nil {
			return nil, err
		}
		out = append(out, pc)
	}
	return out, rows.Err()
}

func (r *analyticsRepoPG) DiagnosisCounts(ctx context.Context) ([]IllnessCount, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT diagnosis, COUNT(*) FROM consultations
		GROUP BY diagnosis ORDER BY COUNT(*) DESC, diagnosis`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []IllnessCount
	for rows.Next() {
		var ic IllnessCount
		if err := rows.Scan(&ic.Name, &ic.Value); err != nil {
			return nil, err
		}
		out = append(out, ic)
	}
	return out, rows.Err()
}

func (r *analyticsRepoPG) MonthlyVisits(ctx context.Context, since time.Time) ([]MonthlyVisits, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT date_trunc('month', visit_date) AS month, COUNT(*)
		FROM consultations WHERE visit_date >= $1
		GROUP BY month ORDER BY month`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MonthlyVisits
	for rows.Next() {
		var month time.Time
		var visits int
		if err := rows.Scan(&month, &visits); err != nil {
			return nil, err
		}
		out = append(out, MonthlyVisits{Month: month.Format("Jan"), Visits: visits})
	}
	return out, rows.Err()
}
