package ledger

import (
	"context"
	"fmt"

	"github.com/TemirB/order-print-agent/internal/config"
	"github.com/TemirB/order-print-agent/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct {
	pool   *pgxpool.Pool
	tables config.Tables
}

func New(pool *pgxpool.Pool, t config.Tables) *Repo { return &Repo{pool: pool, tables: t} }

func Connect(ctx context.Context, dsn string) *pgxpool.Pool {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		panic(err)
	}
	if err := pool.Ping(ctx); err != nil {
		panic(err)
	}
	return pool
}

func (r *Repo) qt() string { return fmt.Sprintf(`"%s"."%s"`, r.tables.Schema, r.tables.Dispatch) }

// EnsureSchema creates the dispatch table and its lookup indices. Safe to
// call on every start.
func (r *Repo) EnsureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
		  order_id         BIGINT PRIMARY KEY,
		  dispatched_at    BIGINT NOT NULL,
		  order_date_added BIGINT NOT NULL,
		  ship_date        BIGINT,
		  customer_name    TEXT NOT NULL DEFAULT '',
		  customer_phone   TEXT NOT NULL DEFAULT '',
		  total_price      DOUBLE PRECISION NOT NULL DEFAULT 0,
		  outcome          TEXT NOT NULL DEFAULT 'success'
		)
	`, r.qt()))
	if err != nil {
		return err
	}
	if _, err := r.pool.Exec(ctx, fmt.Sprintf(
		`CREATE INDEX IF NOT EXISTS idx_%s_dispatched_at ON %s (dispatched_at)`,
		r.tables.Dispatch, r.qt())); err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, fmt.Sprintf(
		`CREATE INDEX IF NOT EXISTS idx_%s_order_date ON %s (order_date_added)`,
		r.tables.Dispatch, r.qt()))
	return err
}

func (r *Repo) Has(ctx context.Context, ids []int64) (map[int64]struct{}, error) {
	out := make(map[int64]struct{}, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := r.pool.Query(ctx, fmt.Sprintf(`
		SELECT order_id FROM %s WHERE order_id = ANY($1)
	`, r.qt()), ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out[id] = struct{}{}
	}
	return out, rows.Err()
}

func (r *Repo) Upsert(ctx context.Context, rec *domain.DispatchRecord) error {
	_, err := r.pool.Exec(ctx, fmt.Sprintf(`
		INSERT INTO %s (order_id, dispatched_at, order_date_added, ship_date,
		  customer_name, customer_phone, total_price, outcome)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		ON CONFLICT (order_id) DO UPDATE SET
		  dispatched_at=EXCLUDED.dispatched_at,
		  order_date_added=EXCLUDED.order_date_added,
		  ship_date=EXCLUDED.ship_date,
		  customer_name=EXCLUDED.customer_name,
		  customer_phone=EXCLUDED.customer_phone,
		  total_price=EXCLUDED.total_price,
		  outcome=EXCLUDED.outcome
	`, r.qt()),
		rec.OrderID, rec.DispatchedAt, rec.OrderDateAdded, rec.ShipDate,
		rec.CustomerName, rec.CustomerPhone, rec.TotalPrice, string(rec.Outcome),
	)
	return err
}

func (r *Repo) Stats(ctx context.Context, since int64) (domain.LedgerStats, error) {
	var st domain.LedgerStats
	err := r.pool.QueryRow(ctx, fmt.Sprintf(`
		SELECT
		  COUNT(*),
		  COUNT(*) FILTER (WHERE outcome = 'success'),
		  COUNT(*) FILTER (WHERE outcome = 'failed'),
		  COUNT(*) FILTER (WHERE dispatched_at >= $1)
		FROM %s
	`, r.qt()), since).Scan(&st.Total, &st.Success, &st.Failed, &st.Since)
	return st, err
}

func (r *Repo) History(ctx context.Context, limit, offset int) ([]domain.DispatchRecord, error) {
	rows, err := r.pool.Query(ctx, fmt.Sprintf(`
		SELECT order_id, dispatched_at, order_date_added, ship_date,
		       customer_name, customer_phone, total_price, outcome
		FROM %s
		ORDER BY dispatched_at DESC
		LIMIT $1 OFFSET $2
	`, r.qt()), limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []domain.DispatchRecord
	for rows.Next() {
		var rec domain.DispatchRecord
		var outcome string
		if err := rows.Scan(&rec.OrderID, &rec.DispatchedAt, &rec.OrderDateAdded, &rec.ShipDate,
			&rec.CustomerName, &rec.CustomerPhone, &rec.TotalPrice, &outcome); err != nil {
			return nil, err
		}
		rec.Outcome = domain.Outcome(outcome)
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}
