package payout

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/brecholab/brecho-backend/internal/apperror"
	"github.com/google/uuid"
)

type sqliteRepo struct{ db *sql.DB }

// NewSQLiteRepository returns a Repository backed by the shop database file.
func NewSQLiteRepository(db *sql.DB) Repository { return &sqliteRepo{db: db} }

func (r *sqliteRepo) AggregateNet(ctx context.Context, start, end string) ([]Aggregate, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT s.consignor_id, COALESCE(c.name, ''), COALESCE(c.pix_key, ''), c.percent,
		       SUM(COALESCE(s.sale_price, 0) - COALESCE(s.discount_value, 0)) AS total_net,
		       COUNT(*) AS qty
		FROM sales s
		LEFT JOIN consignors c ON c.id = s.consignor_id
		WHERE s.date >= ? AND s.date <= ? AND s.consignor_id IS NOT NULL
		GROUP BY s.consignor_id, c.name, c.pix_key, c.percent
		ORDER BY total_net DESC`, start, end)
	if err != nil {
		return nil, apperror.Persistence("aggregate payouts", err)
	}
	defer rows.Close()

	var out []Aggregate
	for rows.Next() {
		var a Aggregate
		var percent sql.NullFloat64
		if err := rows.Scan(&a.ConsignorID, &a.Name, &a.PixKey, &percent, &a.TotalNet, &a.Qty); err != nil {
			return nil, apperror.Persistence("aggregate payouts", err)
		}
		if percent.Valid {
			a.Percent = &percent.Float64
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *sqliteRepo) CreateSettlement(ctx context.Context, s *Settlement) error {
	var paidAt *string
	if s.PaidAt != nil {
		v := s.PaidAt.Format(time.RFC3339)
		paidAt = &v
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO settlements
		  (id, consignor_id, period_start, period_end, qty, total_net,
		   percent, consignor_value, shop_value, paid_at, created_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		s.ID.String(), s.ConsignorID, s.PeriodStart, s.PeriodEnd, s.Qty, s.TotalNet,
		s.Percent, s.ConsignorValue, s.ShopValue, paidAt, s.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return apperror.Persistence("create settlement", err)
	}
	return nil
}

func (r *sqliteRepo) GetSettlement(ctx context.Context, id string) (*Settlement, error) {
	s, err := scanSettlement(r.db.QueryRowContext(ctx, `
		SELECT id, consignor_id, period_start, period_end, qty, total_net,
		       percent, consignor_value, shop_value, paid_at, created_at
		FROM settlements WHERE id=?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("settlement", id)
	}
	if err != nil {
		return nil, apperror.Persistence("get settlement", err)
	}
	return s, nil
}

func (r *sqliteRepo) ListSettlements(ctx context.Context, consignorID string) ([]*Settlement, error) {
	q := `SELECT id, consignor_id, period_start, period_end, qty, total_net,
	             percent, consignor_value, shop_value, paid_at, created_at
	      FROM settlements`
	var params []interface{}
	if consignorID != "" {
		q += ` WHERE consignor_id=?`
		params = append(params, consignorID)
	}
	q += ` ORDER BY period_end DESC, consignor_id`

	rows, err := r.db.QueryContext(ctx, q, params...)
	if err != nil {
		return nil, apperror.Persistence("list settlements", err)
	}
	defer rows.Close()

	var out []*Settlement
	for rows.Next() {
		s, err := scanSettlement(rows)
		if err != nil {
			return nil, apperror.Persistence("list settlements", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *sqliteRepo) MarkPaid(ctx context.Context, id string, paidAt string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE settlements SET paid_at=? WHERE id=?`, paidAt, id)
	if err != nil {
		return apperror.Persistence("mark settlement paid", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return apperror.Persistence("mark settlement paid", err)
	}
	if n == 0 {
		return apperror.NotFound("settlement", id)
	}
	return nil
}

type rowScanner interface{ Scan(dest ...interface{}) error }

func scanSettlement(row rowScanner) (*Settlement, error) {
	s := &Settlement{}
	var id, createdAt string
	var paidAt sql.NullString
	err := row.Scan(&id, &s.ConsignorID, &s.PeriodStart, &s.PeriodEnd, &s.Qty,
		&s.TotalNet, &s.Percent, &s.ConsignorValue, &s.ShopValue, &paidAt, &createdAt)
	if err != nil {
		return nil, err
	}
	s.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	if s.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, err
	}
	if paidAt.Valid {
		t, err := time.Parse(time.RFC3339, paidAt.String)
		if err != nil {
			return nil, err
		}
		s.PaidAt = &t
	}
	return s, nil
}
