package sale

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/brecholab/brecho-backend/internal/apperror"
)

type sqliteRepo struct{ db *sql.DB }

// NewSQLiteRepository returns a Repository backed by the shop database file.
func NewSQLiteRepository(db *sql.DB) Repository { return &sqliteRepo{db: db} }

// Record is the one place in the engine that needs real atomicity: the sale
// row and the item's sold state must commit together or not at all.
func (r *sqliteRepo) Record(ctx context.Context, s *Sale, monthToken string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return apperror.Persistence("record sale", err)
	}
	defer tx.Rollback()

	var consignorID sql.NullString
	err = tx.QueryRowContext(ctx,
		`SELECT consignor_id FROM items WHERE sku=?`, s.SKU).Scan(&consignorID)
	if errors.Is(err, sql.ErrNoRows) {
		return apperror.NotFound("item", s.SKU)
	}
	if err != nil {
		return apperror.Persistence("record sale", err)
	}
	if consignorID.Valid && consignorID.String != "" {
		s.ConsignorID = &consignorID.String
	} else {
		s.ConsignorID = nil
	}

	if s.ID == "" {
		var last string
		err = tx.QueryRowContext(ctx,
			`SELECT id FROM sales WHERE id LIKE ? ORDER BY id DESC LIMIT 1`,
			"V"+monthToken+"%").Scan(&last)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return apperror.Persistence("next sale id", err)
		}
		s.ID = nextID(last, monthToken)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO sales
		  (id, date, sku, sale_price, discount_value, channel,
		   customer_name, customer_whatsapp, payment_method, notes, consignor_id)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)
		ON CONFLICT(id) DO UPDATE SET
		  date=excluded.date, sku=excluded.sku, sale_price=excluded.sale_price,
		  discount_value=excluded.discount_value, channel=excluded.channel,
		  customer_name=excluded.customer_name, customer_whatsapp=excluded.customer_whatsapp,
		  payment_method=excluded.payment_method, notes=excluded.notes,
		  consignor_id=excluded.consignor_id`,
		s.ID, s.Date, s.SKU, s.SalePrice, s.DiscountValue, s.Channel,
		s.CustomerName, s.CustomerWhatsApp, s.PaymentMethod, s.Notes, s.ConsignorID)
	if err != nil {
		return apperror.Persistence("record sale", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE items SET sold_at=?, sale_price=?, channel_sold=? WHERE sku=?`,
		s.Date, s.SalePrice, s.Channel, s.SKU)
	if err != nil {
		return apperror.Persistence("record sale", err)
	}

	if err := tx.Commit(); err != nil {
		return apperror.Persistence("record sale", err)
	}
	return nil
}

const saleColumns = `id, date, sku, sale_price, discount_value, channel,
	customer_name, customer_whatsapp, payment_method, notes, consignor_id`

func (r *sqliteRepo) GetByID(ctx context.Context, id string) (*Sale, error) {
	s, err := scan(r.db.QueryRowContext(ctx,
		`SELECT `+saleColumns+` FROM sales WHERE id=?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("sale", id)
	}
	if err != nil {
		return nil, apperror.Persistence("get sale", err)
	}
	return s, nil
}

func (r *sqliteRepo) List(ctx context.Context, f Filter) ([]*Sale, error) {
	q := `SELECT ` + saleColumns + ` FROM sales WHERE 1=1`
	var params []interface{}
	if f.From != "" {
		q += ` AND date >= ?`
		params = append(params, f.From)
	}
	if f.To != "" {
		q += ` AND date <= ?`
		params = append(params, f.To)
	}
	if f.ConsignorID != "" {
		q += ` AND consignor_id = ?`
		params = append(params, f.ConsignorID)
	}
	if f.SKU != "" {
		q += ` AND sku = ?`
		params = append(params, f.SKU)
	}
	q += ` ORDER BY date DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, q, params...)
	if err != nil {
		return nil, apperror.Persistence("list sales", err)
	}
	defer rows.Close()

	var out []*Sale
	for rows.Next() {
		s, err := scan(rows)
		if err != nil {
			return nil, apperror.Persistence("list sales", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *sqliteRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sales WHERE id=?`, id); err != nil {
		return apperror.Persistence("delete sale", err)
	}
	return nil
}

func (r *sqliteRepo) MaxID(ctx context.Context, monthToken string) (string, error) {
	var last string
	err := r.db.QueryRowContext(ctx,
		`SELECT id FROM sales WHERE id LIKE ? ORDER BY id DESC LIMIT 1`,
		"V"+monthToken+"%").Scan(&last)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", apperror.Persistence("max sale id", err)
	}
	return last, nil
}

type rowScanner interface{ Scan(dest ...interface{}) error }

func scan(row rowScanner) (*Sale, error) {
	s := &Sale{}
	var channel, customerName, customerWhatsApp, paymentMethod, notes, consignorID sql.NullString
	err := row.Scan(&s.ID, &s.Date, &s.SKU, &s.SalePrice, &s.DiscountValue,
		&channel, &customerName, &customerWhatsApp, &paymentMethod, &notes, &consignorID)
	if err != nil {
		return nil, err
	}
	s.Channel = channel.String
	s.CustomerName = customerName.String
	s.CustomerWhatsApp = customerWhatsApp.String
	s.PaymentMethod = paymentMethod.String
	s.Notes = notes.String
	if consignorID.Valid && consignorID.String != "" {
		s.ConsignorID = &consignorID.String
	}
	s.NetValue = Net(s.SalePrice, s.DiscountValue)
	return s, nil
}

// nextID returns the numeric successor of the highest sale id seen this
// month, V{YYMM}001 when none or unparsable.
func nextID(last, monthToken string) string {
	prefix := "V" + monthToken
	if len(last) == len(prefix)+3 && last[:len(prefix)] == prefix {
		var n int
		if _, err := fmt.Sscanf(last[len(prefix):], "%d", &n); err == nil {
			return fmt.Sprintf("V%s%03d", monthToken, n+1)
		}
	}
	return fmt.Sprintf("V%s001", monthToken)
}
