package consignor

import (
	"context"
	"database/sql"
	"errors"

	"github.com/brecholab/brecho-backend/internal/apperror"
)

type sqliteRepo struct{ db *sql.DB }

// NewSQLiteRepository returns a Repository backed by the shop database file.
func NewSQLiteRepository(db *sql.DB) Repository { return &sqliteRepo{db: db} }

const upsertSQL = `
	INSERT INTO consignors (id, name, whatsapp, email, pix_key, percent, notes, active)
	VALUES (?,?,?,?,?,?,?,?)
	ON CONFLICT(id) DO UPDATE SET
	  name=excluded.name, whatsapp=excluded.whatsapp, email=excluded.email,
	  pix_key=excluded.pix_key, percent=excluded.percent, notes=excluded.notes,
	  active=excluded.active`

func (r *sqliteRepo) Upsert(ctx context.Context, c *Consignor) error {
	_, err := r.db.ExecContext(ctx, upsertSQL,
		c.ID, c.Name, c.WhatsApp, c.Email, c.PixKey, c.Percent, c.Notes, c.Active)
	if err != nil {
		return apperror.Persistence("upsert consignor", err)
	}
	return nil
}

// CreateWithNextID reads the current maximum identifier and inserts the
// successor inside one transaction, so two callers can never allocate the
// same C####.
func (r *sqliteRepo) CreateWithNextID(ctx context.Context, c *Consignor) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return apperror.Persistence("create consignor", err)
	}
	defer tx.Rollback()

	var last string
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM consignors WHERE id LIKE 'C%' ORDER BY id DESC LIMIT 1`).Scan(&last)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return apperror.Persistence("next consignor id", err)
	}
	c.ID = nextID(last)

	_, err = tx.ExecContext(ctx, upsertSQL,
		c.ID, c.Name, c.WhatsApp, c.Email, c.PixKey, c.Percent, c.Notes, c.Active)
	if err != nil {
		return apperror.Persistence("create consignor", err)
	}
	if err := tx.Commit(); err != nil {
		return apperror.Persistence("create consignor", err)
	}
	return nil
}

func (r *sqliteRepo) GetByID(ctx context.Context, id string) (*Consignor, error) {
	c, err := scan(r.db.QueryRowContext(ctx, `
		SELECT id, name, whatsapp, email, pix_key, percent, notes, active
		FROM consignors WHERE id=?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("consignor", id)
	}
	if err != nil {
		return nil, apperror.Persistence("get consignor", err)
	}
	return c, nil
}

func (r *sqliteRepo) List(ctx context.Context, activeOnly bool) ([]*Consignor, error) {
	q := `SELECT id, name, whatsapp, email, pix_key, percent, notes, active
	      FROM consignors`
	if activeOnly {
		q += ` WHERE active=1`
	}
	q += ` ORDER BY id`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, apperror.Persistence("list consignors", err)
	}
	defer rows.Close()

	var out []*Consignor
	for rows.Next() {
		c, err := scan(rows)
		if err != nil {
			return nil, apperror.Persistence("list consignors", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *sqliteRepo) Deactivate(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE consignors SET active=0 WHERE id=?`, id)
	if err != nil {
		return apperror.Persistence("deactivate consignor", err)
	}
	return nil
}

func (r *sqliteRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM consignors WHERE id=?`, id)
	if err != nil {
		return apperror.Persistence("delete consignor", err)
	}
	return nil
}

func (r *sqliteRepo) MaxID(ctx context.Context) (string, error) {
	var last string
	err := r.db.QueryRowContext(ctx,
		`SELECT id FROM consignors WHERE id LIKE 'C%' ORDER BY id DESC LIMIT 1`).Scan(&last)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", apperror.Persistence("max consignor id", err)
	}
	return last, nil
}

type rowScanner interface{ Scan(dest ...interface{}) error }

func scan(row rowScanner) (*Consignor, error) {
	c := &Consignor{}
	var whatsapp, email, pixKey, notes sql.NullString
	var percent sql.NullFloat64
	err := row.Scan(&c.ID, &c.Name, &whatsapp, &email, &pixKey, &percent, &notes, &c.Active)
	if err != nil {
		return nil, err
	}
	c.WhatsApp = whatsapp.String
	c.Email = email.String
	c.PixKey = pixKey.String
	c.Notes = notes.String
	if percent.Valid {
		c.Percent = &percent.Float64
	}
	return c, nil
}
