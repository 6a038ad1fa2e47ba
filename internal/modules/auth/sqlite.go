package auth

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

func (r *sqliteRepo) Create(ctx context.Context, o *Operator) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO operators (id, name, email, password_hash, created_at)
		VALUES (?,?,?,?,?)`,
		o.ID.String(), o.Name, o.Email, o.PasswordHash, o.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return apperror.Persistence("create operator", err)
	}
	return nil
}

func (r *sqliteRepo) GetByEmail(ctx context.Context, email string) (*Operator, error) {
	o := &Operator{}
	var id, createdAt string
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, email, password_hash, created_at
		FROM operators WHERE email=?`, email).
		Scan(&id, &o.Name, &o.Email, &o.PasswordHash, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("operator", email)
	}
	if err != nil {
		return nil, apperror.Persistence("get operator", err)
	}
	if o.ID, err = uuid.Parse(id); err != nil {
		return nil, apperror.Persistence("get operator", err)
	}
	if o.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, apperror.Persistence("get operator", err)
	}
	return o, nil
}

func (r *sqliteRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM operators`).Scan(&n); err != nil {
		return 0, apperror.Persistence("count operators", err)
	}
	return n, nil
}
