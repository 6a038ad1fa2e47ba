package automation

import (
	"context"
	"database/sql"

	"github.com/brecholab/brecho-backend/internal/apperror"
)

type sqliteRepo struct{ db *sql.DB }

// NewSQLiteRepository returns a Repository backed by the shop database file.
func NewSQLiteRepository(db *sql.DB) Repository { return &sqliteRepo{db: db} }

func (r *sqliteRepo) ListUnsold(ctx context.Context) ([]Candidate, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT sku, markdown_stage, COALESCE(listed_at, '')
		FROM items
		WHERE active=1 AND sold_at IS NULL`)
	if err != nil {
		return nil, apperror.Persistence("list unsold items", err)
	}
	defer rows.Close()

	var out []Candidate
	for rows.Next() {
		var c Candidate
		if err := rows.Scan(&c.SKU, &c.MarkdownStage, &c.ListedAt); err != nil {
			return nil, apperror.Persistence("list unsold items", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *sqliteRepo) ApplyStages(ctx context.Context, changes []StageChange) error {
	if len(changes) == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return apperror.Persistence("apply markdown stages", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`UPDATE items SET markdown_stage=? WHERE sku=? AND markdown_stage < ?`)
	if err != nil {
		return apperror.Persistence("apply markdown stages", err)
	}
	defer stmt.Close()

	for _, ch := range changes {
		// the stage guard keeps the stage monotonically non-decreasing even
		// if the item moved between plan and apply
		if _, err := stmt.ExecContext(ctx, ch.ToStage, ch.SKU, ch.ToStage); err != nil {
			return apperror.Persistence("apply markdown stages", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return apperror.Persistence("apply markdown stages", err)
	}
	return nil
}
