package report

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"github.com/brecholab/brecho-backend/internal/apperror"
	"github.com/brecholab/brecho-backend/internal/modules/item"
	"github.com/shopspring/decimal"
)

type sqliteRepo struct{ db *sql.DB }

// NewSQLiteRepository returns a Repository backed by the shop database file.
func NewSQLiteRepository(db *sql.DB) Repository { return &sqliteRepo{db: db} }

// StockSummary values the rack at staged prices. Pricing goes through
// item.CurrentPrice rather than being recomputed in SQL.
func (r *sqliteRepo) StockSummary(ctx context.Context) (*StockSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT list_price, markdown_stage, category
		FROM items
		WHERE active=1 AND sold_at IS NULL`)
	if err != nil {
		return nil, apperror.Persistence("stock summary", err)
	}
	defer rows.Close()

	s := &StockSummary{ByStage: map[int]int{}, ByCategory: map[string]int{}}
	value := decimal.Zero
	for rows.Next() {
		var listPrice float64
		var stage int
		var category string
		if err := rows.Scan(&listPrice, &stage, &category); err != nil {
			return nil, apperror.Persistence("stock summary", err)
		}
		s.InStock++
		s.ByStage[stage]++
		s.ByCategory[category]++
		value = value.Add(decimal.NewFromFloat(item.CurrentPrice(listPrice, stage)))
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Persistence("stock summary", err)
	}
	s.InventoryValue, _ = value.Round(2).Float64()
	return s, nil
}

func (r *sqliteRepo) SalesSummary(ctx context.Context, start, end string) (*SalesSummary, error) {
	var s SalesSummary
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(sale_price), 0),
		       COALESCE(SUM(discount_value), 0)
		FROM sales
		WHERE date >= ? AND date <= ?`, start, end).
		Scan(&s.Count, &s.Gross, &s.TotalDiscount)
	if err != nil {
		return nil, apperror.Persistence("sales summary", err)
	}
	net := decimal.NewFromFloat(s.Gross).Sub(decimal.NewFromFloat(s.TotalDiscount)).Round(2)
	s.Net, _ = net.Float64()
	return &s, nil
}

func (r *sqliteRepo) SellThrough(ctx context.Context, start, end string) (*SellThrough, error) {
	var s SellThrough
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COUNT(CASE WHEN sold_at IS NOT NULL THEN 1 END)
		FROM items
		WHERE listed_at >= ? AND listed_at <= ?`, start, end).
		Scan(&s.Listed, &s.Sold)
	if err != nil {
		return nil, apperror.Persistence("sell-through", err)
	}
	if s.Listed > 0 {
		rate := decimal.NewFromInt(int64(s.Sold)).
			Div(decimal.NewFromInt(int64(s.Listed))).Round(4)
		s.Rate, _ = rate.Float64()
	}
	return &s, nil
}

func (r *sqliteRepo) SlowMovers(ctx context.Context, asOf time.Time, minDays, limit int) ([]SlowMover, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT sku, category, COALESCE(brand, ''), COALESCE(size, ''),
		       list_price, markdown_stage, COALESCE(listed_at, '')
		FROM items
		WHERE active=1 AND sold_at IS NULL`)
	if err != nil {
		return nil, apperror.Persistence("slow movers", err)
	}
	defer rows.Close()

	asOfDay := asOf.Truncate(24 * time.Hour)
	var out []SlowMover
	for rows.Next() {
		var m SlowMover
		var listedAt string
		if err := rows.Scan(&m.SKU, &m.Category, &m.Brand, &m.Size,
			&m.ListPrice, &m.MarkdownStage, &listedAt); err != nil {
			return nil, apperror.Persistence("slow movers", err)
		}
		listed, err := time.Parse(item.DateLayout, listedAt)
		if err != nil {
			continue
		}
		m.DaysListed = int(asOfDay.Sub(listed.Truncate(24 * time.Hour)).Hours() / 24)
		if m.DaysListed > minDays {
			out = append(out, m)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Persistence("slow movers", err)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DaysListed > out[j].DaysListed })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
