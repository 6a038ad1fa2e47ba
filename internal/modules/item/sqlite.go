package item

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

const itemColumns = `sku, consignor_id, acquisition_type, category, subcategory, brand,
	gender, size, fit, color, fabric, condition, flaws, bust, waist, length,
	cost, list_price, markdown_stage, acquired_at, listed_at, channel_listed,
	sold_at, sale_price, channel_sold, photos_url, notes, active`

const upsertSQL = `
	INSERT INTO items (` + itemColumns + `)
	VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)
	ON CONFLICT(sku) DO UPDATE SET
	  consignor_id=excluded.consignor_id, acquisition_type=excluded.acquisition_type,
	  category=excluded.category, subcategory=excluded.subcategory, brand=excluded.brand,
	  gender=excluded.gender, size=excluded.size, fit=excluded.fit, color=excluded.color,
	  fabric=excluded.fabric, condition=excluded.condition, flaws=excluded.flaws,
	  bust=excluded.bust, waist=excluded.waist, length=excluded.length,
	  cost=excluded.cost, list_price=excluded.list_price, markdown_stage=excluded.markdown_stage,
	  acquired_at=excluded.acquired_at, listed_at=excluded.listed_at,
	  channel_listed=excluded.channel_listed, sold_at=excluded.sold_at,
	  sale_price=excluded.sale_price, channel_sold=excluded.channel_sold,
	  photos_url=excluded.photos_url, notes=excluded.notes, active=excluded.active`

func args(i *Item) []interface{} {
	return []interface{}{
		i.SKU, i.ConsignorID, string(i.AcquisitionType), i.Category, i.Subcategory, i.Brand,
		i.Gender, i.Size, i.Fit, i.Color, i.Fabric, i.Condition, i.Flaws,
		i.Bust, i.Waist, i.Length, i.Cost, i.ListPrice, i.MarkdownStage,
		i.AcquiredAt, i.ListedAt, i.ChannelListed, i.SoldAt, i.SalePrice,
		i.ChannelSold, i.PhotosURL, i.Notes, i.Active,
	}
}

func (r *sqliteRepo) Upsert(ctx context.Context, i *Item) error {
	if _, err := r.db.ExecContext(ctx, upsertSQL, args(i)...); err != nil {
		return apperror.Persistence("upsert item", err)
	}
	return nil
}

func (r *sqliteRepo) CreateWithNextSKU(ctx context.Context, i *Item, monthToken string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return apperror.Persistence("create item", err)
	}
	defer tx.Rollback()

	var last string
	err = tx.QueryRowContext(ctx,
		`SELECT sku FROM items WHERE sku LIKE ? ORDER BY sku DESC LIMIT 1`,
		"BH-"+monthToken+"-%").Scan(&last)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return apperror.Persistence("next sku", err)
	}
	i.SKU = nextSKU(last, monthToken)

	if _, err := tx.ExecContext(ctx, upsertSQL, args(i)...); err != nil {
		return apperror.Persistence("create item", err)
	}
	if err := tx.Commit(); err != nil {
		return apperror.Persistence("create item", err)
	}
	return nil
}

func (r *sqliteRepo) GetBySKU(ctx context.Context, sku string) (*Item, error) {
	i, err := scan(r.db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE sku=?`, sku))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("item", sku)
	}
	if err != nil {
		return nil, apperror.Persistence("get item", err)
	}
	return i, nil
}

func (r *sqliteRepo) List(ctx context.Context, f Filter) ([]*Item, error) {
	q := `SELECT ` + itemColumns + ` FROM items WHERE 1=1`
	var params []interface{}
	if f.ActiveOnly || f.InStockOnly {
		q += ` AND active=1`
	}
	if f.InStockOnly {
		q += ` AND sold_at IS NULL`
	}
	if f.ConsignorID != "" {
		q += ` AND consignor_id=?`
		params = append(params, f.ConsignorID)
	}
	if f.Category != "" {
		q += ` AND category=?`
		params = append(params, f.Category)
	}
	q += ` ORDER BY listed_at DESC, sku DESC`

	rows, err := r.db.QueryContext(ctx, q, params...)
	if err != nil {
		return nil, apperror.Persistence("list items", err)
	}
	defer rows.Close()

	var out []*Item
	for rows.Next() {
		i, err := scan(rows)
		if err != nil {
			return nil, apperror.Persistence("list items", err)
		}
		out = append(out, i)
	}
	return out, rows.Err()
}

func (r *sqliteRepo) Delete(ctx context.Context, sku string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE sku=?`, sku); err != nil {
		return apperror.Persistence("delete item", err)
	}
	return nil
}

func (r *sqliteRepo) Reopen(ctx context.Context, sku string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE items SET sold_at=NULL, sale_price=NULL, channel_sold=NULL WHERE sku=?`, sku)
	if err != nil {
		return apperror.Persistence("reopen item", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return apperror.Persistence("reopen item", err)
	}
	if n == 0 {
		return apperror.NotFound("item", sku)
	}
	return nil
}

func (r *sqliteRepo) MaxSKU(ctx context.Context, monthToken string) (string, error) {
	var last string
	err := r.db.QueryRowContext(ctx,
		`SELECT sku FROM items WHERE sku LIKE ? ORDER BY sku DESC LIMIT 1`,
		"BH-"+monthToken+"-%").Scan(&last)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", apperror.Persistence("max sku", err)
	}
	return last, nil
}

type rowScanner interface{ Scan(dest ...interface{}) error }

func scan(row rowScanner) (*Item, error) {
	i := &Item{}
	var (
		consignorID, subcategory, brand, gender, size, fit    sql.NullString
		color, fabric, condition, flaws                       sql.NullString
		acquiredAt, listedAt, channelListed                   sql.NullString
		soldAt, channelSold, photosURL, notes, acquisition    sql.NullString
		bust, waist, length, salePrice                        sql.NullFloat64
	)
	err := row.Scan(&i.SKU, &consignorID, &acquisition, &i.Category, &subcategory, &brand,
		&gender, &size, &fit, &color, &fabric, &condition, &flaws,
		&bust, &waist, &length, &i.Cost, &i.ListPrice, &i.MarkdownStage,
		&acquiredAt, &listedAt, &channelListed, &soldAt, &salePrice,
		&channelSold, &photosURL, &notes, &i.Active)
	if err != nil {
		return nil, err
	}
	if consignorID.Valid && consignorID.String != "" {
		i.ConsignorID = &consignorID.String
	}
	i.AcquisitionType = AcquisitionType(acquisition.String)
	i.Subcategory = subcategory.String
	i.Brand = brand.String
	i.Gender = gender.String
	i.Size = size.String
	i.Fit = fit.String
	i.Color = color.String
	i.Fabric = fabric.String
	i.Condition = condition.String
	i.Flaws = flaws.String
	i.Bust = bust.Float64
	i.Waist = waist.Float64
	i.Length = length.Float64
	i.AcquiredAt = acquiredAt.String
	i.ListedAt = listedAt.String
	i.ChannelListed = channelListed.String
	if soldAt.Valid {
		i.SoldAt = &soldAt.String
	}
	if salePrice.Valid {
		i.SalePrice = &salePrice.Float64
	}
	i.ChannelSold = channelSold.String
	i.PhotosURL = photosURL.String
	i.Notes = notes.String
	i.CurrentPrice = CurrentPrice(i.ListPrice, i.MarkdownStage)
	return i, nil
}

// nextSKU returns the numeric successor of the highest SKU seen this month.
// An empty or unparsable last value restarts the monthly sequence at 0001.
func nextSKU(last, monthToken string) string {
	prefix := "BH-" + monthToken + "-"
	if len(last) == len(prefix)+4 && last[:len(prefix)] == prefix {
		var n int
		if _, err := fmt.Sscanf(last[len(prefix):], "%d", &n); err == nil {
			return fmt.Sprintf("BH-%s-%04d", monthToken, n+1)
		}
	}
	return fmt.Sprintf("BH-%s-0001", monthToken)
}
