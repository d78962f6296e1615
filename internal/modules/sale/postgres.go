package sale

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/georgemunganga/vendorhub/internal/db"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL sale repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

// CreateSale inserts the sale and all its items inside a single transaction.
func (r *postgresRepo) CreateSale(ctx context.Context, s *Sale) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO sales (id, store_id, total_amount, items_count, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		s.ID, s.StoreID, s.TotalAmount, s.ItemsCount, s.Status, s.CreatedAt)
	if err != nil {
		return db.MapError(err)
	}

	for i, it := range s.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO sale_items (id, sale_id, line_no, vendor_product_id, quantity, unit_price, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			it.ID, it.SaleID, i, it.VendorProductID, it.Quantity, it.UnitPrice, it.Subtotal)
		if err != nil {
			return db.MapError(err)
		}
	}

	return tx.Commit()
}

func (r *postgresRepo) GetSaleByID(ctx context.Context, id uuid.UUID) (*Sale, error) {
	s := &Sale{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, store_id, total_amount, items_count, status, created_at
		FROM sales WHERE id = $1`, id).
		Scan(&s.ID, &s.StoreID, &s.TotalAmount, &s.ItemsCount, &s.Status, &s.CreatedAt)
	if err != nil {
		return nil, db.MapError(err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, sale_id, vendor_product_id, quantity, unit_price, subtotal
		FROM sale_items WHERE sale_id = $1 ORDER BY line_no`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		it := &SaleItem{}
		if err := rows.Scan(&it.ID, &it.SaleID, &it.VendorProductID, &it.Quantity, &it.UnitPrice, &it.Subtotal); err != nil {
			return nil, err
		}
		s.Items = append(s.Items, it)
	}
	return s, rows.Err()
}

func (r *postgresRepo) ListSalesSince(ctx context.Context, storeID uuid.UUID, since time.Time) ([]*Sale, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, store_id, total_amount, items_count, status, created_at
		FROM sales
		WHERE store_id = $1 AND created_at >= $2
		ORDER BY created_at`, storeID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sales := make([]*Sale, 0)
	for rows.Next() {
		s := &Sale{}
		if err := rows.Scan(&s.ID, &s.StoreID, &s.TotalAmount, &s.ItemsCount, &s.Status, &s.CreatedAt); err != nil {
			return nil, err
		}
		sales = append(sales, s)
	}
	return sales, rows.Err()
}
