package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/georgemunganga/vendorhub/internal/apperr"
	"github.com/georgemunganga/vendorhub/internal/db"
)

const productColumns = `id, store_id, global_product_id, name, description, image_url, local_price, cost_price,
	stock_count, min_stock_level, approval_status, admin_notes, created_at, updated_at`

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new PostgreSQL vendor product repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CreateProduct(ctx context.Context, p *VendorProduct) error {
	query := `
		INSERT INTO vendor_products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.StoreID, nullUUID(p.GlobalProductID), p.Name,
		db.NullString(p.Description), db.NullString(p.ImageURL),
		p.LocalPrice, p.CostPrice, p.StockCount, p.MinStockLevel,
		p.ApprovalStatus, p.AdminNotes, p.CreatedAt, p.UpdatedAt)
	return db.MapError(err)
}

func (r *postgresRepository) GetProductByID(ctx context.Context, id uuid.UUID) (*VendorProduct, error) {
	query := `SELECT ` + productColumns + ` FROM vendor_products WHERE id = $1`
	return scanProduct(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresRepository) ListProductsByStore(ctx context.Context, storeID uuid.UUID) ([]*VendorProduct, error) {
	return r.list(ctx, `SELECT `+productColumns+`
		FROM vendor_products WHERE store_id = $1 ORDER BY created_at, id`, storeID)
}

func (r *postgresRepository) ListProductsByStatus(ctx context.Context, status ApprovalStatus) ([]*VendorProduct, error) {
	return r.list(ctx, `SELECT `+productColumns+`
		FROM vendor_products WHERE approval_status = $1 ORDER BY created_at, id`, status)
}

func (r *postgresRepository) ListLowStock(ctx context.Context, storeID uuid.UUID) ([]*VendorProduct, error) {
	return r.list(ctx, `SELECT `+productColumns+`
		FROM vendor_products
		WHERE store_id = $1 AND stock_count <= min_stock_level
		ORDER BY created_at, id`, storeID)
}

func (r *postgresRepository) list(ctx context.Context, query string, args ...interface{}) ([]*VendorProduct, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]*VendorProduct, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *postgresRepository) UpdateProduct(ctx context.Context, p *VendorProduct) error {
	query := `
		UPDATE vendor_products
		SET name = $2, description = $3, image_url = $4, local_price = $5, cost_price = $6,
			stock_count = $7, min_stock_level = $8, updated_at = $9
		WHERE id = $1
		RETURNING ` + productColumns
	updated, err := scanProduct(r.db.QueryRowContext(ctx, query,
		p.ID, p.Name, db.NullString(p.Description), db.NullString(p.ImageURL),
		p.LocalPrice, p.CostPrice, p.StockCount, p.MinStockLevel, p.UpdatedAt))
	if err != nil {
		return err
	}
	*p = *updated
	return nil
}

func (r *postgresRepository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM vendor_products WHERE id = $1`, id)
	if err != nil {
		return db.MapError(err)
	}
	return db.ExpectOneRow(res)
}

func (r *postgresRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to ApprovalStatus, notes *string, at time.Time) (*VendorProduct, error) {
	query := `
		UPDATE vendor_products
		SET approval_status = $3, admin_notes = $4, updated_at = $5
		WHERE id = $1 AND approval_status = $2
		RETURNING ` + productColumns
	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id, from, to, notes, at))
	if !errors.Is(err, apperr.ErrNotFound) {
		return p, err
	}

	current, err := r.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("%w: product is %s", apperr.ErrInvalidTransition, current.ApprovalStatus)
}

func scanProduct(row interface{ Scan(...interface{}) error }) (*VendorProduct, error) {
	var (
		p                     VendorProduct
		globalID              uuid.NullUUID
		description, imageURL sql.NullString
		costPrice             sql.NullFloat64
		adminNotes            sql.NullString
	)
	err := row.Scan(
		&p.ID, &p.StoreID, &globalID, &p.Name, &description, &imageURL,
		&p.LocalPrice, &costPrice, &p.StockCount, &p.MinStockLevel,
		&p.ApprovalStatus, &adminNotes, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, db.MapError(err)
	}
	if globalID.Valid {
		id := globalID.UUID
		p.GlobalProductID = &id
	}
	p.Description = description.String
	p.ImageURL = imageURL.String
	p.CostPrice = db.FloatPtr(costPrice)
	p.AdminNotes = db.StringPtr(adminNotes)
	return &p, nil
}

func nullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}
