package catalog

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/georgemunganga/vendorhub/internal/db"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, p *GlobalProduct) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO global_products
		  (id, name, category_id, description, image_url, sku, barcode, is_verified, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		p.ID, p.Name, p.CategoryID, db.NullString(p.Description), db.NullString(p.ImageURL),
		db.NullString(p.SKU), db.NullString(p.Barcode), p.IsVerified, p.CreatedAt, p.UpdatedAt)
	return db.MapError(err)
}

func scanProduct(scan func(...interface{}) error) (*GlobalProduct, error) {
	p := &GlobalProduct{}
	var description, imageURL, sku, barcode sql.NullString
	err := scan(&p.ID, &p.Name, &p.CategoryID, &description, &imageURL, &sku, &barcode,
		&p.IsVerified, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, db.MapError(err)
	}
	p.Description = description.String
	p.ImageURL = imageURL.String
	p.SKU = sku.String
	p.Barcode = barcode.String
	return p, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id uuid.UUID) (*GlobalProduct, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id,name,category_id,description,image_url,sku,barcode,is_verified,created_at,updated_at
		FROM global_products WHERE id=$1`, id)
	return scanProduct(row.Scan)
}

func (r *postgresRepo) Search(ctx context.Context, query string) ([]*GlobalProduct, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id,name,category_id,description,image_url,sku,barcode,is_verified,created_at,updated_at
		FROM global_products
		WHERE $1 = ''
		   OR name ILIKE $2 ESCAPE '\'
		   OR description ILIKE $2 ESCAPE '\'
		   OR sku ILIKE $2 ESCAPE '\'
		   OR barcode ILIKE $2 ESCAPE '\'
		ORDER BY created_at, id`, query, "%"+escapeLike(query)+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]*GlobalProduct, 0)
	for rows.Next() {
		p, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }
