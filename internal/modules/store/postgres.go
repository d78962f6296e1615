package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/georgemunganga/vendorhub/internal/db"
)

const storeColumns = `id, vendor_id, name, description, logo_url, banner_url, contact_email,
	phone, address, city, state, postal_code, country, latitude, longitude, created_at, updated_at`

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new PostgreSQL store repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CreateStore(ctx context.Context, s *Store) error {
	query := `
		INSERT INTO stores (` + storeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`
	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.VendorID, s.Name,
		db.NullString(s.Description), db.NullString(s.LogoURL), db.NullString(s.BannerURL),
		s.ContactEmail,
		db.NullString(s.Phone), db.NullString(s.Address), db.NullString(s.City),
		db.NullString(s.State), db.NullString(s.PostalCode), db.NullString(s.Country),
		s.Latitude, s.Longitude, s.CreatedAt, s.UpdatedAt)
	return db.MapError(err)
}

func (r *postgresRepository) GetStoreByID(ctx context.Context, id uuid.UUID) (*Store, error) {
	query := `SELECT ` + storeColumns + ` FROM stores WHERE id = $1`
	return scanStore(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresRepository) GetStoreByVendorID(ctx context.Context, vendorID uuid.UUID) (*Store, error) {
	query := `SELECT ` + storeColumns + ` FROM stores WHERE vendor_id = $1`
	return scanStore(r.db.QueryRowContext(ctx, query, vendorID))
}

func (r *postgresRepository) UpdateStore(ctx context.Context, s *Store) error {
	query := `
		UPDATE stores
		SET name = $2, description = $3, logo_url = $4, banner_url = $5, contact_email = $6,
			phone = $7, address = $8, city = $9, state = $10, postal_code = $11, country = $12,
			latitude = $13, longitude = $14, updated_at = $15
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query,
		s.ID, s.Name,
		db.NullString(s.Description), db.NullString(s.LogoURL), db.NullString(s.BannerURL),
		s.ContactEmail,
		db.NullString(s.Phone), db.NullString(s.Address), db.NullString(s.City),
		db.NullString(s.State), db.NullString(s.PostalCode), db.NullString(s.Country),
		s.Latitude, s.Longitude, s.UpdatedAt)
	if err != nil {
		return db.MapError(err)
	}
	return db.ExpectOneRow(res)
}

// scanStore reads one stores row. It is shared with joins that select storeColumns.
func scanStore(row interface{ Scan(...interface{}) error }) (*Store, error) {
	var (
		s                                         Store
		description, logo, banner, phone, address sql.NullString
		city, state, postalCode, country          sql.NullString
		latitude, longitude                       sql.NullFloat64
	)
	err := row.Scan(
		&s.ID, &s.VendorID, &s.Name, &description, &logo, &banner, &s.ContactEmail,
		&phone, &address, &city, &state, &postalCode, &country,
		&latitude, &longitude, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, db.MapError(err)
	}
	s.Description = description.String
	s.LogoURL = logo.String
	s.BannerURL = banner.String
	s.Phone = phone.String
	s.Address = address.String
	s.City = city.String
	s.State = state.String
	s.PostalCode = postalCode.String
	s.Country = country.String
	s.Latitude = db.FloatPtr(latitude)
	s.Longitude = db.FloatPtr(longitude)
	return &s, nil
}
