package store

import (
	"time"

	"github.com/google/uuid"

	"github.com/georgemunganga/vendorhub/internal/validation"
)

// Store is a vendor's storefront. A vendor owns at most one store.
type Store struct {
	ID           uuid.UUID `json:"id"`
	VendorID     uuid.UUID `json:"vendor_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	LogoURL      string    `json:"logo_url"`
	BannerURL    string    `json:"banner_url"`
	ContactEmail string    `json:"contact_email"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	PostalCode   string    `json:"postal_code"`
	Country      string    `json:"country"`
	Latitude     *float64  `json:"latitude"`
	Longitude    *float64  `json:"longitude"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateStoreRequest is the input for CreateStore.
type CreateStoreRequest struct {
	Name         string   `json:"name" validate:"required,max=200"`
	Description  string   `json:"description" validate:"max=2000"`
	LogoURL      string   `json:"logo_url" validate:"omitempty,url"`
	BannerURL    string   `json:"banner_url" validate:"omitempty,url"`
	ContactEmail string   `json:"contact_email" validate:"required,email"`
	Phone        string   `json:"phone" validate:"max=40"`
	Address      string   `json:"address" validate:"max=300"`
	City         string   `json:"city" validate:"max=100"`
	State        string   `json:"state" validate:"max=100"`
	PostalCode   string   `json:"postal_code" validate:"max=20"`
	Country      string   `json:"country" validate:"max=100"`
	Latitude     *float64 `json:"latitude" validate:"omitnil,gte=-90,lte=90"`
	Longitude    *float64 `json:"longitude" validate:"omitnil,gte=-180,lte=180"`
}

// UpdateStoreRequest lists the mutable store fields. Nil fields are left as they are.
type UpdateStoreRequest struct {
	Name         *string  `json:"name" validate:"omitnil,min=1,max=200"`
	Description  *string  `json:"description" validate:"omitnil,max=2000"`
	LogoURL      *string  `json:"logo_url" validate:"omitnil,url"`
	BannerURL    *string  `json:"banner_url" validate:"omitnil,url"`
	ContactEmail *string  `json:"contact_email" validate:"omitnil,email"`
	Phone        *string  `json:"phone" validate:"omitnil,max=40"`
	Address      *string  `json:"address" validate:"omitnil,max=300"`
	City         *string  `json:"city" validate:"omitnil,max=100"`
	State        *string  `json:"state" validate:"omitnil,max=100"`
	PostalCode   *string  `json:"postal_code" validate:"omitnil,max=20"`
	Country      *string  `json:"country" validate:"omitnil,max=100"`
	Latitude     *float64 `json:"latitude" validate:"omitnil,gte=-90,lte=90"`
	Longitude    *float64 `json:"longitude" validate:"omitnil,gte=-180,lte=180"`
}

// validate checks the request. An empty URL clears the image and is not validated.
func (req UpdateStoreRequest) validate() error {
	if req.LogoURL != nil && *req.LogoURL == "" {
		req.LogoURL = nil
	}
	if req.BannerURL != nil && *req.BannerURL == "" {
		req.BannerURL = nil
	}
	return validation.Struct(req)
}

func (req UpdateStoreRequest) apply(s *Store) {
	setString(&s.Name, req.Name)
	setString(&s.Description, req.Description)
	setString(&s.LogoURL, req.LogoURL)
	setString(&s.BannerURL, req.BannerURL)
	setString(&s.ContactEmail, req.ContactEmail)
	setString(&s.Phone, req.Phone)
	setString(&s.Address, req.Address)
	setString(&s.City, req.City)
	setString(&s.State, req.State)
	setString(&s.PostalCode, req.PostalCode)
	setString(&s.Country, req.Country)
	if req.Latitude != nil {
		v := *req.Latitude
		s.Latitude = &v
	}
	if req.Longitude != nil {
		v := *req.Longitude
		s.Longitude = &v
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
