package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePropertyRequest alta de inmueble.
type CreatePropertyRequest struct {
	PropertyCode string `json:"property_code" validate:"required,max=30"`
	PropertyName string `json:"property_name" validate:"required,max=200"`
	PropertyType string `json:"property_type" validate:"omitempty,oneof=Residential Commercial MixedUse"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city"`
	Region       string `json:"region"`
	CountryCode  string `json:"country_code" validate:"omitempty,len=2"`
	PostalCode   string `json:"postal_code"`
}

// PropertyUpdateRequest actualización parcial con lista blanca de campos.
type PropertyUpdateRequest struct {
	PropertyName *string `json:"property_name" validate:"omitempty,max=200"`
	PropertyType *string `json:"property_type" validate:"omitempty,oneof=Residential Commercial MixedUse"`
	AddressLine1 *string `json:"address_line1"`
	AddressLine2 *string `json:"address_line2"`
	City         *string `json:"city"`
	Region       *string `json:"region"`
	CountryCode  *string `json:"country_code" validate:"omitempty,len=2"`
	PostalCode   *string `json:"postal_code"`
	Status       *string `json:"status" validate:"omitempty,oneof=Active Inactive UnderConstruction"`
}

// PropertyResponse representación de un inmueble.
type PropertyResponse struct {
	ID           int64     `json:"id"`
	PropertyCode string    `json:"property_code"`
	PropertyName string    `json:"property_name"`
	PropertyType string    `json:"property_type"`
	AddressLine1 string    `json:"address_line1,omitempty"`
	AddressLine2 string    `json:"address_line2,omitempty"`
	City         string    `json:"city,omitempty"`
	Region       string    `json:"region,omitempty"`
	CountryCode  string    `json:"country_code,omitempty"`
	PostalCode   string    `json:"postal_code,omitempty"`
	TotalUnits   int       `json:"total_units"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PropertyListResponse listado paginado de inmuebles.
type PropertyListResponse struct {
	Items []PropertyResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// CreateUnitRequest alta de unidad arrendable.
type CreateUnitRequest struct {
	PropertyID   int64           `json:"property_id" validate:"required,gt=0"`
	UnitCode     string          `json:"unit_code" validate:"required,max=30"`
	UnitType     string          `json:"unit_type" validate:"omitempty,oneof=Apartment Office Retail Parking"`
	FloorNumber  int             `json:"floor_number"`
	AreaSqm      decimal.Decimal `json:"area_sqm"`
	Bedrooms     int             `json:"bedrooms"`
	Bathrooms    int             `json:"bathrooms"`
	MarketRent   decimal.Decimal `json:"market_rent"`
	RentCurrency string          `json:"rent_currency" validate:"omitempty,len=3"`
}

// UnitUpdateRequest actualización parcial de unidad.
type UnitUpdateRequest struct {
	UnitType     *string          `json:"unit_type" validate:"omitempty,oneof=Apartment Office Retail Parking"`
	FloorNumber  *int             `json:"floor_number"`
	AreaSqm      *decimal.Decimal `json:"area_sqm"`
	Bedrooms     *int             `json:"bedrooms"`
	Bathrooms    *int             `json:"bathrooms"`
	MarketRent   *decimal.Decimal `json:"market_rent"`
	RentCurrency *string          `json:"rent_currency" validate:"omitempty,len=3"`
	Status       *string          `json:"status" validate:"omitempty,oneof=Vacant Occupied Maintenance"`
}

// UnitResponse representación de una unidad.
type UnitResponse struct {
	ID           int64           `json:"id"`
	PropertyID   int64           `json:"property_id"`
	UnitCode     string          `json:"unit_code"`
	UnitType     string          `json:"unit_type"`
	FloorNumber  int             `json:"floor_number"`
	AreaSqm      decimal.Decimal `json:"area_sqm"`
	Bedrooms     int             `json:"bedrooms"`
	Bathrooms    int             `json:"bathrooms"`
	MarketRent   decimal.Decimal `json:"market_rent"`
	RentCurrency string          `json:"rent_currency"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
}

// UnitListResponse listado paginado de unidades.
type UnitListResponse struct {
	Items []UnitResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
