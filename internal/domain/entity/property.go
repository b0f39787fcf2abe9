package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Property inmueble administrado (edificio, conjunto, local).
type Property struct {
	ID           int64
	TenantOrgID  int64
	PropertyCode string
	PropertyName string
	PropertyType string // Residential, Commercial, MixedUse
	AddressLine1 string
	AddressLine2 string
	City         string
	Region       string
	CountryCode  string
	PostalCode   string
	TotalUnits   int
	Status       string // Active, Inactive, UnderConstruction
	IsDeleted    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Unit unidad arrendable dentro de un inmueble.
type Unit struct {
	ID          int64
	TenantOrgID int64
	PropertyID  int64
	UnitCode    string
	UnitType    string // Apartment, Office, Retail, Parking
	FloorNumber int
	AreaSqm     decimal.Decimal
	Bedrooms    int
	Bathrooms   int
	MarketRent  decimal.Decimal
	RentCurrency string
	Status      string // Vacant, Occupied, Maintenance
	IsDeleted   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
