package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de un contrato de arriendo.
const (
	LeaseStatusDraft      = "Draft"
	LeaseStatusActive     = "Active"
	LeaseStatusExpired    = "Expired"
	LeaseStatusTerminated = "Terminated"
)

// Lease contrato de arriendo entre la organización y un inquilino sobre una unidad.
type Lease struct {
	ID              int64
	TenantOrgID     int64
	LeaseNumber     string
	PropertyID      int64
	UnitID          int64
	RenterID        int64
	StartDate       time.Time
	EndDate         time.Time
	RentAmount      decimal.Decimal
	RentCurrency    string
	DepositAmount   decimal.Decimal
	BillingDay      int    // día del mes en que se factura la renta
	PaymentTermDays int    // plazo de pago de cada factura
	Status          string // Draft, Active, Expired, Terminated
	Notes           string
	IsDeleted       bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
