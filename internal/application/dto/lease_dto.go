package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateLeaseRequest alta de contrato de arriendo. Fechas en formato YYYY-MM-DD.
type CreateLeaseRequest struct {
	LeaseNumber     string          `json:"lease_number"`
	PropertyID      int64           `json:"property_id" validate:"required,gt=0"`
	UnitID          int64           `json:"unit_id" validate:"required,gt=0"`
	RenterID        int64           `json:"tenant_id" validate:"required,gt=0"`
	StartDate       string          `json:"start_date" validate:"required"`
	EndDate         string          `json:"end_date" validate:"required"`
	RentAmount      decimal.Decimal `json:"rent_amount" validate:"required"`
	RentCurrency    string          `json:"rent_currency" validate:"omitempty,len=3"`
	DepositAmount   decimal.Decimal `json:"deposit_amount"`
	BillingDay      int             `json:"billing_day" validate:"omitempty,min=1,max=28"`
	PaymentTermDays int             `json:"payment_term_days" validate:"omitempty,min=0,max=90"`
	Notes           string          `json:"notes"`
}

// LeaseUpdateRequest actualización parcial de contrato.
type LeaseUpdateRequest struct {
	EndDate         *string          `json:"end_date"`
	RentAmount      *decimal.Decimal `json:"rent_amount"`
	DepositAmount   *decimal.Decimal `json:"deposit_amount"`
	BillingDay      *int             `json:"billing_day" validate:"omitempty,min=1,max=28"`
	PaymentTermDays *int             `json:"payment_term_days" validate:"omitempty,min=0,max=90"`
	Status          *string          `json:"status" validate:"omitempty,oneof=Draft Active Expired Terminated"`
	Notes           *string          `json:"notes"`
}

// LeaseResponse representación de un contrato.
type LeaseResponse struct {
	ID              int64           `json:"id"`
	LeaseNumber     string          `json:"lease_number"`
	PropertyID      int64           `json:"property_id"`
	UnitID          int64           `json:"unit_id"`
	RenterID        int64           `json:"tenant_id"`
	StartDate       string          `json:"start_date"`
	EndDate         string          `json:"end_date"`
	RentAmount      decimal.Decimal `json:"rent_amount"`
	RentCurrency    string          `json:"rent_currency"`
	DepositAmount   decimal.Decimal `json:"deposit_amount"`
	BillingDay      int             `json:"billing_day"`
	PaymentTermDays int             `json:"payment_term_days"`
	Status          string          `json:"status"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// LeaseListResponse listado paginado de contratos.
type LeaseListResponse struct {
	Items []LeaseResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
