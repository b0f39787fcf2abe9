package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInvoiceLineRequest línea de cargo de la factura.
type CreateInvoiceLineRequest struct {
	ChargeType  string          `json:"charge_type"`
	Description string          `json:"description" validate:"required"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// CreateInvoiceRequest alta de factura. Fechas en formato YYYY-MM-DD.
// Si document_currency difiere de la moneda base de la organización, la
// valuación base se calcula con la última tasa vigente a la fecha de factura.
type CreateInvoiceRequest struct {
	InvoiceNumber    string                     `json:"invoice_number"`
	RenterID         int64                      `json:"tenant_id" validate:"required,gt=0"`
	LeaseID          int64                      `json:"lease_id"`
	InvoiceDate      string                     `json:"invoice_date" validate:"required"`
	DueDate          string                     `json:"due_date"`
	PostingDate      string                     `json:"posting_date"`
	TotalAmount      decimal.Decimal            `json:"total_amount" validate:"required"`
	DocumentCurrency string                     `json:"document_currency" validate:"omitempty,len=3"`
	DocumentAmount   decimal.Decimal            `json:"document_amount"`
	BaseCurrency     string                     `json:"base_currency" validate:"omitempty,len=3"`
	InvoiceStatus    string                     `json:"invoice_status" validate:"omitempty,oneof=Draft Posted"`
	Notes            string                     `json:"notes"`
	Lines            []CreateInvoiceLineRequest `json:"lines"`
}

// InvoiceUpdateRequest actualización parcial con lista blanca de campos.
type InvoiceUpdateRequest struct {
	DueDate     *string          `json:"due_date"`
	PostingDate *string          `json:"posting_date"`
	TotalAmount *decimal.Decimal `json:"total_amount"`
	Notes       *string          `json:"notes"`
}

// InvoiceLineResponse línea de una factura.
type InvoiceLineResponse struct {
	ID          int64           `json:"id"`
	ChargeType  string          `json:"charge_type"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// InvoiceResponse cabecera de factura con su valuación multi-moneda.
type InvoiceResponse struct {
	ID                 int64                 `json:"id"`
	InvoiceNumber      string                `json:"invoice_number"`
	RenterID           int64                 `json:"tenant_id"`
	LeaseID            int64                 `json:"lease_id,omitempty"`
	InvoiceDate        string                `json:"invoice_date"`
	DueDate            string                `json:"due_date,omitempty"`
	PostingDate        string                `json:"posting_date,omitempty"`
	TotalAmount        decimal.Decimal       `json:"total_amount"`
	DocumentCurrency   string                `json:"document_currency"`
	DocumentAmount     decimal.Decimal       `json:"document_amount"`
	BaseCurrency       string                `json:"base_currency"`
	BaseAmount         decimal.Decimal       `json:"base_amount"`
	ExchangeRateValue  decimal.Decimal       `json:"exchange_rate_value"`
	FxDifferenceAmount decimal.Decimal       `json:"fx_difference_amount"`
	InvoiceStatus      string                `json:"invoice_status"`
	Notes              string                `json:"notes,omitempty"`
	CreatedAt          time.Time             `json:"created_at"`
	Lines              []InvoiceLineResponse `json:"lines,omitempty"`
}

// InvoiceListResponse listado paginado de facturas (más reciente primero).
type InvoiceListResponse struct {
	Items []InvoiceResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// CreateAllocationRequest porción del pago aplicada a una factura.
type CreateAllocationRequest struct {
	InvoiceID int64           `json:"invoice_id" validate:"required,gt=0"`
	Amount    decimal.Decimal `json:"amount" validate:"required"`
}

// CreatePaymentRequest alta de pago con sus asignaciones.
type CreatePaymentRequest struct {
	PaymentNumber string                    `json:"payment_number"`
	RenterID      int64                     `json:"tenant_id" validate:"required,gt=0"`
	PaymentDate   string                    `json:"payment_date" validate:"required"`
	Amount        decimal.Decimal           `json:"amount" validate:"required"`
	Currency      string                    `json:"currency" validate:"omitempty,len=3"`
	MethodName    string                    `json:"method_name"`
	ReferenceNo   string                    `json:"reference_no"`
	Notes         string                    `json:"notes"`
	Allocations   []CreateAllocationRequest `json:"allocations"`
}

// AllocationResponse asignación pago→factura.
type AllocationResponse struct {
	ID              int64           `json:"id"`
	InvoiceID       int64           `json:"invoice_id"`
	AllocatedAmount decimal.Decimal `json:"allocated_amount"`
	Currency        string          `json:"currency"`
}

// PaymentResponse representación de un pago.
type PaymentResponse struct {
	ID            int64                `json:"id"`
	PaymentNumber string               `json:"payment_number"`
	RenterID      int64                `json:"tenant_id"`
	PaymentDate   string               `json:"payment_date"`
	Amount        decimal.Decimal      `json:"amount"`
	Currency      string               `json:"currency"`
	MethodName    string               `json:"method_name,omitempty"`
	ReferenceNo   string               `json:"reference_no,omitempty"`
	Status        string               `json:"status"`
	Notes         string               `json:"notes,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
	Allocations   []AllocationResponse `json:"allocations,omitempty"`
}

// PaymentListResponse listado paginado de pagos.
type PaymentListResponse struct {
	Items []PaymentResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// CreateFxRateRequest alta de tasa diaria.
type CreateFxRateRequest struct {
	FromCurrency string          `json:"from_currency" validate:"required,len=3"`
	ToCurrency   string          `json:"to_currency" validate:"required,len=3"`
	RateDate     string          `json:"rate_date" validate:"required"`
	Rate         decimal.Decimal `json:"rate" validate:"required"`
	Source       string          `json:"source"`
}

// FxRateResponse tasa diaria.
type FxRateResponse struct {
	ID           int64           `json:"id"`
	FromCurrency string          `json:"from_currency"`
	ToCurrency   string          `json:"to_currency"`
	RateDate     string          `json:"rate_date"`
	Rate         decimal.Decimal `json:"rate"`
	Source       string          `json:"source,omitempty"`
}

// FxRateListResponse listado de tasas diarias.
type FxRateListResponse struct {
	Total int64            `json:"total"`
	Items []FxRateResponse `json:"items"`
}

// GenerateSnapshotRequest fecha de corte del snapshot (hoy si se omite).
type GenerateSnapshotRequest struct {
	SnapshotDate string `json:"snapshot_date"`
}

// GenerateSnapshotResponse resultado del congelamiento.
type GenerateSnapshotResponse struct {
	SnapshotDate string `json:"snapshot_date"`
	Created      int    `json:"created"`
}

// FxSnapshotResponse fila de snapshot inmutable.
type FxSnapshotResponse struct {
	ID                  int64           `json:"id"`
	SnapshotDate        string          `json:"snapshot_date"`
	FromCurrency        string          `json:"from_currency"`
	ToCurrency          string          `json:"to_currency"`
	Rate                decimal.Decimal `json:"rate"`
	Source              string          `json:"source,omitempty"`
	ExchangeRateDailyID int64           `json:"exchange_rate_daily_id"`
}

// FxSnapshotListResponse listado de snapshots.
type FxSnapshotListResponse struct {
	Total int64                `json:"total"`
	Items []FxSnapshotResponse `json:"items"`
}

// RevalueRequest fecha de corte de la revaluación (hoy si se omite). ISO YYYY-MM-DD.
type RevalueRequest struct {
	AsOf string `json:"as_of"`
}

// RevalueResponse resultado de la revaluación.
type RevalueResponse struct {
	Invoice  *InvoiceResponse `json:"invoice,omitempty"`
	GainLoss decimal.Decimal  `json:"gain_loss"`
	Message  string           `json:"message,omitempty"`
}

// LedgerEntryResponse asiento inmutable del libro multi-moneda.
type LedgerEntryResponse struct {
	ID            int64           `json:"id"`
	ReferenceType string          `json:"reference_type"`
	ReferenceID   int64           `json:"reference_id"`
	PostingDate   string          `json:"posting_date"`
	TxnCurrency   string          `json:"txn_currency"`
	TxnAmount     decimal.Decimal `json:"txn_amount"`
	BaseCurrency  string          `json:"base_currency"`
	BaseAmount    decimal.Decimal `json:"base_amount"`
	FxRate        decimal.Decimal `json:"fx_rate"`
	EntrySide     string          `json:"entry_side"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// LedgerListResponse listado de asientos (ID descendente, más reciente primero).
type LedgerListResponse struct {
	Total int64                 `json:"total"`
	Items []LedgerEntryResponse `json:"items"`
}
