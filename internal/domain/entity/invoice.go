package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una factura de arriendo/cargos.
const (
	InvoiceStatusDraft         = "Draft"
	InvoiceStatusPosted        = "Posted"
	InvoiceStatusPartiallyPaid = "PartiallyPaid"
	InvoiceStatusPaid          = "Paid"
	InvoiceStatusVoided        = "Voided"
)

// Invoice obligación monetaria emitida a un inquilino.
//
// Valuación multi-moneda: DocumentCurrency/DocumentAmount son la denominación
// original del documento; BaseCurrency es la moneda del libro de la organización.
// Invariante: BaseAmount = DocumentAmount × ExchangeRateValue (redondeado a 2
// decimales) al crear o revaluar, y FxDifferenceAmount = BaseAmount − DocumentAmount
// se recalcula idéntico en cada cambio de tasa.
type Invoice struct {
	ID                 int64
	TenantOrgID        int64
	InvoiceNumber      string
	RenterID           int64 // inquilino facturado
	LeaseID            int64
	InvoiceDate        time.Time
	DueDate            *time.Time
	PostingDate        *time.Time
	TotalAmount        decimal.Decimal // total del documento, contra el que se liquidan pagos
	DocumentCurrency   string
	DocumentAmount     decimal.Decimal
	BaseCurrency       string
	BaseAmount         decimal.Decimal
	ExchangeRateID     int64 // tasa diaria aplicada (0 = ninguna, tasa implícita 1.0)
	ExchangeRateValue  decimal.Decimal
	FxDifferenceAmount decimal.Decimal
	InvoiceStatus      string
	Notes              string
	CreatedBy          int64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// InvoiceLine línea de cargo de una factura (renta, administración, multa, servicio).
type InvoiceLine struct {
	ID          int64
	InvoiceID   int64
	ChargeType  string // Rent, Deposit, LateFee, Utility, Other
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
	CreatedAt   time.Time
}
