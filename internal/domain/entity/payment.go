package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un pago recibido.
const (
	PaymentStatusReceived = "Received"
	PaymentStatusVoided   = "Voided"
)

// Payment recibo de dinero de un inquilino, aplicable a una o más facturas
// mediante PaymentAllocation. Los pagos se asientan siempre a tasa 1.0 en su
// propia moneda: no se revalúan.
type Payment struct {
	ID            int64
	TenantOrgID   int64
	PaymentNumber string
	RenterID      int64
	PaymentDate   time.Time
	Amount        decimal.Decimal
	Currency      string
	MethodName    string // Cash, Transfer, Card
	ReferenceNo   string
	Status        string // Received, Voided
	Notes         string
	CreatedBy     int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// PaymentAllocation aplica una porción de un pago contra una factura.
// El estado de la factura se re-deriva siempre de la suma de TODAS sus
// asignaciones (consulta agregada), nunca de contadores incrementales.
type PaymentAllocation struct {
	ID              int64
	PaymentID       int64
	InvoiceID       int64
	AllocatedAmount decimal.Decimal
	Currency        string
	CreatedAt       time.Time
}
