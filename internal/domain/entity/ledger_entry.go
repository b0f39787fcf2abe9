package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Lados contables de un asiento.
const (
	EntrySideDebit  = "Debit"
	EntrySideCredit = "Credit"
)

// Tipos de referencia de un asiento multi-moneda.
const (
	LedgerRefInvoice     = "Invoice"
	LedgerRefPayment     = "Payment"
	LedgerRefRevaluation = "Revaluation"
)

// LedgerEntry asiento inmutable del libro multi-moneda. Se inserta una fila por
// evento monetario (factura asentada, pago recibido, revaluación) y nunca se
// actualiza: las correcciones son asientos nuevos.
type LedgerEntry struct {
	ID            int64
	TenantOrgID   int64
	ReferenceType string // Invoice, Payment, Revaluation
	ReferenceID   int64
	PostingDate   time.Time
	TxnCurrency   string
	TxnAmount     decimal.Decimal
	BaseCurrency  string
	BaseAmount    decimal.Decimal
	FxRate        decimal.Decimal
	EntrySide     string // Debit, Credit
	Notes         string
	CreatedBy     int64
	CreatedAt     time.Time
}
