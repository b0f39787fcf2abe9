package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Currency catálogo de monedas ISO-4217.
type Currency struct {
	ID           int64
	CurrencyCode string
	CurrencyName string
	Symbol       string
	MinorUnits   int
	IsActive     bool
	CreatedAt    time.Time
}

// ExchangeRateDaily tasa de cambio vigente para un par de monedas en una fecha.
// La "última tasa" para una fecha d es la fila con rate_date <= d de fecha máxima,
// desempatada por el ID más alto (orden de inserción).
type ExchangeRateDaily struct {
	ID           int64
	FromCurrency string
	ToCurrency   string
	RateDate     time.Time
	Rate         decimal.Decimal // al menos 4 decimales almacenados
	Source       string          // manual, central-bank, provider
	CreatedAt    time.Time
}

// FxRateSnapshot congelamiento puntual de la última tasa por par a una fecha de corte.
// Tabla inmutable, separada de la tabla diaria viva; se usa para cierres de período.
type FxRateSnapshot struct {
	ID                  int64
	TenantOrgID         int64
	SnapshotDate        time.Time
	FromCurrency        string
	ToCurrency          string
	Rate                decimal.Decimal
	Source              string
	ExchangeRateDailyID int64
	CreatedBy           int64
	CreatedAt           time.Time
}
