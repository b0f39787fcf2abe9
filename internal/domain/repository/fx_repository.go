package repository

import (
	"time"

	"github.com/tu-usuario/propiedades-pro/internal/domain/entity"
)

// FxRateFilter filtros del listado de tasas diarias.
type FxRateFilter struct {
	FromCurrency string
	ToCurrency   string
	RateDate     *time.Time
	Limit        int
}

// FxSnapshotFilter filtros del listado de snapshots.
type FxSnapshotFilter struct {
	TenantOrgID  int64
	SnapshotDate *time.Time
	FromCurrency string
	ToCurrency   string
	Limit        int
}

// FxRepository define el puerto de persistencia para tasas diarias y snapshots.
type FxRepository interface {
	CreateRate(r *entity.ExchangeRateDaily) error
	// LatestRate resuelve la "última tasa" para un par a una fecha: rate_date <= onDate,
	// fecha máxima, desempate por ID más alto. nil si no existe ninguna.
	LatestRate(onDate time.Time, fromCurrency, toCurrency string) (*entity.ExchangeRateDaily, error)
	// LatestRatesByPair devuelve, para cada par distinto, la última tasa a la fecha de corte.
	LatestRatesByPair(onDate time.Time) ([]*entity.ExchangeRateDaily, error)
	ListRates(f FxRateFilter) ([]*entity.ExchangeRateDaily, error)

	CreateSnapshot(s *entity.FxRateSnapshot) error
	ListSnapshots(f FxSnapshotFilter) ([]*entity.FxRateSnapshot, error)
}

// LedgerFilter filtros del listado de asientos.
type LedgerFilter struct {
	TenantOrgID   int64
	ReferenceType string
	ReferenceID   int64
	Limit         int
}

// LedgerRepository define el puerto del libro multi-moneda. Solo inserta y lee:
// los asientos son inmutables y las correcciones son asientos nuevos.
type LedgerRepository interface {
	Create(e *entity.LedgerEntry) error
	List(f LedgerFilter) ([]*entity.LedgerEntry, error)
}
