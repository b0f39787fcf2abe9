package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/propiedades-pro/internal/domain"
	"github.com/tu-usuario/propiedades-pro/internal/domain/entity"
	"github.com/tu-usuario/propiedades-pro/internal/domain/repository"
)

var (
	_ repository.FxRepository     = (*FxRepo)(nil)
	_ repository.LedgerRepository = (*LedgerRepo)(nil)
)

const rateColumns = `id, from_currency, to_currency, rate_date, rate, COALESCE(source, ''), created_at`

// FxRepo implementación del puerto FxRepository sobre PostgreSQL.
type FxRepo struct {
	q Querier
}

// NewFxRepository construye el adaptador de persistencia para tasas y snapshots.
func NewFxRepository(q Querier) *FxRepo {
	return &FxRepo{q: q}
}

func (r *FxRepo) CreateRate(rate *entity.ExchangeRateDaily) error {
	query := `
		INSERT INTO exchange_rates_daily (from_currency, to_currency, rate_date, rate, source, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		rate.FromCurrency, rate.ToCurrency, rate.RateDate, rate.Rate,
		nullIfEmpty(rate.Source), rate.CreatedAt,
	).Scan(&rate.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert exchange rate: %w", err)
	}
	return nil
}

// LatestRate resuelve la última tasa vigente: rate_date <= onDate, fecha máxima,
// desempate por id más alto. Devuelve nil si no hay ninguna fila para el par.
func (r *FxRepo) LatestRate(onDate time.Time, fromCurrency, toCurrency string) (*entity.ExchangeRateDaily, error) {
	query := `
		SELECT ` + rateColumns + `
		FROM exchange_rates_daily
		WHERE from_currency = $1 AND to_currency = $2 AND rate_date <= $3
		ORDER BY rate_date DESC, id DESC
		LIMIT 1`
	var rate entity.ExchangeRateDaily
	err := r.q.QueryRow(context.Background(), query, fromCurrency, toCurrency, onDate).Scan(
		&rate.ID, &rate.FromCurrency, &rate.ToCurrency, &rate.RateDate,
		&rate.Rate, &rate.Source, &rate.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("latest rate: %w", err)
	}
	return &rate, nil
}

func (r *FxRepo) LatestRatesByPair(onDate time.Time) ([]*entity.ExchangeRateDaily, error) {
	query := `
		SELECT DISTINCT ON (from_currency, to_currency) ` + rateColumns + `
		FROM exchange_rates_daily
		WHERE rate_date <= $1
		ORDER BY from_currency, to_currency, rate_date DESC, id DESC`
	rows, err := r.q.Query(context.Background(), query, onDate)
	if err != nil {
		return nil, fmt.Errorf("latest rates by pair: %w", err)
	}
	defer rows.Close()
	return scanRates(rows)
}

func (r *FxRepo) ListRates(f repository.FxRateFilter) ([]*entity.ExchangeRateDaily, error) {
	where := ` WHERE 1=1`
	var args []any
	if f.FromCurrency != "" {
		args = append(args, f.FromCurrency)
		where += fmt.Sprintf(` AND from_currency = $%d`, len(args))
	}
	if f.ToCurrency != "" {
		args = append(args, f.ToCurrency)
		where += fmt.Sprintf(` AND to_currency = $%d`, len(args))
	}
	if f.RateDate != nil {
		args = append(args, *f.RateDate)
		where += fmt.Sprintf(` AND rate_date = $%d`, len(args))
	}
	limit := f.Limit
	if limit <= 0 {
		limit = 100
	}
	args = append(args, limit)
	query := fmt.Sprintf(`SELECT %s FROM exchange_rates_daily %s ORDER BY rate_date DESC, id DESC LIMIT $%d`,
		rateColumns, where, len(args))
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list rates: %w", err)
	}
	defer rows.Close()
	return scanRates(rows)
}

func scanRates(rows pgx.Rows) ([]*entity.ExchangeRateDaily, error) {
	var list []*entity.ExchangeRateDaily
	for rows.Next() {
		var rate entity.ExchangeRateDaily
		if err := rows.Scan(
			&rate.ID, &rate.FromCurrency, &rate.ToCurrency, &rate.RateDate,
			&rate.Rate, &rate.Source, &rate.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan rate: %w", err)
		}
		list = append(list, &rate)
	}
	return list, rows.Err()
}

func (r *FxRepo) CreateSnapshot(s *entity.FxRateSnapshot) error {
	query := `
		INSERT INTO fx_rate_snapshots (tenant_org_id, snapshot_date, from_currency, to_currency,
			rate, source, exchange_rate_daily_id, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		s.TenantOrgID, s.SnapshotDate, s.FromCurrency, s.ToCurrency,
		s.Rate, nullIfEmpty(s.Source), nullIfZero(s.ExchangeRateDailyID), s.CreatedBy, s.CreatedAt,
	).Scan(&s.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert fx snapshot: %w", err)
	}
	return nil
}

func (r *FxRepo) ListSnapshots(f repository.FxSnapshotFilter) ([]*entity.FxRateSnapshot, error) {
	where := ` WHERE tenant_org_id = $1`
	args := []any{f.TenantOrgID}
	if f.SnapshotDate != nil {
		args = append(args, *f.SnapshotDate)
		where += fmt.Sprintf(` AND snapshot_date = $%d`, len(args))
	}
	if f.FromCurrency != "" {
		args = append(args, f.FromCurrency)
		where += fmt.Sprintf(` AND from_currency = $%d`, len(args))
	}
	if f.ToCurrency != "" {
		args = append(args, f.ToCurrency)
		where += fmt.Sprintf(` AND to_currency = $%d`, len(args))
	}
	limit := f.Limit
	if limit <= 0 {
		limit = 100
	}
	args = append(args, limit)
	query := fmt.Sprintf(`
		SELECT id, tenant_org_id, snapshot_date, from_currency, to_currency, rate,
			COALESCE(source, ''), COALESCE(exchange_rate_daily_id, 0), created_by, created_at
		FROM fx_rate_snapshots %s ORDER BY snapshot_date DESC, id DESC LIMIT $%d`, where, len(args))
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list fx snapshots: %w", err)
	}
	defer rows.Close()
	var list []*entity.FxRateSnapshot
	for rows.Next() {
		var s entity.FxRateSnapshot
		if err := rows.Scan(
			&s.ID, &s.TenantOrgID, &s.SnapshotDate, &s.FromCurrency, &s.ToCurrency,
			&s.Rate, &s.Source, &s.ExchangeRateDailyID, &s.CreatedBy, &s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan fx snapshot: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// LedgerRepo implementación del puerto LedgerRepository sobre PostgreSQL.
// Solo inserta y lee: los asientos nunca se actualizan ni se borran.
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository construye el adaptador de persistencia del libro multi-moneda.
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

func (r *LedgerRepo) Create(e *entity.LedgerEntry) error {
	query := `
		INSERT INTO ledger_entries (tenant_org_id, reference_type, reference_id, posting_date,
			txn_currency, txn_amount, base_currency, base_amount, fx_rate, entry_side,
			notes, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		e.TenantOrgID, e.ReferenceType, e.ReferenceID, e.PostingDate,
		e.TxnCurrency, e.TxnAmount, e.BaseCurrency, e.BaseAmount, e.FxRate, e.EntrySide,
		nullIfEmpty(e.Notes), e.CreatedBy, e.CreatedAt,
	).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("insert ledger entry: %w", err)
	}
	return nil
}

func (r *LedgerRepo) List(f repository.LedgerFilter) ([]*entity.LedgerEntry, error) {
	where := ` WHERE tenant_org_id = $1`
	args := []any{f.TenantOrgID}
	if f.ReferenceType != "" {
		args = append(args, f.ReferenceType)
		where += fmt.Sprintf(` AND reference_type = $%d`, len(args))
	}
	if f.ReferenceID > 0 {
		args = append(args, f.ReferenceID)
		where += fmt.Sprintf(` AND reference_id = $%d`, len(args))
	}
	args = append(args, f.Limit)
	query := fmt.Sprintf(`
		SELECT id, tenant_org_id, reference_type, reference_id, posting_date, txn_currency,
			txn_amount, base_currency, base_amount, fx_rate, entry_side, COALESCE(notes, ''),
			created_by, created_at
		FROM ledger_entries %s ORDER BY id DESC LIMIT $%d`, where, len(args))
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.LedgerEntry
	for rows.Next() {
		var e entity.LedgerEntry
		if err := rows.Scan(
			&e.ID, &e.TenantOrgID, &e.ReferenceType, &e.ReferenceID, &e.PostingDate, &e.TxnCurrency,
			&e.TxnAmount, &e.BaseCurrency, &e.BaseAmount, &e.FxRate, &e.EntrySide, &e.Notes,
			&e.CreatedBy, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
