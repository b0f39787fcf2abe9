package billing

import (
	"context"
	"time"

	"github.com/tu-usuario/propiedades-pro/internal/application/dto"
	"github.com/tu-usuario/propiedades-pro/internal/domain"
	domainbilling "github.com/tu-usuario/propiedades-pro/internal/domain/billing"
	"github.com/tu-usuario/propiedades-pro/internal/domain/entity"
	"github.com/tu-usuario/propiedades-pro/internal/domain/repository"
)

// ledgerListCap tope fijo de filas del listado de asientos (sin cursor).
const (
	rateListCap     = 500
	snapshotListCap = 1000
	ledgerListCap   = 500
)

// FxUseCase administra tasas diarias, revaluación de facturas, snapshots de
// cierre y lectura del libro.
type FxUseCase struct {
	txRunner    BillingTxRunner
	fxRepo      repository.FxRepository
	invoiceRepo repository.InvoiceRepository
	ledgerRepo  repository.LedgerRepository
}

// NewFxUseCase construye el caso de uso.
func NewFxUseCase(
	txRunner BillingTxRunner,
	fxRepo repository.FxRepository,
	invoiceRepo repository.InvoiceRepository,
	ledgerRepo repository.LedgerRepository,
) *FxUseCase {
	return &FxUseCase{
		txRunner:    txRunner,
		fxRepo:      fxRepo,
		invoiceRepo: invoiceRepo,
		ledgerRepo:  ledgerRepo,
	}
}

// CreateRate registra una tasa diaria para un par de monedas.
func (uc *FxUseCase) CreateRate(in dto.CreateFxRateRequest) (*dto.FxRateResponse, error) {
	if in.FromCurrency == in.ToCurrency {
		return nil, domain.ErrInvalidInput
	}
	if !in.Rate.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	rateDate, err := parseDate(in.RateDate)
	if err != nil {
		return nil, err
	}
	source := in.Source
	if source == "" {
		source = "manual"
	}
	rate := &entity.ExchangeRateDaily{
		FromCurrency: in.FromCurrency,
		ToCurrency:   in.ToCurrency,
		RateDate:     rateDate,
		Rate:         in.Rate,
		Source:       source,
		CreatedAt:    time.Now(),
	}
	if err := uc.fxRepo.CreateRate(rate); err != nil {
		return nil, err
	}
	resp := toRateResponse(rate)
	return &resp, nil
}

// ListRates lista tasas diarias con filtros opcionales.
func (uc *FxUseCase) ListRates(fromCurrency, toCurrency, rateDate string, limit int) (*dto.FxRateListResponse, error) {
	if limit <= 0 || limit > rateListCap {
		limit = rateListCap
	}
	var datePtr *time.Time
	if rateDate != "" {
		d, err := parseDate(rateDate)
		if err != nil {
			return nil, err
		}
		datePtr = &d
	}
	rates, err := uc.fxRepo.ListRates(repository.FxRateFilter{
		FromCurrency: fromCurrency,
		ToCurrency:   toCurrency,
		RateDate:     datePtr,
		Limit:        limit,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.FxRateResponse, 0, len(rates))
	for _, r := range rates {
		items = append(items, toRateResponse(r))
	}
	return &dto.FxRateListResponse{Total: int64(len(items)), Items: items}, nil
}

// RevalueInvoice recalcula la valuación base de una factura con la última tasa
// vigente a la fecha de corte y asienta la ganancia/pérdida resultante.
//
// Misma moneda documento/base: no-op con mensaje, sin asiento. Tasa ausente para
// el par: error duro, sin escritura parcial. El lado del asiento depende del
// signo de gain_loss; el asiento registra la base recalculada a la tasa nueva.
// Con tasa sin cambio la operación es idempotente (gain_loss 0).
func (uc *FxUseCase) RevalueInvoice(ctx context.Context, tenantOrgID, userID, invoiceID int64, asOf string) (*dto.RevalueResponse, error) {
	asOfDate := time.Now()
	if asOf != "" {
		d, err := parseDate(asOf)
		if err != nil {
			return nil, err
		}
		asOfDate = d
	}

	inv, err := uc.invoiceRepo.GetByID(tenantOrgID, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if inv.DocumentCurrency == inv.BaseCurrency {
		return &dto.RevalueResponse{
			Message: "la factura está en la moneda base; nada que revaluar",
		}, nil
	}

	rate, err := uc.fxRepo.LatestRate(asOfDate, inv.DocumentCurrency, inv.BaseCurrency)
	if err != nil {
		return nil, err
	}
	if rate == nil {
		return nil, domain.ErrMissingFxRate
	}

	oldBase := inv.BaseAmount
	newBase := domainbilling.BaseAmount(inv.DocumentAmount, rate.Rate)
	gainLoss := domainbilling.GainLoss(newBase, oldBase)

	inv.BaseAmount = newBase
	inv.ExchangeRateID = rate.ID
	inv.ExchangeRateValue = rate.Rate
	inv.FxDifferenceAmount = domainbilling.FxDifference(newBase, inv.DocumentAmount)
	inv.UpdatedAt = time.Now()

	err = uc.txRunner.RunBilling(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		_ repository.PaymentRepository,
		_ repository.FxRepository,
		ledgerRepo repository.LedgerRepository,
	) error {
		if err := invoiceRepo.Update(inv); err != nil {
			return err
		}
		return ledgerRepo.Create(&entity.LedgerEntry{
			TenantOrgID:   inv.TenantOrgID,
			ReferenceType: entity.LedgerRefRevaluation,
			ReferenceID:   inv.ID,
			PostingDate:   asOfDate,
			TxnCurrency:   inv.DocumentCurrency,
			TxnAmount:     inv.DocumentAmount,
			BaseCurrency:  inv.BaseCurrency,
			BaseAmount:    newBase,
			FxRate:        rate.Rate,
			EntrySide:     domainbilling.RevaluationSide(gainLoss),
			Notes:         "Revaluación factura " + inv.InvoiceNumber,
			CreatedBy:     userID,
			CreatedAt:     time.Now(),
		})
	})
	if err != nil {
		return nil, err
	}

	return &dto.RevalueResponse{
		Invoice:  toInvoiceResponse(inv),
		GainLoss: gainLoss,
	}, nil
}

// GenerateSnapshots congela, para cada par distinto de monedas, la última tasa
// vigente a la fecha de corte en la tabla inmutable de snapshots.
func (uc *FxUseCase) GenerateSnapshots(ctx context.Context, tenantOrgID, userID int64, snapshotDate string) (*dto.GenerateSnapshotResponse, error) {
	cutoff := time.Now()
	if snapshotDate != "" {
		d, err := parseDate(snapshotDate)
		if err != nil {
			return nil, err
		}
		cutoff = d
	}

	rates, err := uc.fxRepo.LatestRatesByPair(cutoff)
	if err != nil {
		return nil, err
	}

	created := 0
	now := time.Now()
	err = uc.txRunner.RunBilling(ctx, func(
		_ repository.InvoiceRepository,
		_ repository.PaymentRepository,
		fxRepo repository.FxRepository,
		_ repository.LedgerRepository,
	) error {
		for _, r := range rates {
			if err := fxRepo.CreateSnapshot(&entity.FxRateSnapshot{
				TenantOrgID:         tenantOrgID,
				SnapshotDate:        cutoff,
				FromCurrency:        r.FromCurrency,
				ToCurrency:          r.ToCurrency,
				Rate:                r.Rate,
				Source:              r.Source,
				ExchangeRateDailyID: r.ID,
				CreatedBy:           userID,
				CreatedAt:           now,
			}); err != nil {
				return err
			}
			created++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto.GenerateSnapshotResponse{
		SnapshotDate: formatDate(cutoff),
		Created:      created,
	}, nil
}

// ListSnapshots lista snapshots congelados con filtros opcionales.
func (uc *FxUseCase) ListSnapshots(tenantOrgID int64, snapshotDate, fromCurrency, toCurrency string, limit int) (*dto.FxSnapshotListResponse, error) {
	if limit <= 0 || limit > snapshotListCap {
		limit = snapshotListCap
	}
	var datePtr *time.Time
	if snapshotDate != "" {
		d, err := parseDate(snapshotDate)
		if err != nil {
			return nil, err
		}
		datePtr = &d
	}
	snapshots, err := uc.fxRepo.ListSnapshots(repository.FxSnapshotFilter{
		TenantOrgID:  tenantOrgID,
		SnapshotDate: datePtr,
		FromCurrency: fromCurrency,
		ToCurrency:   toCurrency,
		Limit:        limit,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.FxSnapshotResponse, 0, len(snapshots))
	for _, s := range snapshots {
		items = append(items, dto.FxSnapshotResponse{
			ID:                  s.ID,
			SnapshotDate:        formatDate(s.SnapshotDate),
			FromCurrency:        s.FromCurrency,
			ToCurrency:          s.ToCurrency,
			Rate:                s.Rate,
			Source:              s.Source,
			ExchangeRateDailyID: s.ExchangeRateDailyID,
		})
	}
	return &dto.FxSnapshotListResponse{Total: int64(len(items)), Items: items}, nil
}

// ListLedger lista asientos por ID descendente con tope fijo de filas.
func (uc *FxUseCase) ListLedger(tenantOrgID int64, referenceType string, referenceID int64, limit int) (*dto.LedgerListResponse, error) {
	if limit <= 0 || limit > ledgerListCap {
		limit = ledgerListCap
	}
	entries, err := uc.ledgerRepo.List(repository.LedgerFilter{
		TenantOrgID:   tenantOrgID,
		ReferenceType: referenceType,
		ReferenceID:   referenceID,
		Limit:         limit,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.LedgerEntryResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, dto.LedgerEntryResponse{
			ID:            e.ID,
			ReferenceType: e.ReferenceType,
			ReferenceID:   e.ReferenceID,
			PostingDate:   formatDate(e.PostingDate),
			TxnCurrency:   e.TxnCurrency,
			TxnAmount:     e.TxnAmount,
			BaseCurrency:  e.BaseCurrency,
			BaseAmount:    e.BaseAmount,
			FxRate:        e.FxRate,
			EntrySide:     e.EntrySide,
			Notes:         e.Notes,
			CreatedAt:     e.CreatedAt,
		})
	}
	return &dto.LedgerListResponse{Total: int64(len(items)), Items: items}, nil
}

func toRateResponse(r *entity.ExchangeRateDaily) dto.FxRateResponse {
	return dto.FxRateResponse{
		ID:           r.ID,
		FromCurrency: r.FromCurrency,
		ToCurrency:   r.ToCurrency,
		RateDate:     formatDate(r.RateDate),
		Rate:         r.Rate,
		Source:       r.Source,
	}
}
