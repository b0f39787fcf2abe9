package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/propiedades-pro/internal/application/dto"
	"github.com/tu-usuario/propiedades-pro/internal/domain"
	domainbilling "github.com/tu-usuario/propiedades-pro/internal/domain/billing"
	"github.com/tu-usuario/propiedades-pro/internal/domain/entity"
	"github.com/tu-usuario/propiedades-pro/internal/domain/repository"
)

const dateLayout = "2006-01-02"

func parseDate(s string) (time.Time, error) {
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, domain.ErrInvalidInput
	}
	return d, nil
}

func parseDatePtr(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := parseDate(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func formatDate(d time.Time) string {
	return d.Format(dateLayout)
}

func formatDatePtr(d *time.Time) string {
	if d == nil {
		return ""
	}
	return d.Format(dateLayout)
}

// InvoiceUseCase crea, consulta y anula facturas de arriendo con su valuación
// multi-moneda y el asiento espejo en el libro.
type InvoiceUseCase struct {
	txRunner     BillingTxRunner
	invoiceRepo  repository.InvoiceRepository
	renterRepo   repository.RenterRepository
	orgRepo      repository.OrgRepository
	fxRepo       repository.FxRepository
	fallbackBase string
}

// NewInvoiceUseCase construye el caso de uso. fallbackBase es la moneda base
// cuando la organización no tiene configuración propia.
func NewInvoiceUseCase(
	txRunner BillingTxRunner,
	invoiceRepo repository.InvoiceRepository,
	renterRepo repository.RenterRepository,
	orgRepo repository.OrgRepository,
	fxRepo repository.FxRepository,
	fallbackBase string,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		txRunner:     txRunner,
		invoiceRepo:  invoiceRepo,
		renterRepo:   renterRepo,
		orgRepo:      orgRepo,
		fxRepo:       fxRepo,
		fallbackBase: fallbackBase,
	}
}

// baseCurrencyFor resuelve la moneda base del libro de la organización.
func (uc *InvoiceUseCase) baseCurrencyFor(tenantOrgID int64, explicit string) string {
	if explicit != "" {
		return explicit
	}
	if settings, err := uc.orgRepo.GetSettings(tenantOrgID); err == nil && settings != nil && settings.BaseCurrency != "" {
		return settings.BaseCurrency
	}
	return uc.fallbackBase
}

// CreateInvoice crea la factura con su valuación base y asienta un débito espejo,
// todo en una sola transacción.
//
// Si la moneda del documento difiere de la base se busca la última tasa vigente a
// la fecha de factura; si no existe ninguna, la tasa aplicada es 1.0 sin error.
func (uc *InvoiceUseCase) CreateInvoice(ctx context.Context, tenantOrgID, userID int64, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if in.RenterID == 0 || in.TotalAmount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	renter, err := uc.renterRepo.GetByID(in.RenterID)
	if err != nil || renter == nil {
		return nil, domain.ErrNotFound
	}
	if tenantOrgID > 0 && renter.TenantOrgID != tenantOrgID {
		return nil, domain.ErrForbidden
	}

	invoiceDate, err := parseDate(in.InvoiceDate)
	if err != nil {
		return nil, err
	}
	dueDate, err := parseDatePtr(in.DueDate)
	if err != nil {
		return nil, err
	}
	postingDate, err := parseDatePtr(in.PostingDate)
	if err != nil {
		return nil, err
	}

	// Líneas: line_total = qty × unit_price; el total del documento es la suma
	// de líneas cuando no viene explícito.
	total := in.TotalAmount
	lines := make([]*entity.InvoiceLine, 0, len(in.Lines))
	var linesTotal decimal.Decimal
	for i := range in.Lines {
		l := &in.Lines[i]
		qty := l.Quantity
		if qty.IsZero() {
			qty = decimal.NewFromInt(1)
		}
		if l.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		lineTotal := qty.Mul(l.UnitPrice).Round(2)
		linesTotal = linesTotal.Add(lineTotal)
		lines = append(lines, &entity.InvoiceLine{
			ChargeType:  l.ChargeType,
			Description: l.Description,
			Quantity:    qty,
			UnitPrice:   l.UnitPrice,
			LineTotal:   lineTotal,
		})
	}
	if total.IsZero() && len(lines) > 0 {
		total = linesTotal
	}

	docCurrency := in.DocumentCurrency
	baseCurrency := uc.baseCurrencyFor(tenantOrgID, in.BaseCurrency)
	if docCurrency == "" {
		docCurrency = baseCurrency
	}
	docAmount := in.DocumentAmount
	if docAmount.IsZero() {
		docAmount = total
	}

	// Tasa aplicada: última tasa vigente a la fecha de factura; 1.0 si no existe.
	rate := domainbilling.RateOne
	var rateID int64
	if docCurrency != baseCurrency {
		r, err := uc.fxRepo.LatestRate(invoiceDate, docCurrency, baseCurrency)
		if err != nil {
			return nil, err
		}
		if r != nil {
			rate = r.Rate
			rateID = r.ID
		}
	}
	baseAmount := domainbilling.BaseAmount(docAmount, rate)
	fxDiff := domainbilling.FxDifference(baseAmount, docAmount)

	number := in.InvoiceNumber
	if number == "" {
		number = fmt.Sprintf("INV-%s", uuid.NewString()[:8])
	}

	// Estado inicial con lista blanca: Draft queda pendiente de asentarse,
	// Posted (el default) nace asentada.
	status := in.InvoiceStatus
	switch status {
	case "":
		status = entity.InvoiceStatusPosted
	case entity.InvoiceStatusDraft, entity.InvoiceStatusPosted:
	default:
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	inv := &entity.Invoice{
		TenantOrgID:        renter.TenantOrgID,
		InvoiceNumber:      number,
		RenterID:           renter.ID,
		LeaseID:            in.LeaseID,
		InvoiceDate:        invoiceDate,
		DueDate:            dueDate,
		PostingDate:        postingDate,
		TotalAmount:        total,
		DocumentCurrency:   docCurrency,
		DocumentAmount:     docAmount,
		BaseCurrency:       baseCurrency,
		BaseAmount:         baseAmount,
		ExchangeRateID:     rateID,
		ExchangeRateValue:  rate,
		FxDifferenceAmount: fxDiff,
		InvoiceStatus:      status,
		Notes:              in.Notes,
		CreatedBy:          userID,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	err = uc.txRunner.RunBilling(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		_ repository.PaymentRepository,
		_ repository.FxRepository,
		ledgerRepo repository.LedgerRepository,
	) error {
		if err := invoiceRepo.Create(inv); err != nil {
			return err
		}
		for _, line := range lines {
			line.InvoiceID = inv.ID
			line.CreatedAt = now
			if err := invoiceRepo.CreateLine(line); err != nil {
				return err
			}
		}
		// Asiento débito espejo de la factura.
		posting := invoiceDate
		if postingDate != nil {
			posting = *postingDate
		}
		return ledgerRepo.Create(&entity.LedgerEntry{
			TenantOrgID:   inv.TenantOrgID,
			ReferenceType: entity.LedgerRefInvoice,
			ReferenceID:   inv.ID,
			PostingDate:   posting,
			TxnCurrency:   docCurrency,
			TxnAmount:     docAmount,
			BaseCurrency:  baseCurrency,
			BaseAmount:    baseAmount,
			FxRate:        rate,
			EntrySide:     entity.EntrySideDebit,
			Notes:         "Factura " + inv.InvoiceNumber,
			CreatedBy:     userID,
			CreatedAt:     now,
		})
	})
	if err != nil {
		return nil, err
	}

	resp := toInvoiceResponse(inv)
	resp.Lines = toLineResponses(lines)
	return resp, nil
}

// GetInvoice devuelve la factura con sus líneas.
func (uc *InvoiceUseCase) GetInvoice(tenantOrgID, id int64) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(tenantOrgID, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.invoiceRepo.GetLinesByInvoiceID(inv.ID)
	if err != nil {
		return nil, err
	}
	resp := toInvoiceResponse(inv)
	resp.Lines = toLineResponses(lines)
	return resp, nil
}

// ListInvoices lista facturas de la organización (más reciente primero).
func (uc *InvoiceUseCase) ListInvoices(tenantOrgID int64, status string, renterID int64, page dto.PageRequest) (*dto.InvoiceListResponse, error) {
	page.DefaultPage()
	invoices, total, err := uc.invoiceRepo.List(repository.InvoiceFilter{
		TenantOrgID: tenantOrgID,
		Status:      status,
		RenterID:    renterID,
		Limit:       page.Limit,
		Offset:      page.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		items = append(items, *toInvoiceResponse(inv))
	}
	return &dto.InvoiceListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// UpdateInvoice aplica la lista blanca de campos mutables. La valuación FX no se
// toca aquí: los cambios de tasa pasan por la revaluación.
func (uc *InvoiceUseCase) UpdateInvoice(tenantOrgID, id int64, in dto.InvoiceUpdateRequest) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(tenantOrgID, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if inv.InvoiceStatus == entity.InvoiceStatusVoided {
		return nil, domain.ErrInvalidStatus
	}
	if in.DueDate != nil {
		d, err := parseDatePtr(*in.DueDate)
		if err != nil {
			return nil, err
		}
		inv.DueDate = d
	}
	if in.PostingDate != nil {
		d, err := parseDatePtr(*in.PostingDate)
		if err != nil {
			return nil, err
		}
		inv.PostingDate = d
	}
	if in.TotalAmount != nil {
		if in.TotalAmount.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		inv.TotalAmount = *in.TotalAmount
	}
	if in.Notes != nil {
		inv.Notes = *in.Notes
	}
	inv.UpdatedAt = time.Now()
	if err := uc.invoiceRepo.Update(inv); err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv), nil
}

// PostInvoice asienta una factura en borrador. Solo Draft se puede asentar.
func (uc *InvoiceUseCase) PostInvoice(tenantOrgID, id int64) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(tenantOrgID, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if inv.InvoiceStatus != entity.InvoiceStatusDraft {
		return nil, domain.ErrInvalidStatus
	}
	if err := uc.invoiceRepo.UpdateStatus(inv.ID, entity.InvoiceStatusPosted); err != nil {
		return nil, err
	}
	inv.InvoiceStatus = entity.InvoiceStatusPosted
	return toInvoiceResponse(inv), nil
}

// VoidInvoice anula una factura. Facturas pagadas (total o parcialmente) no se anulan.
func (uc *InvoiceUseCase) VoidInvoice(tenantOrgID, id int64) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(tenantOrgID, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	switch inv.InvoiceStatus {
	case entity.InvoiceStatusDraft, entity.InvoiceStatusPosted:
		// anulable
	default:
		return nil, domain.ErrInvalidStatus
	}
	if err := uc.invoiceRepo.UpdateStatus(inv.ID, entity.InvoiceStatusVoided); err != nil {
		return nil, err
	}
	inv.InvoiceStatus = entity.InvoiceStatusVoided
	return toInvoiceResponse(inv), nil
}

func toInvoiceResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	return &dto.InvoiceResponse{
		ID:                 inv.ID,
		InvoiceNumber:      inv.InvoiceNumber,
		RenterID:           inv.RenterID,
		LeaseID:            inv.LeaseID,
		InvoiceDate:        formatDate(inv.InvoiceDate),
		DueDate:            formatDatePtr(inv.DueDate),
		PostingDate:        formatDatePtr(inv.PostingDate),
		TotalAmount:        inv.TotalAmount,
		DocumentCurrency:   inv.DocumentCurrency,
		DocumentAmount:     inv.DocumentAmount,
		BaseCurrency:       inv.BaseCurrency,
		BaseAmount:         inv.BaseAmount,
		ExchangeRateValue:  inv.ExchangeRateValue,
		FxDifferenceAmount: inv.FxDifferenceAmount,
		InvoiceStatus:      inv.InvoiceStatus,
		Notes:              inv.Notes,
		CreatedAt:          inv.CreatedAt,
	}
}

func toLineResponses(lines []*entity.InvoiceLine) []dto.InvoiceLineResponse {
	out := make([]dto.InvoiceLineResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, dto.InvoiceLineResponse{
			ID:          l.ID,
			ChargeType:  l.ChargeType,
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			LineTotal:   l.LineTotal,
		})
	}
	return out
}
