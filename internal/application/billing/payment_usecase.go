package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/propiedades-pro/internal/application/dto"
	"github.com/tu-usuario/propiedades-pro/internal/domain"
	domainbilling "github.com/tu-usuario/propiedades-pro/internal/domain/billing"
	"github.com/tu-usuario/propiedades-pro/internal/domain/entity"
	"github.com/tu-usuario/propiedades-pro/internal/domain/repository"
)

// PaymentUseCase registra pagos, los aplica contra facturas y los anula.
// Los pagos se asientan siempre a tasa 1.0 en su propia moneda.
type PaymentUseCase struct {
	txRunner         BillingTxRunner
	paymentRepo      repository.PaymentRepository
	invoiceRepo      repository.InvoiceRepository
	renterRepo       repository.RenterRepository
	fallbackCurrency string
}

// NewPaymentUseCase construye el caso de uso. fallbackCurrency se usa cuando el
// request no trae moneda.
func NewPaymentUseCase(
	txRunner BillingTxRunner,
	paymentRepo repository.PaymentRepository,
	invoiceRepo repository.InvoiceRepository,
	renterRepo repository.RenterRepository,
	fallbackCurrency string,
) *PaymentUseCase {
	return &PaymentUseCase{
		txRunner:         txRunner,
		paymentRepo:      paymentRepo,
		invoiceRepo:      invoiceRepo,
		renterRepo:       renterRepo,
		fallbackCurrency: fallbackCurrency,
	}
}

// CreatePayment registra el pago, asienta un crédito en el libro y aplica las
// asignaciones contra facturas, todo en una sola transacción. El estado de pago
// de cada factura se re-deriva de la suma de TODAS sus asignaciones (consulta
// agregada), no de forma incremental: la operación es idempotente y se
// auto-corrige frente a escrituras parciales intercaladas.
func (uc *PaymentUseCase) CreatePayment(ctx context.Context, tenantOrgID, userID int64, in dto.CreatePaymentRequest) (*dto.PaymentResponse, error) {
	if in.RenterID == 0 || !in.Amount.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	renter, err := uc.renterRepo.GetByID(in.RenterID)
	if err != nil || renter == nil {
		return nil, domain.ErrNotFound
	}
	if tenantOrgID > 0 && renter.TenantOrgID != tenantOrgID {
		return nil, domain.ErrForbidden
	}
	paymentDate, err := parseDate(in.PaymentDate)
	if err != nil {
		return nil, err
	}

	currency := in.Currency
	if currency == "" {
		currency = uc.fallbackCurrency
	}
	number := in.PaymentNumber
	if number == "" {
		number = fmt.Sprintf("PAY-%s", uuid.NewString()[:8])
	}

	now := time.Now()
	payment := &entity.Payment{
		TenantOrgID:   renter.TenantOrgID,
		PaymentNumber: number,
		RenterID:      renter.ID,
		PaymentDate:   paymentDate,
		Amount:        in.Amount,
		Currency:      currency,
		MethodName:    in.MethodName,
		ReferenceNo:   in.ReferenceNo,
		Status:        entity.PaymentStatusReceived,
		Notes:         in.Notes,
		CreatedBy:     userID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	var allocations []*entity.PaymentAllocation

	err = uc.txRunner.RunBilling(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		paymentRepo repository.PaymentRepository,
		_ repository.FxRepository,
		ledgerRepo repository.LedgerRepository,
	) error {
		if err := paymentRepo.Create(payment); err != nil {
			return err
		}
		// Asiento crédito a tasa 1.0: los pagos no se revalúan.
		if err := ledgerRepo.Create(&entity.LedgerEntry{
			TenantOrgID:   payment.TenantOrgID,
			ReferenceType: entity.LedgerRefPayment,
			ReferenceID:   payment.ID,
			PostingDate:   paymentDate,
			TxnCurrency:   currency,
			TxnAmount:     payment.Amount,
			BaseCurrency:  currency,
			BaseAmount:    payment.Amount,
			FxRate:        domainbilling.RateOne,
			EntrySide:     entity.EntrySideCredit,
			Notes:         "Pago " + payment.PaymentNumber,
			CreatedBy:     userID,
			CreatedAt:     now,
		}); err != nil {
			return err
		}

		for _, a := range in.Allocations {
			if a.InvoiceID == 0 || !a.Amount.IsPositive() {
				return domain.ErrInvalidInput
			}
			inv, err := invoiceRepo.GetByID(tenantOrgID, a.InvoiceID)
			if err != nil {
				return err
			}
			if inv == nil {
				return domain.ErrNotFound
			}
			if inv.InvoiceStatus == entity.InvoiceStatusVoided {
				return domain.ErrInvalidStatus
			}
			alloc := &entity.PaymentAllocation{
				PaymentID:       payment.ID,
				InvoiceID:       inv.ID,
				AllocatedAmount: a.Amount,
				Currency:        currency,
				CreatedAt:       now,
			}
			if err := paymentRepo.CreateAllocation(alloc); err != nil {
				return err
			}
			allocations = append(allocations, alloc)

			// Re-derivar el estado de pago desde el agregado completo.
			allocated, err := paymentRepo.SumAllocatedByInvoice(inv.ID)
			if err != nil {
				return err
			}
			if status := domainbilling.InvoicePaidStatus(allocated, inv.TotalAmount); status != "" {
				if err := invoiceRepo.UpdateStatus(inv.ID, status); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := toPaymentResponse(payment)
	resp.Allocations = toAllocationResponses(allocations)
	return resp, nil
}

// GetPayment devuelve el pago con sus asignaciones.
func (uc *PaymentUseCase) GetPayment(tenantOrgID, id int64) (*dto.PaymentResponse, error) {
	payment, err := uc.paymentRepo.GetByID(tenantOrgID, id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, domain.ErrNotFound
	}
	allocations, err := uc.paymentRepo.GetAllocationsByPaymentID(payment.ID)
	if err != nil {
		return nil, err
	}
	resp := toPaymentResponse(payment)
	resp.Allocations = toAllocationResponses(allocations)
	return resp, nil
}

// ListPayments lista pagos de la organización.
func (uc *PaymentUseCase) ListPayments(tenantOrgID, renterID int64, page dto.PageRequest) (*dto.PaymentListResponse, error) {
	page.DefaultPage()
	payments, total, err := uc.paymentRepo.List(tenantOrgID, renterID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PaymentResponse, 0, len(payments))
	for _, pay := range payments {
		items = append(items, *toPaymentResponse(pay))
	}
	return &dto.PaymentListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// VoidPayment anula un pago recibido. Las facturas que quedaron en Paid por este
// pago vuelven a Posted; las PartiallyPaid no se recalculan aquí.
//
// TODO: re-ejecutar la recomputación agregada también para facturas PartiallyPaid
// con varios pagos cuando uno se anula; hoy solo se revierte el estado Paid.
func (uc *PaymentUseCase) VoidPayment(ctx context.Context, tenantOrgID, id int64) (*dto.PaymentResponse, error) {
	payment, err := uc.paymentRepo.GetByID(tenantOrgID, id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, domain.ErrNotFound
	}
	if payment.Status != entity.PaymentStatusReceived {
		return nil, domain.ErrInvalidStatus
	}
	allocations, err := uc.paymentRepo.GetAllocationsByPaymentID(payment.ID)
	if err != nil {
		return nil, err
	}

	err = uc.txRunner.RunBilling(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		paymentRepo repository.PaymentRepository,
		_ repository.FxRepository,
		_ repository.LedgerRepository,
	) error {
		if err := paymentRepo.UpdateStatus(payment.ID, entity.PaymentStatusVoided); err != nil {
			return err
		}
		for _, a := range allocations {
			inv, err := invoiceRepo.GetByID(tenantOrgID, a.InvoiceID)
			if err != nil || inv == nil {
				continue
			}
			if inv.InvoiceStatus == entity.InvoiceStatusPaid {
				if err := invoiceRepo.UpdateStatus(inv.ID, entity.InvoiceStatusPosted); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	payment.Status = entity.PaymentStatusVoided
	resp := toPaymentResponse(payment)
	resp.Allocations = toAllocationResponses(allocations)
	return resp, nil
}

func toPaymentResponse(p *entity.Payment) *dto.PaymentResponse {
	return &dto.PaymentResponse{
		ID:            p.ID,
		PaymentNumber: p.PaymentNumber,
		RenterID:      p.RenterID,
		PaymentDate:   formatDate(p.PaymentDate),
		Amount:        p.Amount,
		Currency:      p.Currency,
		MethodName:    p.MethodName,
		ReferenceNo:   p.ReferenceNo,
		Status:        p.Status,
		Notes:         p.Notes,
		CreatedAt:     p.CreatedAt,
	}
}

func toAllocationResponses(allocations []*entity.PaymentAllocation) []dto.AllocationResponse {
	out := make([]dto.AllocationResponse, 0, len(allocations))
	for _, a := range allocations {
		out = append(out, dto.AllocationResponse{
			ID:              a.ID,
			InvoiceID:       a.InvoiceID,
			AllocatedAmount: a.AllocatedAmount,
			Currency:        a.Currency,
		})
	}
	return out
}
