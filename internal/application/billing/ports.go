package billing

import (
	"context"

	"github.com/tu-usuario/propiedades-pro/internal/domain/entity"
	"github.com/tu-usuario/propiedades-pro/internal/domain/repository"
)

// BillingTxRunner ejecuta una función dentro de una transacción que incluye los
// repos del libro. Toda operación que escribe asientos es todo-o-nada: si falla
// cualquier paso después de la primera escritura, la transacción completa se
// revierte y no queda asiento sin su entidad de negocio.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		invoiceRepo repository.InvoiceRepository,
		paymentRepo repository.PaymentRepository,
		fxRepo repository.FxRepository,
		ledgerRepo repository.LedgerRepository,
	) error) error
}

// InvoicePDFGenerator renderiza la representación imprimible de una factura.
type InvoicePDFGenerator interface {
	RenderInvoice(inv *entity.Invoice, lines []*entity.InvoiceLine, renter *entity.Renter, org *entity.TenantOrg) ([]byte, error)
}
