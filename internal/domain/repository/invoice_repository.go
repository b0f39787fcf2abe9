package repository

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/propiedades-pro/internal/domain/entity"
)

// InvoiceFilter filtros del listado de facturas.
type InvoiceFilter struct {
	TenantOrgID int64 // 0 = sin filtro de organización (cuenta global)
	Status      string
	RenterID    int64
	Limit       int
	Offset      int
}

// InvoiceRepository define el puerto de persistencia para Invoice y sus líneas.
type InvoiceRepository interface {
	Create(inv *entity.Invoice) error
	CreateLine(line *entity.InvoiceLine) error
	GetByID(tenantOrgID, id int64) (*entity.Invoice, error)
	GetLinesByInvoiceID(invoiceID int64) ([]*entity.InvoiceLine, error)
	// Update persiste los campos mutables de la cabecera (fechas, montos,
	// valuación FX, estado, notas); id y created_at son inmutables.
	Update(inv *entity.Invoice) error
	UpdateStatus(id int64, status string) error
	List(f InvoiceFilter) ([]*entity.Invoice, int64, error)
}

// PaymentRepository define el puerto de persistencia para Payment y asignaciones.
type PaymentRepository interface {
	Create(p *entity.Payment) error
	CreateAllocation(a *entity.PaymentAllocation) error
	GetByID(tenantOrgID, id int64) (*entity.Payment, error)
	GetAllocationsByPaymentID(paymentID int64) ([]*entity.PaymentAllocation, error)
	UpdateStatus(id int64, status string) error
	List(tenantOrgID, renterID int64, limit, offset int) ([]*entity.Payment, int64, error)
	// SumAllocatedByInvoice suma TODAS las asignaciones existentes de una factura.
	// El estado de pago se re-deriva siempre de este agregado.
	SumAllocatedByInvoice(invoiceID int64) (decimal.Decimal, error)
}
