package billing

import (
	"fmt"

	"github.com/tu-usuario/propiedades-pro/internal/domain"
	"github.com/tu-usuario/propiedades-pro/internal/domain/entity"
	"github.com/tu-usuario/propiedades-pro/internal/domain/repository"
)

// PDFUseCase genera la representación gráfica (PDF) de una factura de arriendo.
// Facturas anuladas no se imprimen.
type PDFUseCase struct {
	invoiceRepo repository.InvoiceRepository
	renterRepo  repository.RenterRepository
	orgRepo     repository.OrgRepository
	generator   InvoicePDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias.
func NewPDFUseCase(
	invoiceRepo repository.InvoiceRepository,
	renterRepo repository.RenterRepository,
	orgRepo repository.OrgRepository,
	generator InvoicePDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		invoiceRepo: invoiceRepo,
		renterRepo:  renterRepo,
		orgRepo:     orgRepo,
		generator:   generator,
	}
}

// DownloadInvoicePDF recupera factura, líneas, inquilino y organización y genera
// el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si la factura no existe en la organización.
//   - domain.ErrInvalidStatus    si la factura está anulada.
func (uc *PDFUseCase) DownloadInvoicePDF(tenantOrgID, invoiceID int64) (pdfBytes []byte, filename string, err error) {
	inv, err := uc.invoiceRepo.GetByID(tenantOrgID, invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener factura: %w", err)
	}
	if inv == nil {
		return nil, "", domain.ErrNotFound
	}
	if inv.InvoiceStatus == entity.InvoiceStatusVoided {
		return nil, "", domain.ErrInvalidStatus
	}

	lines, err := uc.invoiceRepo.GetLinesByInvoiceID(inv.ID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener líneas: %w", err)
	}
	renter, err := uc.renterRepo.GetByID(inv.RenterID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener inquilino: %w", err)
	}
	org, err := uc.orgRepo.GetByID(inv.TenantOrgID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener organización: %w", err)
	}

	pdfBytes, err = uc.generator.RenderInvoice(inv, lines, renter, org)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: renderizar: %w", err)
	}
	return pdfBytes, fmt.Sprintf("factura_%s.pdf", inv.InvoiceNumber), nil
}
