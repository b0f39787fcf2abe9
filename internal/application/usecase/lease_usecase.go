package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/propiedades-pro/internal/application/dto"
	"github.com/tu-usuario/propiedades-pro/internal/domain"
	"github.com/tu-usuario/propiedades-pro/internal/domain/entity"
	"github.com/tu-usuario/propiedades-pro/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// LeaseUseCase administra contratos de arriendo.
type LeaseUseCase struct {
	leaseRepo    repository.LeaseRepository
	propertyRepo repository.PropertyRepository
	unitRepo     repository.UnitRepository
	renterRepo   repository.RenterRepository
}

// NewLeaseUseCase construye el caso de uso.
func NewLeaseUseCase(
	leaseRepo repository.LeaseRepository,
	propertyRepo repository.PropertyRepository,
	unitRepo repository.UnitRepository,
	renterRepo repository.RenterRepository,
) *LeaseUseCase {
	return &LeaseUseCase{
		leaseRepo:    leaseRepo,
		propertyRepo: propertyRepo,
		unitRepo:     unitRepo,
		renterRepo:   renterRepo,
	}
}

// CreateLease crea el contrato en Draft y marca la unidad como ocupada.
func (uc *LeaseUseCase) CreateLease(tenantOrgID int64, in dto.CreateLeaseRequest) (*dto.LeaseResponse, error) {
	property, err := uc.propertyRepo.GetByID(tenantOrgID, in.PropertyID)
	if err != nil {
		return nil, err
	}
	if property == nil {
		return nil, domain.ErrNotFound
	}
	unit, err := uc.unitRepo.GetByID(tenantOrgID, in.UnitID)
	if err != nil {
		return nil, err
	}
	if unit == nil || unit.PropertyID != property.ID {
		return nil, domain.ErrNotFound
	}
	renter, err := uc.renterRepo.GetByID(in.RenterID)
	if err != nil {
		return nil, err
	}
	if renter == nil || renter.TenantOrgID != property.TenantOrgID {
		return nil, domain.ErrNotFound
	}

	start, err := time.Parse(dateLayout, in.StartDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	end, err := time.Parse(dateLayout, in.EndDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	if !end.After(start) {
		return nil, domain.ErrInvalidInput
	}
	if !in.RentAmount.IsPositive() {
		return nil, domain.ErrInvalidInput
	}

	number := in.LeaseNumber
	if number == "" {
		number = fmt.Sprintf("LSE-%s", uuid.NewString()[:8])
	}
	currency := in.RentCurrency
	if currency == "" {
		currency = unit.RentCurrency
	}
	billingDay := in.BillingDay
	if billingDay == 0 {
		billingDay = 1
	}

	now := time.Now()
	lease := &entity.Lease{
		TenantOrgID:     property.TenantOrgID,
		LeaseNumber:     number,
		PropertyID:      property.ID,
		UnitID:          unit.ID,
		RenterID:        renter.ID,
		StartDate:       start,
		EndDate:         end,
		RentAmount:      in.RentAmount,
		RentCurrency:    currency,
		DepositAmount:   in.DepositAmount,
		BillingDay:      billingDay,
		PaymentTermDays: in.PaymentTermDays,
		Status:          entity.LeaseStatusDraft,
		Notes:           in.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.leaseRepo.Create(lease); err != nil {
		return nil, err
	}

	unit.Status = "Occupied"
	unit.UpdatedAt = now
	if err := uc.unitRepo.Update(unit); err != nil {
		return nil, err
	}

	resp := toLeaseResponse(lease)
	return &resp, nil
}

// GetLease devuelve un contrato de la organización.
func (uc *LeaseUseCase) GetLease(tenantOrgID, id int64) (*dto.LeaseResponse, error) {
	lease, err := uc.leaseRepo.GetByID(tenantOrgID, id)
	if err != nil {
		return nil, err
	}
	if lease == nil {
		return nil, domain.ErrNotFound
	}
	resp := toLeaseResponse(lease)
	return &resp, nil
}

// ListLeases lista contratos con filtros opcionales por estado e inquilino.
func (uc *LeaseUseCase) ListLeases(tenantOrgID int64, status string, renterID int64, page dto.PageRequest) (*dto.LeaseListResponse, error) {
	page.DefaultPage()
	leases, total, err := uc.leaseRepo.List(tenantOrgID, status, renterID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LeaseResponse, 0, len(leases))
	for _, l := range leases {
		items = append(items, toLeaseResponse(l))
	}
	return &dto.LeaseListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// leaseTransitions transiciones de estado permitidas de un contrato.
var leaseTransitions = map[string][]string{
	entity.LeaseStatusDraft:  {entity.LeaseStatusActive, entity.LeaseStatusTerminated},
	entity.LeaseStatusActive: {entity.LeaseStatusExpired, entity.LeaseStatusTerminated},
}

func leaseCanTransition(from, to string) bool {
	for _, allowed := range leaseTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// UpdateLease aplica la lista blanca de campos mutables; los cambios de estado
// respetan el ciclo Draft→Active→Expired/Terminated.
func (uc *LeaseUseCase) UpdateLease(tenantOrgID, id int64, in dto.LeaseUpdateRequest) (*dto.LeaseResponse, error) {
	lease, err := uc.leaseRepo.GetByID(tenantOrgID, id)
	if err != nil {
		return nil, err
	}
	if lease == nil {
		return nil, domain.ErrNotFound
	}
	if in.Status != nil && *in.Status != lease.Status {
		if !leaseCanTransition(lease.Status, *in.Status) {
			return nil, domain.ErrInvalidStatus
		}
		lease.Status = *in.Status
		// Contrato cerrado: la unidad vuelve a quedar vacante.
		if lease.Status == entity.LeaseStatusExpired || lease.Status == entity.LeaseStatusTerminated {
			if unit, err := uc.unitRepo.GetByID(tenantOrgID, lease.UnitID); err == nil && unit != nil {
				unit.Status = "Vacant"
				unit.UpdatedAt = time.Now()
				_ = uc.unitRepo.Update(unit)
			}
		}
	}
	if in.EndDate != nil {
		end, err := time.Parse(dateLayout, *in.EndDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		lease.EndDate = end
	}
	if in.RentAmount != nil {
		if !in.RentAmount.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
		lease.RentAmount = *in.RentAmount
	}
	if in.DepositAmount != nil {
		lease.DepositAmount = *in.DepositAmount
	}
	if in.BillingDay != nil {
		lease.BillingDay = *in.BillingDay
	}
	if in.PaymentTermDays != nil {
		lease.PaymentTermDays = *in.PaymentTermDays
	}
	if in.Notes != nil {
		lease.Notes = *in.Notes
	}
	lease.UpdatedAt = time.Now()
	if err := uc.leaseRepo.Update(lease); err != nil {
		return nil, err
	}
	resp := toLeaseResponse(lease)
	return &resp, nil
}

func toLeaseResponse(l *entity.Lease) dto.LeaseResponse {
	return dto.LeaseResponse{
		ID:              l.ID,
		LeaseNumber:     l.LeaseNumber,
		PropertyID:      l.PropertyID,
		UnitID:          l.UnitID,
		RenterID:        l.RenterID,
		StartDate:       l.StartDate.Format(dateLayout),
		EndDate:         l.EndDate.Format(dateLayout),
		RentAmount:      l.RentAmount,
		RentCurrency:    l.RentCurrency,
		DepositAmount:   l.DepositAmount,
		BillingDay:      l.BillingDay,
		PaymentTermDays: l.PaymentTermDays,
		Status:          l.Status,
		Notes:           l.Notes,
		CreatedAt:       l.CreatedAt,
	}
}
