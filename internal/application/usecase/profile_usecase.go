package usecase

import (
	"github.com/tu-usuario/propiedades-pro/internal/application/dto"
	"github.com/tu-usuario/propiedades-pro/internal/domain/repository"
)

// ProfileUseCase listados de los perfiles de negocio ligados a cuentas
// (inquilinos, propietarios, proveedores y empleados). El alta de perfiles
// ocurre en el registro de cuentas, no aquí.
type ProfileUseCase struct {
	renterRepo repository.RenterRepository
	ownerRepo  repository.OwnerRepository
	vendorRepo repository.VendorRepository
	staffRepo  repository.StaffRepository
}

// NewProfileUseCase construye el caso de uso.
func NewProfileUseCase(
	renterRepo repository.RenterRepository,
	ownerRepo repository.OwnerRepository,
	vendorRepo repository.VendorRepository,
	staffRepo repository.StaffRepository,
) *ProfileUseCase {
	return &ProfileUseCase{
		renterRepo: renterRepo,
		ownerRepo:  ownerRepo,
		vendorRepo: vendorRepo,
		staffRepo:  staffRepo,
	}
}

// ListRenters lista inquilinos de la organización.
func (uc *ProfileUseCase) ListRenters(tenantOrgID int64, page dto.PageRequest) (*dto.RenterListResponse, error) {
	page.DefaultPage()
	renters, err := uc.renterRepo.List(tenantOrgID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.RenterResponse, 0, len(renters))
	for _, r := range renters {
		items = append(items, dto.RenterResponse{
			ID:          r.ID,
			TenantOrgID: r.TenantOrgID,
			RenterCode:  r.RenterCode,
			RenterType:  r.RenterType,
			FirstName:   r.FirstName,
			LastName:    r.LastName,
			CompanyName: r.CompanyName,
			Email:       r.Email,
			Phone:       r.Phone,
			Status:      r.Status,
		})
	}
	return &dto.RenterListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// ListOwners lista propietarios de la organización.
func (uc *ProfileUseCase) ListOwners(tenantOrgID int64, page dto.PageRequest) (*dto.OwnerListResponse, error) {
	page.DefaultPage()
	owners, err := uc.ownerRepo.List(tenantOrgID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OwnerResponse, 0, len(owners))
	for _, o := range owners {
		items = append(items, dto.OwnerResponse{
			ID:          o.ID,
			TenantOrgID: o.TenantOrgID,
			OwnerCode:   o.OwnerCode,
			OwnerType:   o.OwnerType,
			FirstName:   o.FirstName,
			LastName:    o.LastName,
			CompanyName: o.CompanyName,
			Email:       o.Email,
			Phone:       o.Phone,
			TaxID:       o.TaxID,
			Status:      o.Status,
		})
	}
	return &dto.OwnerListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// ListVendors lista proveedores de la organización.
func (uc *ProfileUseCase) ListVendors(tenantOrgID int64, page dto.PageRequest) (*dto.VendorListResponse, error) {
	page.DefaultPage()
	vendors, err := uc.vendorRepo.List(tenantOrgID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.VendorResponse, 0, len(vendors))
	for _, v := range vendors {
		items = append(items, dto.VendorResponse{
			ID:              v.ID,
			TenantOrgID:     v.TenantOrgID,
			VendorCode:      v.VendorCode,
			CompanyName:     v.CompanyName,
			ContactPerson:   v.ContactPerson,
			Email:           v.Email,
			Phone:           v.Phone,
			ServiceCategory: v.ServiceCategory,
			LicenseNumber:   v.LicenseNumber,
			Status:          v.Status,
		})
	}
	return &dto.VendorListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// ListStaff lista empleados de la organización.
func (uc *ProfileUseCase) ListStaff(tenantOrgID int64, page dto.PageRequest) (*dto.StaffListResponse, error) {
	page.DefaultPage()
	staff, err := uc.staffRepo.List(tenantOrgID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StaffResponse, 0, len(staff))
	for _, s := range staff {
		items = append(items, dto.StaffResponse{
			ID:           s.ID,
			TenantOrgID:  s.TenantOrgID,
			EmployeeCode: s.EmployeeCode,
			FirstName:    s.FirstName,
			LastName:     s.LastName,
			Email:        s.Email,
			Phone:        s.Phone,
			RoleID:       s.RoleID,
			Department:   s.Department,
			Status:       s.Status,
		})
	}
	return &dto.StaffListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}
