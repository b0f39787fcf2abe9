package repository

import "github.com/tu-usuario/propiedades-pro/internal/domain/entity"

// RenterRepository puerto de persistencia para inquilinos (arrendatarios).
type RenterRepository interface {
	Create(r *entity.Renter) error
	GetByID(id int64) (*entity.Renter, error)
	GetByCode(tenantOrgID int64, code string) (*entity.Renter, error)
	List(tenantOrgID int64, limit, offset int) ([]*entity.Renter, error)
}

// OwnerRepository puerto de persistencia para propietarios.
type OwnerRepository interface {
	Create(o *entity.Owner) error
	GetByID(id int64) (*entity.Owner, error)
	GetByCode(tenantOrgID int64, code string) (*entity.Owner, error)
	List(tenantOrgID int64, limit, offset int) ([]*entity.Owner, error)
}

// VendorRepository puerto de persistencia para proveedores.
type VendorRepository interface {
	Create(v *entity.Vendor) error
	GetByID(id int64) (*entity.Vendor, error)
	GetByCode(tenantOrgID int64, code string) (*entity.Vendor, error)
	List(tenantOrgID int64, limit, offset int) ([]*entity.Vendor, error)
}

// StaffRepository puerto de persistencia para empleados internos.
type StaffRepository interface {
	Create(s *entity.StaffUser) error
	GetByID(id int64) (*entity.StaffUser, error)
	GetByCode(tenantOrgID int64, employeeCode string) (*entity.StaffUser, error)
	List(tenantOrgID int64, limit, offset int) ([]*entity.StaffUser, error)
}
