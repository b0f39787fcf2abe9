package entity

import "time"

// Renter es el inquilino (arrendatario) facturable. En la API se expone como
// "tenant" siguiendo la jerga inmobiliaria; no confundir con TenantOrg.
type Renter struct {
	ID          int64
	TenantOrgID int64
	RenterCode  string
	RenterType  string // Individual | Corporate
	FirstName   string
	LastName    string
	CompanyName string
	Email       string
	Phone       string
	IDType      string
	IDNumber    string
	Status      string // Active, Inactive
	IsDeleted   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Owner propietario de inmuebles administrados.
type Owner struct {
	ID          int64
	TenantOrgID int64
	OwnerCode   string
	OwnerType   string // Individual | Corporate
	FirstName   string
	LastName    string
	CompanyName string
	Email       string
	Phone       string
	TaxID       string
	Status      string
	IsDeleted   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Vendor proveedor de servicios (mantenimiento, aseo, seguridad).
type Vendor struct {
	ID              int64
	TenantOrgID     int64
	VendorCode      string
	CompanyName     string
	ContactPerson   string
	Email           string
	Phone           string
	ServiceCategory string
	LicenseNumber   string
	Status          string
	IsDeleted       bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// StaffUser perfil de empleado interno ligado a cuentas admin/manager/accountant/support.
type StaffUser struct {
	ID           int64
	TenantOrgID  int64
	EmployeeCode string
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	RoleID       int64
	Department   string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
