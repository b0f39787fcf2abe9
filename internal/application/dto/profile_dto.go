package dto

// RenterResponse inquilino facturable ("tenant" en la API).
type RenterResponse struct {
	ID          int64  `json:"id"`
	TenantOrgID int64  `json:"tenant_org_id"`
	RenterCode  string `json:"tenant_code"`
	RenterType  string `json:"tenant_type"`
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	CompanyName string `json:"company_name,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Status      string `json:"status"`
}

// RenterListResponse página de inquilinos.
type RenterListResponse struct {
	Items []RenterResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}

// OwnerResponse propietario de inmuebles administrados.
type OwnerResponse struct {
	ID          int64  `json:"id"`
	TenantOrgID int64  `json:"tenant_org_id"`
	OwnerCode   string `json:"owner_code"`
	OwnerType   string `json:"owner_type"`
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	CompanyName string `json:"company_name,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	TaxID       string `json:"tax_id,omitempty"`
	Status      string `json:"status"`
}

// OwnerListResponse página de propietarios.
type OwnerListResponse struct {
	Items []OwnerResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// VendorResponse proveedor de servicios.
type VendorResponse struct {
	ID              int64  `json:"id"`
	TenantOrgID     int64  `json:"tenant_org_id"`
	VendorCode      string `json:"vendor_code"`
	CompanyName     string `json:"company_name"`
	ContactPerson   string `json:"contact_person,omitempty"`
	Email           string `json:"email,omitempty"`
	Phone           string `json:"phone,omitempty"`
	ServiceCategory string `json:"service_category,omitempty"`
	LicenseNumber   string `json:"license_number,omitempty"`
	Status          string `json:"status"`
}

// VendorListResponse página de proveedores.
type VendorListResponse struct {
	Items []VendorResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}

// StaffResponse empleado interno ligado a una cuenta de sistema.
type StaffResponse struct {
	ID           int64  `json:"id"`
	TenantOrgID  int64  `json:"tenant_org_id"`
	EmployeeCode string `json:"employee_code"`
	FirstName    string `json:"first_name,omitempty"`
	LastName     string `json:"last_name,omitempty"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	RoleID       int64  `json:"role_id"`
	Department   string `json:"department,omitempty"`
	Status       string `json:"status"`
}

// StaffListResponse página de empleados.
type StaffListResponse struct {
	Items []StaffResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
