package dto

import "time"

// LoginRequest credenciales de inicio de sesión.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token emitido + usuario autenticado.
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        UserResponse `json:"user"`
}

// ProfileRequest datos del perfil de dominio ligado a la cuenta según el rol.
// Struct explícito con campos permitidos: las claves desconocidas del JSON se
// descartan en el decode y el resto se valida aquí, nunca con asignación dinámica.
type ProfileRequest struct {
	// Inquilino
	RenterCode string `json:"tenant_code,omitempty"`
	RenterType string `json:"tenant_type,omitempty"`
	// Propietario
	OwnerCode string `json:"owner_code,omitempty"`
	OwnerType string `json:"owner_type,omitempty"`
	// Proveedor
	VendorCode      string `json:"vendor_code,omitempty"`
	ContactPerson   string `json:"contact_person,omitempty"`
	ServiceCategory string `json:"service_category,omitempty"`
	LicenseNumber   string `json:"license_number,omitempty"`
	// Empleado
	EmployeeCode string `json:"employee_code,omitempty"`
	Department   string `json:"department,omitempty"`
	// Comunes
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	CompanyName string `json:"company_name,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	IDType      string `json:"id_type,omitempty"`
	IDNumber    string `json:"id_number,omitempty"`
	TaxID       string `json:"tax_id,omitempty"`
}

// RegisterRequest alta de cuenta. El perfil crea (o liga) la entidad de dominio
// correspondiente al rol: tenant→Renter, owner→Owner, vendor→Vendor, staff→StaffUser.
type RegisterRequest struct {
	Username         string          `json:"username" validate:"required,min=3,max=50"`
	Email            string          `json:"email" validate:"required,email"`
	Password         string          `json:"password" validate:"required,min=8"`
	FullName         string          `json:"full_name"`
	RoleID           int64           `json:"role_id" validate:"required,gt=0"`
	TenantOrgID      *int64          `json:"tenant_org_id"`
	LinkedEntityType string          `json:"linked_entity_type"`
	LinkedEntityID   int64           `json:"linked_entity_id"`
	Profile          *ProfileRequest `json:"profile"`
}

// UserResponse representación pública de una cuenta.
type UserResponse struct {
	ID               int64      `json:"id"`
	Username         string     `json:"username"`
	Email            string     `json:"email"`
	FullName         string     `json:"full_name"`
	RoleID           int64      `json:"role_id"`
	RoleName         string     `json:"role_name,omitempty"`
	TenantOrgID      int64      `json:"tenant_org_id,omitempty"`
	LinkedEntityType string     `json:"linked_entity_type,omitempty"`
	IsActive         bool       `json:"is_active"`
	LastLoginAt      *time.Time `json:"last_login_at,omitempty"`
	AvatarURL        string     `json:"avatar_url,omitempty"`
}

// UserUpdateRequest actualización parcial con lista blanca explícita de campos.
// Los punteros distinguen "no enviado" de "enviar vacío". Cambiar role_id está
// bloqueado para preservar los registros ligados al rol.
type UserUpdateRequest struct {
	Username  *string `json:"username" validate:"omitempty,min=3,max=50"`
	Email     *string `json:"email" validate:"omitempty,email"`
	FullName  *string `json:"full_name"`
	AvatarURL *string `json:"avatar_url"`
	IsActive  *bool   `json:"is_active"`
	RoleID    *int64  `json:"role_id"` // siempre rechazado si difiere del actual
}

// RoleResponse representación de un rol con su mapa de permisos.
type RoleResponse struct {
	ID          int64           `json:"id"`
	RoleName    string          `json:"role_name"`
	Description string          `json:"description"`
	Permissions map[string]bool `json:"permissions"`
	IsSystem    bool            `json:"is_system"`
	IsActive    bool            `json:"is_active"`
}

// RoleUpdateRequest solo permissions, description e is_active son mutables.
// Permissions acepta mapa o lista (se normaliza en el caso de uso).
type RoleUpdateRequest struct {
	Permissions interface{} `json:"permissions"`
	Description *string     `json:"description"`
	IsActive    *bool       `json:"is_active"`
}
