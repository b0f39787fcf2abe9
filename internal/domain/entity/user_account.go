package entity

import "time"

// Tipos de entidad de dominio a los que puede ligarse una cuenta.
const (
	LinkedEntityRenter = "Tenant" // inquilino (arrendatario)
	LinkedEntityOwner  = "Owner"
	LinkedEntityVendor = "Vendor"
	LinkedEntityStaff  = "Staff"
)

// BootstrapUsername cuenta de arranque del sistema; nunca se elimina físicamente.
const BootstrapUsername = "admin"

// UserAccount es el principal autenticable del sistema.
type UserAccount struct {
	ID               int64
	Username         string
	Email            string
	PasswordHash     string // pbkdf2/bcrypt hash, nunca plano después de persistir
	FullName         string
	RoleID           int64
	TenantOrgID      int64  // 0 = sin organización (cuenta global)
	LinkedEntityType string // Tenant, Owner, Vendor, Staff o vacío
	LinkedEntityID   int64
	AvatarURL        string
	IsActive         bool
	LastLoginAt      *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
