package repository

import "github.com/tu-usuario/propiedades-pro/internal/domain/entity"

// OrgRepository define el puerto de persistencia para TenantOrg y su configuración.
type OrgRepository interface {
	Create(org *entity.TenantOrg) error
	GetByID(id int64) (*entity.TenantOrg, error)
	// GetFirst devuelve la organización más antigua (fallback de registro inicial).
	GetFirst() (*entity.TenantOrg, error)
	List(limit, offset int) ([]*entity.TenantOrg, error)

	GetSettings(tenantOrgID int64) (*entity.OrgSettings, error)
	UpsertSettings(settings *entity.OrgSettings) error
}
