package repository

import "github.com/tu-usuario/propiedades-pro/internal/domain/entity"

// PropertyRepository define el puerto de persistencia para Property.
type PropertyRepository interface {
	Create(p *entity.Property) error
	GetByID(tenantOrgID, id int64) (*entity.Property, error)
	Update(p *entity.Property) error
	List(tenantOrgID int64, status string, limit, offset int) ([]*entity.Property, int64, error)
}

// UnitRepository define el puerto de persistencia para Unit.
type UnitRepository interface {
	Create(u *entity.Unit) error
	GetByID(tenantOrgID, id int64) (*entity.Unit, error)
	Update(u *entity.Unit) error
	ListByProperty(tenantOrgID, propertyID int64, limit, offset int) ([]*entity.Unit, int64, error)
}
