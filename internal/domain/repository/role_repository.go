package repository

import "github.com/tu-usuario/propiedades-pro/internal/domain/entity"

// RoleRepository define el puerto de persistencia para Role.
type RoleRepository interface {
	GetByID(id int64) (*entity.Role, error)
	// GetActiveByID devuelve solo roles con is_active=true; nil si no existe o está inactivo.
	GetActiveByID(id int64) (*entity.Role, error)
	List() ([]*entity.Role, error)
	// Update persiste permissions, description e is_active; el resto es inmutable.
	Update(role *entity.Role) error
}
