package repository

import "github.com/tu-usuario/propiedades-pro/internal/domain/entity"

// LeaseRepository define el puerto de persistencia para Lease.
type LeaseRepository interface {
	Create(l *entity.Lease) error
	GetByID(tenantOrgID, id int64) (*entity.Lease, error)
	Update(l *entity.Lease) error
	List(tenantOrgID int64, status string, renterID int64, limit, offset int) ([]*entity.Lease, int64, error)
}

// MaintenanceRepository define el puerto de persistencia para MaintenanceRequest.
type MaintenanceRepository interface {
	Create(m *entity.MaintenanceRequest) error
	GetByID(tenantOrgID, id int64) (*entity.MaintenanceRequest, error)
	Update(m *entity.MaintenanceRequest) error
	List(tenantOrgID int64, status string, propertyID int64, limit, offset int) ([]*entity.MaintenanceRequest, int64, error)
}
