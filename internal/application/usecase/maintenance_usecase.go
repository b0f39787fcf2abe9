package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/propiedades-pro/internal/application/dto"
	"github.com/tu-usuario/propiedades-pro/internal/domain"
	"github.com/tu-usuario/propiedades-pro/internal/domain/entity"
	"github.com/tu-usuario/propiedades-pro/internal/domain/repository"
)

// MaintenanceUseCase administra solicitudes de mantenimiento.
type MaintenanceUseCase struct {
	maintenanceRepo repository.MaintenanceRepository
	propertyRepo    repository.PropertyRepository
}

// NewMaintenanceUseCase construye el caso de uso.
func NewMaintenanceUseCase(maintenanceRepo repository.MaintenanceRepository, propertyRepo repository.PropertyRepository) *MaintenanceUseCase {
	return &MaintenanceUseCase{maintenanceRepo: maintenanceRepo, propertyRepo: propertyRepo}
}

// CreateRequest registra una solicitud nueva sobre un inmueble de la organización.
func (uc *MaintenanceUseCase) CreateRequest(tenantOrgID int64, in dto.CreateMaintenanceRequest) (*dto.MaintenanceResponse, error) {
	property, err := uc.propertyRepo.GetByID(tenantOrgID, in.PropertyID)
	if err != nil {
		return nil, err
	}
	if property == nil {
		return nil, domain.ErrNotFound
	}

	priority := in.Priority
	if priority == "" {
		priority = "P3"
	}
	channel := in.Channel
	if channel == "" {
		channel = "Portal"
	}
	now := time.Now()
	m := &entity.MaintenanceRequest{
		TenantOrgID:   property.TenantOrgID,
		RequestNumber: fmt.Sprintf("MNT-%s", uuid.NewString()[:8]),
		PropertyID:    property.ID,
		UnitID:        in.UnitID,
		RenterID:      in.RenterID,
		ReportedBy:    in.ReportedBy,
		Channel:       channel,
		Description:   in.Description,
		Category:      in.Category,
		Priority:      priority,
		Status:        "New",
		ReportedAt:    now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.maintenanceRepo.Create(m); err != nil {
		return nil, err
	}
	resp := toMaintenanceResponse(m)
	return &resp, nil
}

// GetRequest devuelve una solicitud de la organización.
func (uc *MaintenanceUseCase) GetRequest(tenantOrgID, id int64) (*dto.MaintenanceResponse, error) {
	m, err := uc.maintenanceRepo.GetByID(tenantOrgID, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	resp := toMaintenanceResponse(m)
	return &resp, nil
}

// ListRequests lista solicitudes con filtros opcionales.
func (uc *MaintenanceUseCase) ListRequests(tenantOrgID int64, status string, propertyID int64, page dto.PageRequest) (*dto.MaintenanceListResponse, error) {
	page.DefaultPage()
	requests, total, err := uc.maintenanceRepo.List(tenantOrgID, status, propertyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MaintenanceResponse, 0, len(requests))
	for _, m := range requests {
		items = append(items, toMaintenanceResponse(m))
	}
	return &dto.MaintenanceListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// UpdateRequest aplica la lista blanca de campos; al pasar a Completed se sella
// completed_at una sola vez.
func (uc *MaintenanceUseCase) UpdateRequest(tenantOrgID, id int64, in dto.MaintenanceUpdateRequest) (*dto.MaintenanceResponse, error) {
	m, err := uc.maintenanceRepo.GetByID(tenantOrgID, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	if in.Description != nil {
		m.Description = *in.Description
	}
	if in.Category != nil {
		m.Category = *in.Category
	}
	if in.Priority != nil {
		m.Priority = *in.Priority
	}
	if in.Status != nil && *in.Status != m.Status {
		if m.Status == "Completed" || m.Status == "Cancelled" {
			return nil, domain.ErrInvalidStatus
		}
		m.Status = *in.Status
		if m.Status == "Completed" && m.CompletedAt == nil {
			now := time.Now()
			m.CompletedAt = &now
		}
	}
	m.UpdatedAt = time.Now()
	if err := uc.maintenanceRepo.Update(m); err != nil {
		return nil, err
	}
	resp := toMaintenanceResponse(m)
	return &resp, nil
}

func toMaintenanceResponse(m *entity.MaintenanceRequest) dto.MaintenanceResponse {
	return dto.MaintenanceResponse{
		ID:            m.ID,
		RequestNumber: m.RequestNumber,
		PropertyID:    m.PropertyID,
		UnitID:        m.UnitID,
		RenterID:      m.RenterID,
		ReportedBy:    m.ReportedBy,
		Channel:       m.Channel,
		Description:   m.Description,
		Category:      m.Category,
		Priority:      m.Priority,
		Status:        m.Status,
		ReportedAt:    m.ReportedAt,
		CompletedAt:   m.CompletedAt,
	}
}
