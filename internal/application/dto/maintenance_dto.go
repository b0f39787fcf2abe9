package dto

import "time"

// CreateMaintenanceRequest alta de solicitud de mantenimiento.
type CreateMaintenanceRequest struct {
	PropertyID  int64  `json:"property_id" validate:"required,gt=0"`
	UnitID      int64  `json:"unit_id"`
	RenterID    int64  `json:"tenant_id"`
	ReportedBy  string `json:"reported_by"`
	Channel     string `json:"channel" validate:"omitempty,oneof=Portal Phone Email"`
	Description string `json:"description" validate:"required"`
	Category    string `json:"category"`
	Priority    string `json:"priority" validate:"omitempty,oneof=P1 P2 P3 P4"`
}

// MaintenanceUpdateRequest actualización parcial de solicitud.
type MaintenanceUpdateRequest struct {
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Priority    *string `json:"priority" validate:"omitempty,oneof=P1 P2 P3 P4"`
	Status      *string `json:"status" validate:"omitempty,oneof=New Assigned InProgress Completed Cancelled"`
}

// MaintenanceResponse representación de una solicitud.
type MaintenanceResponse struct {
	ID            int64      `json:"id"`
	RequestNumber string     `json:"request_number"`
	PropertyID    int64      `json:"property_id"`
	UnitID        int64      `json:"unit_id,omitempty"`
	RenterID      int64      `json:"tenant_id,omitempty"`
	ReportedBy    string     `json:"reported_by,omitempty"`
	Channel       string     `json:"channel"`
	Description   string     `json:"description"`
	Category      string     `json:"category"`
	Priority      string     `json:"priority"`
	Status        string     `json:"status"`
	ReportedAt    time.Time  `json:"reported_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}

// MaintenanceListResponse listado paginado de solicitudes.
type MaintenanceListResponse struct {
	Items []MaintenanceResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}
