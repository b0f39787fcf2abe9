package entity

import "time"

// MaintenanceRequest solicitud de mantenimiento reportada sobre un inmueble o unidad.
type MaintenanceRequest struct {
	ID            int64
	TenantOrgID   int64
	RequestNumber string
	PropertyID    int64
	UnitID        int64
	RenterID      int64
	ReportedBy    string
	Channel       string // Portal, Phone, Email
	Description   string
	Category      string // Plumbing, Electrical, HVAC, General
	Priority      string // P1..P4
	Status        string // New, Assigned, InProgress, Completed, Cancelled
	ReportedAt    time.Time
	CompletedAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
