package dto

import "time"

// CreateOrgRequest alta de organización administradora.
type CreateOrgRequest struct {
	OrgCode   string `json:"org_code" validate:"required,max=30"`
	OrgName   string `json:"org_name" validate:"required,max=200"`
	LegalName string `json:"legal_name"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone"`
}

// OrgResponse representación de una organización.
type OrgResponse struct {
	ID        int64     `json:"id"`
	OrgCode   string    `json:"org_code"`
	OrgName   string    `json:"org_name"`
	LegalName string    `json:"legal_name,omitempty"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// OrgListResponse listado paginado de organizaciones.
type OrgListResponse struct {
	Items []OrgResponse `json:"items"`
	Page  PageResponse  `json:"page"`
}

// OrgSettingsResponse configuración contable/regional de la organización.
type OrgSettingsResponse struct {
	TenantOrgID          int64  `json:"tenant_org_id"`
	BaseCurrency         string `json:"base_currency"`
	CountryCode          string `json:"country_code,omitempty"`
	Timezone             string `json:"timezone"`
	Locale               string `json:"locale"`
	FiscalYearStartMonth int    `json:"fiscal_year_start_month"`
	TaxInclusive         bool   `json:"tax_inclusive"`
}

// OrgSettingsUpdateRequest actualización de configuración (lista blanca con punteros).
type OrgSettingsUpdateRequest struct {
	BaseCurrency         *string `json:"base_currency" validate:"omitempty,len=3"`
	CountryCode          *string `json:"country_code" validate:"omitempty,len=2"`
	Timezone             *string `json:"timezone"`
	Locale               *string `json:"locale"`
	FiscalYearStartMonth *int    `json:"fiscal_year_start_month" validate:"omitempty,min=1,max=12"`
	TaxInclusive         *bool   `json:"tax_inclusive"`
}
