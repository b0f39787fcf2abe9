package usecase

import (
	"time"

	"github.com/tu-usuario/propiedades-pro/internal/application/dto"
	"github.com/tu-usuario/propiedades-pro/internal/domain"
	"github.com/tu-usuario/propiedades-pro/internal/domain/entity"
	"github.com/tu-usuario/propiedades-pro/internal/domain/repository"
)

// OrgUseCase administra organizaciones y su configuración contable/regional.
type OrgUseCase struct {
	orgRepo      repository.OrgRepository
	fallbackBase string
}

// NewOrgUseCase construye el caso de uso. fallbackBase es la moneda base por
// defecto de organizaciones nuevas.
func NewOrgUseCase(orgRepo repository.OrgRepository, fallbackBase string) *OrgUseCase {
	return &OrgUseCase{orgRepo: orgRepo, fallbackBase: fallbackBase}
}

// CreateOrg crea la organización con su configuración por defecto.
func (uc *OrgUseCase) CreateOrg(in dto.CreateOrgRequest) (*dto.OrgResponse, error) {
	now := time.Now()
	org := &entity.TenantOrg{
		OrgCode:   in.OrgCode,
		OrgName:   in.OrgName,
		LegalName: in.LegalName,
		Email:     in.Email,
		Phone:     in.Phone,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.orgRepo.Create(org); err != nil {
		return nil, err
	}
	if err := uc.orgRepo.UpsertSettings(&entity.OrgSettings{
		TenantOrgID:          org.ID,
		BaseCurrency:         uc.fallbackBase,
		Timezone:             "UTC",
		Locale:               "es",
		FiscalYearStartMonth: 1,
		CreatedAt:            now,
		UpdatedAt:            now,
	}); err != nil {
		return nil, err
	}
	resp := toOrgResponse(org)
	return &resp, nil
}

// GetOrg devuelve una organización por ID.
func (uc *OrgUseCase) GetOrg(id int64) (*dto.OrgResponse, error) {
	org, err := uc.orgRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, domain.ErrNotFound
	}
	resp := toOrgResponse(org)
	return &resp, nil
}

// ListOrgs lista organizaciones.
func (uc *OrgUseCase) ListOrgs(page dto.PageRequest) (*dto.OrgListResponse, error) {
	page.DefaultPage()
	orgs, err := uc.orgRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrgResponse, 0, len(orgs))
	for _, org := range orgs {
		items = append(items, toOrgResponse(org))
	}
	return &dto.OrgListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: int64(len(items))},
	}, nil
}

// GetSettings devuelve la configuración de la organización.
func (uc *OrgUseCase) GetSettings(tenantOrgID int64) (*dto.OrgSettingsResponse, error) {
	settings, err := uc.orgRepo.GetSettings(tenantOrgID)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return nil, domain.ErrNotFound
	}
	return toSettingsResponse(settings), nil
}

// UpdateSettings aplica la lista blanca de campos de configuración.
func (uc *OrgUseCase) UpdateSettings(tenantOrgID int64, in dto.OrgSettingsUpdateRequest) (*dto.OrgSettingsResponse, error) {
	settings, err := uc.orgRepo.GetSettings(tenantOrgID)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return nil, domain.ErrNotFound
	}
	if in.BaseCurrency != nil {
		settings.BaseCurrency = *in.BaseCurrency
	}
	if in.CountryCode != nil {
		settings.CountryCode = *in.CountryCode
	}
	if in.Timezone != nil {
		settings.Timezone = *in.Timezone
	}
	if in.Locale != nil {
		settings.Locale = *in.Locale
	}
	if in.FiscalYearStartMonth != nil {
		settings.FiscalYearStartMonth = *in.FiscalYearStartMonth
	}
	if in.TaxInclusive != nil {
		settings.TaxInclusive = *in.TaxInclusive
	}
	settings.UpdatedAt = time.Now()
	if err := uc.orgRepo.UpsertSettings(settings); err != nil {
		return nil, err
	}
	return toSettingsResponse(settings), nil
}

func toOrgResponse(org *entity.TenantOrg) dto.OrgResponse {
	return dto.OrgResponse{
		ID:        org.ID,
		OrgCode:   org.OrgCode,
		OrgName:   org.OrgName,
		LegalName: org.LegalName,
		Email:     org.Email,
		Phone:     org.Phone,
		IsActive:  org.IsActive,
		CreatedAt: org.CreatedAt,
	}
}

func toSettingsResponse(s *entity.OrgSettings) *dto.OrgSettingsResponse {
	return &dto.OrgSettingsResponse{
		TenantOrgID:          s.TenantOrgID,
		BaseCurrency:         s.BaseCurrency,
		CountryCode:          s.CountryCode,
		Timezone:             s.Timezone,
		Locale:               s.Locale,
		FiscalYearStartMonth: s.FiscalYearStartMonth,
		TaxInclusive:         s.TaxInclusive,
	}
}
