package usecase

import (
	"time"

	"github.com/tu-usuario/propiedades-pro/internal/application/dto"
	"github.com/tu-usuario/propiedades-pro/internal/domain"
	"github.com/tu-usuario/propiedades-pro/internal/domain/entity"
	"github.com/tu-usuario/propiedades-pro/internal/domain/repository"
)

// PropertyUseCase administra inmuebles y sus unidades arrendables.
type PropertyUseCase struct {
	propertyRepo repository.PropertyRepository
	unitRepo     repository.UnitRepository
}

// NewPropertyUseCase construye el caso de uso.
func NewPropertyUseCase(propertyRepo repository.PropertyRepository, unitRepo repository.UnitRepository) *PropertyUseCase {
	return &PropertyUseCase{propertyRepo: propertyRepo, unitRepo: unitRepo}
}

// CreateProperty crea un inmueble de la organización.
func (uc *PropertyUseCase) CreateProperty(tenantOrgID int64, in dto.CreatePropertyRequest) (*dto.PropertyResponse, error) {
	if tenantOrgID == 0 {
		return nil, domain.ErrOrgRequired
	}
	ptype := in.PropertyType
	if ptype == "" {
		ptype = "Residential"
	}
	now := time.Now()
	p := &entity.Property{
		TenantOrgID:  tenantOrgID,
		PropertyCode: in.PropertyCode,
		PropertyName: in.PropertyName,
		PropertyType: ptype,
		AddressLine1: in.AddressLine1,
		AddressLine2: in.AddressLine2,
		City:         in.City,
		Region:       in.Region,
		CountryCode:  in.CountryCode,
		PostalCode:   in.PostalCode,
		Status:       "Active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.propertyRepo.Create(p); err != nil {
		return nil, err
	}
	resp := toPropertyResponse(p)
	return &resp, nil
}

// GetProperty devuelve un inmueble de la organización.
func (uc *PropertyUseCase) GetProperty(tenantOrgID, id int64) (*dto.PropertyResponse, error) {
	p, err := uc.propertyRepo.GetByID(tenantOrgID, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	resp := toPropertyResponse(p)
	return &resp, nil
}

// ListProperties lista inmuebles con filtro opcional por estado.
func (uc *PropertyUseCase) ListProperties(tenantOrgID int64, status string, page dto.PageRequest) (*dto.PropertyListResponse, error) {
	page.DefaultPage()
	properties, total, err := uc.propertyRepo.List(tenantOrgID, status, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PropertyResponse, 0, len(properties))
	for _, p := range properties {
		items = append(items, toPropertyResponse(p))
	}
	return &dto.PropertyListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// UpdateProperty aplica la lista blanca de campos mutables.
func (uc *PropertyUseCase) UpdateProperty(tenantOrgID, id int64, in dto.PropertyUpdateRequest) (*dto.PropertyResponse, error) {
	p, err := uc.propertyRepo.GetByID(tenantOrgID, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if in.PropertyName != nil {
		p.PropertyName = *in.PropertyName
	}
	if in.PropertyType != nil {
		p.PropertyType = *in.PropertyType
	}
	if in.AddressLine1 != nil {
		p.AddressLine1 = *in.AddressLine1
	}
	if in.AddressLine2 != nil {
		p.AddressLine2 = *in.AddressLine2
	}
	if in.City != nil {
		p.City = *in.City
	}
	if in.Region != nil {
		p.Region = *in.Region
	}
	if in.CountryCode != nil {
		p.CountryCode = *in.CountryCode
	}
	if in.PostalCode != nil {
		p.PostalCode = *in.PostalCode
	}
	if in.Status != nil {
		p.Status = *in.Status
	}
	p.UpdatedAt = time.Now()
	if err := uc.propertyRepo.Update(p); err != nil {
		return nil, err
	}
	resp := toPropertyResponse(p)
	return &resp, nil
}

// DeleteProperty marca el inmueble como eliminado (borrado lógico).
func (uc *PropertyUseCase) DeleteProperty(tenantOrgID, id int64) error {
	p, err := uc.propertyRepo.GetByID(tenantOrgID, id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	p.IsDeleted = true
	p.UpdatedAt = time.Now()
	return uc.propertyRepo.Update(p)
}

// CreateUnit crea una unidad dentro de un inmueble de la organización.
func (uc *PropertyUseCase) CreateUnit(tenantOrgID int64, in dto.CreateUnitRequest) (*dto.UnitResponse, error) {
	property, err := uc.propertyRepo.GetByID(tenantOrgID, in.PropertyID)
	if err != nil {
		return nil, err
	}
	if property == nil {
		return nil, domain.ErrNotFound
	}
	utype := in.UnitType
	if utype == "" {
		utype = "Apartment"
	}
	now := time.Now()
	u := &entity.Unit{
		TenantOrgID:  property.TenantOrgID,
		PropertyID:   property.ID,
		UnitCode:     in.UnitCode,
		UnitType:     utype,
		FloorNumber:  in.FloorNumber,
		AreaSqm:      in.AreaSqm,
		Bedrooms:     in.Bedrooms,
		Bathrooms:    in.Bathrooms,
		MarketRent:   in.MarketRent,
		RentCurrency: in.RentCurrency,
		Status:       "Vacant",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.unitRepo.Create(u); err != nil {
		return nil, err
	}
	// Mantener el contador denormalizado del inmueble.
	property.TotalUnits++
	property.UpdatedAt = now
	if err := uc.propertyRepo.Update(property); err != nil {
		return nil, err
	}
	resp := toUnitResponse(u)
	return &resp, nil
}

// GetUnit devuelve una unidad de la organización.
func (uc *PropertyUseCase) GetUnit(tenantOrgID, id int64) (*dto.UnitResponse, error) {
	u, err := uc.unitRepo.GetByID(tenantOrgID, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}
	resp := toUnitResponse(u)
	return &resp, nil
}

// ListUnits lista unidades de un inmueble.
func (uc *PropertyUseCase) ListUnits(tenantOrgID, propertyID int64, page dto.PageRequest) (*dto.UnitListResponse, error) {
	page.DefaultPage()
	units, total, err := uc.unitRepo.ListByProperty(tenantOrgID, propertyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UnitResponse, 0, len(units))
	for _, u := range units {
		items = append(items, toUnitResponse(u))
	}
	return &dto.UnitListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// UpdateUnit aplica la lista blanca de campos mutables de la unidad.
func (uc *PropertyUseCase) UpdateUnit(tenantOrgID, id int64, in dto.UnitUpdateRequest) (*dto.UnitResponse, error) {
	u, err := uc.unitRepo.GetByID(tenantOrgID, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}
	if in.UnitType != nil {
		u.UnitType = *in.UnitType
	}
	if in.FloorNumber != nil {
		u.FloorNumber = *in.FloorNumber
	}
	if in.AreaSqm != nil {
		u.AreaSqm = *in.AreaSqm
	}
	if in.Bedrooms != nil {
		u.Bedrooms = *in.Bedrooms
	}
	if in.Bathrooms != nil {
		u.Bathrooms = *in.Bathrooms
	}
	if in.MarketRent != nil {
		u.MarketRent = *in.MarketRent
	}
	if in.RentCurrency != nil {
		u.RentCurrency = *in.RentCurrency
	}
	if in.Status != nil {
		u.Status = *in.Status
	}
	u.UpdatedAt = time.Now()
	if err := uc.unitRepo.Update(u); err != nil {
		return nil, err
	}
	resp := toUnitResponse(u)
	return &resp, nil
}

func toPropertyResponse(p *entity.Property) dto.PropertyResponse {
	return dto.PropertyResponse{
		ID:           p.ID,
		PropertyCode: p.PropertyCode,
		PropertyName: p.PropertyName,
		PropertyType: p.PropertyType,
		AddressLine1: p.AddressLine1,
		AddressLine2: p.AddressLine2,
		City:         p.City,
		Region:       p.Region,
		CountryCode:  p.CountryCode,
		PostalCode:   p.PostalCode,
		TotalUnits:   p.TotalUnits,
		Status:       p.Status,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func toUnitResponse(u *entity.Unit) dto.UnitResponse {
	return dto.UnitResponse{
		ID:           u.ID,
		PropertyID:   u.PropertyID,
		UnitCode:     u.UnitCode,
		UnitType:     u.UnitType,
		FloorNumber:  u.FloorNumber,
		AreaSqm:      u.AreaSqm,
		Bedrooms:     u.Bedrooms,
		Bathrooms:    u.Bathrooms,
		MarketRent:   u.MarketRent,
		RentCurrency: u.RentCurrency,
		Status:       u.Status,
		CreatedAt:    u.CreatedAt,
	}
}
