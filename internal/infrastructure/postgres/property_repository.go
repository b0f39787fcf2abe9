package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/propiedades-pro/internal/domain"
	"github.com/tu-usuario/propiedades-pro/internal/domain/entity"
	"github.com/tu-usuario/propiedades-pro/internal/domain/repository"
)

var (
	_ repository.PropertyRepository = (*PropertyRepo)(nil)
	_ repository.UnitRepository     = (*UnitRepo)(nil)
)

const propertyColumns = `
	id, tenant_org_id, property_code, property_name, property_type,
	COALESCE(address_line1, ''), COALESCE(address_line2, ''), COALESCE(city, ''),
	COALESCE(region, ''), COALESCE(country_code, ''), COALESCE(postal_code, ''),
	total_units, status, is_deleted, created_at, updated_at`

// PropertyRepo implementación del puerto PropertyRepository sobre PostgreSQL.
type PropertyRepo struct {
	q Querier
}

// NewPropertyRepository construye el adaptador de persistencia para inmuebles.
func NewPropertyRepository(q Querier) *PropertyRepo {
	return &PropertyRepo{q: q}
}

func (r *PropertyRepo) Create(p *entity.Property) error {
	query := `
		INSERT INTO properties (tenant_org_id, property_code, property_name, property_type,
			address_line1, address_line2, city, region, country_code, postal_code,
			total_units, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		p.TenantOrgID, p.PropertyCode, p.PropertyName, p.PropertyType,
		nullIfEmpty(p.AddressLine1), nullIfEmpty(p.AddressLine2), nullIfEmpty(p.City),
		nullIfEmpty(p.Region), nullIfEmpty(p.CountryCode), nullIfEmpty(p.PostalCode),
		p.TotalUnits, p.Status, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert property: %w", err)
	}
	return nil
}

func (r *PropertyRepo) GetByID(tenantOrgID, id int64) (*entity.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE id = $1 AND NOT is_deleted`
	args := []any{id}
	if tenantOrgID > 0 {
		query += ` AND tenant_org_id = $2`
		args = append(args, tenantOrgID)
	}
	var p entity.Property
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&p.ID, &p.TenantOrgID, &p.PropertyCode, &p.PropertyName, &p.PropertyType,
		&p.AddressLine1, &p.AddressLine2, &p.City, &p.Region, &p.CountryCode, &p.PostalCode,
		&p.TotalUnits, &p.Status, &p.IsDeleted, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get property: %w", err)
	}
	return &p, nil
}

func (r *PropertyRepo) Update(p *entity.Property) error {
	query := `
		UPDATE properties SET property_name = $2, property_type = $3, address_line1 = $4,
			address_line2 = $5, city = $6, region = $7, country_code = $8, postal_code = $9,
			total_units = $10, status = $11, is_deleted = $12, updated_at = $13
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.PropertyName, p.PropertyType, nullIfEmpty(p.AddressLine1),
		nullIfEmpty(p.AddressLine2), nullIfEmpty(p.City), nullIfEmpty(p.Region),
		nullIfEmpty(p.CountryCode), nullIfEmpty(p.PostalCode),
		p.TotalUnits, p.Status, p.IsDeleted, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update property: %w", err)
	}
	return nil
}

func (r *PropertyRepo) List(tenantOrgID int64, status string, limit, offset int) ([]*entity.Property, int64, error) {
	where := ` WHERE tenant_org_id = $1 AND NOT is_deleted`
	args := []any{tenantOrgID}
	if status != "" {
		where += ` AND status = $2`
		args = append(args, status)
	}

	var total int64
	if err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM properties`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count properties: %w", err)
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM properties %s ORDER BY id LIMIT $%d OFFSET $%d`,
		propertyColumns, where, len(args)-1, len(args))
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list properties: %w", err)
	}
	defer rows.Close()
	var list []*entity.Property
	for rows.Next() {
		var p entity.Property
		if err := rows.Scan(
			&p.ID, &p.TenantOrgID, &p.PropertyCode, &p.PropertyName, &p.PropertyType,
			&p.AddressLine1, &p.AddressLine2, &p.City, &p.Region, &p.CountryCode, &p.PostalCode,
			&p.TotalUnits, &p.Status, &p.IsDeleted, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan property: %w", err)
		}
		list = append(list, &p)
	}
	return list, total, rows.Err()
}

const unitColumns = `
	id, tenant_org_id, property_id, unit_code, unit_type, floor_number, area_sqm,
	bedrooms, bathrooms, market_rent, COALESCE(rent_currency, ''), status, is_deleted,
	created_at, updated_at`

// UnitRepo implementación del puerto UnitRepository sobre PostgreSQL.
type UnitRepo struct {
	q Querier
}

// NewUnitRepository construye el adaptador de persistencia para unidades.
func NewUnitRepository(q Querier) *UnitRepo {
	return &UnitRepo{q: q}
}

func (r *UnitRepo) Create(u *entity.Unit) error {
	query := `
		INSERT INTO units (tenant_org_id, property_id, unit_code, unit_type, floor_number,
			area_sqm, bedrooms, bathrooms, market_rent, rent_currency, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		u.TenantOrgID, u.PropertyID, u.UnitCode, u.UnitType, u.FloorNumber,
		u.AreaSqm, u.Bedrooms, u.Bathrooms, u.MarketRent, nullIfEmpty(u.RentCurrency),
		u.Status, u.CreatedAt, u.UpdatedAt,
	).Scan(&u.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert unit: %w", err)
	}
	return nil
}

func (r *UnitRepo) GetByID(tenantOrgID, id int64) (*entity.Unit, error) {
	query := `SELECT ` + unitColumns + ` FROM units WHERE id = $1 AND NOT is_deleted`
	args := []any{id}
	if tenantOrgID > 0 {
		query += ` AND tenant_org_id = $2`
		args = append(args, tenantOrgID)
	}
	var u entity.Unit
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&u.ID, &u.TenantOrgID, &u.PropertyID, &u.UnitCode, &u.UnitType, &u.FloorNumber,
		&u.AreaSqm, &u.Bedrooms, &u.Bathrooms, &u.MarketRent, &u.RentCurrency,
		&u.Status, &u.IsDeleted, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get unit: %w", err)
	}
	return &u, nil
}

func (r *UnitRepo) Update(u *entity.Unit) error {
	query := `
		UPDATE units SET unit_type = $2, floor_number = $3, area_sqm = $4, bedrooms = $5,
			bathrooms = $6, market_rent = $7, rent_currency = $8, status = $9,
			is_deleted = $10, updated_at = $11
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		u.ID, u.UnitType, u.FloorNumber, u.AreaSqm, u.Bedrooms, u.Bathrooms,
		u.MarketRent, nullIfEmpty(u.RentCurrency), u.Status, u.IsDeleted, u.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update unit: %w", err)
	}
	return nil
}

func (r *UnitRepo) ListByProperty(tenantOrgID, propertyID int64, limit, offset int) ([]*entity.Unit, int64, error) {
	var total int64
	if err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM units WHERE tenant_org_id = $1 AND property_id = $2 AND NOT is_deleted`,
		tenantOrgID, propertyID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count units: %w", err)
	}

	rows, err := r.q.Query(context.Background(),
		`SELECT `+unitColumns+` FROM units WHERE tenant_org_id = $1 AND property_id = $2 AND NOT is_deleted ORDER BY id LIMIT $3 OFFSET $4`,
		tenantOrgID, propertyID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list units: %w", err)
	}
	defer rows.Close()
	var list []*entity.Unit
	for rows.Next() {
		var u entity.Unit
		if err := rows.Scan(
			&u.ID, &u.TenantOrgID, &u.PropertyID, &u.UnitCode, &u.UnitType, &u.FloorNumber,
			&u.AreaSqm, &u.Bedrooms, &u.Bathrooms, &u.MarketRent, &u.RentCurrency,
			&u.Status, &u.IsDeleted, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan unit: %w", err)
		}
		list = append(list, &u)
	}
	return list, total, rows.Err()
}
