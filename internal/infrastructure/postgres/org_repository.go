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

var _ repository.OrgRepository = (*OrgRepo)(nil)

const orgColumns = `id, org_code, org_name, COALESCE(legal_name, ''), COALESCE(email, ''), COALESCE(phone, ''), is_active, created_at, updated_at`

// OrgRepo implementación del puerto OrgRepository sobre PostgreSQL.
type OrgRepo struct {
	q Querier
}

// NewOrgRepository construye el adaptador de persistencia para organizaciones.
func NewOrgRepository(q Querier) *OrgRepo {
	return &OrgRepo{q: q}
}

// Create persiste la organización y deja el ID generado en el struct.
func (r *OrgRepo) Create(org *entity.TenantOrg) error {
	query := `
		INSERT INTO tenant_orgs (org_code, org_name, legal_name, email, phone, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		org.OrgCode, org.OrgName, nullIfEmpty(org.LegalName), nullIfEmpty(org.Email),
		nullIfEmpty(org.Phone), org.IsActive, org.CreatedAt, org.UpdatedAt,
	).Scan(&org.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert org: %w", err)
	}
	return nil
}

// GetByID obtiene una organización por ID.
func (r *OrgRepo) GetByID(id int64) (*entity.TenantOrg, error) {
	return r.getOne(`SELECT `+orgColumns+` FROM tenant_orgs WHERE id = $1`, id)
}

// GetFirst devuelve la organización más antigua (fallback de registro inicial).
func (r *OrgRepo) GetFirst() (*entity.TenantOrg, error) {
	var org entity.TenantOrg
	err := r.q.QueryRow(context.Background(),
		`SELECT `+orgColumns+` FROM tenant_orgs ORDER BY id LIMIT 1`,
	).Scan(
		&org.ID, &org.OrgCode, &org.OrgName, &org.LegalName, &org.Email, &org.Phone,
		&org.IsActive, &org.CreatedAt, &org.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get first org: %w", err)
	}
	return &org, nil
}

func (r *OrgRepo) getOne(query string, args ...any) (*entity.TenantOrg, error) {
	var org entity.TenantOrg
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&org.ID, &org.OrgCode, &org.OrgName, &org.LegalName, &org.Email, &org.Phone,
		&org.IsActive, &org.CreatedAt, &org.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get org: %w", err)
	}
	return &org, nil
}

// List lista organizaciones con paginación.
func (r *OrgRepo) List(limit, offset int) ([]*entity.TenantOrg, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+orgColumns+` FROM tenant_orgs ORDER BY id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list orgs: %w", err)
	}
	defer rows.Close()
	var list []*entity.TenantOrg
	for rows.Next() {
		var org entity.TenantOrg
		if err := rows.Scan(
			&org.ID, &org.OrgCode, &org.OrgName, &org.LegalName, &org.Email, &org.Phone,
			&org.IsActive, &org.CreatedAt, &org.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan org: %w", err)
		}
		list = append(list, &org)
	}
	return list, rows.Err()
}

// GetSettings obtiene la configuración de una organización; nil si no existe.
func (r *OrgRepo) GetSettings(tenantOrgID int64) (*entity.OrgSettings, error) {
	query := `
		SELECT id, tenant_org_id, base_currency, COALESCE(country_code, ''),
			COALESCE(timezone, 'UTC'), COALESCE(locale, 'es'), fiscal_year_start_month,
			tax_inclusive, created_at, updated_at
		FROM org_settings WHERE tenant_org_id = $1`
	var s entity.OrgSettings
	err := r.q.QueryRow(context.Background(), query, tenantOrgID).Scan(
		&s.ID, &s.TenantOrgID, &s.BaseCurrency, &s.CountryCode, &s.Timezone, &s.Locale,
		&s.FiscalYearStartMonth, &s.TaxInclusive, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get org settings: %w", err)
	}
	return &s, nil
}

// UpsertSettings inserta o actualiza la configuración (una fila por organización).
func (r *OrgRepo) UpsertSettings(settings *entity.OrgSettings) error {
	query := `
		INSERT INTO org_settings (tenant_org_id, base_currency, country_code, timezone,
			locale, fiscal_year_start_month, tax_inclusive, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (tenant_org_id) DO UPDATE SET
			base_currency = EXCLUDED.base_currency,
			country_code = EXCLUDED.country_code,
			timezone = EXCLUDED.timezone,
			locale = EXCLUDED.locale,
			fiscal_year_start_month = EXCLUDED.fiscal_year_start_month,
			tax_inclusive = EXCLUDED.tax_inclusive,
			updated_at = EXCLUDED.updated_at
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		settings.TenantOrgID, settings.BaseCurrency, nullIfEmpty(settings.CountryCode),
		settings.Timezone, settings.Locale, settings.FiscalYearStartMonth,
		settings.TaxInclusive, settings.CreatedAt, settings.UpdatedAt,
	).Scan(&settings.ID)
	if err != nil {
		return fmt.Errorf("upsert org settings: %w", err)
	}
	return nil
}
