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
	_ repository.RenterRepository = (*RenterRepo)(nil)
	_ repository.OwnerRepository  = (*OwnerRepo)(nil)
	_ repository.VendorRepository = (*VendorRepo)(nil)
	_ repository.StaffRepository  = (*StaffRepo)(nil)
)

// ──────────────────────────────────────────────────────────────────────────────
// Inquilinos
// ──────────────────────────────────────────────────────────────────────────────

const renterColumns = `
	id, tenant_org_id, renter_code, renter_type, COALESCE(first_name, ''), COALESCE(last_name, ''),
	COALESCE(company_name, ''), COALESCE(email, ''), COALESCE(phone, ''), COALESCE(id_type, ''),
	COALESCE(id_number, ''), status, is_deleted, created_at, updated_at`

// RenterRepo implementación del puerto RenterRepository sobre PostgreSQL.
type RenterRepo struct {
	q Querier
}

// NewRenterRepository construye el adaptador de persistencia para inquilinos.
func NewRenterRepository(q Querier) *RenterRepo {
	return &RenterRepo{q: q}
}

func (r *RenterRepo) Create(renter *entity.Renter) error {
	query := `
		INSERT INTO renters (tenant_org_id, renter_code, renter_type, first_name, last_name,
			company_name, email, phone, id_type, id_number, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		renter.TenantOrgID, renter.RenterCode, renter.RenterType,
		nullIfEmpty(renter.FirstName), nullIfEmpty(renter.LastName), nullIfEmpty(renter.CompanyName),
		nullIfEmpty(renter.Email), nullIfEmpty(renter.Phone), nullIfEmpty(renter.IDType),
		nullIfEmpty(renter.IDNumber), renter.Status, renter.CreatedAt, renter.UpdatedAt,
	).Scan(&renter.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert renter: %w", err)
	}
	return nil
}

func (r *RenterRepo) GetByID(id int64) (*entity.Renter, error) {
	return r.scanOne(r.q.QueryRow(context.Background(),
		`SELECT `+renterColumns+` FROM renters WHERE id = $1 AND NOT is_deleted`, id))
}

func (r *RenterRepo) GetByCode(tenantOrgID int64, code string) (*entity.Renter, error) {
	return r.scanOne(r.q.QueryRow(context.Background(),
		`SELECT `+renterColumns+` FROM renters WHERE tenant_org_id = $1 AND renter_code = $2 AND NOT is_deleted`,
		tenantOrgID, code))
}

func (r *RenterRepo) scanOne(row pgx.Row) (*entity.Renter, error) {
	var renter entity.Renter
	err := row.Scan(
		&renter.ID, &renter.TenantOrgID, &renter.RenterCode, &renter.RenterType,
		&renter.FirstName, &renter.LastName, &renter.CompanyName, &renter.Email, &renter.Phone,
		&renter.IDType, &renter.IDNumber, &renter.Status, &renter.IsDeleted,
		&renter.CreatedAt, &renter.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get renter: %w", err)
	}
	return &renter, nil
}

func (r *RenterRepo) List(tenantOrgID int64, limit, offset int) ([]*entity.Renter, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+renterColumns+` FROM renters WHERE tenant_org_id = $1 AND NOT is_deleted ORDER BY id LIMIT $2 OFFSET $3`,
		tenantOrgID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list renters: %w", err)
	}
	defer rows.Close()
	var list []*entity.Renter
	for rows.Next() {
		renter, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, renter)
	}
	return list, rows.Err()
}

// ──────────────────────────────────────────────────────────────────────────────
// Propietarios
// ──────────────────────────────────────────────────────────────────────────────

const ownerColumns = `
	id, tenant_org_id, owner_code, owner_type, COALESCE(first_name, ''), COALESCE(last_name, ''),
	COALESCE(company_name, ''), COALESCE(email, ''), COALESCE(phone, ''), COALESCE(tax_id, ''),
	status, is_deleted, created_at, updated_at`

// OwnerRepo implementación del puerto OwnerRepository sobre PostgreSQL.
type OwnerRepo struct {
	q Querier
}

// NewOwnerRepository construye el adaptador de persistencia para propietarios.
func NewOwnerRepository(q Querier) *OwnerRepo {
	return &OwnerRepo{q: q}
}

func (r *OwnerRepo) Create(owner *entity.Owner) error {
	query := `
		INSERT INTO owners (tenant_org_id, owner_code, owner_type, first_name, last_name,
			company_name, email, phone, tax_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		owner.TenantOrgID, owner.OwnerCode, owner.OwnerType,
		nullIfEmpty(owner.FirstName), nullIfEmpty(owner.LastName), nullIfEmpty(owner.CompanyName),
		nullIfEmpty(owner.Email), nullIfEmpty(owner.Phone), nullIfEmpty(owner.TaxID),
		owner.Status, owner.CreatedAt, owner.UpdatedAt,
	).Scan(&owner.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert owner: %w", err)
	}
	return nil
}

func (r *OwnerRepo) GetByID(id int64) (*entity.Owner, error) {
	return r.scanOne(r.q.QueryRow(context.Background(),
		`SELECT `+ownerColumns+` FROM owners WHERE id = $1 AND NOT is_deleted`, id))
}

func (r *OwnerRepo) GetByCode(tenantOrgID int64, code string) (*entity.Owner, error) {
	return r.scanOne(r.q.QueryRow(context.Background(),
		`SELECT `+ownerColumns+` FROM owners WHERE tenant_org_id = $1 AND owner_code = $2 AND NOT is_deleted`,
		tenantOrgID, code))
}

func (r *OwnerRepo) scanOne(row pgx.Row) (*entity.Owner, error) {
	var owner entity.Owner
	err := row.Scan(
		&owner.ID, &owner.TenantOrgID, &owner.OwnerCode, &owner.OwnerType,
		&owner.FirstName, &owner.LastName, &owner.CompanyName, &owner.Email, &owner.Phone,
		&owner.TaxID, &owner.Status, &owner.IsDeleted, &owner.CreatedAt, &owner.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get owner: %w", err)
	}
	return &owner, nil
}

func (r *OwnerRepo) List(tenantOrgID int64, limit, offset int) ([]*entity.Owner, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+ownerColumns+` FROM owners WHERE tenant_org_id = $1 AND NOT is_deleted ORDER BY id LIMIT $2 OFFSET $3`,
		tenantOrgID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list owners: %w", err)
	}
	defer rows.Close()
	var list []*entity.Owner
	for rows.Next() {
		owner, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, owner)
	}
	return list, rows.Err()
}

// ──────────────────────────────────────────────────────────────────────────────
// Proveedores
// ──────────────────────────────────────────────────────────────────────────────

const vendorColumns = `
	id, tenant_org_id, vendor_code, company_name, COALESCE(contact_person, ''),
	COALESCE(email, ''), COALESCE(phone, ''), COALESCE(service_category, ''),
	COALESCE(license_number, ''), status, is_deleted, created_at, updated_at`

// VendorRepo implementación del puerto VendorRepository sobre PostgreSQL.
type VendorRepo struct {
	q Querier
}

// NewVendorRepository construye el adaptador de persistencia para proveedores.
func NewVendorRepository(q Querier) *VendorRepo {
	return &VendorRepo{q: q}
}

func (r *VendorRepo) Create(vendor *entity.Vendor) error {
	query := `
		INSERT INTO vendors (tenant_org_id, vendor_code, company_name, contact_person,
			email, phone, service_category, license_number, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		vendor.TenantOrgID, vendor.VendorCode, vendor.CompanyName, nullIfEmpty(vendor.ContactPerson),
		nullIfEmpty(vendor.Email), nullIfEmpty(vendor.Phone), nullIfEmpty(vendor.ServiceCategory),
		nullIfEmpty(vendor.LicenseNumber), vendor.Status, vendor.CreatedAt, vendor.UpdatedAt,
	).Scan(&vendor.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert vendor: %w", err)
	}
	return nil
}

func (r *VendorRepo) GetByID(id int64) (*entity.Vendor, error) {
	return r.scanOne(r.q.QueryRow(context.Background(),
		`SELECT `+vendorColumns+` FROM vendors WHERE id = $1 AND NOT is_deleted`, id))
}

func (r *VendorRepo) GetByCode(tenantOrgID int64, code string) (*entity.Vendor, error) {
	return r.scanOne(r.q.QueryRow(context.Background(),
		`SELECT `+vendorColumns+` FROM vendors WHERE tenant_org_id = $1 AND vendor_code = $2 AND NOT is_deleted`,
		tenantOrgID, code))
}

func (r *VendorRepo) scanOne(row pgx.Row) (*entity.Vendor, error) {
	var vendor entity.Vendor
	err := row.Scan(
		&vendor.ID, &vendor.TenantOrgID, &vendor.VendorCode, &vendor.CompanyName,
		&vendor.ContactPerson, &vendor.Email, &vendor.Phone, &vendor.ServiceCategory,
		&vendor.LicenseNumber, &vendor.Status, &vendor.IsDeleted, &vendor.CreatedAt, &vendor.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vendor: %w", err)
	}
	return &vendor, nil
}

func (r *VendorRepo) List(tenantOrgID int64, limit, offset int) ([]*entity.Vendor, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+vendorColumns+` FROM vendors WHERE tenant_org_id = $1 AND NOT is_deleted ORDER BY id LIMIT $2 OFFSET $3`,
		tenantOrgID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list vendors: %w", err)
	}
	defer rows.Close()
	var list []*entity.Vendor
	for rows.Next() {
		vendor, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, vendor)
	}
	return list, rows.Err()
}

// ──────────────────────────────────────────────────────────────────────────────
// Empleados
// ──────────────────────────────────────────────────────────────────────────────

const staffColumns = `
	id, tenant_org_id, employee_code, COALESCE(first_name, ''), COALESCE(last_name, ''),
	COALESCE(email, ''), COALESCE(phone, ''), role_id, COALESCE(department, ''),
	status, created_at, updated_at`

// StaffRepo implementación del puerto StaffRepository sobre PostgreSQL.
type StaffRepo struct {
	q Querier
}

// NewStaffRepository construye el adaptador de persistencia para empleados.
func NewStaffRepository(q Querier) *StaffRepo {
	return &StaffRepo{q: q}
}

func (r *StaffRepo) Create(staff *entity.StaffUser) error {
	query := `
		INSERT INTO staff_users (tenant_org_id, employee_code, first_name, last_name,
			email, phone, role_id, department, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		staff.TenantOrgID, staff.EmployeeCode, nullIfEmpty(staff.FirstName), nullIfEmpty(staff.LastName),
		nullIfEmpty(staff.Email), nullIfEmpty(staff.Phone), staff.RoleID, nullIfEmpty(staff.Department),
		staff.Status, staff.CreatedAt, staff.UpdatedAt,
	).Scan(&staff.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert staff: %w", err)
	}
	return nil
}

func (r *StaffRepo) GetByID(id int64) (*entity.StaffUser, error) {
	return r.scanOne(r.q.QueryRow(context.Background(),
		`SELECT `+staffColumns+` FROM staff_users WHERE id = $1`, id))
}

func (r *StaffRepo) GetByCode(tenantOrgID int64, employeeCode string) (*entity.StaffUser, error) {
	return r.scanOne(r.q.QueryRow(context.Background(),
		`SELECT `+staffColumns+` FROM staff_users WHERE tenant_org_id = $1 AND employee_code = $2`,
		tenantOrgID, employeeCode))
}

func (r *StaffRepo) scanOne(row pgx.Row) (*entity.StaffUser, error) {
	var staff entity.StaffUser
	err := row.Scan(
		&staff.ID, &staff.TenantOrgID, &staff.EmployeeCode, &staff.FirstName, &staff.LastName,
		&staff.Email, &staff.Phone, &staff.RoleID, &staff.Department,
		&staff.Status, &staff.CreatedAt, &staff.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get staff: %w", err)
	}
	return &staff, nil
}

func (r *StaffRepo) List(tenantOrgID int64, limit, offset int) ([]*entity.StaffUser, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+staffColumns+` FROM staff_users WHERE tenant_org_id = $1 ORDER BY id LIMIT $2 OFFSET $3`,
		tenantOrgID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list staff: %w", err)
	}
	defer rows.Close()
	var list []*entity.StaffUser
	for rows.Next() {
		staff, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, staff)
	}
	return list, rows.Err()
}
