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
	_ repository.LeaseRepository       = (*LeaseRepo)(nil)
	_ repository.MaintenanceRepository = (*MaintenanceRepo)(nil)
)

const leaseColumns = `
	id, tenant_org_id, lease_number, property_id, unit_id, renter_id, start_date, end_date,
	rent_amount, COALESCE(rent_currency, ''), deposit_amount, billing_day, payment_term_days,
	status, COALESCE(notes, ''), is_deleted, created_at, updated_at`

// LeaseRepo implementación del puerto LeaseRepository sobre PostgreSQL.
type LeaseRepo struct {
	q Querier
}

// NewLeaseRepository construye el adaptador de persistencia para contratos.
func NewLeaseRepository(q Querier) *LeaseRepo {
	return &LeaseRepo{q: q}
}

func (r *LeaseRepo) Create(l *entity.Lease) error {
	query := `
		INSERT INTO leases (tenant_org_id, lease_number, property_id, unit_id, renter_id,
			start_date, end_date, rent_amount, rent_currency, deposit_amount, billing_day,
			payment_term_days, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		l.TenantOrgID, l.LeaseNumber, l.PropertyID, l.UnitID, l.RenterID,
		l.StartDate, l.EndDate, l.RentAmount, nullIfEmpty(l.RentCurrency), l.DepositAmount,
		l.BillingDay, l.PaymentTermDays, l.Status, nullIfEmpty(l.Notes), l.CreatedAt, l.UpdatedAt,
	).Scan(&l.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert lease: %w", err)
	}
	return nil
}

func (r *LeaseRepo) GetByID(tenantOrgID, id int64) (*entity.Lease, error) {
	query := `SELECT ` + leaseColumns + ` FROM leases WHERE id = $1 AND NOT is_deleted`
	args := []any{id}
	if tenantOrgID > 0 {
		query += ` AND tenant_org_id = $2`
		args = append(args, tenantOrgID)
	}
	var l entity.Lease
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&l.ID, &l.TenantOrgID, &l.LeaseNumber, &l.PropertyID, &l.UnitID, &l.RenterID,
		&l.StartDate, &l.EndDate, &l.RentAmount, &l.RentCurrency, &l.DepositAmount,
		&l.BillingDay, &l.PaymentTermDays, &l.Status, &l.Notes, &l.IsDeleted,
		&l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lease: %w", err)
	}
	return &l, nil
}

func (r *LeaseRepo) Update(l *entity.Lease) error {
	query := `
		UPDATE leases SET end_date = $2, rent_amount = $3, deposit_amount = $4,
			billing_day = $5, payment_term_days = $6, status = $7, notes = $8,
			is_deleted = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		l.ID, l.EndDate, l.RentAmount, l.DepositAmount, l.BillingDay, l.PaymentTermDays,
		l.Status, nullIfEmpty(l.Notes), l.IsDeleted, l.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update lease: %w", err)
	}
	return nil
}

func (r *LeaseRepo) List(tenantOrgID int64, status string, renterID int64, limit, offset int) ([]*entity.Lease, int64, error) {
	where := ` WHERE tenant_org_id = $1 AND NOT is_deleted`
	args := []any{tenantOrgID}
	if status != "" {
		args = append(args, status)
		where += fmt.Sprintf(` AND status = $%d`, len(args))
	}
	if renterID > 0 {
		args = append(args, renterID)
		where += fmt.Sprintf(` AND renter_id = $%d`, len(args))
	}

	var total int64
	if err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM leases`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count leases: %w", err)
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM leases %s ORDER BY id DESC LIMIT $%d OFFSET $%d`,
		leaseColumns, where, len(args)-1, len(args))
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list leases: %w", err)
	}
	defer rows.Close()
	var list []*entity.Lease
	for rows.Next() {
		var l entity.Lease
		if err := rows.Scan(
			&l.ID, &l.TenantOrgID, &l.LeaseNumber, &l.PropertyID, &l.UnitID, &l.RenterID,
			&l.StartDate, &l.EndDate, &l.RentAmount, &l.RentCurrency, &l.DepositAmount,
			&l.BillingDay, &l.PaymentTermDays, &l.Status, &l.Notes, &l.IsDeleted,
			&l.CreatedAt, &l.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan lease: %w", err)
		}
		list = append(list, &l)
	}
	return list, total, rows.Err()
}

const maintenanceColumns = `
	id, tenant_org_id, request_number, property_id, COALESCE(unit_id, 0), COALESCE(renter_id, 0),
	COALESCE(reported_by, ''), channel, description, COALESCE(category, ''), priority, status,
	reported_at, completed_at, created_at, updated_at`

// MaintenanceRepo implementación del puerto MaintenanceRepository sobre PostgreSQL.
type MaintenanceRepo struct {
	q Querier
}

// NewMaintenanceRepository construye el adaptador de persistencia para solicitudes.
func NewMaintenanceRepository(q Querier) *MaintenanceRepo {
	return &MaintenanceRepo{q: q}
}

func (r *MaintenanceRepo) Create(m *entity.MaintenanceRequest) error {
	query := `
		INSERT INTO maintenance_requests (tenant_org_id, request_number, property_id, unit_id,
			renter_id, reported_by, channel, description, category, priority, status,
			reported_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		m.TenantOrgID, m.RequestNumber, m.PropertyID, nullIfZero(m.UnitID), nullIfZero(m.RenterID),
		nullIfEmpty(m.ReportedBy), m.Channel, m.Description, nullIfEmpty(m.Category),
		m.Priority, m.Status, m.ReportedAt, m.CreatedAt, m.UpdatedAt,
	).Scan(&m.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert maintenance request: %w", err)
	}
	return nil
}

func (r *MaintenanceRepo) GetByID(tenantOrgID, id int64) (*entity.MaintenanceRequest, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenance_requests WHERE id = $1`
	args := []any{id}
	if tenantOrgID > 0 {
		query += ` AND tenant_org_id = $2`
		args = append(args, tenantOrgID)
	}
	var m entity.MaintenanceRequest
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&m.ID, &m.TenantOrgID, &m.RequestNumber, &m.PropertyID, &m.UnitID, &m.RenterID,
		&m.ReportedBy, &m.Channel, &m.Description, &m.Category, &m.Priority, &m.Status,
		&m.ReportedAt, &m.CompletedAt, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get maintenance request: %w", err)
	}
	return &m, nil
}

func (r *MaintenanceRepo) Update(m *entity.MaintenanceRequest) error {
	query := `
		UPDATE maintenance_requests SET description = $2, category = $3, priority = $4,
			status = $5, completed_at = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.Description, nullIfEmpty(m.Category), m.Priority, m.Status,
		m.CompletedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update maintenance request: %w", err)
	}
	return nil
}

func (r *MaintenanceRepo) List(tenantOrgID int64, status string, propertyID int64, limit, offset int) ([]*entity.MaintenanceRequest, int64, error) {
	where := ` WHERE tenant_org_id = $1`
	args := []any{tenantOrgID}
	if status != "" {
		args = append(args, status)
		where += fmt.Sprintf(` AND status = $%d`, len(args))
	}
	if propertyID > 0 {
		args = append(args, propertyID)
		where += fmt.Sprintf(` AND property_id = $%d`, len(args))
	}

	var total int64
	if err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM maintenance_requests`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count maintenance requests: %w", err)
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM maintenance_requests %s ORDER BY id DESC LIMIT $%d OFFSET $%d`,
		maintenanceColumns, where, len(args)-1, len(args))
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list maintenance requests: %w", err)
	}
	defer rows.Close()
	var list []*entity.MaintenanceRequest
	for rows.Next() {
		var m entity.MaintenanceRequest
		if err := rows.Scan(
			&m.ID, &m.TenantOrgID, &m.RequestNumber, &m.PropertyID, &m.UnitID, &m.RenterID,
			&m.ReportedBy, &m.Channel, &m.Description, &m.Category, &m.Priority, &m.Status,
			&m.ReportedAt, &m.CompletedAt, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan maintenance request: %w", err)
		}
		list = append(list, &m)
	}
	return list, total, rows.Err()
}
