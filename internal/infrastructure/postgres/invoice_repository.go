package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/propiedades-pro/internal/domain"
	"github.com/tu-usuario/propiedades-pro/internal/domain/entity"
	"github.com/tu-usuario/propiedades-pro/internal/domain/repository"
)

var (
	_ repository.InvoiceRepository = (*InvoiceRepo)(nil)
	_ repository.PaymentRepository = (*PaymentRepo)(nil)
)

const invoiceColumns = `
	id, tenant_org_id, invoice_number, renter_id, COALESCE(lease_id, 0), invoice_date,
	due_date, posting_date, total_amount, document_currency, document_amount,
	base_currency, base_amount, COALESCE(exchange_rate_id, 0), exchange_rate_value,
	fx_difference_amount, invoice_status, COALESCE(notes, ''), created_by, created_at, updated_at`

// InvoiceRepo implementación del puerto InvoiceRepository sobre PostgreSQL.
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador de persistencia para facturas.
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

func (r *InvoiceRepo) Create(inv *entity.Invoice) error {
	query := `
		INSERT INTO invoices (tenant_org_id, invoice_number, renter_id, lease_id, invoice_date,
			due_date, posting_date, total_amount, document_currency, document_amount,
			base_currency, base_amount, exchange_rate_id, exchange_rate_value,
			fx_difference_amount, invoice_status, notes, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		inv.TenantOrgID, inv.InvoiceNumber, inv.RenterID, nullIfZero(inv.LeaseID), inv.InvoiceDate,
		inv.DueDate, inv.PostingDate, inv.TotalAmount, inv.DocumentCurrency, inv.DocumentAmount,
		inv.BaseCurrency, inv.BaseAmount, nullIfZero(inv.ExchangeRateID), inv.ExchangeRateValue,
		inv.FxDifferenceAmount, inv.InvoiceStatus, nullIfEmpty(inv.Notes), inv.CreatedBy,
		inv.CreatedAt, inv.UpdatedAt,
	).Scan(&inv.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

func (r *InvoiceRepo) CreateLine(line *entity.InvoiceLine) error {
	query := `
		INSERT INTO invoice_lines (invoice_id, charge_type, description, quantity, unit_price,
			line_total, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		line.InvoiceID, line.ChargeType, line.Description, line.Quantity,
		line.UnitPrice, line.LineTotal, line.CreatedAt,
	).Scan(&line.ID)
	if err != nil {
		return fmt.Errorf("insert invoice line: %w", err)
	}
	return nil
}

func (r *InvoiceRepo) GetByID(tenantOrgID, id int64) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	args := []any{id}
	if tenantOrgID > 0 {
		query += ` AND tenant_org_id = $2`
		args = append(args, tenantOrgID)
	}
	var inv entity.Invoice
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&inv.ID, &inv.TenantOrgID, &inv.InvoiceNumber, &inv.RenterID, &inv.LeaseID, &inv.InvoiceDate,
		&inv.DueDate, &inv.PostingDate, &inv.TotalAmount, &inv.DocumentCurrency, &inv.DocumentAmount,
		&inv.BaseCurrency, &inv.BaseAmount, &inv.ExchangeRateID, &inv.ExchangeRateValue,
		&inv.FxDifferenceAmount, &inv.InvoiceStatus, &inv.Notes, &inv.CreatedBy,
		&inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return &inv, nil
}

func (r *InvoiceRepo) GetLinesByInvoiceID(invoiceID int64) ([]*entity.InvoiceLine, error) {
	query := `
		SELECT id, invoice_id, charge_type, COALESCE(description, ''), quantity, unit_price,
			line_total, created_at
		FROM invoice_lines WHERE invoice_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice lines: %w", err)
	}
	defer rows.Close()
	var lines []*entity.InvoiceLine
	for rows.Next() {
		var l entity.InvoiceLine
		if err := rows.Scan(
			&l.ID, &l.InvoiceID, &l.ChargeType, &l.Description, &l.Quantity,
			&l.UnitPrice, &l.LineTotal, &l.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan invoice line: %w", err)
		}
		lines = append(lines, &l)
	}
	return lines, rows.Err()
}

func (r *InvoiceRepo) Update(inv *entity.Invoice) error {
	query := `
		UPDATE invoices SET due_date = $2, posting_date = $3, total_amount = $4,
			base_amount = $5, exchange_rate_id = $6, exchange_rate_value = $7,
			fx_difference_amount = $8, invoice_status = $9, notes = $10, updated_at = $11
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		inv.ID, inv.DueDate, inv.PostingDate, inv.TotalAmount,
		inv.BaseAmount, nullIfZero(inv.ExchangeRateID), inv.ExchangeRateValue,
		inv.FxDifferenceAmount, inv.InvoiceStatus, nullIfEmpty(inv.Notes), inv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	return nil
}

func (r *InvoiceRepo) UpdateStatus(id int64, status string) error {
	query := `UPDATE invoices SET invoice_status = $2, updated_at = NOW() WHERE id = $1`
	if _, err := r.q.Exec(context.Background(), query, id, status); err != nil {
		return fmt.Errorf("update invoice status: %w", err)
	}
	return nil
}

func (r *InvoiceRepo) List(f repository.InvoiceFilter) ([]*entity.Invoice, int64, error) {
	where := ` WHERE 1=1`
	var args []any
	if f.TenantOrgID > 0 {
		args = append(args, f.TenantOrgID)
		where += fmt.Sprintf(` AND tenant_org_id = $%d`, len(args))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		where += fmt.Sprintf(` AND invoice_status = $%d`, len(args))
	}
	if f.RenterID > 0 {
		args = append(args, f.RenterID)
		where += fmt.Sprintf(` AND renter_id = $%d`, len(args))
	}

	var total int64
	if err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM invoices`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count invoices: %w", err)
	}

	args = append(args, f.Limit, f.Offset)
	query := fmt.Sprintf(`SELECT %s FROM invoices %s ORDER BY id DESC LIMIT $%d OFFSET $%d`,
		invoiceColumns, where, len(args)-1, len(args))
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		var inv entity.Invoice
		if err := rows.Scan(
			&inv.ID, &inv.TenantOrgID, &inv.InvoiceNumber, &inv.RenterID, &inv.LeaseID, &inv.InvoiceDate,
			&inv.DueDate, &inv.PostingDate, &inv.TotalAmount, &inv.DocumentCurrency, &inv.DocumentAmount,
			&inv.BaseCurrency, &inv.BaseAmount, &inv.ExchangeRateID, &inv.ExchangeRateValue,
			&inv.FxDifferenceAmount, &inv.InvoiceStatus, &inv.Notes, &inv.CreatedBy,
			&inv.CreatedAt, &inv.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, &inv)
	}
	return list, total, rows.Err()
}

const paymentColumns = `
	id, tenant_org_id, payment_number, renter_id, payment_date, amount, currency,
	COALESCE(method_name, ''), COALESCE(reference_no, ''), status, COALESCE(notes, ''),
	created_by, created_at, updated_at`

// PaymentRepo implementación del puerto PaymentRepository sobre PostgreSQL.
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador de persistencia para pagos.
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

func (r *PaymentRepo) Create(p *entity.Payment) error {
	query := `
		INSERT INTO payments (tenant_org_id, payment_number, renter_id, payment_date, amount,
			currency, method_name, reference_no, status, notes, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		p.TenantOrgID, p.PaymentNumber, p.RenterID, p.PaymentDate, p.Amount,
		p.Currency, nullIfEmpty(p.MethodName), nullIfEmpty(p.ReferenceNo), p.Status,
		nullIfEmpty(p.Notes), p.CreatedBy, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

func (r *PaymentRepo) CreateAllocation(a *entity.PaymentAllocation) error {
	query := `
		INSERT INTO payment_allocations (payment_id, invoice_id, allocated_amount, currency, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		a.PaymentID, a.InvoiceID, a.AllocatedAmount, a.Currency, a.CreatedAt,
	).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("insert payment allocation: %w", err)
	}
	return nil
}

func (r *PaymentRepo) GetByID(tenantOrgID, id int64) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`
	args := []any{id}
	if tenantOrgID > 0 {
		query += ` AND tenant_org_id = $2`
		args = append(args, tenantOrgID)
	}
	var p entity.Payment
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&p.ID, &p.TenantOrgID, &p.PaymentNumber, &p.RenterID, &p.PaymentDate, &p.Amount,
		&p.Currency, &p.MethodName, &p.ReferenceNo, &p.Status, &p.Notes,
		&p.CreatedBy, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return &p, nil
}

func (r *PaymentRepo) GetAllocationsByPaymentID(paymentID int64) ([]*entity.PaymentAllocation, error) {
	query := `
		SELECT id, payment_id, invoice_id, allocated_amount, COALESCE(currency, ''), created_at
		FROM payment_allocations WHERE payment_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, paymentID)
	if err != nil {
		return nil, fmt.Errorf("list payment allocations: %w", err)
	}
	defer rows.Close()
	var allocs []*entity.PaymentAllocation
	for rows.Next() {
		var a entity.PaymentAllocation
		if err := rows.Scan(
			&a.ID, &a.PaymentID, &a.InvoiceID, &a.AllocatedAmount, &a.Currency, &a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan payment allocation: %w", err)
		}
		allocs = append(allocs, &a)
	}
	return allocs, rows.Err()
}

func (r *PaymentRepo) UpdateStatus(id int64, status string) error {
	query := `UPDATE payments SET status = $2, updated_at = NOW() WHERE id = $1`
	if _, err := r.q.Exec(context.Background(), query, id, status); err != nil {
		return fmt.Errorf("update payment status: %w", err)
	}
	return nil
}

func (r *PaymentRepo) List(tenantOrgID, renterID int64, limit, offset int) ([]*entity.Payment, int64, error) {
	where := ` WHERE tenant_org_id = $1`
	args := []any{tenantOrgID}
	if renterID > 0 {
		args = append(args, renterID)
		where += fmt.Sprintf(` AND renter_id = $%d`, len(args))
	}

	var total int64
	if err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM payments`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count payments: %w", err)
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM payments %s ORDER BY id DESC LIMIT $%d OFFSET $%d`,
		paymentColumns, where, len(args)-1, len(args))
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Payment
	for rows.Next() {
		var p entity.Payment
		if err := rows.Scan(
			&p.ID, &p.TenantOrgID, &p.PaymentNumber, &p.RenterID, &p.PaymentDate, &p.Amount,
			&p.Currency, &p.MethodName, &p.ReferenceNo, &p.Status, &p.Notes,
			&p.CreatedBy, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, &p)
	}
	return list, total, rows.Err()
}

// SumAllocatedByInvoice agrega todas las asignaciones de la factura, incluidas
// las de pagos anulados. El estado se re-deriva siempre de esta suma.
func (r *PaymentRepo) SumAllocatedByInvoice(invoiceID int64) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(allocated_amount), 0) FROM payment_allocations WHERE invoice_id = $1`
	var sum decimal.Decimal
	if err := r.q.QueryRow(context.Background(), query, invoiceID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("sum allocations: %w", err)
	}
	return sum, nil
}
