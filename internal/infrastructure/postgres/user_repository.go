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

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `
	id, username, email, password_hash, COALESCE(full_name, ''), role_id,
	COALESCE(tenant_org_id, 0), COALESCE(linked_entity_type, ''), COALESCE(linked_entity_id, 0),
	COALESCE(avatar_url, ''), is_active, last_login_at, created_at, updated_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para cuentas. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste la cuenta nueva y deja el ID generado en el struct.
func (r *UserRepo) Create(user *entity.UserAccount) error {
	query := `
		INSERT INTO user_accounts (username, email, password_hash, full_name, role_id,
			tenant_org_id, linked_entity_type, linked_entity_id, avatar_url, is_active,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		user.Username, user.Email, user.PasswordHash, nullIfEmpty(user.FullName), user.RoleID,
		nullIfZero(user.TenantOrgID), nullIfEmpty(user.LinkedEntityType), nullIfZero(user.LinkedEntityID),
		nullIfEmpty(user.AvatarURL), user.IsActive, user.CreatedAt, user.UpdatedAt,
	).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene una cuenta por ID, activa o no.
func (r *UserRepo) GetByID(id int64) (*entity.UserAccount, error) {
	return r.getOne(`SELECT `+userColumns+` FROM user_accounts WHERE id = $1`, id)
}

// GetActiveByID obtiene solo cuentas activas; nil si no existe o está inactiva.
func (r *UserRepo) GetActiveByID(id int64) (*entity.UserAccount, error) {
	return r.getOne(`SELECT `+userColumns+` FROM user_accounts WHERE id = $1 AND is_active`, id)
}

// GetByUsername obtiene una cuenta por username.
func (r *UserRepo) GetByUsername(username string) (*entity.UserAccount, error) {
	return r.getOne(`SELECT `+userColumns+` FROM user_accounts WHERE username = $1`, username)
}

func (r *UserRepo) getOne(query string, arg any) (*entity.UserAccount, error) {
	var u entity.UserAccount
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FullName, &u.RoleID,
		&u.TenantOrgID, &u.LinkedEntityType, &u.LinkedEntityID,
		&u.AvatarURL, &u.IsActive, &u.LastLoginAt, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// ExistsByUsernameOrEmail verifica unicidad global de username/email, excluyendo
// opcionalmente una cuenta (para updates).
func (r *UserRepo) ExistsByUsernameOrEmail(username, email string, excludeID int64) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM user_accounts
			WHERE (username = $1 OR email = $2) AND id <> $3
		)`
	var exists bool
	if err := r.q.QueryRow(context.Background(), query, username, email, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists user: %w", err)
	}
	return exists, nil
}

// Count cuenta todas las cuentas (regla de registro abierto solo con cero usuarios).
func (r *UserRepo) Count() (int64, error) {
	var count int64
	if err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM user_accounts`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
}

// Update actualiza los campos mutables de la cuenta.
func (r *UserRepo) Update(user *entity.UserAccount) error {
	query := `
		UPDATE user_accounts SET username = $2, email = $3, password_hash = $4,
			full_name = $5, avatar_url = $6, is_active = $7, last_login_at = $8,
			linked_entity_type = $9, linked_entity_id = $10, updated_at = $11
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		user.ID, user.Username, user.Email, user.PasswordHash,
		nullIfEmpty(user.FullName), nullIfEmpty(user.AvatarURL), user.IsActive, user.LastLoginAt,
		nullIfEmpty(user.LinkedEntityType), nullIfZero(user.LinkedEntityID), user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// List lista cuentas con paginación.
func (r *UserRepo) List(limit, offset int) ([]*entity.UserAccount, error) {
	query := `SELECT ` + userColumns + ` FROM user_accounts ORDER BY id LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*entity.UserAccount
	for rows.Next() {
		var u entity.UserAccount
		if err := rows.Scan(
			&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FullName, &u.RoleID,
			&u.TenantOrgID, &u.LinkedEntityType, &u.LinkedEntityID,
			&u.AvatarURL, &u.IsActive, &u.LastLoginAt, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}

// Delete elimina una cuenta por ID.
func (r *UserRepo) Delete(id int64) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM user_accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
