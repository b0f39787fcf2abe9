package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/propiedades-pro/internal/domain/entity"
	"github.com/tu-usuario/propiedades-pro/internal/domain/repository"
)

var _ repository.RoleRepository = (*RoleRepo)(nil)

// RoleRepo implementación del puerto RoleRepository sobre PostgreSQL.
// Permissions viaja como JSONB y pgx lo (de)serializa directo al mapa.
type RoleRepo struct {
	q Querier
}

// NewRoleRepository construye el adaptador de persistencia para roles.
func NewRoleRepository(q Querier) *RoleRepo {
	return &RoleRepo{q: q}
}

const roleColumns = `id, role_name, COALESCE(description, ''), permissions, is_system, is_active, created_at, updated_at`

// GetByID obtiene un rol por ID, activo o no.
func (r *RoleRepo) GetByID(id int64) (*entity.Role, error) {
	return r.getOne(`SELECT ` + roleColumns + ` FROM roles WHERE id = $1`, id)
}

// GetActiveByID obtiene solo roles activos; nil si no existe o está inactivo.
func (r *RoleRepo) GetActiveByID(id int64) (*entity.Role, error) {
	return r.getOne(`SELECT ` + roleColumns + ` FROM roles WHERE id = $1 AND is_active`, id)
}

func (r *RoleRepo) getOne(query string, id int64) (*entity.Role, error) {
	var role entity.Role
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&role.ID, &role.RoleName, &role.Description, &role.Permissions,
		&role.IsSystem, &role.IsActive, &role.CreatedAt, &role.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get role: %w", err)
	}
	return &role, nil
}

// List lista todos los roles.
func (r *RoleRepo) List() ([]*entity.Role, error) {
	rows, err := r.q.Query(context.Background(), `SELECT `+roleColumns+` FROM roles ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()
	var list []*entity.Role
	for rows.Next() {
		var role entity.Role
		if err := rows.Scan(
			&role.ID, &role.RoleName, &role.Description, &role.Permissions,
			&role.IsSystem, &role.IsActive, &role.CreatedAt, &role.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		list = append(list, &role)
	}
	return list, rows.Err()
}

// Update persiste permissions, description e is_active; el resto es inmutable.
func (r *RoleRepo) Update(role *entity.Role) error {
	query := `
		UPDATE roles SET permissions = $2, description = $3, is_active = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		role.ID, role.Permissions, nullIfEmpty(role.Description), role.IsActive, role.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update role: %w", err)
	}
	return nil
}
