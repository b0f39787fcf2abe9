package entity

import "time"

// SuperRoleName rol reservado que concede todos los permisos sin consultar el mapa.
const SuperRoleName = "admin"

// BootstrapRoleID rol del superusuario creado en el seed inicial.
const BootstrapRoleID int64 = 1

// Role agrupa un conjunto plano de permisos bajo un nombre.
// Permissions es un mapa clave→bool; la clave "all" en true equivale al comodín.
// No hay jerarquía de roles: solo coincidencia plana de claves con fallback de prefijo.
type Role struct {
	ID          int64
	RoleName    string
	Description string
	Permissions map[string]bool
	IsSystem    bool // protegido: no se elimina
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
