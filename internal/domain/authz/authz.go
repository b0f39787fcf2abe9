// Package authz resuelve permisos sobre mapas planos de capacidades.
//
// No hay jerarquía de roles: un rol lleva un conjunto de claves string→bool y la
// verificación es coincidencia plana con fallback de prefijo. Una clave gruesa
// como "billing" autoriza verificaciones finas como "billing:void" o "billing.adjust".
package authz

import (
	"strings"

	"github.com/tu-usuario/propiedades-pro/internal/domain/entity"
)

// WildcardKey clave comodín: en true concede todos los permisos.
const WildcardKey = "all"

// Normalize lleva la representación cruda de permisos de un rol a un mapa clave→bool.
// Una lista de strings se vuelve mapa con valor true; un mapa se usa tal cual;
// cualquier otra cosa produce un mapa vacío.
func Normalize(raw interface{}) map[string]bool {
	switch p := raw.(type) {
	case nil:
		return map[string]bool{}
	case map[string]bool:
		return p
	case map[string]interface{}:
		out := make(map[string]bool, len(p))
		for k, v := range p {
			b, ok := v.(bool)
			out[k] = ok && b
		}
		return out
	case []string:
		out := make(map[string]bool, len(p))
		for _, k := range p {
			out[k] = true
		}
		return out
	case []interface{}:
		out := make(map[string]bool, len(p))
		for _, v := range p {
			if s, ok := v.(string); ok {
				out[s] = true
			}
		}
		return out
	default:
		return map[string]bool{}
	}
}

// HasKey informa si el mapa concede la clave requerida: coincidencia exacta,
// o el prefijo antes de ":" presente en true, o el prefijo antes de "." presente en true.
func HasKey(perms map[string]bool, required string) bool {
	if perms[required] {
		return true
	}
	if i := strings.Index(required, ":"); i >= 0 {
		if perms[required[:i]] {
			return true
		}
	}
	if i := strings.Index(required, "."); i >= 0 {
		if perms[required[:i]] {
			return true
		}
	}
	return false
}

// Allows decide si el rol autoriza alguna de las claves requeridas (OR).
//   - Rol nil o inactivo: niega.
//   - Rol llamado "admin" o con el comodín "all" en true: concede incondicionalmente.
//   - En otro caso, concede a la primera clave requerida que coincida; niega si ninguna.
func Allows(role *entity.Role, required ...string) bool {
	if role == nil || !role.IsActive {
		return false
	}
	if role.RoleName == entity.SuperRoleName {
		return true
	}
	perms := role.Permissions
	if perms == nil {
		perms = map[string]bool{}
	}
	if perms[WildcardKey] {
		return true
	}
	for _, req := range required {
		if HasKey(perms, req) {
			return true
		}
	}
	return false
}
