package authz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/propiedades-pro/internal/domain/authz"
	"github.com/tu-usuario/propiedades-pro/internal/domain/entity"
)

func activeRole(name string, perms map[string]bool) *entity.Role {
	return &entity.Role{ID: 2, RoleName: name, Permissions: perms, IsActive: true}
}

// El comodín "all" concede cualquier clave, sin importar cuál se pida.
func TestAllows_ComodinConcedeTodo(t *testing.T) {
	r := activeRole("accountant", map[string]bool{"all": true})
	for _, key := range []string{"billing", "billing:void", "properties.update", "loquesea"} {
		assert.True(t, authz.Allows(r, key), "el comodín debe conceder %q", key)
	}
}

// El rol reservado "admin" ignora el mapa de permisos por completo.
func TestAllows_RolAdminConcedeSinMapa(t *testing.T) {
	r := activeRole("admin", nil)
	assert.True(t, authz.Allows(r, "billing:void"))
	assert.True(t, authz.Allows(r, "cualquier.cosa"))
}

// Una clave gruesa "billing" autoriza sus claves finas con ":" y con ".".
func TestAllows_FallbackDePrefijo(t *testing.T) {
	r := activeRole("accountant", map[string]bool{"billing": true})
	assert.True(t, authz.Allows(r, "billing:void"))
	assert.True(t, authz.Allows(r, "billing.adjust"))
	assert.False(t, authz.Allows(r, "properties:update"),
		"un prefijo no concedido debe negar")
}

// La verificación es un OR: basta con que una clave requerida coincida.
func TestAllows_ListaOR(t *testing.T) {
	r := activeRole("support", map[string]bool{"maintenance": true})
	assert.True(t, authz.Allows(r, "billing", "maintenance"))
	assert.False(t, authz.Allows(r, "billing", "finance"))
}

// Rol nil, inactivo o con clave en false: niega.
func TestAllows_RolAusenteOInactivo(t *testing.T) {
	assert.False(t, authz.Allows(nil, "billing"))

	inactive := activeRole("accountant", map[string]bool{"billing": true})
	inactive.IsActive = false
	assert.False(t, authz.Allows(inactive, "billing"))

	denied := activeRole("viewer", map[string]bool{"billing": false})
	assert.False(t, authz.Allows(denied, "billing"))
}

// Normalize acepta listas, mapas y basura.
func TestNormalize_Representaciones(t *testing.T) {
	assert.Equal(t, map[string]bool{"a": true, "b": true}, authz.Normalize([]string{"a", "b"}))
	assert.Equal(t, map[string]bool{"a": true}, authz.Normalize(map[string]bool{"a": true}))

	// JSON decodificado genérico: map[string]interface{} y []interface{}
	assert.Equal(t, map[string]bool{"a": true, "b": false},
		authz.Normalize(map[string]interface{}{"a": true, "b": "yes"}))
	assert.Equal(t, map[string]bool{"x": true}, authz.Normalize([]interface{}{"x", 7}))

	assert.Empty(t, authz.Normalize(nil))
	assert.Empty(t, authz.Normalize(42))
}
