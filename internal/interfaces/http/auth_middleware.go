package http

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/propiedades-pro/internal/application/dto"
	"github.com/tu-usuario/propiedades-pro/internal/domain/authz"
	"github.com/tu-usuario/propiedades-pro/internal/domain/entity"
	"github.com/tu-usuario/propiedades-pro/internal/domain/repository"
	"github.com/tu-usuario/propiedades-pro/pkg/jwt"
)

// Locals keys del principal autenticado en Fiber.
const (
	LocalPrincipal  = "principal"
	LocalRolePrefix = "role:" // + role id, cache por request del rol resuelto
)

// AuthDeps dependencias de los middlewares de autenticación y permisos.
type AuthDeps struct {
	JWTSecret  string
	CookieName string
	UserRepo   repository.UserRepository
	RoleRepo   repository.RoleRepository
}

// AuthResolver extrae el token (header Bearer primero, cookie de sesión después),
// lo valida y carga la cuenta activa en c.Locals. Cualquier fallo deja el request
// sin principal y sigue: son los guards posteriores los que responden 401/403.
func AuthResolver(deps AuthDeps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" && deps.CookieName != "" {
			token = c.Cookies(deps.CookieName)
		}
		if token == "" {
			return c.Next()
		}
		userID, _, _, err := jwt.Parse(deps.JWTSecret, token)
		if err != nil {
			return c.Next()
		}
		user, err := deps.UserRepo.GetActiveByID(userID)
		if err != nil || user == nil {
			return c.Next()
		}
		c.Locals(LocalPrincipal, user)
		return c.Next()
	}
}

func bearerToken(c *fiber.Ctx) string {
	h := c.Get("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// GetPrincipal devuelve la cuenta autenticada del contexto, o nil.
func GetPrincipal(c *fiber.Ctx) *entity.UserAccount {
	v := c.Locals(LocalPrincipal)
	if v == nil {
		return nil
	}
	u, _ := v.(*entity.UserAccount)
	return u
}

// GetOrgID devuelve la organización del principal (0 = cuenta global).
func GetOrgID(c *fiber.Ctx) int64 {
	if u := GetPrincipal(c); u != nil {
		return u.TenantOrgID
	}
	return 0
}

// GetUserID devuelve el ID del principal (0 si no hay sesión).
func GetUserID(c *fiber.Ctx) int64 {
	if u := GetPrincipal(c); u != nil {
		return u.ID
	}
	return 0
}

// RequireAuth exige un principal resuelto; 401 en caso contrario.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetPrincipal(c) == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "autenticación requerida"})
		}
		return c.Next()
	}
}

// RequirePermissions exige que el rol vigente del principal conceda alguna de las
// claves (OR). El rol se re-resuelve desde la base, no desde el token, y se cachea
// en Locals por id de rol para no repetir la consulta dentro del mismo request.
func RequirePermissions(deps AuthDeps, keys ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := GetPrincipal(c)
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "autenticación requerida"})
		}
		role, err := resolveRole(c, deps, user.RoleID)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "ROLE_CHECK_FAILED", Message: "no se pudo resolver el rol, intente más tarde"})
		}
		if !authz.Allows(role, keys...) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "permiso insuficiente"})
		}
		return c.Next()
	}
}

func resolveRole(c *fiber.Ctx, deps AuthDeps, roleID int64) (*entity.Role, error) {
	key := fmt.Sprintf("%s%d", LocalRolePrefix, roleID)
	if v := c.Locals(key); v != nil {
		if r, ok := v.(*entity.Role); ok {
			return r, nil
		}
	}
	role, err := deps.RoleRepo.GetByID(roleID)
	if err != nil {
		return nil, err
	}
	c.Locals(key, role)
	return role, nil
}
