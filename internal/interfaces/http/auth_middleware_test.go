package http_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/propiedades-pro/internal/domain/entity"
	apphttp "github.com/tu-usuario/propiedades-pro/internal/interfaces/http"
	pkgjwt "github.com/tu-usuario/propiedades-pro/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret  = "test-secret-key-for-unit-tests"
	testCookieName = "access_token"
	testIssuer     = "propiedades-pro-test"
	testExpMin     = 60
)

// fakeUserRepo implementación mínima de repository.UserRepository para los
// middlewares: solo GetActiveByID se usa en este camino.
type fakeUserRepo struct {
	users map[int64]*entity.UserAccount
}

func (f *fakeUserRepo) Create(u *entity.UserAccount) error { return nil }
func (f *fakeUserRepo) GetByID(id int64) (*entity.UserAccount, error) {
	return f.users[id], nil
}
func (f *fakeUserRepo) GetActiveByID(id int64) (*entity.UserAccount, error) {
	u := f.users[id]
	if u == nil || !u.IsActive {
		return nil, nil
	}
	return u, nil
}
func (f *fakeUserRepo) GetByUsername(string) (*entity.UserAccount, error) { return nil, nil }
func (f *fakeUserRepo) ExistsByUsernameOrEmail(string, string, int64) (bool, error) {
	return false, nil
}
func (f *fakeUserRepo) Count() (int64, error)                        { return int64(len(f.users)), nil }
func (f *fakeUserRepo) Update(*entity.UserAccount) error             { return nil }
func (f *fakeUserRepo) List(int, int) ([]*entity.UserAccount, error) { return nil, nil }
func (f *fakeUserRepo) Delete(int64) error                           { return nil }

type fakeRoleRepo struct {
	roles map[int64]*entity.Role
	hits  int // consultas a la base, para verificar el cache por request
}

func (f *fakeRoleRepo) GetByID(id int64) (*entity.Role, error) {
	f.hits++
	return f.roles[id], nil
}
func (f *fakeRoleRepo) GetActiveByID(id int64) (*entity.Role, error) {
	r := f.roles[id]
	if r == nil || !r.IsActive {
		return nil, nil
	}
	return r, nil
}
func (f *fakeRoleRepo) List() ([]*entity.Role, error) { return nil, nil }
func (f *fakeRoleRepo) Update(*entity.Role) error     { return nil }

type testEnv struct {
	app   *fiber.App
	users *fakeUserRepo
	roles *fakeRoleRepo
}

// buildTestEnv construye una app Fiber con AuthResolver y una ruta protegida
// por las claves de permiso indicadas.
func buildTestEnv(keys ...string) *testEnv {
	users := &fakeUserRepo{users: map[int64]*entity.UserAccount{}}
	roles := &fakeRoleRepo{roles: map[int64]*entity.Role{}}
	deps := apphttp.AuthDeps{
		JWTSecret:  testJWTSecret,
		CookieName: testCookieName,
		UserRepo:   users,
		RoleRepo:   roles,
	}
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthResolver(deps),
		apphttp.RequirePermissions(deps, keys...),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"ok": true, "user_id": apphttp.GetUserID(c)})
		},
	)
	return &testEnv{app: app, users: users, roles: roles}
}

// addUser registra una cuenta activa con el rol dado y devuelve su token.
func (e *testEnv) addUser(t *testing.T, userID, roleID int64, perms map[string]bool, roleName string) string {
	t.Helper()
	e.users.users[userID] = &entity.UserAccount{
		ID: userID, Username: "u", RoleID: roleID, TenantOrgID: 7, IsActive: true,
	}
	e.roles.roles[roleID] = &entity.Role{
		ID: roleID, RoleName: roleName, Permissions: perms, IsActive: true,
	}
	tok, err := pkgjwt.Generate(testJWTSecret, userID, 7, roleName, testIssuer, testExpMin)
	require.NoError(t, err)
	return tok
}

func (e *testEnv) get(t *testing.T, authHeader, cookie string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: testCookieName, Value: cookie})
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequirePermissions
// ──────────────────────────────────────────────────────────────────────────────

func TestRequirePermissions_ClaveExactaConcede(t *testing.T) {
	env := buildTestEnv("billing")
	tok := env.addUser(t, 1, 10, map[string]bool{"billing": true}, "accountant")

	resp := env.get(t, "Bearer "+tok, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequirePermissions_PrefijoConcedeClaveFina(t *testing.T) {
	// La clave gruesa "billing" debe autorizar verificaciones finas
	// como "billing:void" y "billing.adjust".
	env := buildTestEnv("billing:void")
	tok := env.addUser(t, 1, 10, map[string]bool{"billing": true}, "accountant")
	resp := env.get(t, "Bearer "+tok, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	env2 := buildTestEnv("billing.adjust")
	tok2 := env2.addUser(t, 1, 10, map[string]bool{"billing": true}, "accountant")
	resp2 := env2.get(t, "Bearer "+tok2, "")
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusOK, resp2.StatusCode)
}

func TestRequirePermissions_ComodinConcedeTodo(t *testing.T) {
	env := buildTestEnv("cualquier:cosa")
	tok := env.addUser(t, 1, 10, map[string]bool{"all": true}, "manager")

	resp := env.get(t, "Bearer "+tok, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequirePermissions_RolAdminConcedeSinMapa(t *testing.T) {
	env := buildTestEnv("billing", "finance")
	tok := env.addUser(t, 1, 1, map[string]bool{}, "admin")

	resp := env.get(t, "Bearer "+tok, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequirePermissions_SinClaveRetorna403(t *testing.T) {
	env := buildTestEnv("billing")
	tok := env.addUser(t, 1, 10, map[string]bool{"maintenance": true}, "support")

	resp := env.get(t, "Bearer "+tok, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

func TestRequirePermissions_RolInactivoRetorna403(t *testing.T) {
	env := buildTestEnv("billing")
	tok := env.addUser(t, 1, 10, map[string]bool{"billing": true}, "accountant")
	env.roles.roles[10].IsActive = false

	resp := env.get(t, "Bearer "+tok, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRequirePermissions_SinTokenRetorna401(t *testing.T) {
	env := buildTestEnv("billing")
	resp := env.get(t, "", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequirePermissions_TokenInvalidoRetorna401(t *testing.T) {
	env := buildTestEnv("billing")
	resp := env.get(t, "Bearer token.invalido.aqui", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequirePermissions_CuentaInactivaRetorna401(t *testing.T) {
	env := buildTestEnv("billing")
	tok := env.addUser(t, 1, 10, map[string]bool{"billing": true}, "accountant")
	env.users.users[1].IsActive = false

	resp := env.get(t, "Bearer "+tok, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthResolver — fuentes del token y cache de rol
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthResolver_CookieComoFallback(t *testing.T) {
	env := buildTestEnv("billing")
	tok := env.addUser(t, 1, 10, map[string]bool{"billing": true}, "accountant")

	// Sin header Authorization: el token viaja solo en la cookie de sesión.
	resp := env.get(t, "", tok)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthResolver_HeaderTienePrioridadSobreCookie(t *testing.T) {
	env := buildTestEnv("billing")
	tok := env.addUser(t, 1, 10, map[string]bool{"billing": true}, "accountant")

	// Cookie con basura pero header válido: el header manda.
	resp := env.get(t, "Bearer "+tok, "cookie-basura")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequirePermissions_RolSeConsultaUnaVezPorRequest(t *testing.T) {
	// Dos guards encadenados sobre el mismo rol: la segunda verificación debe
	// leer el rol del cache en Locals, no de la base.
	users := &fakeUserRepo{users: map[int64]*entity.UserAccount{}}
	roles := &fakeRoleRepo{roles: map[int64]*entity.Role{}}
	deps := apphttp.AuthDeps{
		JWTSecret:  testJWTSecret,
		CookieName: testCookieName,
		UserRepo:   users,
		RoleRepo:   roles,
	}
	app := fiber.New()
	app.Get("/doble",
		apphttp.AuthResolver(deps),
		apphttp.RequirePermissions(deps, "billing"),
		apphttp.RequirePermissions(deps, "billing:void"),
		func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) },
	)
	users.users[1] = &entity.UserAccount{ID: 1, Username: "u", RoleID: 10, IsActive: true}
	roles.roles[10] = &entity.Role{ID: 10, RoleName: "accountant", Permissions: map[string]bool{"billing": true}, IsActive: true}
	tok, err := pkgjwt.Generate(testJWTSecret, 1, 7, "accountant", testIssuer, testExpMin)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/doble", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, roles.hits, "el rol debe consultarse una sola vez por request")
}

// El rol del token es informativo: la autorización usa el rol vigente en base.
func TestRequirePermissions_RolVigenteNoElDelToken(t *testing.T) {
	env := buildTestEnv("billing")
	tok := env.addUser(t, 1, 10, map[string]bool{"billing": true}, "accountant")

	// Después de emitido el token, el rol pierde el permiso.
	env.roles.roles[10].Permissions = map[string]bool{"maintenance": true}

	resp := env.get(t, "Bearer "+tok, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
