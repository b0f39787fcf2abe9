package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appauth "github.com/tu-usuario/propiedades-pro/internal/application/auth"
	"github.com/tu-usuario/propiedades-pro/internal/application/dto"
	"github.com/tu-usuario/propiedades-pro/internal/domain"
	"github.com/tu-usuario/propiedades-pro/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos de persistencia
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	seq   int64
	users map[int64]*entity.UserAccount
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*entity.UserAccount{}}
}

func (r *fakeUserRepo) Create(u *entity.UserAccount) error {
	r.seq++
	u.ID = r.seq
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) GetByID(id int64) (*entity.UserAccount, error) { return r.users[id], nil }

func (r *fakeUserRepo) GetActiveByID(id int64) (*entity.UserAccount, error) {
	u := r.users[id]
	if u == nil || !u.IsActive {
		return nil, nil
	}
	return u, nil
}

func (r *fakeUserRepo) GetByUsername(username string) (*entity.UserAccount, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) ExistsByUsernameOrEmail(username, email string, excludeID int64) (bool, error) {
	for _, u := range r.users {
		if u.ID == excludeID {
			continue
		}
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) Count() (int64, error) { return int64(len(r.users)), nil }

func (r *fakeUserRepo) Update(u *entity.UserAccount) error { r.users[u.ID] = u; return nil }

func (r *fakeUserRepo) List(limit, offset int) ([]*entity.UserAccount, error) { return nil, nil }

func (r *fakeUserRepo) Delete(id int64) error { delete(r.users, id); return nil }

type fakeRoleRepo struct {
	roles map[int64]*entity.Role
}

func (r *fakeRoleRepo) GetByID(id int64) (*entity.Role, error) { return r.roles[id], nil }

func (r *fakeRoleRepo) GetActiveByID(id int64) (*entity.Role, error) {
	role := r.roles[id]
	if role == nil || !role.IsActive {
		return nil, nil
	}
	return role, nil
}

func (r *fakeRoleRepo) List() ([]*entity.Role, error) { return nil, nil }

func (r *fakeRoleRepo) Update(role *entity.Role) error { r.roles[role.ID] = role; return nil }

type fakeOrgRepo struct {
	orgs []*entity.TenantOrg
}

func (r *fakeOrgRepo) Create(org *entity.TenantOrg) error {
	org.ID = int64(len(r.orgs) + 1)
	r.orgs = append(r.orgs, org)
	return nil
}

func (r *fakeOrgRepo) GetByID(id int64) (*entity.TenantOrg, error) {
	for _, o := range r.orgs {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, nil
}

func (r *fakeOrgRepo) GetFirst() (*entity.TenantOrg, error) {
	if len(r.orgs) == 0 {
		return nil, nil
	}
	return r.orgs[0], nil
}

func (r *fakeOrgRepo) List(limit, offset int) ([]*entity.TenantOrg, error) { return r.orgs, nil }

func (r *fakeOrgRepo) GetSettings(tenantOrgID int64) (*entity.OrgSettings, error) { return nil, nil }

func (r *fakeOrgRepo) UpsertSettings(s *entity.OrgSettings) error { return nil }

type fakeRenterRepo struct {
	seq     int64
	renters map[int64]*entity.Renter
}

func newFakeRenterRepo() *fakeRenterRepo { return &fakeRenterRepo{renters: map[int64]*entity.Renter{}} }

func (r *fakeRenterRepo) Create(e *entity.Renter) error {
	r.seq++
	e.ID = r.seq
	r.renters[e.ID] = e
	return nil
}

func (r *fakeRenterRepo) GetByID(id int64) (*entity.Renter, error) { return r.renters[id], nil }

func (r *fakeRenterRepo) GetByCode(tenantOrgID int64, code string) (*entity.Renter, error) {
	for _, e := range r.renters {
		if e.TenantOrgID == tenantOrgID && e.RenterCode == code {
			return e, nil
		}
	}
	return nil, nil
}

func (r *fakeRenterRepo) List(tenantOrgID int64, limit, offset int) ([]*entity.Renter, error) {
	return nil, nil
}

type fakeOwnerRepo struct {
	seq    int64
	owners map[int64]*entity.Owner
}

func newFakeOwnerRepo() *fakeOwnerRepo { return &fakeOwnerRepo{owners: map[int64]*entity.Owner{}} }

func (r *fakeOwnerRepo) Create(e *entity.Owner) error {
	r.seq++
	e.ID = r.seq
	r.owners[e.ID] = e
	return nil
}

func (r *fakeOwnerRepo) GetByID(id int64) (*entity.Owner, error) { return r.owners[id], nil }

func (r *fakeOwnerRepo) GetByCode(tenantOrgID int64, code string) (*entity.Owner, error) {
	for _, e := range r.owners {
		if e.TenantOrgID == tenantOrgID && e.OwnerCode == code {
			return e, nil
		}
	}
	return nil, nil
}

func (r *fakeOwnerRepo) List(tenantOrgID int64, limit, offset int) ([]*entity.Owner, error) {
	return nil, nil
}

type fakeVendorRepo struct {
	seq     int64
	vendors map[int64]*entity.Vendor
}

func newFakeVendorRepo() *fakeVendorRepo { return &fakeVendorRepo{vendors: map[int64]*entity.Vendor{}} }

func (r *fakeVendorRepo) Create(e *entity.Vendor) error {
	r.seq++
	e.ID = r.seq
	r.vendors[e.ID] = e
	return nil
}

func (r *fakeVendorRepo) GetByID(id int64) (*entity.Vendor, error) { return r.vendors[id], nil }

func (r *fakeVendorRepo) GetByCode(tenantOrgID int64, code string) (*entity.Vendor, error) {
	for _, e := range r.vendors {
		if e.TenantOrgID == tenantOrgID && e.VendorCode == code {
			return e, nil
		}
	}
	return nil, nil
}

func (r *fakeVendorRepo) List(tenantOrgID int64, limit, offset int) ([]*entity.Vendor, error) {
	return nil, nil
}

type fakeStaffRepo struct {
	seq   int64
	staff map[int64]*entity.StaffUser
}

func newFakeStaffRepo() *fakeStaffRepo { return &fakeStaffRepo{staff: map[int64]*entity.StaffUser{}} }

func (r *fakeStaffRepo) Create(e *entity.StaffUser) error {
	r.seq++
	e.ID = r.seq
	r.staff[e.ID] = e
	return nil
}

func (r *fakeStaffRepo) GetByID(id int64) (*entity.StaffUser, error) { return r.staff[id], nil }

func (r *fakeStaffRepo) GetByCode(tenantOrgID int64, employeeCode string) (*entity.StaffUser, error) {
	for _, e := range r.staff {
		if e.TenantOrgID == tenantOrgID && e.EmployeeCode == employeeCode {
			return e, nil
		}
	}
	return nil, nil
}

func (r *fakeStaffRepo) List(tenantOrgID int64, limit, offset int) ([]*entity.StaffUser, error) {
	return nil, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Arnés
// ──────────────────────────────────────────────────────────────────────────────

type authHarness struct {
	uc      *appauth.AuthUseCase
	users   *fakeUserRepo
	renters *fakeRenterRepo
	owners  *fakeOwnerRepo
	vendors *fakeVendorRepo
	staff   *fakeStaffRepo
	orgs    *fakeOrgRepo
}

func newAuthHarness() *authHarness {
	users := newFakeUserRepo()
	roles := &fakeRoleRepo{roles: map[int64]*entity.Role{
		1: {ID: 1, RoleName: "admin", IsActive: true, Permissions: map[string]bool{"all": true}},
		2: {ID: 2, RoleName: "manager", IsActive: true, Permissions: map[string]bool{"properties": true}},
		5: {ID: 5, RoleName: "tenant", IsActive: true, Permissions: map[string]bool{"portal": true}},
		6: {ID: 6, RoleName: "owner", IsActive: true, Permissions: map[string]bool{"portal": true}},
	}}
	orgs := &fakeOrgRepo{orgs: []*entity.TenantOrg{
		{ID: 1, OrgCode: "ORG-1", OrgName: "Inmobiliaria Uno", IsActive: true},
		{ID: 2, OrgCode: "ORG-2", OrgName: "Inmobiliaria Dos", IsActive: true},
	}}
	renters := newFakeRenterRepo()
	owners := newFakeOwnerRepo()
	vendors := newFakeVendorRepo()
	staff := newFakeStaffRepo()
	uc := appauth.NewAuthUseCase(users, roles, orgs, renters, owners, vendors, staff, appauth.JWTConfig{
		Secret:     "clave-de-prueba",
		ExpMinutes: 60,
		Issuer:     "propiedades-pro-test",
	})
	return &authHarness{uc: uc, users: users, renters: renters, owners: owners, vendors: vendors, staff: staff, orgs: orgs}
}

// superActor crea y devuelve una cuenta superusuario ya persistida, de modo que
// el registro deja de estar abierto (hay al menos un usuario).
func (h *authHarness) superActor(t *testing.T, tenantOrgID int64) *entity.UserAccount {
	t.Helper()
	actor := &entity.UserAccount{
		Username:    "root",
		Email:       "root@test.local",
		RoleID:      entity.BootstrapRoleID,
		TenantOrgID: tenantOrgID,
		IsActive:    true,
	}
	require.NoError(t, h.users.Create(actor))
	return actor
}

func registerReq(roleID int64, orgID int64) dto.RegisterRequest {
	org := orgID
	return dto.RegisterRequest{
		Username:    "nueva-cuenta",
		Email:       "nueva@test.local",
		Password:    "secreto-largo",
		FullName:    "Cuenta Nueva",
		RoleID:      roleID,
		TenantOrgID: &org,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro con entidad ligada
// ──────────────────────────────────────────────────────────────────────────────

// Ligar la cuenta a un inquilino existente de la misma organización: no se crea
// perfil nuevo y la cuenta queda apuntando a la entidad.
func TestRegister_LigaEntidadExistente(t *testing.T) {
	h := newAuthHarness()
	actor := h.superActor(t, 0)
	renter := &entity.Renter{TenantOrgID: 1, RenterCode: "TEN-001", Status: "Active"}
	require.NoError(t, h.renters.Create(renter))

	in := registerReq(5, 1)
	in.LinkedEntityID = renter.ID
	out, err := h.uc.Register(in, actor)
	require.NoError(t, err)
	assert.Equal(t, entity.LinkedEntityRenter, out.LinkedEntityType)
	assert.Len(t, h.renters.renters, 1, "no se crea un perfil nuevo")
}

// Entidad ligada que no existe: la cuenta no se crea.
func TestRegister_EntidadLigadaInexistente(t *testing.T) {
	h := newAuthHarness()
	actor := h.superActor(t, 0)

	in := registerReq(5, 1)
	in.LinkedEntityID = 999
	_, err := h.uc.Register(in, actor)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Len(t, h.users.users, 1, "solo el actor")
}

// Entidad de otra organización: denegado aunque exista.
func TestRegister_EntidadLigadaDeOtraOrg(t *testing.T) {
	h := newAuthHarness()
	actor := h.superActor(t, 0)
	renter := &entity.Renter{TenantOrgID: 2, RenterCode: "TEN-002", Status: "Active"}
	require.NoError(t, h.renters.Create(renter))

	in := registerReq(5, 1)
	in.LinkedEntityID = renter.ID
	_, err := h.uc.Register(in, actor)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// El tipo declarado debe corresponder al rol: un rol tenant no liga propietarios.
func TestRegister_TipoLigadoIncompatibleConRol(t *testing.T) {
	h := newAuthHarness()
	actor := h.superActor(t, 0)
	owner := &entity.Owner{TenantOrgID: 1, OwnerCode: "OWN-001", Status: "Active"}
	require.NoError(t, h.owners.Create(owner))

	in := registerReq(5, 1)
	in.LinkedEntityType = entity.LinkedEntityOwner
	in.LinkedEntityID = owner.ID
	_, err := h.uc.Register(in, actor)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Un actor con organización asignada no crea cuentas en otra organización.
func TestRegister_OrgAjenaDenegada(t *testing.T) {
	h := newAuthHarness()
	actor := h.superActor(t, 1)

	in := registerReq(5, 2)
	_, err := h.uc.Register(in, actor)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// Código de perfil ya tomado en la organización: conflicto antes de escribir.
func TestRegister_CodigoPerfilDuplicado(t *testing.T) {
	h := newAuthHarness()
	actor := h.superActor(t, 0)
	require.NoError(t, h.renters.Create(&entity.Renter{TenantOrgID: 1, RenterCode: "TEN-OCUPADO", Status: "Active"}))

	in := registerReq(5, 1)
	in.Profile = &dto.ProfileRequest{RenterCode: "TEN-OCUPADO"}
	_, err := h.uc.Register(in, actor)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Len(t, h.users.users, 1, "solo el actor")
}
