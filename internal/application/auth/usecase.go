package auth

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/propiedades-pro/internal/application/dto"
	"github.com/tu-usuario/propiedades-pro/internal/domain"
	"github.com/tu-usuario/propiedades-pro/internal/domain/authz"
	"github.com/tu-usuario/propiedades-pro/internal/domain/entity"
	"github.com/tu-usuario/propiedades-pro/internal/domain/repository"
	"github.com/tu-usuario/propiedades-pro/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de cuentas: registro, login, gestión de usuarios y roles.
type AuthUseCase struct {
	userRepo   repository.UserRepository
	roleRepo   repository.RoleRepository
	orgRepo    repository.OrgRepository
	renterRepo repository.RenterRepository
	ownerRepo  repository.OwnerRepository
	vendorRepo repository.VendorRepository
	staffRepo  repository.StaffRepository
	jwtCfg     JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	orgRepo repository.OrgRepository,
	renterRepo repository.RenterRepository,
	ownerRepo repository.OwnerRepository,
	vendorRepo repository.VendorRepository,
	staffRepo repository.StaffRepository,
	jwtCfg JWTConfig,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:   userRepo,
		roleRepo:   roleRepo,
		orgRepo:    orgRepo,
		renterRepo: renterRepo,
		ownerRepo:  ownerRepo,
		vendorRepo: vendorRepo,
		staffRepo:  staffRepo,
		jwtCfg:     jwtCfg,
	}
}

// Register crea una cuenta. El registro está abierto solo cuando no existe ningún
// usuario (bootstrap); después exige que el actor autenticado sea superusuario.
// Según el nombre del rol asignado se crea (o liga) el perfil de dominio:
// tenant→inquilino, owner→propietario, vendor→proveedor, staff→empleado.
func (uc *AuthUseCase) Register(in dto.RegisterRequest, actor *entity.UserAccount) (*dto.UserResponse, error) {
	count, err := uc.userRepo.Count()
	if err != nil {
		return nil, err
	}
	if count > 0 {
		if actor == nil {
			return nil, domain.ErrUnauthorized
		}
		if !uc.actorIsSuper(actor) {
			return nil, domain.ErrForbidden
		}
	}

	exists, err := uc.userRepo.ExistsByUsernameOrEmail(in.Username, in.Email, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicate
	}

	role, err := uc.roleRepo.GetActiveByID(in.RoleID)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, domain.ErrNotFound // rol no existe o está inactivo
	}

	orgID, err := uc.resolveOrgID(in.TenantOrgID, actor)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &entity.UserAccount{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		FullName:     in.FullName,
		RoleID:       role.ID,
		TenantOrgID:  orgID,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if in.LinkedEntityID > 0 {
		// Liga a una entidad de dominio ya existente, sin crear perfil.
		if err := uc.linkExistingEntity(user, role, orgID, in); err != nil {
			return nil, err
		}
	} else if orgID > 0 {
		if err := uc.attachProfile(user, role, orgID, in.Profile); err != nil {
			return nil, err
		}
	}

	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return uc.toUserResponse(user, role.RoleName), nil
}

// actorIsSuper concede si el actor tiene el rol de arranque o el rol "admin".
func (uc *AuthUseCase) actorIsSuper(actor *entity.UserAccount) bool {
	if actor.RoleID == entity.BootstrapRoleID {
		return true
	}
	role, err := uc.roleRepo.GetActiveByID(actor.RoleID)
	if err != nil || role == nil {
		return false
	}
	return role.RoleName == entity.SuperRoleName
}

// resolveOrgID decide la organización de la cuenta nueva: la explícita del request,
// la del actor, o la primera organización registrada como fallback. Un actor
// con organización asignada solo crea cuentas dentro de ella; cuentas globales
// (organización 0) no tienen la restricción.
func (uc *AuthUseCase) resolveOrgID(explicit *int64, actor *entity.UserAccount) (int64, error) {
	if explicit != nil {
		if actor != nil && actor.TenantOrgID > 0 && actor.TenantOrgID != *explicit {
			return 0, domain.ErrForbidden
		}
		return *explicit, nil
	}
	if actor != nil && actor.TenantOrgID > 0 {
		return actor.TenantOrgID, nil
	}
	org, err := uc.orgRepo.GetFirst()
	if err != nil {
		return 0, err
	}
	if org == nil {
		return 0, nil // bootstrap sin organizaciones todavía
	}
	return org.ID, nil
}

// expectedLinkedType tipo de entidad de dominio que corresponde al rol.
func expectedLinkedType(roleName string) string {
	switch strings.ToLower(roleName) {
	case "tenant", "renter":
		return entity.LinkedEntityRenter
	case "owner":
		return entity.LinkedEntityOwner
	case "vendor":
		return entity.LinkedEntityVendor
	case "admin", "manager", "accountant", "support":
		return entity.LinkedEntityStaff
	}
	return ""
}

// linkExistingEntity valida y liga la cuenta a una entidad de dominio existente:
// el tipo debe corresponder al rol, la entidad debe existir y pertenecer a la
// misma organización que la cuenta.
func (uc *AuthUseCase) linkExistingEntity(user *entity.UserAccount, role *entity.Role, orgID int64, in dto.RegisterRequest) error {
	expected := expectedLinkedType(role.RoleName)
	if expected == "" {
		return domain.ErrInvalidInput // el rol no admite entidad ligada
	}
	if in.LinkedEntityType != "" && in.LinkedEntityType != expected {
		return domain.ErrInvalidInput
	}

	var entityOrgID int64
	switch expected {
	case entity.LinkedEntityRenter:
		r, err := uc.renterRepo.GetByID(in.LinkedEntityID)
		if err != nil {
			return err
		}
		if r == nil {
			return domain.ErrNotFound
		}
		entityOrgID = r.TenantOrgID
	case entity.LinkedEntityOwner:
		o, err := uc.ownerRepo.GetByID(in.LinkedEntityID)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrNotFound
		}
		entityOrgID = o.TenantOrgID
	case entity.LinkedEntityVendor:
		v, err := uc.vendorRepo.GetByID(in.LinkedEntityID)
		if err != nil {
			return err
		}
		if v == nil {
			return domain.ErrNotFound
		}
		entityOrgID = v.TenantOrgID
	case entity.LinkedEntityStaff:
		s, err := uc.staffRepo.GetByID(in.LinkedEntityID)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.ErrNotFound
		}
		entityOrgID = s.TenantOrgID
	}
	if orgID > 0 && entityOrgID != orgID {
		return domain.ErrForbidden
	}

	user.LinkedEntityType = expected
	user.LinkedEntityID = in.LinkedEntityID
	return nil
}

// attachProfile crea el perfil de dominio según el rol y deja la cuenta ligada a él.
func (uc *AuthUseCase) attachProfile(user *entity.UserAccount, role *entity.Role, orgID int64, p *dto.ProfileRequest) error {
	if p == nil {
		p = &dto.ProfileRequest{}
	}
	first, last := p.FirstName, p.LastName
	if first == "" && last == "" {
		first = user.FullName
	}
	email := p.Email
	if email == "" {
		email = user.Email
	}
	now := time.Now()

	switch strings.ToLower(role.RoleName) {
	case "tenant", "renter":
		code := p.RenterCode
		if code == "" {
			code = generateCode("TEN")
		} else if existing, err := uc.renterRepo.GetByCode(orgID, code); err != nil {
			return err
		} else if existing != nil {
			return domain.ErrDuplicate
		}
		rtype := p.RenterType
		if rtype == "" {
			rtype = "Individual"
		}
		renter := &entity.Renter{
			TenantOrgID: orgID,
			RenterCode:  code,
			RenterType:  rtype,
			FirstName:   first,
			LastName:    last,
			CompanyName: p.CompanyName,
			Email:       email,
			Phone:       p.Phone,
			IDType:      p.IDType,
			IDNumber:    p.IDNumber,
			Status:      "Active",
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := uc.renterRepo.Create(renter); err != nil {
			return err
		}
		user.LinkedEntityType = entity.LinkedEntityRenter
		user.LinkedEntityID = renter.ID

	case "owner":
		code := p.OwnerCode
		if code == "" {
			code = generateCode("OWN")
		} else if existing, err := uc.ownerRepo.GetByCode(orgID, code); err != nil {
			return err
		} else if existing != nil {
			return domain.ErrDuplicate
		}
		otype := p.OwnerType
		if otype == "" {
			otype = "Individual"
		}
		owner := &entity.Owner{
			TenantOrgID: orgID,
			OwnerCode:   code,
			OwnerType:   otype,
			FirstName:   first,
			LastName:    last,
			CompanyName: p.CompanyName,
			Email:       email,
			Phone:       p.Phone,
			TaxID:       p.TaxID,
			Status:      "Active",
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := uc.ownerRepo.Create(owner); err != nil {
			return err
		}
		user.LinkedEntityType = entity.LinkedEntityOwner
		user.LinkedEntityID = owner.ID

	case "vendor":
		code := p.VendorCode
		if code == "" {
			code = generateCode("VEN")
		} else if existing, err := uc.vendorRepo.GetByCode(orgID, code); err != nil {
			return err
		} else if existing != nil {
			return domain.ErrDuplicate
		}
		company := p.CompanyName
		if company == "" {
			company = user.FullName
		}
		vendor := &entity.Vendor{
			TenantOrgID:     orgID,
			VendorCode:      code,
			CompanyName:     company,
			ContactPerson:   p.ContactPerson,
			Email:           email,
			Phone:           p.Phone,
			ServiceCategory: p.ServiceCategory,
			LicenseNumber:   p.LicenseNumber,
			Status:          "Active",
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := uc.vendorRepo.Create(vendor); err != nil {
			return err
		}
		user.LinkedEntityType = entity.LinkedEntityVendor
		user.LinkedEntityID = vendor.ID

	case "admin", "manager", "accountant", "support":
		code := p.EmployeeCode
		if code == "" {
			code = generateCode("EMP")
		} else if existing, err := uc.staffRepo.GetByCode(orgID, code); err != nil {
			return err
		} else if existing != nil {
			return domain.ErrDuplicate
		}
		staff := &entity.StaffUser{
			TenantOrgID:  orgID,
			EmployeeCode: code,
			FirstName:    first,
			LastName:     last,
			Email:        email,
			Phone:        p.Phone,
			RoleID:       role.ID,
			Department:   p.Department,
			Status:       "Active",
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := uc.staffRepo.Create(staff); err != nil {
			return err
		}
		user.LinkedEntityType = entity.LinkedEntityStaff
		user.LinkedEntityID = staff.ID
	}
	// Roles fuera del mapeo quedan sin perfil ligado.
	return nil
}

func generateCode(prefix string) string {
	return prefix + "-" + strings.ToUpper(uuid.NewString()[:8])
}

// Login verifica username/password, registra el último acceso y emite el JWT.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByUsername(in.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized // mismo error que password inválido
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive {
		return nil, domain.ErrForbidden
	}

	roleName := ""
	if role, err := uc.roleRepo.GetByID(user.RoleID); err == nil && role != nil {
		roleName = role.RoleName
	}

	now := time.Now()
	user.LastLoginAt = &now
	user.UpdatedAt = now
	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.TenantOrgID, roleName, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        *uc.toUserResponse(user, roleName),
	}, nil
}

// Me devuelve el perfil de la cuenta autenticada.
func (uc *AuthUseCase) Me(userID int64) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetActiveByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	roleName := ""
	if role, err := uc.roleRepo.GetByID(user.RoleID); err == nil && role != nil {
		roleName = role.RoleName
	}
	return uc.toUserResponse(user, roleName), nil
}

// ListUsers lista cuentas con paginación.
func (uc *AuthUseCase) ListUsers(limit, offset int) ([]dto.UserResponse, error) {
	users, err := uc.userRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	roleNames := map[int64]string{}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		name, ok := roleNames[u.RoleID]
		if !ok {
			if role, err := uc.roleRepo.GetByID(u.RoleID); err == nil && role != nil {
				name = role.RoleName
			}
			roleNames[u.RoleID] = name
		}
		out = append(out, *uc.toUserResponse(u, name))
	}
	return out, nil
}

// UpdateUser aplica la lista blanca de campos. Cambiar role_id está bloqueado
// porque los perfiles de dominio quedan ligados al rol original de la cuenta.
func (uc *AuthUseCase) UpdateUser(id int64, in dto.UserUpdateRequest) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.RoleID != nil && *in.RoleID != user.RoleID {
		return nil, domain.ErrConflict // el rol no se cambia después del alta
	}

	username := user.Username
	email := user.Email
	if in.Username != nil {
		username = *in.Username
	}
	if in.Email != nil {
		email = *in.Email
	}
	if username != user.Username || email != user.Email {
		exists, err := uc.userRepo.ExistsByUsernameOrEmail(username, email, user.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrDuplicate
		}
	}

	user.Username = username
	user.Email = email
	if in.FullName != nil {
		user.FullName = *in.FullName
	}
	if in.AvatarURL != nil {
		user.AvatarURL = *in.AvatarURL
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}
	user.UpdatedAt = time.Now()

	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}
	roleName := ""
	if role, err := uc.roleRepo.GetByID(user.RoleID); err == nil && role != nil {
		roleName = role.RoleName
	}
	return uc.toUserResponse(user, roleName), nil
}

// DeleteUser elimina una cuenta. La cuenta de arranque "admin" está protegida.
func (uc *AuthUseCase) DeleteUser(id int64) error {
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if user.Username == entity.BootstrapUsername {
		return domain.ErrProtectedResource
	}
	return uc.userRepo.Delete(id)
}

// ListRoles lista todos los roles con sus permisos.
func (uc *AuthUseCase) ListRoles() ([]dto.RoleResponse, error) {
	roles, err := uc.roleRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.RoleResponse, 0, len(roles))
	for _, r := range roles {
		out = append(out, toRoleResponse(r))
	}
	return out, nil
}

// UpdateRole muta permissions (normalizados), description e is_active.
func (uc *AuthUseCase) UpdateRole(id int64, in dto.RoleUpdateRequest) (*dto.RoleResponse, error) {
	role, err := uc.roleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, domain.ErrNotFound
	}
	if in.Permissions != nil {
		role.Permissions = authz.Normalize(in.Permissions)
	}
	if in.Description != nil {
		role.Description = *in.Description
	}
	if in.IsActive != nil {
		role.IsActive = *in.IsActive
	}
	role.UpdatedAt = time.Now()
	if err := uc.roleRepo.Update(role); err != nil {
		return nil, err
	}
	resp := toRoleResponse(role)
	return &resp, nil
}

func (uc *AuthUseCase) toUserResponse(u *entity.UserAccount, roleName string) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:               u.ID,
		Username:         u.Username,
		Email:            u.Email,
		FullName:         u.FullName,
		RoleID:           u.RoleID,
		RoleName:         roleName,
		TenantOrgID:      u.TenantOrgID,
		LinkedEntityType: u.LinkedEntityType,
		IsActive:         u.IsActive,
		LastLoginAt:      u.LastLoginAt,
		AvatarURL:        u.AvatarURL,
	}
}

func toRoleResponse(r *entity.Role) dto.RoleResponse {
	return dto.RoleResponse{
		ID:          r.ID,
		RoleName:    r.RoleName,
		Description: r.Description,
		Permissions: r.Permissions,
		IsSystem:    r.IsSystem,
		IsActive:    r.IsActive,
	}
}
