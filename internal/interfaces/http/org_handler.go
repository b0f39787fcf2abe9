package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/propiedades-pro/internal/application/dto"
	"github.com/tu-usuario/propiedades-pro/internal/application/usecase"
	"github.com/tu-usuario/propiedades-pro/internal/domain"
	"github.com/tu-usuario/propiedades-pro/pkg/validate"
)

// OrgHandler organizaciones y su configuración (protegido, solo admin/system).
type OrgHandler struct {
	uc *usecase.OrgUseCase
}

// NewOrgHandler construye el handler de organizaciones.
func NewOrgHandler(uc *usecase.OrgUseCase) *OrgHandler {
	return &OrgHandler{uc: uc}
}

func pageFromQuery(c *fiber.Ctx) dto.PageRequest {
	p := dto.PageRequest{
		Limit:  c.QueryInt("limit", 0),
		Offset: c.QueryInt("offset", 0),
	}
	p.DefaultPage()
	return p
}

// Create godoc
// @Summary      Crear organización
// @Tags         orgs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrgRequest  true  "Datos de la organización"
// @Success      201   {object}  dto.OrgResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orgs [post]
func (h *OrgHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrgRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.CreateOrg(in)
	if err != nil {
		if err == domain.ErrDuplicate {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "org_code ya existe"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar organizaciones
// @Tags         orgs
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.OrgListResponse
// @Router       /api/orgs [get]
func (h *OrgHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListOrgs(pageFromQuery(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener organización
// @Tags         orgs
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID de la organización"
// @Success      200  {object}  dto.OrgResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orgs/{id} [get]
func (h *OrgHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id numérico requerido"})
	}
	out, err := h.uc.GetOrg(int64(id))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "organización no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetSettings godoc
// @Summary      Configuración de la organización
// @Tags         orgs
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID de la organización"
// @Success      200  {object}  dto.OrgSettingsResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orgs/{id}/settings [get]
func (h *OrgHandler) GetSettings(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id numérico requerido"})
	}
	out, err := h.uc.GetSettings(int64(id))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "configuración no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// UpdateSettings godoc
// @Summary      Actualizar configuración de la organización
// @Tags         orgs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID de la organización"
// @Param        body  body  dto.OrgSettingsUpdateRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.OrgSettingsResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orgs/{id}/settings [put]
func (h *OrgHandler) UpdateSettings(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id numérico requerido"})
	}
	var in dto.OrgSettingsUpdateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateSettings(int64(id), in)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "organización no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
