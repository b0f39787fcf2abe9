package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/propiedades-pro/internal/application/dto"
	"github.com/tu-usuario/propiedades-pro/internal/application/usecase"
	"github.com/tu-usuario/propiedades-pro/internal/domain"
	"github.com/tu-usuario/propiedades-pro/pkg/validate"
)

// LeaseHandler contratos de arriendo (protegido).
type LeaseHandler struct {
	uc *usecase.LeaseUseCase
}

// NewLeaseHandler construye el handler de contratos.
func NewLeaseHandler(uc *usecase.LeaseUseCase) *LeaseHandler {
	return &LeaseHandler{uc: uc}
}

// Create godoc
// @Summary      Crear contrato de arriendo
// @Tags         leases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLeaseRequest  true  "Datos del contrato"
// @Success      201   {object}  dto.LeaseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/leases [post]
func (h *LeaseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLeaseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.CreateLease(GetOrgID(c), in)
	if err != nil {
		switch err {
		case domain.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "inmueble, unidad o inquilino no encontrado"})
		case domain.ErrInvalidInput:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fechas o montos inválidos"})
		case domain.ErrConflict:
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "la unidad no pertenece al inmueble o no está disponible"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar contratos de arriendo
// @Tags         leases
// @Security     Bearer
// @Produce      json
// @Param        status     query  string  false  "Filtro de estado"
// @Param        tenant_id  query  int     false  "Filtro por inquilino"
// @Success      200  {object}  dto.LeaseListResponse
// @Router       /api/leases [get]
func (h *LeaseHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListLeases(GetOrgID(c), c.Query("status"), int64(c.QueryInt("tenant_id", 0)), pageFromQuery(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener contrato
// @Tags         leases
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID del contrato"
// @Success      200  {object}  dto.LeaseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/leases/{id} [get]
func (h *LeaseHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id numérico requerido"})
	}
	out, err := h.uc.GetLease(GetOrgID(c), int64(id))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "contrato no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar contrato (incluye transiciones de estado)
// @Tags         leases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del contrato"
// @Param        body  body  dto.LeaseUpdateRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.LeaseResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/leases/{id} [put]
func (h *LeaseHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id numérico requerido"})
	}
	var in dto.LeaseUpdateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateLease(GetOrgID(c), int64(id), in)
	if err != nil {
		switch err {
		case domain.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "contrato no encontrado"})
		case domain.ErrInvalidStatus:
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: "transición de estado no permitida"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
