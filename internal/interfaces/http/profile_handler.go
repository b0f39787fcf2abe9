package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/propiedades-pro/internal/application/dto"
	"github.com/tu-usuario/propiedades-pro/internal/application/usecase"
)

// ProfileHandler listados de perfiles de negocio de la organización.
type ProfileHandler struct {
	uc *usecase.ProfileUseCase
}

// NewProfileHandler construye el handler de perfiles.
func NewProfileHandler(uc *usecase.ProfileUseCase) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

// ListRenters godoc
// @Summary      Listar inquilinos
// @Tags         tenants
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.RenterListResponse
// @Router       /api/tenants [get]
func (h *ProfileHandler) ListRenters(c *fiber.Ctx) error {
	out, err := h.uc.ListRenters(GetOrgID(c), pageFromQuery(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ListOwners godoc
// @Summary      Listar propietarios
// @Tags         owners
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.OwnerListResponse
// @Router       /api/owners [get]
func (h *ProfileHandler) ListOwners(c *fiber.Ctx) error {
	out, err := h.uc.ListOwners(GetOrgID(c), pageFromQuery(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ListVendors godoc
// @Summary      Listar proveedores
// @Tags         vendors
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.VendorListResponse
// @Router       /api/vendors [get]
func (h *ProfileHandler) ListVendors(c *fiber.Ctx) error {
	out, err := h.uc.ListVendors(GetOrgID(c), pageFromQuery(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ListStaff godoc
// @Summary      Listar empleados
// @Tags         staff
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StaffListResponse
// @Router       /api/staff [get]
func (h *ProfileHandler) ListStaff(c *fiber.Ctx) error {
	out, err := h.uc.ListStaff(GetOrgID(c), pageFromQuery(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
