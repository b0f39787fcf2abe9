package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/propiedades-pro/internal/application/billing"
	"github.com/tu-usuario/propiedades-pro/internal/application/dto"
	"github.com/tu-usuario/propiedades-pro/internal/domain"
	"github.com/tu-usuario/propiedades-pro/pkg/validate"
)

// FxHandler tasas de cambio, revaluación, snapshots y libro multi-moneda (protegido).
type FxHandler struct {
	uc *billing.FxUseCase
}

// NewFxHandler construye el handler del subsistema FX.
func NewFxHandler(uc *billing.FxUseCase) *FxHandler {
	return &FxHandler{uc: uc}
}

// CreateRate godoc
// @Summary      Registrar tasa de cambio diaria
// @Tags         fx
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateFxRateRequest  true  "Par, fecha y tasa"
// @Success      201   {object}  dto.FxRateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/billing/fx/rates [post]
func (h *FxHandler) CreateRate(c *fiber.Ctx) error {
	var in dto.CreateFxRateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.CreateRate(in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "par inválido o tasa no positiva"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListRates godoc
// @Summary      Listar tasas de cambio
// @Tags         fx
// @Security     Bearer
// @Produce      json
// @Param        from_currency  query  string  false  "Moneda origen"
// @Param        to_currency    query  string  false  "Moneda destino"
// @Param        rate_date      query  string  false  "Fecha exacta (YYYY-MM-DD)"
// @Param        limit          query  int     false  "Tope"  default(100)
// @Success      200  {object}  dto.FxRateListResponse
// @Router       /api/billing/fx/rates [get]
func (h *FxHandler) ListRates(c *fiber.Ctx) error {
	out, err := h.uc.ListRates(c.Query("from_currency"), c.Query("to_currency"), c.Query("rate_date"), c.QueryInt("limit", 0))
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "rate_date con formato inválido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Revalue godoc
// @Summary      Revaluar una factura a la tasa vigente
// @Tags         fx
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID de la factura"
// @Param        body  body  dto.RevalueRequest  false  "as_of opcional (YYYY-MM-DD)"
// @Success      200   {object}  dto.RevalueResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/billing/invoices/{id}/revalue [post]
func (h *FxHandler) Revalue(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id numérico requerido"})
	}
	var in dto.RevalueRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	out, err := h.uc.RevalueInvoice(c.Context(), GetOrgID(c), GetUserID(c), int64(id), in.AsOf)
	if err != nil {
		switch err {
		case domain.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "factura no encontrada"})
		case domain.ErrMissingFxRate:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FX_RATE", Message: "no existe tasa para el par de monedas de la factura"})
		case domain.ErrInvalidInput:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "as_of con formato inválido"})
		case domain.ErrInvalidStatus:
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "INVALID_STATUS", Message: "factura anulada: no se revalúa"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GenerateSnapshots godoc
// @Summary      Congelar la última tasa por par a una fecha de corte
// @Tags         fx
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GenerateSnapshotRequest  false  "snapshot_date opcional"
// @Success      201   {object}  dto.GenerateSnapshotResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/billing/fx/snapshots [post]
func (h *FxHandler) GenerateSnapshots(c *fiber.Ctx) error {
	orgID := GetOrgID(c)
	if orgID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "ORG_REQUIRED", Message: "la cuenta no pertenece a una organización"})
	}
	var in dto.GenerateSnapshotRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	out, err := h.uc.GenerateSnapshots(c.Context(), orgID, GetUserID(c), in.SnapshotDate)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "snapshot_date con formato inválido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListSnapshots godoc
// @Summary      Listar snapshots de tasas
// @Tags         fx
// @Security     Bearer
// @Produce      json
// @Param        snapshot_date  query  string  false  "Fecha de corte (YYYY-MM-DD)"
// @Param        from_currency  query  string  false  "Moneda origen"
// @Param        to_currency    query  string  false  "Moneda destino"
// @Success      200  {object}  dto.FxSnapshotListResponse
// @Router       /api/billing/fx/snapshots [get]
func (h *FxHandler) ListSnapshots(c *fiber.Ctx) error {
	out, err := h.uc.ListSnapshots(GetOrgID(c), c.Query("snapshot_date"), c.Query("from_currency"), c.Query("to_currency"), c.QueryInt("limit", 0))
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "snapshot_date con formato inválido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ListLedger godoc
// @Summary      Listar asientos del libro multi-moneda
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        reference_type  query  string  false  "Invoice, Payment, Revaluation"
// @Param        reference_id    query  int     false  "ID del documento de origen"
// @Param        limit           query  int     false  "Tope (máx 500)"
// @Success      200  {object}  dto.LedgerListResponse
// @Router       /api/billing/ledger [get]
func (h *FxHandler) ListLedger(c *fiber.Ctx) error {
	out, err := h.uc.ListLedger(GetOrgID(c), c.Query("reference_type"), int64(c.QueryInt("reference_id", 0)), c.QueryInt("limit", 0))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
