package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-dashboard/internal/application/dashboard"
	"github.com/jhoicas/Inventario-dashboard/internal/application/dto"
	"github.com/jhoicas/Inventario-dashboard/internal/domain/entity"
)

// DashboardHandler maneja las pestañas de bodega, log de despachos y revisión manual.
type DashboardHandler struct {
	uc  *dashboard.UseCase
	loc *time.Location
}

// NewDashboardHandler construye el handler. loc es la zona horaria de las fechas mostradas.
func NewDashboardHandler(uc *dashboard.UseCase, loc *time.Location) *DashboardHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardHandler{uc: uc, loc: loc}
}

// Warehouse godoc
// @Summary      Inventario en bodega agrupado por master SKU
// @Tags         warehouse
// @Produce      json
// @Param        mode  query  string  false  "quantity | serial"
// @Success      200   {object}  dto.WarehouseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/warehouse [get]
func (h *DashboardHandler) Warehouse(c *fiber.Ctx) error {
	var mode entity.AggregationMode
	if raw := c.Query("mode"); raw != "" {
		m, ok := entity.ParseAggregationMode(raw)
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "mode debe ser quantity o serial"})
		}
		mode = m
	}
	view, err := h.uc.Warehouse(c.UserContext(), mode)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewWarehouseResponse(view.Mode, view.Groups, view.Dropped))
}

// ShipmentLog godoc
// @Summary      Log de despachos de la ventana reciente, agrupado por orden
// @Tags         shipments
// @Produce      json
// @Success      200  {object}  dto.ShipmentLogResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/shipments [get]
func (h *DashboardHandler) ShipmentLog(c *fiber.Ctx) error {
	snap, err := h.uc.ShipmentLog(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewShipmentLogResponse(snap, h.loc))
}

// RefreshShipments godoc
// @Summary      Forzar lectura del log de despachos
// @Tags         shipments
// @Produce      json
// @Success      200  {object}  dto.RefreshResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/shipments/refresh [post]
func (h *DashboardHandler) RefreshShipments(c *fiber.Ctx) error {
	snap, err := h.uc.RefreshLog(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.RefreshResponse{Orders: len(snap.Groups), FetchedAt: snap.FetchedAt})
}

// ManualReview godoc
// @Summary      Ítems pendientes de revisión manual
// @Tags         manual-review
// @Produce      json
// @Success      200  {object}  dto.ManualReviewResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/manual-review [get]
func (h *DashboardHandler) ManualReview(c *fiber.Ctx) error {
	mr, err := h.uc.ManualReview(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewManualReviewResponse(mr.Items, mr.Badge))
}

// SetVisibility godoc
// @Summary      Informar si la vista está en primer plano (controla el refresco periódico)
// @Tags         shipments
// @Accept       json
// @Produce      json
// @Param        body  body  dto.VisibilityRequest  true  "Visibilidad"
// @Success      200   {object}  dto.VisibilityResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/visibility [put]
func (h *DashboardHandler) SetVisibility(c *fiber.Ctx) error {
	var in dto.VisibilityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Visible == nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "visible es requerido"})
	}
	h.uc.SetVisible(*in.Visible)
	return c.JSON(dto.VisibilityResponse{Visible: h.uc.Visible()})
}
