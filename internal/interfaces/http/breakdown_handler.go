package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-dashboard/internal/application/dto"
	"github.com/jhoicas/Inventario-dashboard/internal/application/pricing"
)

// BreakdownHandler desglose por master SKU y edición de precios.
type BreakdownHandler struct {
	rec *pricing.Reconciler
}

// NewBreakdownHandler construye el handler.
func NewBreakdownHandler(rec *pricing.Reconciler) *BreakdownHandler {
	return &BreakdownHandler{rec: rec}
}

// Get godoc
// @Summary      Desglose de un master SKU
// @Description  Por defecto re-lee desde la API y reemplaza el caché; cached=true sirve el caché.
// @Tags         warehouse
// @Produce      json
// @Param        master_sku_id  path   string  true   "Master SKU"
// @Param        cached         query  bool    false  "Leer solo del caché"
// @Success      200  {object}  dto.BreakdownResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/warehouse/{master_sku_id}/breakdown [get]
func (h *BreakdownHandler) Get(c *fiber.Ctx) error {
	id := c.Params("master_sku_id")
	if c.QueryBool("cached", false) {
		rows, ok, err := h.rec.Breakdown(c.UserContext(), id)
		if err != nil {
			return writeError(c, err)
		}
		if !ok {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "desglose no cargado"})
		}
		return c.JSON(dto.NewBreakdownResponse(id, rows))
	}
	rows, err := h.rec.Expand(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewBreakdownResponse(id, rows))
}

// Focus godoc
// @Summary      Entrar en edición del precio de un producto
// @Tags         warehouse
// @Produce      json
// @Param        master_sku_id  path  string  true  "Master SKU"
// @Param        product_id     path  string  true  "Producto"
// @Success      200  {object}  dto.EditStateResponse
// @Router       /api/warehouse/{master_sku_id}/breakdown/{product_id}/focus [post]
func (h *BreakdownHandler) Focus(c *fiber.Ctx) error {
	pid := c.Params("product_id")
	phase := h.rec.Focus(c.Params("master_sku_id"), pid)
	return c.JSON(dto.EditStateResponse{ProductID: pid, Phase: string(phase)})
}

// Blur godoc
// @Summary      Salir de la edición sin guardar
// @Tags         warehouse
// @Produce      json
// @Param        master_sku_id  path  string  true  "Master SKU"
// @Param        product_id     path  string  true  "Producto"
// @Success      200  {object}  dto.EditStateResponse
// @Router       /api/warehouse/{master_sku_id}/breakdown/{product_id}/blur [post]
func (h *BreakdownHandler) Blur(c *fiber.Ctx) error {
	pid := c.Params("product_id")
	phase := h.rec.Blur(c.Params("master_sku_id"), pid)
	return c.JSON(dto.EditStateResponse{ProductID: pid, Phase: string(phase)})
}

// CommitPrice godoc
// @Summary      Guardar precio (enviar y re-leer el desglose)
// @Description  Un valor que no es número no negativo responde outcome=noop sin llamar a la API.
// @Tags         warehouse
// @Accept       json
// @Produce      json
// @Param        master_sku_id  path  string                  true  "Master SKU"
// @Param        product_id     path  string                  true  "Producto"
// @Param        body           body  dto.UpdatePriceRequest  true  "Precio tecleado"
// @Success      200  {object}  dto.CommitPriceResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/warehouse/{master_sku_id}/breakdown/{product_id}/price [post]
func (h *BreakdownHandler) CommitPrice(c *fiber.Ctx) error {
	var in dto.UpdatePriceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	id := c.Params("master_sku_id")
	outcome, rows, err := h.rec.Commit(c.UserContext(), id, c.Params("product_id"), in.Price)
	if err != nil {
		return writeError(c, err)
	}
	out := dto.CommitPriceResponse{Outcome: string(outcome)}
	if outcome == pricing.OutcomeCommitted {
		b := dto.NewBreakdownResponse(id, rows)
		out.Breakdown = &b
	}
	return c.JSON(out)
}
