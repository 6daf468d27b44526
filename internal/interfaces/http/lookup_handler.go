package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-dashboard/internal/application/dto"
	"github.com/jhoicas/Inventario-dashboard/internal/application/lookup"
	"github.com/jhoicas/Inventario-dashboard/internal/application/ports"
)

// LookupHandler búsqueda unificada por PO o serial y exportación mensual.
type LookupHandler struct {
	resolver *lookup.Resolver
	reports  ports.ReportAPI
}

// NewLookupHandler construye el handler.
func NewLookupHandler(resolver *lookup.Resolver, reports ports.ReportAPI) *LookupHandler {
	return &LookupHandler{resolver: resolver, reports: reports}
}

// Lookup godoc
// @Summary      Buscar por número de PO o de serie
// @Description  Sin coincidencias responde 200 con kind=not_found.
// @Tags         lookup
// @Produce      json
// @Param        q  query  string  true  "PO o serial"
// @Success      200  {object}  dto.LookupResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/lookup [get]
func (h *LookupHandler) Lookup(c *fiber.Ctx) error {
	res, err := h.resolver.Resolve(c.UserContext(), c.Query("q"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewLookupResponse(res))
}

// MonthlyReport godoc
// @Summary      Descargar el reporte mensual
// @Tags         reports
// @Produce      octet-stream
// @Success      200
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/reports/monthly [get]
func (h *LookupHandler) MonthlyReport(c *fiber.Ctx) error {
	body, contentType, err := h.reports.ExportMonthlyReport(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	if contentType == "" {
		contentType = fiber.MIMEOctetStream
	}
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="monthly_report"`)
	// fasthttp cierra el stream al terminar de enviarlo.
	return c.SendStream(body)
}
