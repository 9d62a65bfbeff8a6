package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/hotelvistamar/inventario-api/internal/application/dto"
	"github.com/hotelvistamar/inventario-api/internal/application/usecase"
	"github.com/hotelvistamar/inventario-api/internal/infrastructure/excel"
	"github.com/hotelvistamar/inventario-api/internal/infrastructure/pdf"
)

const (
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimePDF  = "application/pdf"
)

// ReportHandler maneja los reportes agregados (protegido).
// Cada reporte se sirve como JSON por defecto; con ?format=xlsx o
// ?format=pdf se delega en los exportadores de infraestructura.
type ReportHandler struct {
	uc   *usecase.ReportUseCase
	xlsx *excel.StockReportExporter
	pdf  *pdf.LowStockReportGenerator
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *usecase.ReportUseCase, xlsx *excel.StockReportExporter,
	pdfGen *pdf.LowStockReportGenerator) *ReportHandler {
	return &ReportHandler{uc: uc, xlsx: xlsx, pdf: pdfGen}
}

// StockByCategory godoc
// @Summary      Stock valorizado por categoría
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        format  query  string  false  "json (defecto) o xlsx"
// @Success      200     {array}  dto.CategoryStockDTO
// @Router       /api/reports/stock-by-category [get]
func (h *ReportHandler) StockByCategory(c *fiber.Ctx) error {
	items, err := h.uc.StockByCategory(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	switch c.Query("format", "json") {
	case "json":
		return c.JSON(items)
	case "xlsx":
		buf, err := h.xlsx.StockByCategory(items, time.Now())
		if err != nil {
			return respondError(c, err)
		}
		return sendFile(c, buf, mimeXLSX, "stock_por_categoria.xlsx")
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "format debe ser json o xlsx"})
	}
}

// LowStock godoc
// @Summary      Productos con stock bajo el mínimo
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        format  query  string  false  "json (defecto), xlsx o pdf"
// @Success      200     {array}  dto.LowStockDTO
// @Router       /api/reports/low-stock [get]
func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	items, err := h.uc.LowStock(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	switch c.Query("format", "json") {
	case "json":
		return c.JSON(items)
	case "xlsx":
		buf, err := h.xlsx.LowStock(items, time.Now())
		if err != nil {
			return respondError(c, err)
		}
		return sendFile(c, buf, mimeXLSX, "stock_bajo.xlsx")
	case "pdf":
		buf, err := h.pdf.Generate(items, time.Now())
		if err != nil {
			return respondError(c, err)
		}
		return sendFile(c, buf, mimePDF, "stock_bajo.pdf")
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "format debe ser json, xlsx o pdf"})
	}
}

// MovementSummary godoc
// @Summary      Resumen de movimientos por tipo en un rango
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  true  "Fecha inicial (RFC3339 o YYYY-MM-DD)"
// @Param        to    query  string  true  "Fecha final (RFC3339 o YYYY-MM-DD)"
// @Success      200   {array}  dto.MovementSummaryDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports/movement-summary [get]
func (h *ReportHandler) MovementSummary(c *fiber.Ctx) error {
	from, err := parseDate(c.Query("from"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido"})
	}
	to, err := parseDate(c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido"})
	}
	items, err := h.uc.MovementSummary(c.Context(), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(items)
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

func sendFile(c *fiber.Ctx, body []byte, contentType, filename string) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Send(body)
}
