package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hotelvistamar/inventario-api/internal/application/alerts"
	"github.com/hotelvistamar/inventario-api/internal/application/dto"
)

// AlertHandler maneja las alertas de stock bajo (protegido).
type AlertHandler struct {
	uc *alerts.UseCase
}

// NewAlertHandler construye el handler.
func NewAlertHandler(uc *alerts.UseCase) *AlertHandler {
	return &AlertHandler{uc: uc}
}

// ListActive godoc
// @Summary      Listar alertas activas
// @Description  Críticas primero (stock < 50% del mínimo), luego por fecha.
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {array}  dto.AlertResponse
// @Router       /api/alerts [get]
func (h *AlertHandler) ListActive(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	out, err := h.uc.ListActive(limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Resolve godoc
// @Summary      Resolver una alerta activa
// @Tags         alerts
// @Security     Bearer
// @Accept       json
// @Param        id    path  string  true  "ID de la alerta"
// @Param        body  body  dto.CloseAlertRequest  false  "Notas opcionales"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/alerts/{id}/resolve [post]
func (h *AlertHandler) Resolve(c *fiber.Ctx) error {
	return h.close(c, h.uc.Resolve)
}

// Ignore godoc
// @Summary      Ignorar una alerta activa
// @Tags         alerts
// @Security     Bearer
// @Accept       json
// @Param        id    path  string  true  "ID de la alerta"
// @Param        body  body  dto.CloseAlertRequest  false  "Notas opcionales"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/alerts/{id}/ignore [post]
func (h *AlertHandler) Ignore(c *fiber.Ctx) error {
	return h.close(c, h.uc.Ignore)
}

func (h *AlertHandler) close(c *fiber.Ctx, fn func(alertID, actorID, notes string) error) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CloseAlertRequest
	_ = c.BodyParser(&in) // body opcional
	if err := fn(c.Params("id"), userID, in.Notes); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
