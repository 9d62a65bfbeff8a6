package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/hotelvistamar/inventario-api/internal/application/dto"
	"github.com/hotelvistamar/inventario-api/internal/application/inventory"
	"github.com/hotelvistamar/inventario-api/internal/domain/entity"
)

// InventoryHandler maneja movimientos, historial, stock y conciliación (protegido).
type InventoryHandler struct {
	apply     *inventory.ApplyMovementUseCase
	history   *inventory.HistoryUseCase
	reconcile *inventory.ReconcileUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(apply *inventory.ApplyMovementUseCase, history *inventory.HistoryUseCase,
	reconcile *inventory.ReconcileUseCase) *InventoryHandler {
	return &InventoryHandler{apply: apply, history: history, reconcile: reconcile}
}

// ApplyMovement godoc
// @Summary      Registrar movimiento de inventario
// @Description  ENTRADA requiere dest_area_id; SALIDA origin_area_id; AJUSTE
//
//	exactamente una de las dos; TRANSFERENCIA ambas (distintas).
//
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ApplyMovementRequest  true  "Movimiento a aplicar"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) ApplyMovement(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ApplyMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.apply.Apply(c.Context(), inventory.MovementInput{
		ProductID:    in.ProductID,
		OriginAreaID: in.OriginAreaID,
		DestAreaID:   in.DestAreaID,
		Type:         in.Type,
		Reason:       in.Reason,
		Quantity:     in.Quantity,
		UnitPrice:    in.UnitPrice,
		Notes:        in.Notes,
		ActorID:      userID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(mov))
}

// History godoc
// @Summary      Historial de movimientos de un producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id       path   string  true   "ID del producto"
// @Param        area_id  query  string  false  "Filtrar por área"
// @Param        limit    query  int     false  "Límite (máx. 200)"  default(50)
// @Param        before   query  string  false  "RFC3339: solo movimientos anteriores"
// @Success      200      {array}  dto.MovementResponse
// @Router       /api/products/{id}/movements [get]
func (h *InventoryHandler) History(c *fiber.Ctx) error {
	productID := c.Params("id")
	var before *time.Time
	if raw := c.Query("before"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "before debe ser RFC3339"})
		}
		before = &t
	}
	list, err := h.history.History(productID, c.Query("area_id"), c.QueryInt("limit", 50), before)
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, toMovementResponse(m))
	}
	return c.JSON(items)
}

// StockBreakdown godoc
// @Summary      Stock de un producto por área
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.StockBreakdownResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/stock [get]
func (h *InventoryHandler) StockBreakdown(c *fiber.Ctx) error {
	productID := c.Params("id")
	stocks, err := h.history.StockBreakdown(productID)
	if err != nil {
		return respondError(c, err)
	}
	out := dto.StockBreakdownResponse{ProductID: productID}
	for _, s := range stocks {
		out.Total = out.Total.Add(s.Quantity)
		out.Areas = append(out.Areas, dto.StockResponse{
			ProductID: s.ProductID,
			AreaID:    s.AreaID,
			Quantity:  s.Quantity,
			UpdatedAt: s.UpdatedAt,
		})
	}
	return c.JSON(out)
}

// Reconcile godoc
// @Summary      Conciliación ledger vs log de movimientos
// @Description  Recomputa el stock de cada par (producto, área) desde el log
//
//	y devuelve los pares que difieren. Vacío = invariante intacta.
//
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.DiscrepancyResponse
// @Router       /api/inventory/reconcile [get]
func (h *InventoryHandler) Reconcile(c *fiber.Ctx) error {
	diffs, err := h.reconcile.Reconcile()
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.DiscrepancyResponse, 0, len(diffs))
	for _, d := range diffs {
		items = append(items, dto.DiscrepancyResponse{
			ProductID: d.ProductID,
			AreaID:    d.AreaID,
			Ledger:    d.Ledger,
			Log:       d.Log,
		})
	}
	return c.JSON(items)
}

func toMovementResponse(m *entity.Movement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:           m.ID,
		ProductID:    m.ProductID,
		OriginAreaID: m.OriginAreaID,
		DestAreaID:   m.DestAreaID,
		Type:         m.Type,
		Reason:       m.Reason,
		Quantity:     m.Quantity,
		UnitPrice:    m.UnitPrice,
		Notes:        m.Notes,
		CreatedBy:    m.CreatedBy,
		CreatedAt:    m.CreatedAt,
	}
}
