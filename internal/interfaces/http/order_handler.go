package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/hotelvistamar/inventario-api/internal/application/dto"
	"github.com/hotelvistamar/inventario-api/internal/application/procurement"
	"github.com/hotelvistamar/inventario-api/internal/domain/entity"
)

// OrderHandler maneja los pedidos a proveedor y sus recepciones (protegido).
type OrderHandler struct {
	uc *procurement.OrderUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *procurement.OrderUseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// Create godoc
// @Summary      Crear pedido a proveedor
// @Description  Queda en BORRADOR con número PED-YYYY-NNNN autogenerado.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "Pedido con sus líneas"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	lines := make([]procurement.OrderLineInput, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, procurement.OrderLineInput{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Notes:     l.Notes,
		})
	}
	order, err := h.uc.Create(c.Context(), procurement.CreateOrderInput{
		SupplierID:   in.SupplierID,
		ExpectedDate: in.ExpectedDate,
		Notes:        in.Notes,
		Lines:        lines,
		ActorID:      userID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toOrderResponse(order, nil))
}

// GetByID godoc
// @Summary      Obtener pedido con sus líneas
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	order, details, err := h.uc.Get(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toOrderResponse(order, details))
}

// List godoc
// @Summary      Listar pedidos
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Filtrar por estado (BORRADOR, ENVIADO, ...)"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {array}  dto.OrderResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := h.uc.List(c.Query("status"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, toOrderResponse(o, nil))
	}
	return c.JSON(items)
}

// Send godoc
// @Summary      Enviar pedido (BORRADOR → ENVIADO)
// @Tags         orders
// @Security     Bearer
// @Param        id  path  string  true  "ID del pedido"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/send [post]
func (h *OrderHandler) Send(c *fiber.Ctx) error {
	return h.transition(c, h.uc.Send)
}

// Confirm godoc
// @Summary      Confirmar pedido (ENVIADO → CONFIRMADO)
// @Tags         orders
// @Security     Bearer
// @Param        id  path  string  true  "ID del pedido"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/confirm [post]
func (h *OrderHandler) Confirm(c *fiber.Ctx) error {
	return h.transition(c, h.uc.Confirm)
}

// Cancel godoc
// @Summary      Cancelar pedido
// @Tags         orders
// @Security     Bearer
// @Param        id  path  string  true  "ID del pedido"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	return h.transition(c, h.uc.Cancel)
}

// Receive godoc
// @Summary      Registrar recepción contra un pedido
// @Description  Avanza las cantidades recibidas por línea (sin exceder lo
//
//	pendiente), genera un movimiento ENTRADA por línea hacia el
//	área indicada y recalcula el estado del pedido.
//
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del pedido"
// @Param        body  body  dto.ReceiveOrderRequest  true  "Líneas recibidas"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/receptions [post]
func (h *OrderHandler) Receive(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ReceiveOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	lines := make([]procurement.ReceiveLineInput, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, procurement.ReceiveLineInput{
			OrderDetailID: l.OrderDetailID,
			AreaID:        l.AreaID,
			Quantity:      l.Quantity,
		})
	}
	reception, err := h.uc.Receive(c.Context(), procurement.ReceiveInput{
		OrderID: c.Params("id"),
		Lines:   lines,
		Notes:   in.Notes,
		ActorID: userID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"reception_id": reception.ID})
}

func (h *OrderHandler) transition(c *fiber.Ctx, fn func(ctx context.Context, orderID, actorID string) error) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	if err := fn(c.Context(), c.Params("id"), userID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func toOrderResponse(o *entity.PurchaseOrder, details []*entity.OrderDetail) dto.OrderResponse {
	out := dto.OrderResponse{
		ID:           o.ID,
		Number:       o.Number,
		SupplierID:   o.SupplierID,
		OrderedAt:    o.OrderedAt,
		ExpectedDate: o.ExpectedDate,
		DeliveredAt:  o.DeliveredAt,
		Status:       o.Status,
		Notes:        o.Notes,
		CreatedBy:    o.CreatedBy,
	}
	for _, d := range details {
		out.Details = append(out.Details, dto.OrderDetailResponse{
			ID:               d.ID,
			ProductID:        d.ProductID,
			QuantityOrdered:  d.QuantityOrdered,
			QuantityReceived: d.QuantityReceived,
			UnitPrice:        d.UnitPrice,
			Subtotal:         d.Subtotal(),
			Notes:            d.Notes,
		})
	}
	return out
}
