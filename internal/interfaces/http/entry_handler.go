package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hotelvistamar/inventario-api/internal/application/dto"
	"github.com/hotelvistamar/inventario-api/internal/application/procurement"
	"github.com/hotelvistamar/inventario-api/internal/domain/entity"
)

// EntryHandler maneja las entradas de stock (protegido).
type EntryHandler struct {
	uc *procurement.EntryUseCase
}

// NewEntryHandler construye el handler.
func NewEntryHandler(uc *procurement.EntryUseCase) *EntryHandler {
	return &EntryHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar entrada de stock
// @Description  Una entrada multi-línea incrementa stock y genera un
//
//	movimiento ENTRADA por línea, todo en una transacción. Si se
//	omite number se autogenera ENT-YYYY-NNNN.
//
// @Tags         entries
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordEntryRequest  true  "Entrada con sus líneas"
// @Success      201   {object}  dto.EntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/entries [post]
func (h *EntryHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.RecordEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	lines := make([]procurement.EntryLineInput, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, procurement.EntryLineInput{
			ProductID: l.ProductID,
			AreaID:    l.AreaID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		})
	}
	entry, err := h.uc.RecordEntry(c.Context(), procurement.RecordEntryInput{
		Number:       in.Number,
		Type:         in.Type,
		SupplierID:   in.SupplierID,
		PurchaseDate: in.PurchaseDate,
		VoucherPath:  in.VoucherPath,
		Notes:        in.Notes,
		Lines:        lines,
		ActorID:      userID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toEntryResponse(entry, nil))
}

// GetByID godoc
// @Summary      Obtener entrada con sus líneas
// @Tags         entries
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la entrada"
// @Success      200  {object}  dto.EntryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/entries/{id} [get]
func (h *EntryHandler) GetByID(c *fiber.Ctx) error {
	entry, details, err := h.uc.GetEntry(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toEntryResponse(entry, details))
}

// List godoc
// @Summary      Listar entradas
// @Tags         entries
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {array}  dto.EntryResponse
// @Router       /api/entries [get]
func (h *EntryHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := h.uc.ListEntries(limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.EntryResponse, 0, len(list))
	for _, e := range list {
		items = append(items, toEntryResponse(e, nil))
	}
	return c.JSON(items)
}

func toEntryResponse(e *entity.StockEntry, details []*entity.EntryDetail) dto.EntryResponse {
	out := dto.EntryResponse{
		ID:           e.ID,
		Number:       e.Number,
		Type:         e.Type,
		SupplierID:   e.SupplierID,
		PurchaseDate: e.PurchaseDate,
		ReceivedAt:   e.ReceivedAt,
		VoucherPath:  e.VoucherPath,
		Total:        e.Total,
		Notes:        e.Notes,
		CreatedBy:    e.CreatedBy,
	}
	for _, d := range details {
		out.Details = append(out.Details, dto.EntryDetailResponse{
			ID:        d.ID,
			ProductID: d.ProductID,
			AreaID:    d.AreaID,
			Quantity:  d.Quantity,
			UnitPrice: d.UnitPrice,
		})
	}
	return out
}
