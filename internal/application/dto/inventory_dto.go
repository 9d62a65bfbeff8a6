package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ApplyMovementRequest body para POST /api/inventory/movements.
// Para ENTRADA solo dest_area_id; para SALIDA solo origin_area_id; para
// AJUSTE exactamente una; para TRANSFERENCIA ambas.
type ApplyMovementRequest struct {
	ProductID    string           `json:"product_id"`
	OriginAreaID string           `json:"origin_area_id,omitempty"`
	DestAreaID   string           `json:"dest_area_id,omitempty"`
	Type         string           `json:"type"`
	Reason       string           `json:"reason"`
	Quantity     decimal.Decimal  `json:"quantity"`
	UnitPrice    *decimal.Decimal `json:"unit_price,omitempty"`
	Notes        string           `json:"notes,omitempty"`
}

// MovementResponse movimiento en respuestas.
type MovementResponse struct {
	ID           string           `json:"id"`
	ProductID    string           `json:"product_id"`
	OriginAreaID string           `json:"origin_area_id,omitempty"`
	DestAreaID   string           `json:"dest_area_id,omitempty"`
	Type         string           `json:"type"`
	Reason       string           `json:"reason"`
	Quantity     decimal.Decimal  `json:"quantity"`
	UnitPrice    *decimal.Decimal `json:"unit_price,omitempty"`
	Notes        string           `json:"notes,omitempty"`
	CreatedBy    string           `json:"created_by"`
	CreatedAt    time.Time        `json:"created_at"`
}

// StockResponse stock de un producto en un área.
type StockResponse struct {
	ProductID string          `json:"product_id"`
	AreaID    string          `json:"area_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// StockBreakdownResponse stock por área más el total del producto.
type StockBreakdownResponse struct {
	ProductID string          `json:"product_id"`
	Total     decimal.Decimal `json:"total"`
	Areas     []StockResponse `json:"areas"`
}

// DiscrepancyResponse desajuste ledger/log detectado por la conciliación.
type DiscrepancyResponse struct {
	ProductID string          `json:"product_id"`
	AreaID    string          `json:"area_id"`
	Ledger    decimal.Decimal `json:"ledger"`
	Log       decimal.Decimal `json:"log"`
}
