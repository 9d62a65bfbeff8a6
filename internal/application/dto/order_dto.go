package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderLineRequest línea de pedido.
type OrderLineRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Notes     string          `json:"notes,omitempty"`
}

// CreateOrderRequest body para POST /api/orders.
type CreateOrderRequest struct {
	SupplierID   string             `json:"supplier_id"`
	ExpectedDate *time.Time         `json:"expected_date,omitempty"`
	Notes        string             `json:"notes,omitempty"`
	Lines        []OrderLineRequest `json:"lines"`
}

// ReceiveLineRequest línea recibida contra un detalle de pedido.
type ReceiveLineRequest struct {
	OrderDetailID string          `json:"order_detail_id"`
	AreaID        string          `json:"area_id"`
	Quantity      decimal.Decimal `json:"quantity"`
}

// ReceiveOrderRequest body para POST /api/orders/:id/receptions.
type ReceiveOrderRequest struct {
	Lines []ReceiveLineRequest `json:"lines"`
	Notes string               `json:"notes,omitempty"`
}

// OrderDetailResponse línea de pedido en respuestas.
type OrderDetailResponse struct {
	ID               string          `json:"id"`
	ProductID        string          `json:"product_id"`
	QuantityOrdered  decimal.Decimal `json:"quantity_ordered"`
	QuantityReceived decimal.Decimal `json:"quantity_received"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	Notes            string          `json:"notes,omitempty"`
}

// OrderResponse pedido en respuestas.
type OrderResponse struct {
	ID           string                `json:"id"`
	Number       string                `json:"number"`
	SupplierID   string                `json:"supplier_id"`
	OrderedAt    time.Time             `json:"ordered_at"`
	ExpectedDate *time.Time            `json:"expected_date,omitempty"`
	DeliveredAt  *time.Time            `json:"delivered_at,omitempty"`
	Status       string                `json:"status"`
	Notes        string                `json:"notes,omitempty"`
	CreatedBy    string                `json:"created_by"`
	Details      []OrderDetailResponse `json:"details,omitempty"`
}
