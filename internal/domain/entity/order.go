package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un pedido a proveedor.
const (
	OrderStatusBorrador   = "BORRADOR"
	OrderStatusEnviado    = "ENVIADO"
	OrderStatusConfirmado = "CONFIRMADO"
	OrderStatusParcial    = "PARCIAL"    // alguna línea con recibido < pedido
	OrderStatusCompletado = "COMPLETADO" // todas las líneas completas
	OrderStatusCancelado  = "CANCELADO"
)

// PurchaseOrder pedido a proveedor. El número se autogenera (PED-YYYY-NNNN).
type PurchaseOrder struct {
	ID           string
	Number       string
	SupplierID   string
	OrderedAt    time.Time
	ExpectedDate *time.Time
	DeliveredAt  *time.Time // se fija al completar
	Status       string
	Notes        string
	CreatedBy    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// OrderDetail línea de pedido. QuantityReceived avanza con cada recepción.
type OrderDetail struct {
	ID               string
	OrderID          string
	ProductID        string
	QuantityOrdered  decimal.Decimal // > 0
	QuantityReceived decimal.Decimal // >= 0, <= QuantityOrdered
	UnitPrice        decimal.Decimal
	Notes            string
}

// Reception evento de recepción contra un pedido.
type Reception struct {
	ID         string
	OrderID    string
	ReceivedAt time.Time
	ReceivedBy string
	Notes      string
}

// ReceptionDetail cantidades recibidas por línea de pedido, con el área
// destino donde queda el stock.
type ReceptionDetail struct {
	ID            string
	ReceptionID   string
	OrderDetailID string
	AreaID        string
	Quantity      decimal.Decimal // > 0, <= pendiente de la línea
}

// Transiciones válidas del pedido. PARCIAL y COMPLETADO se derivan de las
// recepciones, no de una orden explícita del operador.
var orderTransitions = map[string][]string{
	OrderStatusBorrador:   {OrderStatusEnviado, OrderStatusCancelado},
	OrderStatusEnviado:    {OrderStatusConfirmado, OrderStatusCancelado},
	OrderStatusConfirmado: {OrderStatusParcial, OrderStatusCompletado, OrderStatusCancelado},
	OrderStatusParcial:    {OrderStatusParcial, OrderStatusCompletado},
}

// CanTransition indica si el pedido puede pasar de from a to.
func CanTransition(from, to string) bool {
	for _, s := range orderTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Receivable indica si el pedido admite recepciones en su estado actual.
func (o *PurchaseOrder) Receivable() bool {
	return o.Status == OrderStatusConfirmado || o.Status == OrderStatusParcial
}

// Pending cantidad pendiente de recibir de la línea.
func (d *OrderDetail) Pending() decimal.Decimal {
	return d.QuantityOrdered.Sub(d.QuantityReceived)
}

// Complete indica si la línea está completamente recibida.
func (d *OrderDetail) Complete() bool {
	return d.QuantityReceived.GreaterThanOrEqual(d.QuantityOrdered)
}

// Subtotal cantidad pedida * precio unitario.
func (d *OrderDetail) Subtotal() decimal.Decimal {
	return d.QuantityOrdered.Mul(d.UnitPrice).Round(2)
}
