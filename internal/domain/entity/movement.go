package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/hotelvistamar/inventario-api/internal/domain"
)

// Tipos de movimiento de inventario.
const (
	MovementTypeEntrada       = "ENTRADA"       // incrementa el área destino
	MovementTypeSalida        = "SALIDA"        // decrementa el área origen
	MovementTypeAjuste        = "AJUSTE"        // corrección: un solo área, destino (+) u origen (-)
	MovementTypeTransferencia = "TRANSFERENCIA" // resta en origen y suma en destino
)

// Motivos de movimiento.
const (
	ReasonCompra       = "COMPRA"
	ReasonDevolucion   = "DEVOLUCION"
	ReasonConsumo      = "CONSUMO"
	ReasonVenta        = "VENTA"
	ReasonPerdida      = "PERDIDA"
	ReasonAjuste       = "AJUSTE_INVENTARIO"
	ReasonTransfer     = "TRANSFERENCIA"
	ReasonStockInicial = "INICIAL"
)

// Movement registro inmutable de un cambio de cantidad y su causa.
// Append-only: nunca se actualiza ni se borra. El timestamp lo asigna el
// servidor al persistir. Las áreas presentes dependen del tipo y se validan
// en NewMovement, no en cada call site.
type Movement struct {
	ID           string
	ProductID    string
	OriginAreaID string // vacío salvo SALIDA, TRANSFERENCIA y AJUSTE negativo
	DestAreaID   string // vacío salvo ENTRADA, TRANSFERENCIA y AJUSTE positivo
	Type         string
	Reason       string
	Quantity     decimal.Decimal  // siempre > 0; el signo lo da el tipo y el área
	UnitPrice    *decimal.Decimal // opcional
	Notes        string
	CreatedBy    string // UserID del actor, siempre explícito
	CreatedAt    time.Time

	// Trazabilidad hacia procurement (opcional, excluyentes entre sí).
	EntryDetailID     string
	ReceptionDetailID string
}

var validReasons = map[string]bool{
	ReasonCompra: true, ReasonDevolucion: true, ReasonConsumo: true,
	ReasonVenta: true, ReasonPerdida: true, ReasonAjuste: true,
	ReasonTransfer: true, ReasonStockInicial: true,
}

// NewMovement construye un movimiento validando los campos requeridos por tipo:
//
//	ENTRADA        → solo destino
//	SALIDA         → solo origen
//	AJUSTE         → exactamente un área (destino = suma, origen = resta)
//	TRANSFERENCIA  → origen y destino, distintos
//
// La cantidad se normaliza a 2 decimales y debe ser > 0. El precio, si viene,
// no puede ser negativo.
func NewMovement(productID, originAreaID, destAreaID, movType, reason string,
	quantity decimal.Decimal, unitPrice *decimal.Decimal, createdBy string) (*Movement, error) {

	if productID == "" || createdBy == "" {
		return nil, domain.ErrInvalidInput
	}
	if !validReasons[reason] {
		return nil, domain.ErrInvalidInput
	}
	quantity = quantity.Round(2)
	if !quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if unitPrice != nil {
		p := unitPrice.Round(2)
		if p.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		unitPrice = &p
	}

	switch movType {
	case MovementTypeEntrada:
		if destAreaID == "" || originAreaID != "" {
			return nil, domain.ErrInvalidInput
		}
	case MovementTypeSalida:
		if originAreaID == "" || destAreaID != "" {
			return nil, domain.ErrInvalidInput
		}
	case MovementTypeAjuste:
		// Un solo área: destino para ajuste positivo, origen para negativo.
		if (originAreaID == "") == (destAreaID == "") {
			return nil, domain.ErrInvalidInput
		}
	case MovementTypeTransferencia:
		if originAreaID == "" || destAreaID == "" || originAreaID == destAreaID {
			return nil, domain.ErrInvalidInput
		}
	default:
		return nil, domain.ErrInvalidInput
	}

	return &Movement{
		ProductID:    productID,
		OriginAreaID: originAreaID,
		DestAreaID:   destAreaID,
		Type:         movType,
		Reason:       reason,
		Quantity:     quantity,
		UnitPrice:    unitPrice,
		CreatedBy:    createdBy,
	}, nil
}

// TotalValue cantidad * precio unitario, o nil si no hay precio.
func (m *Movement) TotalValue() *decimal.Decimal {
	if m.UnitPrice == nil {
		return nil
	}
	v := m.Quantity.Mul(*m.UnitPrice).Round(2)
	return &v
}

// SignedQuantityFor aporte con signo de este movimiento al par (producto, área):
// +Quantity si el área es destino, -Quantity si es origen, 0 si no participa.
// Es la base del recálculo de stock desde el log (conciliación).
func (m *Movement) SignedQuantityFor(areaID string) decimal.Decimal {
	switch areaID {
	case m.DestAreaID:
		return m.Quantity
	case m.OriginAreaID:
		return m.Quantity.Neg()
	}
	return decimal.Zero
}
