package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock cantidad actual de un producto en un área (única por par producto+área).
// Solo se muta como efecto de registrar un Movement; nunca se edita directo.
type Stock struct {
	ProductID string
	AreaID    string
	Quantity  decimal.Decimal // >= 0, 2 decimales
	UpdatedAt time.Time
}
