package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una alerta de stock.
const (
	AlertStatusActiva   = "ACTIVA"
	AlertStatusResuelta = "RESUELTA"
	AlertStatusIgnorada = "IGNORADA"
)

// StockAlert alerta derivada de stock bajo. CurrentStock y MinStock son un
// snapshot del momento en que se levantó; no se actualizan con el stock vivo.
type StockAlert struct {
	ID           string
	ProductID    string
	AreaID       string // opcional: vacío = alerta por stock total
	CurrentStock decimal.Decimal
	MinStock     decimal.Decimal
	Status       string
	Notes        string
	CreatedAt    time.Time
	ResolvedAt   *time.Time
	ResolvedBy   string // UserID, o "sistema" en auto-resolución
}
