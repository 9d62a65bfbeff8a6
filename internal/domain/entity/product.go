package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Unidades de medida.
const (
	UnitUnidad    = "UN"
	UnitKilogramo = "KG"
	UnitLitro     = "LT"
	UnitMililitro = "ML"
	UnitGramo     = "GR"
	UnitPaquete   = "PAQ"
	UnitCaja      = "CAJ"
	UnitBotella   = "BOT"
)

// Product producto del inventario. MinStock dispara alertas cuando el stock
// total (sumado sobre todas las áreas) cae a ese valor o por debajo.
// Nunca se elimina mientras tenga stock o movimientos: se desactiva.
type Product struct {
	ID          string
	Code        string // código único del producto
	Name        string
	CategoryID  string
	Unit        string           // una de Unit*
	MinStock    decimal.Decimal  // >= 0
	UnitPrice   *decimal.Decimal // precio unitario de referencia, opcional
	Description string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

var validUnits = map[string]bool{
	UnitUnidad: true, UnitKilogramo: true, UnitLitro: true, UnitMililitro: true,
	UnitGramo: true, UnitPaquete: true, UnitCaja: true, UnitBotella: true,
}

// IsValidUnit indica si la unidad de medida pertenece al catálogo.
func IsValidUnit(u string) bool { return validUnits[u] }
