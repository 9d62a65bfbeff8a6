package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/hotelvistamar/inventario-api/internal/domain/entity"
)

// StockPair par (producto, área) que aparece en el log de movimientos.
type StockPair struct {
	ProductID string
	AreaID    string
}

// MovementRepository puerto de persistencia del log de movimientos.
// Append-only: no expone update ni delete.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	GetByID(id string) (*entity.Movement, error)
	// ListByProduct historial más reciente primero. areaID vacío = todas las
	// áreas; before acota a movimientos anteriores a ese instante.
	ListByProduct(productID, areaID string, limit int, before *time.Time) ([]*entity.Movement, error)
	ListByDateRange(from, to time.Time, limit, offset int) ([]*entity.Movement, error)
	// SignedSum suma con signo de los movimientos del par (producto, área):
	// destino suma, origen resta. Verdad de base para recomputar stock.
	SignedSum(productID, areaID string) (decimal.Decimal, error)
	// DistinctPairs pares (producto, área) tocados por algún movimiento.
	DistinctPairs() ([]StockPair, error)
}
