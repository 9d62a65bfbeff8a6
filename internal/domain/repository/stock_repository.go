package repository

import (
	"github.com/shopspring/decimal"

	"github.com/hotelvistamar/inventario-api/internal/domain/entity"
)

// StockRepository puerto para consultar/actualizar stock por producto+área.
// Upsert solo debe invocarse desde el motor del ledger (inventory.PostMovement)
// dentro de una transacción; el resto del código consume solo lecturas.
type StockRepository interface {
	Get(productID, areaID string) (*entity.Stock, error)
	// GetForUpdate crea la fila en cero si el par no existe y la bloquea hasta
	// el fin de la transacción: lecturas para escribir siempre se serializan.
	GetForUpdate(productID, areaID string) (*entity.Stock, error)
	Upsert(stock *entity.Stock) error
	// TotalByProduct stock total del producto sumando todas las áreas.
	TotalByProduct(productID string) (decimal.Decimal, error)
	ListByProduct(productID string) ([]*entity.Stock, error)
	ListByArea(areaID string, limit, offset int) ([]*entity.Stock, error)
	// ListAll todas las filas de stock (conciliación contra el log).
	ListAll() ([]*entity.Stock, error)
}
