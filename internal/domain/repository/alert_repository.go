package repository

import "github.com/hotelvistamar/inventario-api/internal/domain/entity"

// AlertRepository puerto de persistencia para alertas de stock.
type AlertRepository interface {
	Create(alert *entity.StockAlert) error
	GetByID(id string) (*entity.StockAlert, error)
	// GetActiveByProduct alerta ACTIVA del producto (nil si no hay).
	GetActiveByProduct(productID string) (*entity.StockAlert, error)
	// Update cambia estado/resolución. El snapshot de stock no se toca.
	Update(alert *entity.StockAlert) error
	ListByStatus(status string, limit, offset int) ([]*entity.StockAlert, error)
}
