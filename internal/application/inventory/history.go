package inventory

import (
	"time"

	"github.com/hotelvistamar/inventario-api/internal/domain"
	"github.com/hotelvistamar/inventario-api/internal/domain/entity"
	"github.com/hotelvistamar/inventario-api/internal/domain/repository"
)

// HistoryUseCase lecturas del log de movimientos y del stock por área.
type HistoryUseCase struct {
	movRepo     repository.MovementRepository
	stockRepo   repository.StockRepository
	productRepo repository.ProductRepository
}

// NewHistoryUseCase construye el caso de uso.
func NewHistoryUseCase(movRepo repository.MovementRepository, stockRepo repository.StockRepository,
	productRepo repository.ProductRepository) *HistoryUseCase {
	return &HistoryUseCase{movRepo: movRepo, stockRepo: stockRepo, productRepo: productRepo}
}

// History movimientos del producto, más recientes primero. areaID vacío trae
// todas las áreas; before acota a movimientos anteriores a ese instante.
func (uc *HistoryUseCase) History(productID, areaID string, limit int, before *time.Time) ([]*entity.Movement, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return uc.movRepo.ListByProduct(productID, areaID, limit, before)
}

// StockBreakdown stock actual del producto desglosado por área.
func (uc *HistoryUseCase) StockBreakdown(productID string) ([]*entity.Stock, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return uc.stockRepo.ListByProduct(productID)
}
