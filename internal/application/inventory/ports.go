package inventory

import (
	"context"

	"github.com/hotelvistamar/inventario-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor del ledger:
// mutación de stock, append del movimiento y evaluación de alertas se
// confirman o descartan juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
		alertRepo repository.AlertRepository,
	) error) error
}
