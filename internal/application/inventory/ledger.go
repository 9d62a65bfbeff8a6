package inventory

import (
	"time"

	"github.com/hotelvistamar/inventario-api/internal/domain"
	"github.com/hotelvistamar/inventario-api/internal/domain/entity"
	"github.com/hotelvistamar/inventario-api/internal/domain/repository"
)

// PostMovement único punto de mutación del stock. Aplica un movimiento ya
// validado (entity.NewMovement) sobre los repos de la transacción en curso:
//
//  1. Si el movimiento decrementa un área, bloquea la fila (SELECT FOR UPDATE),
//     verifica cantidad suficiente y resta; ErrInsufficientStock aborta sin
//     efecto alguno porque el caller hace rollback.
//  2. Si incrementa un área, bloquea/crea la fila y suma.
//  3. Registra el movimiento con timestamp asignado aquí, nunca por el caller.
//
// Una transferencia ejecuta 1 y 2 sobre la misma transacción: o ambas áreas
// cambian o ninguna.
func PostMovement(movRepo repository.MovementRepository, stockRepo repository.StockRepository, mov *entity.Movement) error {
	now := time.Now()

	if mov.OriginAreaID != "" {
		origin, err := stockRepo.GetForUpdate(mov.ProductID, mov.OriginAreaID)
		if err != nil {
			return err
		}
		if origin.Quantity.LessThan(mov.Quantity) {
			return domain.ErrInsufficientStock
		}
		origin.Quantity = origin.Quantity.Sub(mov.Quantity)
		origin.UpdatedAt = now
		if err := stockRepo.Upsert(origin); err != nil {
			return err
		}
	}

	if mov.DestAreaID != "" {
		dest, err := stockRepo.GetForUpdate(mov.ProductID, mov.DestAreaID)
		if err != nil {
			return err
		}
		dest.Quantity = dest.Quantity.Add(mov.Quantity)
		dest.UpdatedAt = now
		if err := stockRepo.Upsert(dest); err != nil {
			return err
		}
	}

	mov.CreatedAt = now
	return movRepo.Create(mov)
}
