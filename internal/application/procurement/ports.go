package procurement

import (
	"context"

	"github.com/hotelvistamar/inventario-api/internal/domain/repository"
)

// EntryTxRunner transacción para registrar una entrada: cabecera, líneas,
// mutaciones de ledger y alertas como unidad atómica.
type EntryTxRunner interface {
	RunEntry(ctx context.Context, fn func(
		entryRepo repository.EntryRepository,
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
		alertRepo repository.AlertRepository,
	) error) error
}

// OrderTxRunner transacción para pedidos: transición de estado, recepción de
// líneas y las entradas de stock derivadas como unidad atómica.
type OrderTxRunner interface {
	RunOrder(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
		alertRepo repository.AlertRepository,
	) error) error
}
