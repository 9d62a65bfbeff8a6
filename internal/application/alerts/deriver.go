package alerts

import (
	"time"

	"github.com/google/uuid"

	"github.com/hotelvistamar/inventario-api/internal/domain/entity"
	"github.com/hotelvistamar/inventario-api/internal/domain/repository"
)

// Decision resultado de evaluar las alertas de un producto.
type Decision string

const (
	DecisionRaise Decision = "raise"
	DecisionClear Decision = "clear"
	DecisionNone  Decision = "none"
)

// SystemResolver identidad registrada cuando una alerta se resuelve sola al
// recuperarse el stock, sin acción del operador.
const SystemResolver = "sistema"

// Evaluate deriva el estado de alerta del producto contra el stock agregado.
// Debe llamarse con repos atados a la misma transacción que mutó el stock,
// para que la alerta nunca quede inconsistente con el ledger.
//
//   - total <= mínimo y sin alerta ACTIVA → levanta una nueva, con snapshot
//     del stock y el mínimo de ese momento.
//   - total > mínimo con alerta ACTIVA → la resuelve automáticamente
//     (política adoptada; los endpoints de resolver/ignorar manual siguen
//     disponibles para el operador).
func Evaluate(stockRepo repository.StockRepository, alertRepo repository.AlertRepository,
	product *entity.Product, actorID string) (Decision, error) {

	total, err := stockRepo.TotalByProduct(product.ID)
	if err != nil {
		return DecisionNone, err
	}
	active, err := alertRepo.GetActiveByProduct(product.ID)
	if err != nil {
		return DecisionNone, err
	}

	if total.LessThanOrEqual(product.MinStock) {
		if active != nil {
			return DecisionNone, nil
		}
		alert := &entity.StockAlert{
			ID:           uuid.New().String(),
			ProductID:    product.ID,
			CurrentStock: total,
			MinStock:     product.MinStock,
			Status:       entity.AlertStatusActiva,
			CreatedAt:    time.Now(),
		}
		if err := alertRepo.Create(alert); err != nil {
			return DecisionNone, err
		}
		return DecisionRaise, nil
	}

	if active == nil {
		return DecisionNone, nil
	}
	now := time.Now()
	resolver := actorID
	if resolver == "" {
		resolver = SystemResolver
	}
	active.Status = entity.AlertStatusResuelta
	active.ResolvedAt = &now
	active.ResolvedBy = resolver
	if err := alertRepo.Update(active); err != nil {
		return DecisionNone, err
	}
	return DecisionClear, nil
}
