package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hotelvistamar/inventario-api/internal/application/alerts"
	"github.com/hotelvistamar/inventario-api/internal/domain"
	"github.com/hotelvistamar/inventario-api/internal/domain/entity"
	"github.com/hotelvistamar/inventario-api/internal/domain/repository"
)

// MovementInput entrada para aplicar un movimiento de inventario.
// Para ENTRADA solo DestAreaID; para SALIDA solo OriginAreaID; para AJUSTE
// exactamente una de las dos; para TRANSFERENCIA ambas.
type MovementInput struct {
	ProductID    string
	OriginAreaID string
	DestAreaID   string
	Type         string
	Reason       string
	Quantity     decimal.Decimal
	UnitPrice    *decimal.Decimal
	Notes        string
	ActorID      string
}

// ApplyMovementUseCase aplica movimientos de forma transaccional: bloqueo de
// fila, verificación de suficiencia, append del movimiento y evaluación de
// alertas, con Commit o Rollback completos.
type ApplyMovementUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	areaRepo    repository.AreaRepository
}

// NewApplyMovementUseCase construye el caso de uso.
func NewApplyMovementUseCase(txRunner TxRunner, productRepo repository.ProductRepository,
	areaRepo repository.AreaRepository) *ApplyMovementUseCase {
	return &ApplyMovementUseCase{txRunner: txRunner, productRepo: productRepo, areaRepo: areaRepo}
}

// Apply valida el movimiento, verifica producto y áreas, y lo aplica dentro
// de una transacción junto con la evaluación de alertas del producto.
func (uc *ApplyMovementUseCase) Apply(ctx context.Context, in MovementInput) (*entity.Movement, error) {
	mov, err := entity.NewMovement(in.ProductID, in.OriginAreaID, in.DestAreaID,
		in.Type, in.Reason, in.Quantity, in.UnitPrice, in.ActorID)
	if err != nil {
		return nil, err
	}
	mov.ID = uuid.New().String()
	mov.Notes = in.Notes

	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if !product.Active {
		return nil, domain.ErrConflict
	}
	for _, areaID := range []string{mov.OriginAreaID, mov.DestAreaID} {
		if areaID == "" {
			continue
		}
		area, err := uc.areaRepo.GetByID(areaID)
		if err != nil {
			return nil, err
		}
		if area == nil {
			return nil, domain.ErrNotFound
		}
		if !area.Active {
			return nil, domain.ErrConflict
		}
	}

	err = uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
		alertRepo repository.AlertRepository,
	) error {
		if err := PostMovement(movRepo, stockRepo, mov); err != nil {
			return err
		}
		_, err := alerts.Evaluate(stockRepo, alertRepo, product, in.ActorID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}
