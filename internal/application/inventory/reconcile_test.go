package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotelvistamar/inventario-api/internal/application/inventory"
	"github.com/hotelvistamar/inventario-api/internal/domain/entity"
)

func TestReconcile_LedgerConsistente_SinDiscrepancias(t *testing.T) {
	f := newFixture("0")
	f.apply(t, entrada("10"))
	f.apply(t, inventory.MovementInput{
		ProductID: prodID, OriginAreaID: bodega, DestAreaID: cocina,
		Type: entity.MovementTypeTransferencia, Reason: entity.ReasonTransfer,
		Quantity: dec("4"), ActorID: actorID,
	})
	f.apply(t, inventory.MovementInput{
		ProductID: prodID, OriginAreaID: cocina,
		Type: entity.MovementTypeSalida, Reason: entity.ReasonConsumo,
		Quantity: dec("1"), ActorID: actorID,
	})

	uc := inventory.NewReconcileUseCase(f.stockRepo, f.movRepo)
	diffs, err := uc.Reconcile()
	require.NoError(t, err)
	assert.Empty(t, diffs, "todo movimiento pasó por el motor: no puede haber drift")
}

func TestReconcile_DetectaStockAdulterado(t *testing.T) {
	f := newFixture("0")
	f.apply(t, entrada("10"))

	// Corrupción simulada: alguien tocó el ledger sin pasar por el motor.
	require.NoError(t, f.stockRepo.Upsert(&entity.Stock{
		ProductID: prodID, AreaID: bodega, Quantity: dec("7"),
	}))

	uc := inventory.NewReconcileUseCase(f.stockRepo, f.movRepo)
	diffs, err := uc.Reconcile()
	require.NoError(t, err)

	require.Len(t, diffs, 1)
	assert.Equal(t, prodID, diffs[0].ProductID)
	assert.Equal(t, bodega, diffs[0].AreaID)
	assert.True(t, diffs[0].Ledger.Equal(dec("7")))
	assert.True(t, diffs[0].Log.Equal(dec("10")))
}

func TestReconcile_FilaDeStockSinMovimientos_TambienCuenta(t *testing.T) {
	f := newFixture("0")

	// Fila huérfana: stock > 0 sin ningún movimiento que la respalde.
	require.NoError(t, f.stockRepo.Upsert(&entity.Stock{
		ProductID: "prod-huerfano", AreaID: bodega, Quantity: dec("3"),
	}))

	uc := inventory.NewReconcileUseCase(f.stockRepo, f.movRepo)
	diffs, err := uc.Reconcile()
	require.NoError(t, err)

	require.Len(t, diffs, 1)
	assert.Equal(t, "prod-huerfano", diffs[0].ProductID)
	assert.True(t, diffs[0].Log.IsZero(), "sin movimientos la suma esperada es cero")
}

func TestReconcile_FilaEnCeroConLogEnCero_NoEsDiscrepancia(t *testing.T) {
	f := newFixture("0")
	f.apply(t, entrada("5"))
	f.apply(t, inventory.MovementInput{
		ProductID: prodID, OriginAreaID: bodega,
		Type: entity.MovementTypeSalida, Reason: entity.ReasonConsumo,
		Quantity: dec("5"), ActorID: actorID,
	})

	uc := inventory.NewReconcileUseCase(f.stockRepo, f.movRepo)
	diffs, err := uc.Reconcile()
	require.NoError(t, err)
	assert.Empty(t, diffs)
}
