package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotelvistamar/inventario-api/internal/application/inventory"
	"github.com/hotelvistamar/inventario-api/internal/domain"
	"github.com/hotelvistamar/inventario-api/internal/domain/entity"
)

var errBoom = errors.New("boom")

const (
	prodID  = "prod-1"
	bodega  = "area-bodega"
	cocina  = "area-cocina"
	actorID = "user-1"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

type fixture struct {
	uc        *inventory.ApplyMovementUseCase
	stockRepo *fakeStockRepo
	movRepo   *fakeMovementRepo
	alertRepo *fakeAlertRepo
}

func newFixture(minStock string) *fixture {
	product := &entity.Product{
		ID: prodID, Code: "P-001", Name: "Shampoo", Unit: entity.UnitUnidad,
		MinStock: dec(minStock), Active: true,
	}
	areas := []*entity.Area{
		{ID: bodega, Name: "Bodega", Type: entity.AreaTypeBodega, Active: true},
		{ID: cocina, Name: "Cocina", Type: entity.AreaTypeCocina, Active: true},
	}
	f := &fixture{
		stockRepo: newFakeStockRepo(),
		movRepo:   &fakeMovementRepo{},
		alertRepo: &fakeAlertRepo{},
	}
	tx := &fakeTxRunner{movRepo: f.movRepo, stockRepo: f.stockRepo, alertRepo: f.alertRepo}
	f.uc = inventory.NewApplyMovementUseCase(tx, newFakeProductRepo(product), newFakeAreaRepo(areas...))
	return f
}

func (f *fixture) stockAt(t *testing.T, areaID string) decimal.Decimal {
	t.Helper()
	s, err := f.stockRepo.Get(prodID, areaID)
	require.NoError(t, err)
	return s.Quantity
}

func (f *fixture) apply(t *testing.T, in inventory.MovementInput) *entity.Movement {
	t.Helper()
	mov, err := f.uc.Apply(context.Background(), in)
	require.NoError(t, err)
	return mov
}

func entrada(qty string) inventory.MovementInput {
	return inventory.MovementInput{
		ProductID: prodID, DestAreaID: bodega,
		Type: entity.MovementTypeEntrada, Reason: entity.ReasonCompra,
		Quantity: dec(qty), ActorID: actorID,
	}
}

func TestApply_EntradaIncrementaDestino(t *testing.T) {
	f := newFixture("0")

	mov := f.apply(t, entrada("10"))

	assert.NotEmpty(t, mov.ID)
	assert.False(t, mov.CreatedAt.IsZero(), "el timestamp lo asigna el motor")
	assert.True(t, f.stockAt(t, bodega).Equal(dec("10")))
	assert.Len(t, f.movRepo.movements, 1)
}

func TestApply_SalidaDecrementaOrigen(t *testing.T) {
	f := newFixture("0")
	f.apply(t, entrada("10"))

	f.apply(t, inventory.MovementInput{
		ProductID: prodID, OriginAreaID: bodega,
		Type: entity.MovementTypeSalida, Reason: entity.ReasonConsumo,
		Quantity: dec("4"), ActorID: actorID,
	})

	assert.True(t, f.stockAt(t, bodega).Equal(dec("6")))
}

func TestApply_SalidaSinStockSuficiente_NoTieneEfecto(t *testing.T) {
	f := newFixture("0")
	f.apply(t, entrada("3"))

	_, err := f.uc.Apply(context.Background(), inventory.MovementInput{
		ProductID: prodID, OriginAreaID: bodega,
		Type: entity.MovementTypeSalida, Reason: entity.ReasonConsumo,
		Quantity: dec("5"), ActorID: actorID,
	})

	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, f.stockAt(t, bodega).Equal(dec("3")), "el stock no debe cambiar")
	assert.Len(t, f.movRepo.movements, 1, "el movimiento rechazado no se registra")
}

func TestApply_TransferenciaMueveEntreAreas(t *testing.T) {
	f := newFixture("0")
	f.apply(t, entrada("10"))

	mov := f.apply(t, inventory.MovementInput{
		ProductID: prodID, OriginAreaID: bodega, DestAreaID: cocina,
		Type: entity.MovementTypeTransferencia, Reason: entity.ReasonTransfer,
		Quantity: dec("4"), ActorID: actorID,
	})

	assert.True(t, f.stockAt(t, bodega).Equal(dec("6")))
	assert.True(t, f.stockAt(t, cocina).Equal(dec("4")))
	// Un solo registro en el log con ambas áreas.
	assert.Len(t, f.movRepo.movements, 2)
	assert.Equal(t, bodega, mov.OriginAreaID)
	assert.Equal(t, cocina, mov.DestAreaID)
}

func TestApply_TransferenciaSinSaldo_NoMutaNinguna(t *testing.T) {
	f := newFixture("0")
	f.apply(t, entrada("2"))

	_, err := f.uc.Apply(context.Background(), inventory.MovementInput{
		ProductID: prodID, OriginAreaID: bodega, DestAreaID: cocina,
		Type: entity.MovementTypeTransferencia, Reason: entity.ReasonTransfer,
		Quantity: dec("5"), ActorID: actorID,
	})

	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, f.stockAt(t, bodega).Equal(dec("2")))
	assert.True(t, f.stockAt(t, cocina).IsZero())
}

func TestApply_AjusteNegativoConOrigen(t *testing.T) {
	f := newFixture("0")
	f.apply(t, entrada("10"))

	f.apply(t, inventory.MovementInput{
		ProductID: prodID, OriginAreaID: bodega,
		Type: entity.MovementTypeAjuste, Reason: entity.ReasonAjuste,
		Quantity: dec("1.5"), ActorID: actorID,
	})

	assert.True(t, f.stockAt(t, bodega).Equal(dec("8.5")))
}

func TestApply_ProductoInexistente_NotFound(t *testing.T) {
	f := newFixture("0")
	in := entrada("1")
	in.ProductID = "no-existe"
	_, err := f.uc.Apply(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApply_AreaInexistente_NotFound(t *testing.T) {
	f := newFixture("0")
	in := entrada("1")
	in.DestAreaID = "no-existe"
	_, err := f.uc.Apply(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApply_FalloEnPersistencia_RevierteStock(t *testing.T) {
	f := newFixture("0")
	f.apply(t, entrada("10"))

	// La próxima escritura del log falla: el stock ya sumado debe revertirse.
	f.movRepo.failOn = f.movRepo.calls + 1
	_, err := f.uc.Apply(context.Background(), entrada("5"))

	require.Error(t, err)
	assert.True(t, f.stockAt(t, bodega).Equal(dec("10")), "rollback completo")
	assert.Len(t, f.movRepo.movements, 1)
}

func TestApply_BajoMinimo_LevantaAlertaEnLaMismaTx(t *testing.T) {
	f := newFixture("5")
	f.apply(t, entrada("10"))
	require.Empty(t, f.alertRepo.alerts, "con stock sobre el mínimo no hay alerta")

	// 10 - 5 = 5 == mínimo → se levanta alerta (umbral inclusivo).
	f.apply(t, inventory.MovementInput{
		ProductID: prodID, OriginAreaID: bodega,
		Type: entity.MovementTypeSalida, Reason: entity.ReasonConsumo,
		Quantity: dec("5"), ActorID: actorID,
	})

	require.Len(t, f.alertRepo.alerts, 1)
	alert := f.alertRepo.alerts[0]
	assert.Equal(t, entity.AlertStatusActiva, alert.Status)
	assert.True(t, alert.CurrentStock.Equal(dec("5")), "snapshot del stock al dispararse")
	assert.True(t, alert.MinStock.Equal(dec("5")))
}

func TestApply_RecuperacionDeStock_ResuelveAlertaActiva(t *testing.T) {
	f := newFixture("5")
	f.apply(t, entrada("4")) // 4 <= 5 → alerta
	require.Len(t, f.alertRepo.alerts, 1)

	f.apply(t, entrada("20")) // total 24 > 5 → se resuelve

	active, err := f.alertRepo.GetActiveByProduct(prodID)
	require.NoError(t, err)
	assert.Nil(t, active, "no debe quedar alerta activa")
	assert.Equal(t, entity.AlertStatusResuelta, f.alertRepo.alerts[0].Status)
	assert.NotNil(t, f.alertRepo.alerts[0].ResolvedAt)
}

func TestApply_AlertaActivaNoSeDuplica(t *testing.T) {
	f := newFixture("100")
	f.apply(t, entrada("10"))
	f.apply(t, entrada("10"))
	f.apply(t, entrada("10"))

	assert.Len(t, f.alertRepo.alerts, 1, "una sola alerta mientras siga bajo el mínimo")
}
