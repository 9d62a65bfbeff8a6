package procurement_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotelvistamar/inventario-api/internal/application/procurement"
	"github.com/hotelvistamar/inventario-api/internal/domain"
	"github.com/hotelvistamar/inventario-api/internal/domain/entity"
)

type orderFixture struct {
	uc        *procurement.OrderUseCase
	orderRepo *fakeOrderRepo
	movRepo   *fakeMovementRepo
	stockRepo *fakeStockRepo
	alertRepo *fakeAlertRepo
}

func newOrderFixture() *orderFixture {
	products := []*entity.Product{
		{ID: prodShampoo, Code: "P-001", Name: "Shampoo", Unit: entity.UnitUnidad, MinStock: dec("0"), Active: true},
		{ID: prodJabon, Code: "P-002", Name: "Jabón", Unit: entity.UnitUnidad, MinStock: dec("0"), Active: true},
	}
	areas := []*entity.Area{
		{ID: areaBodega, Name: "Bodega", Type: entity.AreaTypeBodega, Active: true},
	}
	supplier := &entity.Supplier{ID: supplierID, Name: "Distribuidora Sur", RUT: "76.123.456-7", Active: true}

	f := &orderFixture{
		orderRepo: &fakeOrderRepo{},
		movRepo:   &fakeMovementRepo{},
		stockRepo: newFakeStockRepo(),
		alertRepo: &fakeAlertRepo{},
	}
	tx := &fakeTxRunner{
		entryRepo: newFakeEntryRepo(), orderRepo: f.orderRepo,
		movRepo: f.movRepo, stockRepo: f.stockRepo, alertRepo: f.alertRepo,
	}
	f.uc = procurement.NewOrderUseCase(tx, f.orderRepo,
		newFakeProductRepo(products...), newFakeAreaRepo(areas...), newFakeSupplierRepo(supplier))
	return f
}

func (f *orderFixture) createOrder(t *testing.T) *entity.PurchaseOrder {
	t.Helper()
	order, err := f.uc.Create(context.Background(), procurement.CreateOrderInput{
		SupplierID: supplierID,
		ActorID:    actorID,
		Lines: []procurement.OrderLineInput{
			{ProductID: prodShampoo, Quantity: dec("10"), UnitPrice: dec("2.50")},
			{ProductID: prodJabon, Quantity: dec("20"), UnitPrice: dec("1.00")},
		},
	})
	require.NoError(t, err)
	return order
}

// confirmOrder lleva un pedido recién creado hasta CONFIRMADO.
func (f *orderFixture) confirmOrder(t *testing.T) *entity.PurchaseOrder {
	t.Helper()
	order := f.createOrder(t)
	require.NoError(t, f.uc.Send(context.Background(), order.ID, actorID))
	require.NoError(t, f.uc.Confirm(context.Background(), order.ID, actorID))
	confirmed, err := f.orderRepo.GetByID(order.ID)
	require.NoError(t, err)
	return confirmed
}

func TestCreateOrder_QuedaEnBorradorConNumero(t *testing.T) {
	f := newOrderFixture()
	order := f.createOrder(t)

	assert.Equal(t, entity.OrderStatusBorrador, order.Status)
	assert.Regexp(t, `^PED-\d{4}-0001$`, order.Number)

	details, err := f.orderRepo.ListDetails(order.ID)
	require.NoError(t, err)
	require.Len(t, details, 2)
	assert.True(t, details[0].QuantityReceived.IsZero())
}

func TestCreateOrder_SinProveedor_Invalido(t *testing.T) {
	f := newOrderFixture()
	_, err := f.uc.Create(context.Background(), procurement.CreateOrderInput{
		ActorID: actorID,
		Lines:   []procurement.OrderLineInput{{ProductID: prodShampoo, Quantity: dec("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateOrder_CrearNoTocaStock(t *testing.T) {
	f := newOrderFixture()
	f.createOrder(t)

	assert.Empty(t, f.movRepo.movements, "un pedido no mueve inventario hasta recibirse")
	s, _ := f.stockRepo.Get(prodShampoo, areaBodega)
	assert.True(t, s.Quantity.IsZero())
}

func TestTransitions_FlujoFeliz(t *testing.T) {
	f := newOrderFixture()
	order := f.createOrder(t)
	ctx := context.Background()

	require.NoError(t, f.uc.Send(ctx, order.ID, actorID))
	require.NoError(t, f.uc.Confirm(ctx, order.ID, actorID))

	got, _ := f.orderRepo.GetByID(order.ID)
	assert.Equal(t, entity.OrderStatusConfirmado, got.Status)
}

func TestTransitions_SaltoInvalido_Conflicto(t *testing.T) {
	f := newOrderFixture()
	order := f.createOrder(t)

	// BORRADOR → CONFIRMADO directo no existe.
	err := f.uc.Confirm(context.Background(), order.ID, actorID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	got, _ := f.orderRepo.GetByID(order.ID)
	assert.Equal(t, entity.OrderStatusBorrador, got.Status, "el estado no cambia")
}

func TestCancel_DesdeBorradorYEnviado(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()

	borrador := f.createOrder(t)
	require.NoError(t, f.uc.Cancel(ctx, borrador.ID, actorID))

	enviado := f.createOrder(t)
	require.NoError(t, f.uc.Send(ctx, enviado.ID, actorID))
	require.NoError(t, f.uc.Cancel(ctx, enviado.ID, actorID))
}

func TestReceive_EnBorrador_Conflicto(t *testing.T) {
	f := newOrderFixture()
	order := f.createOrder(t)
	details, _ := f.orderRepo.ListDetails(order.ID)

	_, err := f.uc.Receive(context.Background(), procurement.ReceiveInput{
		OrderID: order.ID,
		ActorID: actorID,
		Lines: []procurement.ReceiveLineInput{
			{OrderDetailID: details[0].ID, AreaID: areaBodega, Quantity: dec("1")},
		},
	})
	assert.ErrorIs(t, err, domain.ErrConflict, "solo CONFIRMADO o PARCIAL admiten recepciones")
}

func TestReceive_Parcial_DejaPedidoParcialYSubeStock(t *testing.T) {
	f := newOrderFixture()
	order := f.confirmOrder(t)
	details, _ := f.orderRepo.ListDetails(order.ID)

	_, err := f.uc.Receive(context.Background(), procurement.ReceiveInput{
		OrderID: order.ID,
		ActorID: actorID,
		Lines: []procurement.ReceiveLineInput{
			{OrderDetailID: details[0].ID, AreaID: areaBodega, Quantity: dec("4")},
		},
	})
	require.NoError(t, err)

	got, _ := f.orderRepo.GetByID(order.ID)
	assert.Equal(t, entity.OrderStatusParcial, got.Status)
	assert.Nil(t, got.DeliveredAt)

	s, _ := f.stockRepo.Get(prodShampoo, areaBodega)
	assert.True(t, s.Quantity.Equal(dec("4")))

	// El movimiento queda ligado al detalle de recepción y valorizado al
	// precio de la línea del pedido.
	require.Len(t, f.movRepo.movements, 1)
	mov := f.movRepo.movements[0]
	assert.Equal(t, entity.MovementTypeEntrada, mov.Type)
	assert.NotEmpty(t, mov.ReceptionDetailID)
	require.NotNil(t, mov.UnitPrice)
	assert.True(t, mov.UnitPrice.Equal(dec("2.50")))
}

func TestReceive_Completa_MarcaCompletadoConFechaDeEntrega(t *testing.T) {
	f := newOrderFixture()
	order := f.confirmOrder(t)
	details, _ := f.orderRepo.ListDetails(order.ID)

	_, err := f.uc.Receive(context.Background(), procurement.ReceiveInput{
		OrderID: order.ID,
		ActorID: actorID,
		Lines: []procurement.ReceiveLineInput{
			{OrderDetailID: details[0].ID, AreaID: areaBodega, Quantity: details[0].QuantityOrdered},
			{OrderDetailID: details[1].ID, AreaID: areaBodega, Quantity: details[1].QuantityOrdered},
		},
	})
	require.NoError(t, err)

	got, _ := f.orderRepo.GetByID(order.ID)
	assert.Equal(t, entity.OrderStatusCompletado, got.Status)
	require.NotNil(t, got.DeliveredAt)
}

func TestReceive_EnDosTandas_ParcialLuegoCompletado(t *testing.T) {
	f := newOrderFixture()
	order := f.confirmOrder(t)
	details, _ := f.orderRepo.ListDetails(order.ID)
	ctx := context.Background()

	_, err := f.uc.Receive(ctx, procurement.ReceiveInput{
		OrderID: order.ID, ActorID: actorID,
		Lines: []procurement.ReceiveLineInput{
			{OrderDetailID: details[0].ID, AreaID: areaBodega, Quantity: dec("10")},
			{OrderDetailID: details[1].ID, AreaID: areaBodega, Quantity: dec("5")},
		},
	})
	require.NoError(t, err)
	got, _ := f.orderRepo.GetByID(order.ID)
	require.Equal(t, entity.OrderStatusParcial, got.Status)

	// Segunda recepción sobre un pedido ya PARCIAL (PARCIAL → PARCIAL y
	// PARCIAL → COMPLETADO son transiciones válidas).
	_, err = f.uc.Receive(ctx, procurement.ReceiveInput{
		OrderID: order.ID, ActorID: actorID,
		Lines: []procurement.ReceiveLineInput{
			{OrderDetailID: details[1].ID, AreaID: areaBodega, Quantity: dec("15")},
		},
	})
	require.NoError(t, err)

	got, _ = f.orderRepo.GetByID(order.ID)
	assert.Equal(t, entity.OrderStatusCompletado, got.Status)

	s, _ := f.stockRepo.Get(prodJabon, areaBodega)
	assert.True(t, s.Quantity.Equal(dec("20")))
}

func TestReceive_ExcederLoPendiente_InvalidoYSinEfecto(t *testing.T) {
	f := newOrderFixture()
	order := f.confirmOrder(t)
	details, _ := f.orderRepo.ListDetails(order.ID)

	_, err := f.uc.Receive(context.Background(), procurement.ReceiveInput{
		OrderID: order.ID, ActorID: actorID,
		Lines: []procurement.ReceiveLineInput{
			{OrderDetailID: details[0].ID, AreaID: areaBodega, Quantity: dec("11")},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Rollback completo: ni recepción, ni stock, ni avance de línea.
	assert.Empty(t, f.orderRepo.receptions)
	s, _ := f.stockRepo.Get(prodShampoo, areaBodega)
	assert.True(t, s.Quantity.IsZero())
	d, _ := f.orderRepo.GetDetail(details[0].ID)
	assert.True(t, d.QuantityReceived.IsZero())
}

func TestReceive_LineaDeOtroPedido_NotFound(t *testing.T) {
	f := newOrderFixture()
	orderA := f.confirmOrder(t)
	orderB := f.confirmOrder(t)
	detailsB, _ := f.orderRepo.ListDetails(orderB.ID)

	_, err := f.uc.Receive(context.Background(), procurement.ReceiveInput{
		OrderID: orderA.ID, ActorID: actorID,
		Lines: []procurement.ReceiveLineInput{
			{OrderDetailID: detailsB[0].ID, AreaID: areaBodega, Quantity: dec("1")},
		},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateOrder_NumeracionSecuencialPorAnio(t *testing.T) {
	f := newOrderFixture()
	first := f.createOrder(t)
	second := f.createOrder(t)

	assert.Regexp(t, `-0001$`, first.Number)
	assert.Regexp(t, `-0002$`, second.Number)
}
