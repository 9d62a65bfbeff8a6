package procurement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hotelvistamar/inventario-api/internal/application/alerts"
	"github.com/hotelvistamar/inventario-api/internal/application/inventory"
	"github.com/hotelvistamar/inventario-api/internal/domain"
	"github.com/hotelvistamar/inventario-api/internal/domain/entity"
	"github.com/hotelvistamar/inventario-api/internal/domain/repository"
)

// OrderLineInput línea de pedido.
type OrderLineInput struct {
	ProductID string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	Notes     string
}

// CreateOrderInput pedido nuevo (queda en BORRADOR).
type CreateOrderInput struct {
	SupplierID   string
	ExpectedDate *time.Time
	Notes        string
	Lines        []OrderLineInput
	ActorID      string
}

// ReceiveLineInput cantidades recibidas contra una línea de pedido, con el
// área destino donde queda el stock.
type ReceiveLineInput struct {
	OrderDetailID string
	AreaID        string
	Quantity      decimal.Decimal
}

// ReceiveInput recepción parcial o total de un pedido.
type ReceiveInput struct {
	OrderID string
	Lines   []ReceiveLineInput
	Notes   string
	ActorID string
}

// OrderUseCase ciclo de vida del pedido a proveedor:
// BORRADOR → ENVIADO → CONFIRMADO → {PARCIAL → COMPLETADO | CANCELADO}.
// Las recepciones alimentan el ledger vía movimientos ENTRADA.
type OrderUseCase struct {
	txRunner     OrderTxRunner
	orderRepo    repository.OrderRepository
	productRepo  repository.ProductRepository
	areaRepo     repository.AreaRepository
	supplierRepo repository.SupplierRepository
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(txRunner OrderTxRunner, orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository, areaRepo repository.AreaRepository,
	supplierRepo repository.SupplierRepository) *OrderUseCase {
	return &OrderUseCase{
		txRunner:     txRunner,
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		areaRepo:     areaRepo,
		supplierRepo: supplierRepo,
	}
}

// Create registra un pedido en BORRADOR con número PED-YYYY-NNNN.
func (uc *OrderUseCase) Create(ctx context.Context, in CreateOrderInput) (*entity.PurchaseOrder, error) {
	if in.ActorID == "" || in.SupplierID == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	for _, line := range in.Lines {
		if !line.Quantity.Round(2).GreaterThan(decimal.Zero) || line.UnitPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		p, err := uc.productRepo.GetByID(line.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, domain.ErrNotFound
		}
		if !p.Active {
			return nil, domain.ErrConflict
		}
	}

	now := time.Now()
	order := &entity.PurchaseOrder{
		ID:           uuid.New().String(),
		SupplierID:   in.SupplierID,
		OrderedAt:    now,
		ExpectedDate: in.ExpectedDate,
		Status:       entity.OrderStatusBorrador,
		Notes:        in.Notes,
		CreatedBy:    in.ActorID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	for attempt := 0; ; attempt++ {
		number, err := uc.nextNumber(attempt)
		if err != nil {
			return nil, err
		}
		order.Number = number
		err = uc.txRunner.RunOrder(ctx, func(
			orderRepo repository.OrderRepository,
			_ repository.MovementRepository,
			_ repository.StockRepository,
			_ repository.AlertRepository,
		) error {
			if err := orderRepo.Create(order); err != nil {
				return err
			}
			for _, line := range in.Lines {
				detail := &entity.OrderDetail{
					ID:              uuid.New().String(),
					OrderID:         order.ID,
					ProductID:       line.ProductID,
					QuantityOrdered: line.Quantity.Round(2),
					UnitPrice:       line.UnitPrice.Round(2),
					Notes:           line.Notes,
				}
				if err := orderRepo.CreateDetail(detail); err != nil {
					return err
				}
			}
			return nil
		})
		if err == nil {
			return order, nil
		}
		if !errors.Is(err, domain.ErrDuplicate) || attempt >= maxNumberRetries {
			return nil, err
		}
	}
}

// Send pasa el pedido de BORRADOR a ENVIADO.
func (uc *OrderUseCase) Send(ctx context.Context, orderID, actorID string) error {
	return uc.transition(ctx, orderID, entity.OrderStatusEnviado, actorID)
}

// Confirm pasa el pedido de ENVIADO a CONFIRMADO (el proveedor lo aceptó).
func (uc *OrderUseCase) Confirm(ctx context.Context, orderID, actorID string) error {
	return uc.transition(ctx, orderID, entity.OrderStatusConfirmado, actorID)
}

// Cancel cancela un pedido que aún no empezó a recibirse.
func (uc *OrderUseCase) Cancel(ctx context.Context, orderID, actorID string) error {
	return uc.transition(ctx, orderID, entity.OrderStatusCancelado, actorID)
}

// transition aplica un cambio de estado bajo bloqueo de fila para que dos
// operadores no pisen la misma transición.
func (uc *OrderUseCase) transition(ctx context.Context, orderID, to, actorID string) error {
	if actorID == "" {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.RunOrder(ctx, func(
		orderRepo repository.OrderRepository,
		_ repository.MovementRepository,
		_ repository.StockRepository,
		_ repository.AlertRepository,
	) error {
		order, err := orderRepo.GetByIDForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if !entity.CanTransition(order.Status, to) {
			return domain.ErrConflict
		}
		order.Status = to
		order.UpdatedAt = time.Now()
		return orderRepo.Update(order)
	})
}

// Receive registra una recepción contra un pedido CONFIRMADO o PARCIAL:
// avanza las cantidades recibidas por línea (sin exceder lo pendiente), postea
// un movimiento ENTRADA por línea hacia el área indicada y recalcula el estado
// (PARCIAL mientras quede algo pendiente, COMPLETADO cuando no).
func (uc *OrderUseCase) Receive(ctx context.Context, in ReceiveInput) (*entity.Reception, error) {
	if in.ActorID == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, line := range in.Lines {
		area, err := uc.areaRepo.GetByID(line.AreaID)
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

	now := time.Now()
	reception := &entity.Reception{
		ID:         uuid.New().String(),
		OrderID:    in.OrderID,
		ReceivedAt: now,
		ReceivedBy: in.ActorID,
		Notes:      in.Notes,
	}

	err := uc.txRunner.RunOrder(ctx, func(
		orderRepo repository.OrderRepository,
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
		alertRepo repository.AlertRepository,
	) error {
		order, err := orderRepo.GetByIDForUpdate(in.OrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if !order.Receivable() {
			return domain.ErrConflict
		}
		if err := orderRepo.CreateReception(reception); err != nil {
			return err
		}

		touched := make(map[string]*entity.Product)
		for _, line := range in.Lines {
			detail, err := orderRepo.GetDetail(line.OrderDetailID)
			if err != nil {
				return err
			}
			if detail == nil || detail.OrderID != order.ID {
				return domain.ErrNotFound
			}
			qty := line.Quantity.Round(2)
			if !qty.GreaterThan(decimal.Zero) || qty.GreaterThan(detail.Pending()) {
				return domain.ErrInvalidInput
			}

			recDetail := &entity.ReceptionDetail{
				ID:            uuid.New().String(),
				ReceptionID:   reception.ID,
				OrderDetailID: detail.ID,
				AreaID:        line.AreaID,
				Quantity:      qty,
			}
			if err := orderRepo.CreateReceptionDetail(recDetail); err != nil {
				return err
			}

			detail.QuantityReceived = detail.QuantityReceived.Add(qty)
			if err := orderRepo.UpdateDetailReceived(detail); err != nil {
				return err
			}

			price := detail.UnitPrice
			mov, err := entity.NewMovement(detail.ProductID, "", line.AreaID,
				entity.MovementTypeEntrada, entity.ReasonCompra, qty, &price, in.ActorID)
			if err != nil {
				return err
			}
			mov.ID = uuid.New().String()
			mov.ReceptionDetailID = recDetail.ID
			mov.Notes = fmt.Sprintf("recepción pedido %s", order.Number)
			if err := inventory.PostMovement(movRepo, stockRepo, mov); err != nil {
				return err
			}

			if _, ok := touched[detail.ProductID]; !ok {
				p, err := uc.productRepo.GetByID(detail.ProductID)
				if err != nil {
					return err
				}
				if p == nil {
					return domain.ErrNotFound
				}
				touched[detail.ProductID] = p
			}
		}

		// Estado derivado de la cobertura de líneas, no de una orden del
		// operador.
		details, err := orderRepo.ListDetails(order.ID)
		if err != nil {
			return err
		}
		newStatus := entity.OrderStatusCompletado
		for _, d := range details {
			if !d.Complete() {
				newStatus = entity.OrderStatusParcial
				break
			}
		}
		if !entity.CanTransition(order.Status, newStatus) {
			return domain.ErrConflict
		}
		order.Status = newStatus
		order.UpdatedAt = time.Now()
		if newStatus == entity.OrderStatusCompletado {
			delivered := time.Now()
			order.DeliveredAt = &delivered
		}
		if err := orderRepo.Update(order); err != nil {
			return err
		}

		for _, p := range touched {
			if _, err := alerts.Evaluate(stockRepo, alertRepo, p, in.ActorID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reception, nil
}

// Get pedido con sus líneas.
func (uc *OrderUseCase) Get(orderID string) (*entity.PurchaseOrder, []*entity.OrderDetail, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, nil, err
	}
	if order == nil {
		return nil, nil, domain.ErrNotFound
	}
	details, err := uc.orderRepo.ListDetails(orderID)
	if err != nil {
		return nil, nil, err
	}
	return order, details, nil
}

// List pedidos, opcionalmente filtrados por estado.
func (uc *OrderUseCase) List(status string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	return uc.orderRepo.List(status, limit, offset)
}

func (uc *OrderUseCase) nextNumber(attempt int) (string, error) {
	year := time.Now().Year()
	count, err := uc.orderRepo.CountByYear(year)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("PED-%d-%04d", year, count+1+attempt), nil
}
