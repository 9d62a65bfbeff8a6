package repository

import "github.com/hotelvistamar/inventario-api/internal/domain/entity"

// OrderRepository puerto de persistencia para pedidos, detalles y recepciones.
type OrderRepository interface {
	Create(order *entity.PurchaseOrder) error
	CreateDetail(detail *entity.OrderDetail) error
	GetByID(id string) (*entity.PurchaseOrder, error)
	// GetByIDForUpdate bloquea el pedido para la transición de estado.
	GetByIDForUpdate(id string) (*entity.PurchaseOrder, error)
	GetDetail(detailID string) (*entity.OrderDetail, error)
	ListDetails(orderID string) ([]*entity.OrderDetail, error)
	Update(order *entity.PurchaseOrder) error
	UpdateDetailReceived(detail *entity.OrderDetail) error
	CreateReception(reception *entity.Reception) error
	CreateReceptionDetail(detail *entity.ReceptionDetail) error
	List(status string, limit, offset int) ([]*entity.PurchaseOrder, error)
	CountByYear(year int) (int, error)
}
