package repository

import "github.com/hotelvistamar/inventario-api/internal/domain/entity"

// SupplierRepository puerto de persistencia para Supplier (DIP).
type SupplierRepository interface {
	Create(supplier *entity.Supplier) error
	GetByID(id string) (*entity.Supplier, error)
	GetByRUT(rut string) (*entity.Supplier, error)
	Update(supplier *entity.Supplier) error
	List(onlyActive bool, limit, offset int) ([]*entity.Supplier, error)
}
