package repository

import "github.com/hotelvistamar/inventario-api/internal/domain/entity"

// ProductRepository puerto de persistencia para Product (DIP).
// No hay Delete: los productos referenciados por stock o movimientos
// solo se desactivan.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByCode(code string) (*entity.Product, error)
	Update(product *entity.Product) error
	// Search busca por código o nombre, con el término ya normalizado
	// (minúsculas, sin tildes). Ver usecase.NormalizeSearchTerm.
	Search(term string, onlyActive bool, limit, offset int) ([]*entity.Product, error)
	List(onlyActive bool, limit, offset int) ([]*entity.Product, error)
}
