package repository

import "github.com/hotelvistamar/inventario-api/internal/domain/entity"

// CategoryRepository puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	GetByName(name string) (*entity.Category, error)
	Update(category *entity.Category) error
	List(onlyActive bool, limit, offset int) ([]*entity.Category, error)
}
