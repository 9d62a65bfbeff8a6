package repository

import "github.com/hotelvistamar/inventario-api/internal/domain/entity"

// AreaRepository puerto de persistencia para Area (DIP).
type AreaRepository interface {
	Create(area *entity.Area) error
	GetByID(id string) (*entity.Area, error)
	Update(area *entity.Area) error
	List(onlyActive bool, limit, offset int) ([]*entity.Area, error)
}
