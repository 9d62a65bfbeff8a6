package repository

import "github.com/hotelvistamar/inventario-api/internal/domain/entity"

// EntryRepository puerto de persistencia para entradas de stock y sus detalles.
type EntryRepository interface {
	Create(entry *entity.StockEntry) error
	CreateDetail(detail *entity.EntryDetail) error
	GetByID(id string) (*entity.StockEntry, error)
	GetByNumber(number string) (*entity.StockEntry, error)
	ListDetails(entryID string) ([]*entity.EntryDetail, error)
	List(limit, offset int) ([]*entity.StockEntry, error)
	// CountByYear entradas registradas en el año (secuencia ENT-YYYY-NNNN).
	CountByYear(year int) (int, error)
}
