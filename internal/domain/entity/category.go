package entity

import "time"

// Category categoría de productos del hotel (Amenities, Bebidas, Alimentos, Limpieza, etc.).
type Category struct {
	ID          string
	Name        string // único
	Description string
	Active      bool
	CreatedAt   time.Time
}
