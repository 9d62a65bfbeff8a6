package entity

import "time"

// Tipos de área del hotel.
const (
	AreaTypeBodega     = "BODEGA"     // bodega principal
	AreaTypeCocina     = "COCINA"
	AreaTypeHabitacion = "HABITACION" // habitaciones / frigobar
	AreaTypeBar        = "BAR"
	AreaTypeLimpieza   = "LIMPIEZA"
	AreaTypeRecepcion  = "RECEPCION"
)

// Area lugar físico o lógico donde se almacena o consume inventario.
type Area struct {
	ID          string
	Name        string
	Type        string // uno de AreaType*
	Description string
	Active      bool
	CreatedAt   time.Time
}

var validAreaTypes = map[string]bool{
	AreaTypeBodega:     true,
	AreaTypeCocina:     true,
	AreaTypeHabitacion: true,
	AreaTypeBar:        true,
	AreaTypeLimpieza:   true,
	AreaTypeRecepcion:  true,
}

// IsValidAreaType indica si el tipo de área pertenece al catálogo.
func IsValidAreaType(t string) bool { return validAreaTypes[t] }
