package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin         = "admin"
	RoleBodeguero     = "bodeguero"
	RoleRecepcionista = "recepcionista"
)

// User usuario del sistema. Su ID es el actor que queda registrado en cada
// movimiento y entrada; nunca se toma de estado ambiente.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt, nunca plano después de persistir
	Name         string
	Role         string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
