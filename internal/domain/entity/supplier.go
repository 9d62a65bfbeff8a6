package entity

import "time"

// Supplier proveedor del hotel. El RUT es único.
type Supplier struct {
	ID          string
	Name        string // razón social
	RUT         string
	ContactName string
	Email       string
	Phone       string
	Address     string
	Active      bool
	CreatedAt   time.Time
}
