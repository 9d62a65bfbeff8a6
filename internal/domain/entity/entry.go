package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de entrada de stock.
const (
	EntryTypeCompra     = "COMPRA"
	EntryTypeDonacion   = "DONACION"
	EntryTypeAjuste     = "AJUSTE"
	EntryTypeDevolucion = "DEVOLUCION"
)

// StockEntry evento de recepción de mercadería (típicamente una compra) con
// una o más líneas de detalle. Cada línea produce exactamente un incremento
// de stock y un movimiento, todo en la misma transacción.
type StockEntry struct {
	ID           string
	Number       string // número de factura o documento, único; autogenerado si se omite
	Type         string
	SupplierID   string // opcional
	PurchaseDate time.Time
	ReceivedAt   time.Time // fecha de registro en el sistema
	VoucherPath  string    // referencia opaca a la foto de la boleta/factura
	Total        *decimal.Decimal
	Notes        string
	CreatedBy    string
}

// EntryDetail línea de una entrada de stock.
type EntryDetail struct {
	ID        string
	EntryID   string
	ProductID string
	AreaID    string          // área destino donde se almacena
	Quantity  decimal.Decimal // > 0
	UnitPrice *decimal.Decimal
}

var validEntryTypes = map[string]bool{
	EntryTypeCompra: true, EntryTypeDonacion: true,
	EntryTypeAjuste: true, EntryTypeDevolucion: true,
}

// IsValidEntryType indica si el tipo de entrada pertenece al catálogo.
func IsValidEntryType(t string) bool { return validEntryTypes[t] }

// Subtotal cantidad * precio de la línea, o nil si no hay precio.
func (d *EntryDetail) Subtotal() *decimal.Decimal {
	if d.UnitPrice == nil {
		return nil
	}
	v := d.Quantity.Mul(*d.UnitPrice).Round(2)
	return &v
}
