package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryLineRequest línea de una entrada de stock.
type EntryLineRequest struct {
	ProductID string           `json:"product_id"`
	AreaID    string           `json:"area_id"`
	Quantity  decimal.Decimal  `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

// RecordEntryRequest body para POST /api/entries. Number vacío = autogenerar.
type RecordEntryRequest struct {
	Number       string             `json:"number,omitempty"`
	Type         string             `json:"type,omitempty"`
	SupplierID   string             `json:"supplier_id,omitempty"`
	PurchaseDate time.Time          `json:"purchase_date"`
	VoucherPath  string             `json:"voucher_path,omitempty"`
	Notes        string             `json:"notes,omitempty"`
	Lines        []EntryLineRequest `json:"lines"`
}

// EntryDetailResponse línea de entrada en respuestas.
type EntryDetailResponse struct {
	ID        string           `json:"id"`
	ProductID string           `json:"product_id"`
	AreaID    string           `json:"area_id"`
	Quantity  decimal.Decimal  `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

// EntryResponse entrada de stock en respuestas.
type EntryResponse struct {
	ID           string                `json:"id"`
	Number       string                `json:"number"`
	Type         string                `json:"type"`
	SupplierID   string                `json:"supplier_id,omitempty"`
	PurchaseDate time.Time             `json:"purchase_date"`
	ReceivedAt   time.Time             `json:"received_at"`
	VoucherPath  string                `json:"voucher_path,omitempty"`
	Total        *decimal.Decimal      `json:"total,omitempty"`
	Notes        string                `json:"notes,omitempty"`
	CreatedBy    string                `json:"created_by"`
	Details      []EntryDetailResponse `json:"details,omitempty"`
}
