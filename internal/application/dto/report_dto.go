package dto

import "github.com/shopspring/decimal"

// CategoryStockDTO stock agregado por categoría.
type CategoryStockDTO struct {
	CategoryID   string          `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Products     int             `json:"products"`
	TotalStock   decimal.Decimal `json:"total_stock"`
	TotalValue   decimal.Decimal `json:"total_value"`
}

// LowStockDTO producto con stock total en o bajo el mínimo.
type LowStockDTO struct {
	ProductID    string          `json:"product_id"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	CategoryName string          `json:"category_name"`
	Unit         string          `json:"unit"`
	TotalStock   decimal.Decimal `json:"total_stock"`
	MinStock     decimal.Decimal `json:"min_stock"`
	Percentage   decimal.Decimal `json:"percentage"`
	Critical     bool            `json:"critical"`
}

// MovementSummaryDTO totales de movimientos por tipo en un rango de fechas.
type MovementSummaryDTO struct {
	Type     string          `json:"type"`
	Count    int             `json:"count"`
	Quantity decimal.Decimal `json:"quantity"`
}
