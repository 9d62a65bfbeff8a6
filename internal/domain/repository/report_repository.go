package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// CategoryStockRow stock agregado por categoría.
type CategoryStockRow struct {
	CategoryID   string
	CategoryName string
	Products     int
	TotalStock   decimal.Decimal
	// TotalValue valorizado al precio de referencia (0 si no hay precios).
	TotalValue decimal.Decimal
}

// LowStockRow producto con stock total <= mínimo.
type LowStockRow struct {
	ProductID    string
	Code         string
	Name         string
	CategoryName string
	Unit         string
	TotalStock   decimal.Decimal
	MinStock     decimal.Decimal
}

// MovementSummaryRow totales de movimientos por tipo en un rango.
type MovementSummaryRow struct {
	Type     string
	Count    int
	Quantity decimal.Decimal
}

// ReportRepository consultas agregadas de solo lectura para reportes y
// exportaciones. Sin acceso de escritura al núcleo.
type ReportRepository interface {
	StockByCategory(ctx context.Context) ([]CategoryStockRow, error)
	LowStockProducts(ctx context.Context) ([]LowStockRow, error)
	MovementSummary(ctx context.Context, from, to time.Time) ([]MovementSummaryRow, error)
}
