package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/hotelvistamar/inventario-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas agregadas de solo lectura para reportes.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// StockByCategory stock agregado por categoría, valorizado al precio de
// referencia del producto (0 si no hay precio).
func (r *ReportRepo) StockByCategory(ctx context.Context) ([]repository.CategoryStockRow, error) {
	query := `
		SELECT c.id, c.name, COUNT(DISTINCT p.id),
			COALESCE(SUM(s.quantity), 0),
			COALESCE(SUM(s.quantity * COALESCE(p.unit_price, 0)), 0)
		FROM categories c
		JOIN products p ON p.category_id = c.id
		LEFT JOIN stock s ON s.product_id = p.id
		WHERE p.active
		GROUP BY c.id, c.name
		ORDER BY c.name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("stock by category: %w", err)
	}
	defer rows.Close()
	var list []repository.CategoryStockRow
	for rows.Next() {
		var row repository.CategoryStockRow
		if err := rows.Scan(&row.CategoryID, &row.CategoryName, &row.Products,
			&row.TotalStock, &row.TotalValue); err != nil {
			return nil, fmt.Errorf("scan category stock: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// LowStockProducts productos activos cuyo stock total (todas las áreas) está
// en o bajo su mínimo. Incluye productos sin ninguna fila de stock (total 0).
func (r *ReportRepo) LowStockProducts(ctx context.Context) ([]repository.LowStockRow, error) {
	query := `
		SELECT p.id, p.code, p.name, c.name, p.unit,
			COALESCE(SUM(s.quantity), 0) AS total_stock, p.min_stock
		FROM products p
		JOIN categories c ON c.id = p.category_id
		LEFT JOIN stock s ON s.product_id = p.id
		WHERE p.active
		GROUP BY p.id, p.code, p.name, c.name, p.unit, p.min_stock
		HAVING COALESCE(SUM(s.quantity), 0) <= p.min_stock
		ORDER BY p.name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("low stock products: %w", err)
	}
	defer rows.Close()
	var list []repository.LowStockRow
	for rows.Next() {
		var row repository.LowStockRow
		if err := rows.Scan(&row.ProductID, &row.Code, &row.Name, &row.CategoryName,
			&row.Unit, &row.TotalStock, &row.MinStock); err != nil {
			return nil, fmt.Errorf("scan low stock: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// MovementSummary totales de movimientos por tipo en [from, to].
func (r *ReportRepo) MovementSummary(ctx context.Context, from, to time.Time) ([]repository.MovementSummaryRow, error) {
	query := `
		SELECT type, COUNT(*), COALESCE(SUM(quantity), 0)
		FROM movements
		WHERE created_at >= $1 AND created_at <= $2
		GROUP BY type
		ORDER BY type`
	rows, err := r.q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("movement summary: %w", err)
	}
	defer rows.Close()
	var list []repository.MovementSummaryRow
	for rows.Next() {
		var row repository.MovementSummaryRow
		if err := rows.Scan(&row.Type, &row.Count, &row.Quantity); err != nil {
			return nil, fmt.Errorf("scan movement summary: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}
