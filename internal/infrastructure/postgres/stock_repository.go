package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/hotelvistamar/inventario-api/internal/domain/entity"
	"github.com/hotelvistamar/inventario-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene el stock actual de un producto en un área. Si no hay fila,
// devuelve cantidad cero (ausencia == cero).
func (r *StockRepo) Get(productID, areaID string) (*entity.Stock, error) {
	query := `
		SELECT product_id, area_id, quantity, updated_at
		FROM stock WHERE product_id = $1 AND area_id = $2`
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, productID, areaID).Scan(
		&s.ProductID, &s.AreaID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Stock{ProductID: productID, AreaID: areaID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// GetForUpdate obtiene el stock y bloquea la fila hasta el fin de la
// transacción (SELECT FOR UPDATE). Si el par no existe todavía, primero
// materializa la fila en cero: dos transacciones que estrenan el mismo par se
// serializan sobre la fila en vez de leer cero ambas y pisarse el incremento.
func (r *StockRepo) GetForUpdate(productID, areaID string) (*entity.Stock, error) {
	seed := `
		INSERT INTO stock (product_id, area_id, quantity, updated_at)
		VALUES ($1, $2, 0, now())
		ON CONFLICT (product_id, area_id) DO NOTHING`
	if _, err := r.q.Exec(context.Background(), seed, productID, areaID); err != nil {
		return nil, fmt.Errorf("seed stock row: %w", err)
	}
	query := `
		SELECT product_id, area_id, quantity, updated_at
		FROM stock WHERE product_id = $1 AND area_id = $2
		FOR UPDATE`
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, productID, areaID).Scan(
		&s.ProductID, &s.AreaID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return &s, nil
}

// Upsert inserta o actualiza la cantidad en stock (por producto y área).
func (r *StockRepo) Upsert(stock *entity.Stock) error {
	query := `
		INSERT INTO stock (product_id, area_id, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (product_id, area_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, stock.ProductID, stock.AreaID, stock.Quantity)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// TotalByProduct stock total del producto sumando todas las áreas.
func (r *StockRepo) TotalByProduct(productID string) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(quantity), 0) FROM stock WHERE product_id = $1`
	var total decimal.Decimal
	if err := r.q.QueryRow(context.Background(), query, productID).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("total stock: %w", err)
	}
	return total, nil
}

// ListByProduct stock por área de un producto (solo filas existentes).
func (r *StockRepo) ListByProduct(productID string) ([]*entity.Stock, error) {
	query := `
		SELECT product_id, area_id, quantity, updated_at
		FROM stock WHERE product_id = $1
		ORDER BY area_id`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list stock by product: %w", err)
	}
	defer rows.Close()
	return scanStocks(rows)
}

// ListByArea stock de un área con paginación.
func (r *StockRepo) ListByArea(areaID string, limit, offset int) ([]*entity.Stock, error) {
	query := `
		SELECT product_id, area_id, quantity, updated_at
		FROM stock WHERE area_id = $1
		ORDER BY product_id LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, areaID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock by area: %w", err)
	}
	defer rows.Close()
	return scanStocks(rows)
}

// ListAll todas las filas de stock (conciliación contra el log).
func (r *StockRepo) ListAll() ([]*entity.Stock, error) {
	query := `
		SELECT product_id, area_id, quantity, updated_at
		FROM stock ORDER BY product_id, area_id`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list all stock: %w", err)
	}
	defer rows.Close()
	return scanStocks(rows)
}

func scanStocks(rows pgx.Rows) ([]*entity.Stock, error) {
	var list []*entity.Stock
	for rows.Next() {
		var s entity.Stock
		if err := rows.Scan(&s.ProductID, &s.AreaID, &s.Quantity, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
