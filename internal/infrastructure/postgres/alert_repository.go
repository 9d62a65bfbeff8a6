package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/hotelvistamar/inventario-api/internal/domain"
	"github.com/hotelvistamar/inventario-api/internal/domain/entity"
	"github.com/hotelvistamar/inventario-api/internal/domain/repository"
)

var _ repository.AlertRepository = (*AlertRepo)(nil)

// AlertRepo implementación de AlertRepository sobre PostgreSQL.
type AlertRepo struct {
	q Querier
}

// NewAlertRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAlertRepository(q Querier) *AlertRepo {
	return &AlertRepo{q: q}
}

const alertColumns = `id, product_id, area_id, current_stock, min_stock, status,
		notes, created_at, resolved_at, resolved_by`

// Create persiste una alerta.
func (r *AlertRepo) Create(alert *entity.StockAlert) error {
	if alert.ID == "" {
		alert.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_alerts (id, product_id, area_id, current_stock, min_stock,
			status, notes, created_at, resolved_at, resolved_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		alert.ID, alert.ProductID, nullable(alert.AreaID), alert.CurrentStock,
		alert.MinStock, alert.Status, nullable(alert.Notes), alert.CreatedAt,
		alert.ResolvedAt, nullable(alert.ResolvedBy))
	if err != nil {
		return fmt.Errorf("create alert: %w", err)
	}
	return nil
}

// GetByID obtiene una alerta por ID (nil si no existe).
func (r *AlertRepo) GetByID(id string) (*entity.StockAlert, error) {
	query := `SELECT ` + alertColumns + ` FROM stock_alerts WHERE id = $1`
	a, err := scanAlertRow(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get alert: %w", err)
	}
	return a, nil
}

// GetActiveByProduct alerta ACTIVA del producto (nil si no hay).
func (r *AlertRepo) GetActiveByProduct(productID string) (*entity.StockAlert, error) {
	query := `SELECT ` + alertColumns + ` FROM stock_alerts
		WHERE product_id = $1 AND status = $2
		ORDER BY created_at DESC LIMIT 1`
	a, err := scanAlertRow(r.q.QueryRow(context.Background(), query, productID, entity.AlertStatusActiva))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get active alert: %w", err)
	}
	return a, nil
}

// Update cambia estado/resolución. El snapshot de stock no se toca.
func (r *AlertRepo) Update(alert *entity.StockAlert) error {
	query := `
		UPDATE stock_alerts SET status = $2, notes = $3, resolved_at = $4, resolved_by = $5
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		alert.ID, alert.Status, nullable(alert.Notes), alert.ResolvedAt, nullable(alert.ResolvedBy))
	if err != nil {
		return fmt.Errorf("update alert: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByStatus lista alertas por estado, más reciente primero.
func (r *AlertRepo) ListByStatus(status string, limit, offset int) ([]*entity.StockAlert, error) {
	query := `SELECT ` + alertColumns + ` FROM stock_alerts
		WHERE status = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockAlert
	for rows.Next() {
		a, err := scanAlertRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func scanAlertRow(row pgx.Row) (*entity.StockAlert, error) {
	var a entity.StockAlert
	var areaID, notes, resolvedBy *string
	err := row.Scan(&a.ID, &a.ProductID, &areaID, &a.CurrentStock, &a.MinStock,
		&a.Status, &notes, &a.CreatedAt, &a.ResolvedAt, &resolvedBy)
	if err != nil {
		return nil, err
	}
	a.AreaID = fromNullable(areaID)
	a.Notes = fromNullable(notes)
	a.ResolvedBy = fromNullable(resolvedBy)
	return &a, nil
}
