package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/hotelvistamar/inventario-api/internal/domain/entity"
	"github.com/hotelvistamar/inventario-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del log de movimientos sobre PostgreSQL.
// Append-only: solo INSERT y lecturas, nunca UPDATE ni DELETE.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `id, product_id, origin_area_id, dest_area_id, type, reason,
		quantity, unit_price, notes, created_by, created_at, entry_detail_id, reception_detail_id`

// Create persiste un movimiento.
func (r *MovementRepo) Create(movement *entity.Movement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movements (id, product_id, origin_area_id, dest_area_id, type, reason,
			quantity, unit_price, notes, created_by, created_at, entry_detail_id, reception_detail_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.ProductID,
		nullable(movement.OriginAreaID), nullable(movement.DestAreaID),
		movement.Type, movement.Reason, movement.Quantity, movement.UnitPrice,
		nullable(movement.Notes), movement.CreatedBy, movement.CreatedAt,
		nullable(movement.EntryDetailID), nullable(movement.ReceptionDetailID),
	)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID (nil si no existe).
func (r *MovementRepo) GetByID(id string) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE id = $1`
	m, err := scanMovementRow(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// ListByProduct historial de un producto, más reciente primero. areaID vacío
// lista todas las áreas; before acota a movimientos anteriores a ese instante.
func (r *MovementRepo) ListByProduct(productID, areaID string, limit int, before *time.Time) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE product_id = $1`
	args := []any{productID}
	pos := 2
	if areaID != "" {
		query += fmt.Sprintf(" AND (origin_area_id = $%d OR dest_area_id = $%d)", pos, pos)
		args = append(args, areaID)
		pos++
	}
	if before != nil {
		query += fmt.Sprintf(" AND created_at < $%d", pos)
		args = append(args, *before)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", pos)
	args = append(args, limit)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list by product: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

// ListByDateRange movimientos en [from, to], más reciente primero.
func (r *MovementRepo) ListByDateRange(from, to time.Time, limit, offset int) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements
		WHERE created_at >= $1 AND created_at <= $2
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list by date range: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

// SignedSum suma con signo de los movimientos del par (producto, área):
// destino suma, origen resta. Verdad de base para recomputar stock desde el log.
func (r *MovementRepo) SignedSum(productID, areaID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(
			CASE WHEN dest_area_id = $2 THEN quantity
			     WHEN origin_area_id = $2 THEN -quantity
			     ELSE 0 END), 0)
		FROM movements
		WHERE product_id = $1 AND (dest_area_id = $2 OR origin_area_id = $2)`
	var sum decimal.Decimal
	if err := r.q.QueryRow(context.Background(), query, productID, areaID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("signed sum: %w", err)
	}
	return sum, nil
}

// DistinctPairs pares (producto, área) tocados por algún movimiento.
func (r *MovementRepo) DistinctPairs() ([]repository.StockPair, error) {
	query := `
		SELECT product_id, dest_area_id AS area_id FROM movements WHERE dest_area_id IS NOT NULL
		UNION
		SELECT product_id, origin_area_id FROM movements WHERE origin_area_id IS NOT NULL`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("distinct pairs: %w", err)
	}
	defer rows.Close()
	var pairs []repository.StockPair
	for rows.Next() {
		var p repository.StockPair
		if err := rows.Scan(&p.ProductID, &p.AreaID); err != nil {
			return nil, fmt.Errorf("scan pair: %w", err)
		}
		pairs = append(pairs, p)
	}
	return pairs, rows.Err()
}

func scanMovementRow(row pgx.Row) (*entity.Movement, error) {
	var m entity.Movement
	var origin, dest, notes, entryDetail, receptionDetail *string
	err := row.Scan(&m.ID, &m.ProductID, &origin, &dest, &m.Type, &m.Reason,
		&m.Quantity, &m.UnitPrice, &notes, &m.CreatedBy, &m.CreatedAt,
		&entryDetail, &receptionDetail)
	if err != nil {
		return nil, err
	}
	m.OriginAreaID = fromNullable(origin)
	m.DestAreaID = fromNullable(dest)
	m.Notes = fromNullable(notes)
	m.EntryDetailID = fromNullable(entryDetail)
	m.ReceptionDetailID = fromNullable(receptionDetail)
	return &m, nil
}

func scanMovements(rows pgx.Rows) ([]*entity.Movement, error) {
	var list []*entity.Movement
	for rows.Next() {
		m, err := scanMovementRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
