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

var _ repository.AreaRepository = (*AreaRepo)(nil)

// AreaRepo implementación de AreaRepository sobre PostgreSQL.
type AreaRepo struct {
	q Querier
}

// NewAreaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAreaRepository(q Querier) *AreaRepo {
	return &AreaRepo{q: q}
}

// Create persiste un área.
func (r *AreaRepo) Create(area *entity.Area) error {
	if area.ID == "" {
		area.ID = uuid.New().String()
	}
	query := `
		INSERT INTO areas (id, name, type, description, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		area.ID, area.Name, area.Type, nullable(area.Description), area.Active, area.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create area: %w", err)
	}
	return nil
}

// GetByID obtiene un área por ID (nil si no existe).
func (r *AreaRepo) GetByID(id string) (*entity.Area, error) {
	query := `
		SELECT id, name, type, description, active, created_at
		FROM areas WHERE id = $1`
	var a entity.Area
	var description *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&a.ID, &a.Name, &a.Type, &description, &a.Active, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get area: %w", err)
	}
	a.Description = fromNullable(description)
	return &a, nil
}

// Update actualiza un área.
func (r *AreaRepo) Update(area *entity.Area) error {
	query := `
		UPDATE areas SET name = $2, type = $3, description = $4, active = $5
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		area.ID, area.Name, area.Type, nullable(area.Description), area.Active)
	if err != nil {
		return fmt.Errorf("update area: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista áreas con paginación.
func (r *AreaRepo) List(onlyActive bool, limit, offset int) ([]*entity.Area, error) {
	query := `
		SELECT id, name, type, description, active, created_at
		FROM areas`
	if onlyActive {
		query += ` WHERE active`
	}
	query += ` ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list areas: %w", err)
	}
	defer rows.Close()
	var list []*entity.Area
	for rows.Next() {
		var a entity.Area
		var description *string
		if err := rows.Scan(&a.ID, &a.Name, &a.Type, &description, &a.Active, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan area: %w", err)
		}
		a.Description = fromNullable(description)
		list = append(list, &a)
	}
	return list, rows.Err()
}
