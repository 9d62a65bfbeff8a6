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

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo implementación de SupplierRepository sobre PostgreSQL.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

const supplierColumns = `id, name, rut, contact_name, email, phone, address, active, created_at`

// Create persiste un proveedor. Devuelve ErrDuplicate si el RUT ya existe.
func (r *SupplierRepo) Create(supplier *entity.Supplier) error {
	if supplier.ID == "" {
		supplier.ID = uuid.New().String()
	}
	query := `
		INSERT INTO suppliers (id, name, rut, contact_name, email, phone, address, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		supplier.ID, supplier.Name, supplier.RUT, nullable(supplier.ContactName),
		nullable(supplier.Email), nullable(supplier.Phone), nullable(supplier.Address),
		supplier.Active, supplier.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create supplier: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor por ID (nil si no existe).
func (r *SupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	return r.getBy("id", id)
}

// GetByRUT obtiene un proveedor por RUT (nil si no existe).
func (r *SupplierRepo) GetByRUT(rut string) (*entity.Supplier, error) {
	return r.getBy("rut", rut)
}

func (r *SupplierRepo) getBy(column, value string) (*entity.Supplier, error) {
	query := fmt.Sprintf(`SELECT `+supplierColumns+` FROM suppliers WHERE %s = $1`, column)
	var s entity.Supplier
	var contact, email, phone, address *string
	err := r.q.QueryRow(context.Background(), query, value).Scan(
		&s.ID, &s.Name, &s.RUT, &contact, &email, &phone, &address, &s.Active, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	s.ContactName = fromNullable(contact)
	s.Email = fromNullable(email)
	s.Phone = fromNullable(phone)
	s.Address = fromNullable(address)
	return &s, nil
}

// Update actualiza un proveedor.
func (r *SupplierRepo) Update(supplier *entity.Supplier) error {
	query := `
		UPDATE suppliers SET name = $2, contact_name = $3, email = $4, phone = $5,
			address = $6, active = $7
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		supplier.ID, supplier.Name, nullable(supplier.ContactName), nullable(supplier.Email),
		nullable(supplier.Phone), nullable(supplier.Address), supplier.Active)
	if err != nil {
		return fmt.Errorf("update supplier: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista proveedores con paginación.
func (r *SupplierRepo) List(onlyActive bool, limit, offset int) ([]*entity.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers`
	if onlyActive {
		query += ` WHERE active`
	}
	query += ` ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Supplier
	for rows.Next() {
		var s entity.Supplier
		var contact, email, phone, address *string
		if err := rows.Scan(&s.ID, &s.Name, &s.RUT, &contact, &email, &phone, &address,
			&s.Active, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		s.ContactName = fromNullable(contact)
		s.Email = fromNullable(email)
		s.Phone = fromNullable(phone)
		s.Address = fromNullable(address)
		list = append(list, &s)
	}
	return list, rows.Err()
}
