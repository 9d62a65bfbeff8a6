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

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository sobre PostgreSQL.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, number, supplier_id, ordered_at, expected_date, delivered_at,
		status, notes, created_by, created_at, updated_at`

// Create persiste un pedido. Devuelve ErrDuplicate si el número ya existe.
func (r *OrderRepo) Create(order *entity.PurchaseOrder) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	query := `
		INSERT INTO purchase_orders (id, number, supplier_id, ordered_at, expected_date,
			delivered_at, status, notes, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.Number, order.SupplierID, order.OrderedAt, order.ExpectedDate,
		order.DeliveredAt, order.Status, nullable(order.Notes), order.CreatedBy,
		order.CreatedAt, order.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

// CreateDetail persiste una línea de pedido.
func (r *OrderRepo) CreateDetail(detail *entity.OrderDetail) error {
	if detail.ID == "" {
		detail.ID = uuid.New().String()
	}
	query := `
		INSERT INTO order_details (id, order_id, product_id, quantity_ordered,
			quantity_received, unit_price, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		detail.ID, detail.OrderID, detail.ProductID, detail.QuantityOrdered,
		detail.QuantityReceived, detail.UnitPrice, nullable(detail.Notes))
	if err != nil {
		return fmt.Errorf("create order detail: %w", err)
	}
	return nil
}

// GetByID obtiene un pedido por ID (nil si no existe).
func (r *OrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM purchase_orders WHERE id = $1`
	return r.getOne(query, id)
}

// GetByIDForUpdate bloquea el pedido para la transición de estado.
func (r *OrderRepo) GetByIDForUpdate(id string) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM purchase_orders WHERE id = $1 FOR UPDATE`
	return r.getOne(query, id)
}

func (r *OrderRepo) getOne(query, id string) (*entity.PurchaseOrder, error) {
	o, err := scanOrderRow(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

// GetDetail obtiene una línea de pedido por ID (nil si no existe).
func (r *OrderRepo) GetDetail(detailID string) (*entity.OrderDetail, error) {
	query := `
		SELECT id, order_id, product_id, quantity_ordered, quantity_received, unit_price, notes
		FROM order_details WHERE id = $1`
	var d entity.OrderDetail
	var notes *string
	err := r.q.QueryRow(context.Background(), query, detailID).Scan(
		&d.ID, &d.OrderID, &d.ProductID, &d.QuantityOrdered, &d.QuantityReceived,
		&d.UnitPrice, &notes,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order detail: %w", err)
	}
	d.Notes = fromNullable(notes)
	return &d, nil
}

// ListDetails líneas de un pedido.
func (r *OrderRepo) ListDetails(orderID string) ([]*entity.OrderDetail, error) {
	query := `
		SELECT id, order_id, product_id, quantity_ordered, quantity_received, unit_price, notes
		FROM order_details WHERE order_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order details: %w", err)
	}
	defer rows.Close()
	var list []*entity.OrderDetail
	for rows.Next() {
		var d entity.OrderDetail
		var notes *string
		if err := rows.Scan(&d.ID, &d.OrderID, &d.ProductID, &d.QuantityOrdered,
			&d.QuantityReceived, &d.UnitPrice, &notes); err != nil {
			return nil, fmt.Errorf("scan order detail: %w", err)
		}
		d.Notes = fromNullable(notes)
		list = append(list, &d)
	}
	return list, rows.Err()
}

// Update actualiza estado y metadatos del pedido.
func (r *OrderRepo) Update(order *entity.PurchaseOrder) error {
	query := `
		UPDATE purchase_orders SET status = $2, expected_date = $3, delivered_at = $4,
			notes = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		order.ID, order.Status, order.ExpectedDate, order.DeliveredAt,
		nullable(order.Notes), order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateDetailReceived avanza la cantidad recibida de una línea.
func (r *OrderRepo) UpdateDetailReceived(detail *entity.OrderDetail) error {
	query := `UPDATE order_details SET quantity_received = $2 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, detail.ID, detail.QuantityReceived)
	if err != nil {
		return fmt.Errorf("update order detail: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CreateReception persiste un evento de recepción.
func (r *OrderRepo) CreateReception(reception *entity.Reception) error {
	if reception.ID == "" {
		reception.ID = uuid.New().String()
	}
	query := `
		INSERT INTO receptions (id, order_id, received_at, received_by, notes)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		reception.ID, reception.OrderID, reception.ReceivedAt, reception.ReceivedBy,
		nullable(reception.Notes))
	if err != nil {
		return fmt.Errorf("create reception: %w", err)
	}
	return nil
}

// CreateReceptionDetail persiste la cantidad recibida de una línea.
func (r *OrderRepo) CreateReceptionDetail(detail *entity.ReceptionDetail) error {
	if detail.ID == "" {
		detail.ID = uuid.New().String()
	}
	query := `
		INSERT INTO reception_details (id, reception_id, order_detail_id, area_id, quantity)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		detail.ID, detail.ReceptionID, detail.OrderDetailID, detail.AreaID, detail.Quantity)
	if err != nil {
		return fmt.Errorf("create reception detail: %w", err)
	}
	return nil
}

// List lista pedidos, opcionalmente filtrados por estado.
func (r *OrderRepo) List(status string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM purchase_orders`
	args := []any{}
	pos := 1
	if status != "" {
		query += fmt.Sprintf(" WHERE status = $%d", pos)
		args = append(args, status)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY ordered_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseOrder
	for rows.Next() {
		o, err := scanOrderRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// CountByYear pedidos del año (secuencia PED-YYYY-NNNN).
func (r *OrderRepo) CountByYear(year int) (int, error) {
	query := `SELECT COUNT(*) FROM purchase_orders WHERE EXTRACT(YEAR FROM created_at) = $1`
	var count int
	if err := r.q.QueryRow(context.Background(), query, year).Scan(&count); err != nil {
		return 0, fmt.Errorf("count orders by year: %w", err)
	}
	return count, nil
}

func scanOrderRow(row pgx.Row) (*entity.PurchaseOrder, error) {
	var o entity.PurchaseOrder
	var notes *string
	err := row.Scan(&o.ID, &o.Number, &o.SupplierID, &o.OrderedAt, &o.ExpectedDate,
		&o.DeliveredAt, &o.Status, &notes, &o.CreatedBy, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	o.Notes = fromNullable(notes)
	return &o, nil
}
