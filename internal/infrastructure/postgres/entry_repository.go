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

var _ repository.EntryRepository = (*EntryRepo)(nil)

// EntryRepo implementación de EntryRepository sobre PostgreSQL.
type EntryRepo struct {
	q Querier
}

// NewEntryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEntryRepository(q Querier) *EntryRepo {
	return &EntryRepo{q: q}
}

const entryColumns = `id, number, type, supplier_id, purchase_date, received_at,
		voucher_path, total, notes, created_by`

// Create persiste la cabecera de una entrada. Devuelve ErrDuplicate si el
// número ya existe (la secuencia reintenta con el siguiente).
func (r *EntryRepo) Create(entry *entity.StockEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_entries (id, number, type, supplier_id, purchase_date,
			received_at, voucher_path, total, notes, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.Number, entry.Type, nullable(entry.SupplierID),
		entry.PurchaseDate, entry.ReceivedAt, nullable(entry.VoucherPath),
		entry.Total, nullable(entry.Notes), entry.CreatedBy)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create entry: %w", err)
	}
	return nil
}

// CreateDetail persiste una línea de entrada.
func (r *EntryRepo) CreateDetail(detail *entity.EntryDetail) error {
	if detail.ID == "" {
		detail.ID = uuid.New().String()
	}
	query := `
		INSERT INTO entry_details (id, entry_id, product_id, area_id, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		detail.ID, detail.EntryID, detail.ProductID, detail.AreaID,
		detail.Quantity, detail.UnitPrice)
	if err != nil {
		return fmt.Errorf("create entry detail: %w", err)
	}
	return nil
}

// GetByID obtiene una entrada por ID (nil si no existe).
func (r *EntryRepo) GetByID(id string) (*entity.StockEntry, error) {
	return r.getBy("id", id)
}

// GetByNumber obtiene una entrada por número de documento (nil si no existe).
func (r *EntryRepo) GetByNumber(number string) (*entity.StockEntry, error) {
	return r.getBy("number", number)
}

func (r *EntryRepo) getBy(column, value string) (*entity.StockEntry, error) {
	query := fmt.Sprintf(`SELECT `+entryColumns+` FROM stock_entries WHERE %s = $1`, column)
	e, err := scanEntryRow(r.q.QueryRow(context.Background(), query, value))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get entry: %w", err)
	}
	return e, nil
}

// ListDetails líneas de una entrada.
func (r *EntryRepo) ListDetails(entryID string) ([]*entity.EntryDetail, error) {
	query := `
		SELECT id, entry_id, product_id, area_id, quantity, unit_price
		FROM entry_details WHERE entry_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, entryID)
	if err != nil {
		return nil, fmt.Errorf("list entry details: %w", err)
	}
	defer rows.Close()
	var list []*entity.EntryDetail
	for rows.Next() {
		var d entity.EntryDetail
		if err := rows.Scan(&d.ID, &d.EntryID, &d.ProductID, &d.AreaID,
			&d.Quantity, &d.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan entry detail: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// List lista entradas, más reciente primero.
func (r *EntryRepo) List(limit, offset int) ([]*entity.StockEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM stock_entries
		ORDER BY received_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockEntry
	for rows.Next() {
		e, err := scanEntryRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// CountByYear entradas registradas en el año (secuencia ENT-YYYY-NNNN).
func (r *EntryRepo) CountByYear(year int) (int, error) {
	query := `SELECT COUNT(*) FROM stock_entries WHERE EXTRACT(YEAR FROM received_at) = $1`
	var count int
	if err := r.q.QueryRow(context.Background(), query, year).Scan(&count); err != nil {
		return 0, fmt.Errorf("count entries by year: %w", err)
	}
	return count, nil
}

func scanEntryRow(row pgx.Row) (*entity.StockEntry, error) {
	var e entity.StockEntry
	var supplierID, voucherPath, notes *string
	err := row.Scan(&e.ID, &e.Number, &e.Type, &supplierID, &e.PurchaseDate,
		&e.ReceivedAt, &voucherPath, &e.Total, &notes, &e.CreatedBy)
	if err != nil {
		return nil, err
	}
	e.SupplierID = fromNullable(supplierID)
	e.VoucherPath = fromNullable(voucherPath)
	e.Notes = fromNullable(notes)
	return &e, nil
}
