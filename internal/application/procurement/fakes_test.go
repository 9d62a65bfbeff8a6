package procurement_test

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hotelvistamar/inventario-api/internal/domain"
	"github.com/hotelvistamar/inventario-api/internal/domain/entity"
	"github.com/hotelvistamar/inventario-api/internal/domain/repository"
)

// Fakes en memoria con el mismo contrato que los repos de postgres: números
// duplicados devuelven ErrDuplicate, Get de stock devuelve fila en cero y el
// tx runner restaura todo el estado si la función falla.

type pair struct{ productID, areaID string }

type fakeStockRepo struct {
	rows map[pair]*entity.Stock
}

func newFakeStockRepo() *fakeStockRepo {
	return &fakeStockRepo{rows: make(map[pair]*entity.Stock)}
}

func (r *fakeStockRepo) Get(productID, areaID string) (*entity.Stock, error) {
	if s, ok := r.rows[pair{productID, areaID}]; ok {
		cp := *s
		return &cp, nil
	}
	return &entity.Stock{ProductID: productID, AreaID: areaID, Quantity: decimal.Zero}, nil
}

// GetForUpdate honra el contrato del repo real: materializa la fila en cero
// si el par no existía todavía.
func (r *fakeStockRepo) GetForUpdate(productID, areaID string) (*entity.Stock, error) {
	p := pair{productID, areaID}
	if _, ok := r.rows[p]; !ok {
		r.rows[p] = &entity.Stock{ProductID: productID, AreaID: areaID, Quantity: decimal.Zero}
	}
	cp := *r.rows[p]
	return &cp, nil
}

func (r *fakeStockRepo) Upsert(stock *entity.Stock) error {
	cp := *stock
	r.rows[pair{stock.ProductID, stock.AreaID}] = &cp
	return nil
}

func (r *fakeStockRepo) TotalByProduct(productID string) (decimal.Decimal, error) {
	total := decimal.Zero
	for p, s := range r.rows {
		if p.productID == productID {
			total = total.Add(s.Quantity)
		}
	}
	return total, nil
}

func (r *fakeStockRepo) ListByProduct(productID string) ([]*entity.Stock, error) { return nil, nil }
func (r *fakeStockRepo) ListByArea(areaID string, limit, offset int) ([]*entity.Stock, error) {
	return nil, nil
}
func (r *fakeStockRepo) ListAll() ([]*entity.Stock, error) { return nil, nil }

func (r *fakeStockRepo) snapshot() map[pair]*entity.Stock {
	cp := make(map[pair]*entity.Stock, len(r.rows))
	for k, v := range r.rows {
		s := *v
		cp[k] = &s
	}
	return cp
}

type fakeMovementRepo struct {
	movements []*entity.Movement
}

func (r *fakeMovementRepo) Create(m *entity.Movement) error {
	cp := *m
	r.movements = append(r.movements, &cp)
	return nil
}

func (r *fakeMovementRepo) GetByID(id string) (*entity.Movement, error) { return nil, nil }
func (r *fakeMovementRepo) ListByProduct(productID, areaID string, limit int, before *time.Time) ([]*entity.Movement, error) {
	return nil, nil
}
func (r *fakeMovementRepo) ListByDateRange(from, to time.Time, limit, offset int) ([]*entity.Movement, error) {
	return nil, nil
}
func (r *fakeMovementRepo) SignedSum(productID, areaID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, m := range r.movements {
		if m.ProductID == productID {
			sum = sum.Add(m.SignedQuantityFor(areaID))
		}
	}
	return sum, nil
}
func (r *fakeMovementRepo) DistinctPairs() ([]repository.StockPair, error) { return nil, nil }

type fakeAlertRepo struct {
	alerts []*entity.StockAlert
}

func (r *fakeAlertRepo) Create(a *entity.StockAlert) error {
	cp := *a
	r.alerts = append(r.alerts, &cp)
	return nil
}

func (r *fakeAlertRepo) GetByID(id string) (*entity.StockAlert, error) { return nil, nil }

func (r *fakeAlertRepo) GetActiveByProduct(productID string) (*entity.StockAlert, error) {
	for i := len(r.alerts) - 1; i >= 0; i-- {
		if r.alerts[i].ProductID == productID && r.alerts[i].Status == entity.AlertStatusActiva {
			cp := *r.alerts[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeAlertRepo) Update(a *entity.StockAlert) error {
	for i, existing := range r.alerts {
		if existing.ID == a.ID {
			cp := *a
			r.alerts[i] = &cp
			return nil
		}
	}
	return nil
}

func (r *fakeAlertRepo) ListByStatus(status string, limit, offset int) ([]*entity.StockAlert, error) {
	return nil, nil
}

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: make(map[string]*entity.Product)}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) Create(p *entity.Product) error { r.products[p.ID] = p; return nil }

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	if p, ok := r.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeProductRepo) GetByCode(code string) (*entity.Product, error) { return nil, nil }
func (r *fakeProductRepo) Update(p *entity.Product) error                 { return nil }
func (r *fakeProductRepo) Search(term string, onlyActive bool, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) List(onlyActive bool, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}

type fakeAreaRepo struct {
	areas map[string]*entity.Area
}

func newFakeAreaRepo(areas ...*entity.Area) *fakeAreaRepo {
	r := &fakeAreaRepo{areas: make(map[string]*entity.Area)}
	for _, a := range areas {
		r.areas[a.ID] = a
	}
	return r
}

func (r *fakeAreaRepo) Create(a *entity.Area) error { r.areas[a.ID] = a; return nil }

func (r *fakeAreaRepo) GetByID(id string) (*entity.Area, error) {
	if a, ok := r.areas[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeAreaRepo) Update(a *entity.Area) error { return nil }
func (r *fakeAreaRepo) List(onlyActive bool, limit, offset int) ([]*entity.Area, error) {
	return nil, nil
}

type fakeSupplierRepo struct {
	suppliers map[string]*entity.Supplier
}

func newFakeSupplierRepo(suppliers ...*entity.Supplier) *fakeSupplierRepo {
	r := &fakeSupplierRepo{suppliers: make(map[string]*entity.Supplier)}
	for _, s := range suppliers {
		r.suppliers[s.ID] = s
	}
	return r
}

func (r *fakeSupplierRepo) Create(s *entity.Supplier) error { r.suppliers[s.ID] = s; return nil }

func (r *fakeSupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	if s, ok := r.suppliers[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeSupplierRepo) GetByRUT(rut string) (*entity.Supplier, error) { return nil, nil }
func (r *fakeSupplierRepo) Update(s *entity.Supplier) error               { return nil }
func (r *fakeSupplierRepo) List(onlyActive bool, limit, offset int) ([]*entity.Supplier, error) {
	return nil, nil
}

type fakeEntryRepo struct {
	entries []*entity.StockEntry
	details []*entity.EntryDetail
	// números pre-ocupados para forzar colisiones de secuencia en tests
	takenNumbers map[string]bool
}

func newFakeEntryRepo() *fakeEntryRepo {
	return &fakeEntryRepo{takenNumbers: make(map[string]bool)}
}

func (r *fakeEntryRepo) Create(e *entity.StockEntry) error {
	if r.takenNumbers[e.Number] {
		return domain.ErrDuplicate
	}
	for _, existing := range r.entries {
		if existing.Number == e.Number {
			return domain.ErrDuplicate
		}
	}
	cp := *e
	r.entries = append(r.entries, &cp)
	return nil
}

func (r *fakeEntryRepo) CreateDetail(d *entity.EntryDetail) error {
	cp := *d
	r.details = append(r.details, &cp)
	return nil
}

func (r *fakeEntryRepo) GetByID(id string) (*entity.StockEntry, error) {
	for _, e := range r.entries {
		if e.ID == id {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeEntryRepo) GetByNumber(number string) (*entity.StockEntry, error) {
	for _, e := range r.entries {
		if e.Number == number {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeEntryRepo) ListDetails(entryID string) ([]*entity.EntryDetail, error) {
	var out []*entity.EntryDetail
	for _, d := range r.details {
		if d.EntryID == entryID {
			cp := *d
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeEntryRepo) List(limit, offset int) ([]*entity.StockEntry, error) {
	out := make([]*entity.StockEntry, 0, len(r.entries))
	for _, e := range r.entries {
		cp := *e
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ReceivedAt.After(out[j].ReceivedAt) })
	if offset > len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeEntryRepo) CountByYear(year int) (int, error) {
	n := 0
	for _, e := range r.entries {
		if e.ReceivedAt.Year() == year {
			n++
		}
	}
	return n, nil
}

type fakeOrderRepo struct {
	orders     []*entity.PurchaseOrder
	details    []*entity.OrderDetail
	receptions []*entity.Reception
	recDetails []*entity.ReceptionDetail
}

func (r *fakeOrderRepo) Create(o *entity.PurchaseOrder) error {
	for _, existing := range r.orders {
		if existing.Number == o.Number {
			return domain.ErrDuplicate
		}
	}
	cp := *o
	r.orders = append(r.orders, &cp)
	return nil
}

func (r *fakeOrderRepo) CreateDetail(d *entity.OrderDetail) error {
	cp := *d
	r.details = append(r.details, &cp)
	return nil
}

func (r *fakeOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	for _, o := range r.orders {
		if o.ID == id {
			cp := *o
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeOrderRepo) GetByIDForUpdate(id string) (*entity.PurchaseOrder, error) {
	return r.GetByID(id)
}

func (r *fakeOrderRepo) GetDetail(detailID string) (*entity.OrderDetail, error) {
	for _, d := range r.details {
		if d.ID == detailID {
			cp := *d
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeOrderRepo) ListDetails(orderID string) ([]*entity.OrderDetail, error) {
	var out []*entity.OrderDetail
	for _, d := range r.details {
		if d.OrderID == orderID {
			cp := *d
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) Update(o *entity.PurchaseOrder) error {
	for i, existing := range r.orders {
		if existing.ID == o.ID {
			cp := *o
			r.orders[i] = &cp
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeOrderRepo) UpdateDetailReceived(d *entity.OrderDetail) error {
	for i, existing := range r.details {
		if existing.ID == d.ID {
			cp := *d
			r.details[i] = &cp
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeOrderRepo) CreateReception(rec *entity.Reception) error {
	cp := *rec
	r.receptions = append(r.receptions, &cp)
	return nil
}

func (r *fakeOrderRepo) CreateReceptionDetail(d *entity.ReceptionDetail) error {
	cp := *d
	r.recDetails = append(r.recDetails, &cp)
	return nil
}

func (r *fakeOrderRepo) List(status string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	var out []*entity.PurchaseOrder
	for _, o := range r.orders {
		if status != "" && o.Status != status {
			continue
		}
		cp := *o
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeOrderRepo) CountByYear(year int) (int, error) {
	n := 0
	for _, o := range r.orders {
		if o.OrderedAt.Year() == year {
			n++
		}
	}
	return n, nil
}

// fakeTxRunner implementa EntryTxRunner y OrderTxRunner sobre los repos
// compartidos, con restauración completa en caso de error.
type fakeTxRunner struct {
	entryRepo *fakeEntryRepo
	orderRepo *fakeOrderRepo
	movRepo   *fakeMovementRepo
	stockRepo *fakeStockRepo
	alertRepo *fakeAlertRepo
}

func (tx *fakeTxRunner) RunEntry(ctx context.Context, fn func(
	entryRepo repository.EntryRepository,
	movRepo repository.MovementRepository,
	stockRepo repository.StockRepository,
	alertRepo repository.AlertRepository,
) error) error {
	restore := tx.snapshot()
	if err := fn(tx.entryRepo, tx.movRepo, tx.stockRepo, tx.alertRepo); err != nil {
		restore()
		return err
	}
	return nil
}

func (tx *fakeTxRunner) RunOrder(ctx context.Context, fn func(
	orderRepo repository.OrderRepository,
	movRepo repository.MovementRepository,
	stockRepo repository.StockRepository,
	alertRepo repository.AlertRepository,
) error) error {
	restore := tx.snapshot()
	if err := fn(tx.orderRepo, tx.movRepo, tx.stockRepo, tx.alertRepo); err != nil {
		restore()
		return err
	}
	return nil
}

func (tx *fakeTxRunner) snapshot() func() {
	entries := append([]*entity.StockEntry(nil), tx.entryRepo.entries...)
	entryDetails := append([]*entity.EntryDetail(nil), tx.entryRepo.details...)
	orders := append([]*entity.PurchaseOrder(nil), tx.orderRepo.orders...)
	orderDetails := append([]*entity.OrderDetail(nil), tx.orderRepo.details...)
	receptions := append([]*entity.Reception(nil), tx.orderRepo.receptions...)
	recDetails := append([]*entity.ReceptionDetail(nil), tx.orderRepo.recDetails...)
	movs := append([]*entity.Movement(nil), tx.movRepo.movements...)
	alertsSnap := append([]*entity.StockAlert(nil), tx.alertRepo.alerts...)
	stockSnap := tx.stockRepo.snapshot()
	return func() {
		tx.entryRepo.entries = entries
		tx.entryRepo.details = entryDetails
		tx.orderRepo.orders = orders
		tx.orderRepo.details = orderDetails
		tx.orderRepo.receptions = receptions
		tx.orderRepo.recDetails = recDetails
		tx.movRepo.movements = movs
		tx.alertRepo.alerts = alertsSnap
		tx.stockRepo.rows = stockSnap
	}
}
