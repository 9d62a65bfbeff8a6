package inventory_test

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hotelvistamar/inventario-api/internal/domain/entity"
	"github.com/hotelvistamar/inventario-api/internal/domain/repository"
)

// Fakes en memoria para ejercitar el motor del ledger sin PostgreSQL.
// Replican el contrato de los repos reales: Get devuelve fila en cero (nunca
// nil) y el tx runner restaura el estado completo si la función falla.

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

func (r *fakeStockRepo) ListByProduct(productID string) ([]*entity.Stock, error) {
	var out []*entity.Stock
	for p, s := range r.rows {
		if p.productID == productID {
			cp := *s
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AreaID < out[j].AreaID })
	return out, nil
}

func (r *fakeStockRepo) ListByArea(areaID string, limit, offset int) ([]*entity.Stock, error) {
	var out []*entity.Stock
	for p, s := range r.rows {
		if p.areaID == areaID {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeStockRepo) ListAll() ([]*entity.Stock, error) {
	var out []*entity.Stock
	for _, s := range r.rows {
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

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
	failOn    int // si > 0, Create falla en la llamada N (1-based)
	calls     int
}

func (r *fakeMovementRepo) Create(m *entity.Movement) error {
	r.calls++
	if r.failOn > 0 && r.calls == r.failOn {
		return errBoom
	}
	cp := *m
	r.movements = append(r.movements, &cp)
	return nil
}

func (r *fakeMovementRepo) GetByID(id string) (*entity.Movement, error) {
	for _, m := range r.movements {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeMovementRepo) ListByProduct(productID, areaID string, limit int, before *time.Time) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.movements {
		if m.ProductID != productID {
			continue
		}
		if areaID != "" && m.OriginAreaID != areaID && m.DestAreaID != areaID {
			continue
		}
		if before != nil && !m.CreatedAt.Before(*before) {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeMovementRepo) ListByDateRange(from, to time.Time, limit, offset int) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.movements {
		if m.CreatedAt.Before(from) || m.CreatedAt.After(to) {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
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

func (r *fakeMovementRepo) DistinctPairs() ([]repository.StockPair, error) {
	seen := make(map[repository.StockPair]bool)
	var out []repository.StockPair
	for _, m := range r.movements {
		for _, areaID := range []string{m.DestAreaID, m.OriginAreaID} {
			if areaID == "" {
				continue
			}
			p := repository.StockPair{ProductID: m.ProductID, AreaID: areaID}
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}
	return out, nil
}

type fakeAlertRepo struct {
	alerts []*entity.StockAlert
}

func (r *fakeAlertRepo) Create(a *entity.StockAlert) error {
	cp := *a
	r.alerts = append(r.alerts, &cp)
	return nil
}

func (r *fakeAlertRepo) GetByID(id string) (*entity.StockAlert, error) {
	for _, a := range r.alerts {
		if a.ID == id {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

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
	var out []*entity.StockAlert
	for _, a := range r.alerts {
		if a.Status == status {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
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

func (r *fakeProductRepo) GetByCode(code string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.Code == code {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error { r.products[p.ID] = p; return nil }

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

func (r *fakeAreaRepo) Update(a *entity.Area) error { r.areas[a.ID] = a; return nil }

func (r *fakeAreaRepo) List(onlyActive bool, limit, offset int) ([]*entity.Area, error) {
	return nil, nil
}

// fakeTxRunner ejecuta fn sobre los repos compartidos y, si falla, restaura el
// estado previo (equivalente al rollback de la tx real).
type fakeTxRunner struct {
	movRepo   *fakeMovementRepo
	stockRepo *fakeStockRepo
	alertRepo *fakeAlertRepo
}

func (tx *fakeTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	stockRepo repository.StockRepository,
	alertRepo repository.AlertRepository,
) error) error {
	stockSnap := tx.stockRepo.snapshot()
	movSnap := append([]*entity.Movement(nil), tx.movRepo.movements...)
	alertSnap := append([]*entity.StockAlert(nil), tx.alertRepo.alerts...)

	if err := fn(tx.movRepo, tx.stockRepo, tx.alertRepo); err != nil {
		tx.stockRepo.rows = stockSnap
		tx.movRepo.movements = movSnap
		tx.alertRepo.alerts = alertSnap
		return err
	}
	return nil
}
