package inventory_test

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotelvistamar/inventario-api/internal/application/inventory"
	"github.com/hotelvistamar/inventario-api/internal/domain/entity"
	"github.com/hotelvistamar/inventario-api/internal/domain/repository"
)

// lockingStockStore simula el comportamiento transaccional del repo real de
// stock: GetForUpdate materializa la fila en cero si no existe y la deja
// bloqueada hasta que la transacción que la tomó hace commit. Dos escritores
// sobre el mismo par se serializan en vez de leer cero ambos.
type lockingStockStore struct {
	mu    sync.Mutex
	rows  map[pair]decimal.Decimal
	locks map[pair]*sync.Mutex
}

func newLockingStockStore() *lockingStockStore {
	return &lockingStockStore{
		rows:  make(map[pair]decimal.Decimal),
		locks: make(map[pair]*sync.Mutex),
	}
}

func (s *lockingStockStore) lockFor(p pair) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.locks[p]; !ok {
		s.locks[p] = &sync.Mutex{}
	}
	return s.locks[p]
}

func (s *lockingStockStore) begin() *lockingStockTx {
	return &lockingStockTx{store: s}
}

// lockingStockTx vista de una transacción sobre el store compartido.
type lockingStockTx struct {
	store *lockingStockStore
	held  []*sync.Mutex
}

var _ repository.StockRepository = (*lockingStockTx)(nil)

func (t *lockingStockTx) commit() {
	for _, m := range t.held {
		m.Unlock()
	}
	t.held = nil
}

func (t *lockingStockTx) Get(productID, areaID string) (*entity.Stock, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	q := t.store.rows[pair{productID, areaID}]
	return &entity.Stock{ProductID: productID, AreaID: areaID, Quantity: q}, nil
}

func (t *lockingStockTx) GetForUpdate(productID, areaID string) (*entity.Stock, error) {
	p := pair{productID, areaID}
	m := t.store.lockFor(p)
	m.Lock()
	t.held = append(t.held, m)

	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if _, ok := t.store.rows[p]; !ok {
		t.store.rows[p] = decimal.Zero
	}
	return &entity.Stock{ProductID: productID, AreaID: areaID, Quantity: t.store.rows[p]}, nil
}

func (t *lockingStockTx) Upsert(stock *entity.Stock) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	t.store.rows[pair{stock.ProductID, stock.AreaID}] = stock.Quantity
	return nil
}

func (t *lockingStockTx) TotalByProduct(productID string) (decimal.Decimal, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	total := decimal.Zero
	for p, q := range t.store.rows {
		if p.productID == productID {
			total = total.Add(q)
		}
	}
	return total, nil
}

func (t *lockingStockTx) ListByProduct(productID string) ([]*entity.Stock, error) {
	return nil, nil
}

func (t *lockingStockTx) ListByArea(areaID string, limit, offset int) ([]*entity.Stock, error) {
	return nil, nil
}

func (t *lockingStockTx) ListAll() ([]*entity.Stock, error) { return nil, nil }

// safeMovementRepo hace Create seguro para goroutines concurrentes.
type safeMovementRepo struct {
	mu sync.Mutex
	fakeMovementRepo
}

func (r *safeMovementRepo) Create(m *entity.Movement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.fakeMovementRepo.Create(m)
}

func (r *safeMovementRepo) SignedSum(productID, areaID string) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.fakeMovementRepo.SignedSum(productID, areaID)
}

// Dos transacciones estrenan a la vez el mismo par (producto, área): ambas
// deben quedar reflejadas en el ledger, nunca una pisando el incremento de la
// otra mientras los dos movimientos quedan en el log.
func TestPostMovement_PrimerasEntradasConcurrentes_NoPierdeIncrementos(t *testing.T) {
	store := newLockingStockStore()
	movRepo := &safeMovementRepo{}

	quantities := []string{"5", "3"}
	errs := make(chan error, len(quantities))
	var wg sync.WaitGroup
	for _, q := range quantities {
		wg.Add(1)
		go func(q string) {
			defer wg.Done()
			mov, err := entity.NewMovement(prodID, "", bodega,
				entity.MovementTypeEntrada, entity.ReasonCompra, dec(q), nil, actorID)
			if err != nil {
				errs <- err
				return
			}
			tx := store.begin()
			defer tx.commit()
			errs <- inventory.PostMovement(movRepo, tx, mov)
		}(q)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	final, err := store.begin().Get(prodID, bodega)
	require.NoError(t, err)
	logSum, err := movRepo.SignedSum(prodID, bodega)
	require.NoError(t, err)

	assert.True(t, final.Quantity.Equal(dec("8")), "ledger quedó en %s", final.Quantity)
	assert.True(t, logSum.Equal(final.Quantity), "ledger y log deben coincidir")
}
