package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/hotelvistamar/inventario-api/internal/domain/repository"
)

// Discrepancy par (producto, área) donde el ledger no coincide con la suma
// con signo del log de movimientos.
type Discrepancy struct {
	ProductID string
	AreaID    string
	Ledger    decimal.Decimal // cantidad en la tabla stock
	Log       decimal.Decimal // suma con signo de los movimientos
}

// ReconcileUseCase audita la invariante del ledger: para todo (producto, área),
// stock == suma con signo de los movimientos desde el estado vacío. Es una
// capacidad interna (tooling de auditoría), no una vista de UI.
type ReconcileUseCase struct {
	stockRepo repository.StockRepository
	movRepo   repository.MovementRepository
}

// NewReconcileUseCase construye el caso de uso.
func NewReconcileUseCase(stockRepo repository.StockRepository, movRepo repository.MovementRepository) *ReconcileUseCase {
	return &ReconcileUseCase{stockRepo: stockRepo, movRepo: movRepo}
}

// Reconcile recomputa el stock de cada par desde el log y devuelve los pares
// que difieren del ledger. Vacío = invariante intacta.
func (uc *ReconcileUseCase) Reconcile() ([]Discrepancy, error) {
	pairs, err := uc.movRepo.DistinctPairs()
	if err != nil {
		return nil, err
	}
	seen := make(map[repository.StockPair]bool, len(pairs))
	for _, p := range pairs {
		seen[p] = true
	}
	// Filas de stock sin movimientos también cuentan: su suma esperada es 0.
	stocks, err := uc.stockRepo.ListAll()
	if err != nil {
		return nil, err
	}
	for _, s := range stocks {
		p := repository.StockPair{ProductID: s.ProductID, AreaID: s.AreaID}
		if !seen[p] {
			seen[p] = true
			pairs = append(pairs, p)
		}
	}

	var diffs []Discrepancy
	for _, p := range pairs {
		logSum, err := uc.movRepo.SignedSum(p.ProductID, p.AreaID)
		if err != nil {
			return nil, err
		}
		ledger := decimal.Zero
		if s, err := uc.stockRepo.Get(p.ProductID, p.AreaID); err == nil && s != nil {
			ledger = s.Quantity
		} else if err != nil {
			return nil, err
		}
		if !ledger.Equal(logSum) {
			diffs = append(diffs, Discrepancy{ProductID: p.ProductID, AreaID: p.AreaID, Ledger: ledger, Log: logSum})
		}
	}
	return diffs, nil
}
