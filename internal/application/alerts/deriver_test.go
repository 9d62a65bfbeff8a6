package alerts_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotelvistamar/inventario-api/internal/application/alerts"
	"github.com/hotelvistamar/inventario-api/internal/domain/entity"
)

// stubStockRepo solo responde TotalByProduct; el deriver no usa el resto.
type stubStockRepo struct {
	total decimal.Decimal
}

func (r *stubStockRepo) Get(productID, areaID string) (*entity.Stock, error)          { return nil, nil }
func (r *stubStockRepo) GetForUpdate(productID, areaID string) (*entity.Stock, error) { return nil, nil }
func (r *stubStockRepo) Upsert(stock *entity.Stock) error                             { return nil }
func (r *stubStockRepo) TotalByProduct(productID string) (decimal.Decimal, error) {
	return r.total, nil
}
func (r *stubStockRepo) ListByProduct(productID string) ([]*entity.Stock, error) { return nil, nil }
func (r *stubStockRepo) ListByArea(areaID string, limit, offset int) ([]*entity.Stock, error) {
	return nil, nil
}
func (r *stubStockRepo) ListAll() ([]*entity.Stock, error) { return nil, nil }

type memAlertRepo struct {
	alerts []*entity.StockAlert
}

func (r *memAlertRepo) Create(a *entity.StockAlert) error {
	cp := *a
	r.alerts = append(r.alerts, &cp)
	return nil
}

func (r *memAlertRepo) GetByID(id string) (*entity.StockAlert, error) {
	for _, a := range r.alerts {
		if a.ID == id {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memAlertRepo) GetActiveByProduct(productID string) (*entity.StockAlert, error) {
	for i := len(r.alerts) - 1; i >= 0; i-- {
		if r.alerts[i].ProductID == productID && r.alerts[i].Status == entity.AlertStatusActiva {
			cp := *r.alerts[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memAlertRepo) Update(a *entity.StockAlert) error {
	for i, existing := range r.alerts {
		if existing.ID == a.ID {
			cp := *a
			r.alerts[i] = &cp
			return nil
		}
	}
	return nil
}

func (r *memAlertRepo) ListByStatus(status string, limit, offset int) ([]*entity.StockAlert, error) {
	var out []*entity.StockAlert
	for _, a := range r.alerts {
		if a.Status == status {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func product(minStock string) *entity.Product {
	return &entity.Product{
		ID: "prod-1", Code: "P-001", Name: "Jabón",
		Unit: entity.UnitUnidad, MinStock: dec(minStock), Active: true,
	}
}

func TestEvaluate_StockBajoMinimo_LevantaAlerta(t *testing.T) {
	stock := &stubStockRepo{total: dec("3")}
	repo := &memAlertRepo{}

	decision, err := alerts.Evaluate(stock, repo, product("10"), "user-1")
	require.NoError(t, err)

	assert.Equal(t, alerts.DecisionRaise, decision)
	require.Len(t, repo.alerts, 1)
	alert := repo.alerts[0]
	assert.Equal(t, entity.AlertStatusActiva, alert.Status)
	assert.True(t, alert.CurrentStock.Equal(dec("3")))
	assert.True(t, alert.MinStock.Equal(dec("10")))
}

func TestEvaluate_UmbralInclusivo_IgualAlMinimoDispara(t *testing.T) {
	stock := &stubStockRepo{total: dec("10")}
	repo := &memAlertRepo{}

	decision, err := alerts.Evaluate(stock, repo, product("10"), "user-1")
	require.NoError(t, err)
	assert.Equal(t, alerts.DecisionRaise, decision, "total == mínimo también dispara")
}

func TestEvaluate_StockSobreMinimo_SinAlertaNoHaceNada(t *testing.T) {
	stock := &stubStockRepo{total: dec("11")}
	repo := &memAlertRepo{}

	decision, err := alerts.Evaluate(stock, repo, product("10"), "user-1")
	require.NoError(t, err)
	assert.Equal(t, alerts.DecisionNone, decision)
	assert.Empty(t, repo.alerts)
}

func TestEvaluate_ConAlertaActiva_NoDuplica(t *testing.T) {
	stock := &stubStockRepo{total: dec("3")}
	repo := &memAlertRepo{}

	_, err := alerts.Evaluate(stock, repo, product("10"), "user-1")
	require.NoError(t, err)

	decision, err := alerts.Evaluate(stock, repo, product("10"), "user-1")
	require.NoError(t, err)
	assert.Equal(t, alerts.DecisionNone, decision)
	assert.Len(t, repo.alerts, 1)
}

func TestEvaluate_Recuperacion_ResuelveAutomaticamente(t *testing.T) {
	stock := &stubStockRepo{total: dec("3")}
	repo := &memAlertRepo{}
	_, err := alerts.Evaluate(stock, repo, product("10"), "user-1")
	require.NoError(t, err)

	stock.total = dec("25")
	decision, err := alerts.Evaluate(stock, repo, product("10"), "user-2")
	require.NoError(t, err)

	assert.Equal(t, alerts.DecisionClear, decision)
	resolved := repo.alerts[0]
	assert.Equal(t, entity.AlertStatusResuelta, resolved.Status)
	assert.Equal(t, "user-2", resolved.ResolvedBy)
	require.NotNil(t, resolved.ResolvedAt)
	assert.WithinDuration(t, time.Now(), *resolved.ResolvedAt, time.Minute)
}

func TestEvaluate_RecuperacionSinActor_ResuelveComoSistema(t *testing.T) {
	stock := &stubStockRepo{total: dec("3")}
	repo := &memAlertRepo{}
	_, err := alerts.Evaluate(stock, repo, product("10"), "")
	require.NoError(t, err)

	stock.total = dec("25")
	_, err = alerts.Evaluate(stock, repo, product("10"), "")
	require.NoError(t, err)

	assert.Equal(t, alerts.SystemResolver, repo.alerts[0].ResolvedBy)
}

func TestEvaluate_SnapshotInmutable(t *testing.T) {
	stock := &stubStockRepo{total: dec("3")}
	repo := &memAlertRepo{}
	_, err := alerts.Evaluate(stock, repo, product("10"), "user-1")
	require.NoError(t, err)

	// El stock sigue bajo el mínimo pero cambió: el snapshot no se actualiza.
	stock.total = dec("1")
	_, err = alerts.Evaluate(stock, repo, product("10"), "user-1")
	require.NoError(t, err)

	assert.True(t, repo.alerts[0].CurrentStock.Equal(dec("3")),
		"CurrentStock es el snapshot del momento en que se levantó")
}
