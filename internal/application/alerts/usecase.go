package alerts

import (
	"sort"
	"time"

	"github.com/hotelvistamar/inventario-api/internal/application/dto"
	"github.com/hotelvistamar/inventario-api/internal/domain"
	"github.com/hotelvistamar/inventario-api/internal/domain/entity"
	domaininv "github.com/hotelvistamar/inventario-api/internal/domain/inventory"
	"github.com/hotelvistamar/inventario-api/internal/domain/repository"
)

// UseCase acciones de operador sobre alertas y listados para la UI.
type UseCase struct {
	alertRepo   repository.AlertRepository
	productRepo repository.ProductRepository
}

// NewUseCase construye el caso de uso de alertas.
func NewUseCase(alertRepo repository.AlertRepository, productRepo repository.ProductRepository) *UseCase {
	return &UseCase{alertRepo: alertRepo, productRepo: productRepo}
}

// ListActive alertas ACTIVAS con severidad calculada, críticas primero y
// dentro de cada grupo las más recientes arriba.
func (uc *UseCase) ListActive(limit, offset int) ([]dto.AlertResponse, error) {
	list, err := uc.alertRepo.ListByStatus(entity.AlertStatusActiva, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AlertResponse, 0, len(list))
	for _, a := range list {
		item := toAlertResponse(a)
		if p, err := uc.productRepo.GetByID(a.ProductID); err == nil && p != nil {
			item.ProductCode = p.Code
			item.ProductName = p.Name
		}
		items = append(items, item)
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Critical != items[j].Critical {
			return items[i].Critical
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

// Resolve marca una alerta ACTIVA como RESUELTA por el operador.
func (uc *UseCase) Resolve(alertID, actorID, notes string) error {
	return uc.close(alertID, actorID, notes, entity.AlertStatusResuelta)
}

// Ignore marca una alerta ACTIVA como IGNORADA (p. ej. producto de temporada).
func (uc *UseCase) Ignore(alertID, actorID, notes string) error {
	return uc.close(alertID, actorID, notes, entity.AlertStatusIgnorada)
}

func (uc *UseCase) close(alertID, actorID, notes, status string) error {
	if actorID == "" {
		return domain.ErrInvalidInput
	}
	alert, err := uc.alertRepo.GetByID(alertID)
	if err != nil {
		return err
	}
	if alert == nil {
		return domain.ErrNotFound
	}
	if alert.Status != entity.AlertStatusActiva {
		return domain.ErrConflict
	}
	now := time.Now()
	alert.Status = status
	alert.ResolvedAt = &now
	alert.ResolvedBy = actorID
	if notes != "" {
		alert.Notes = notes
	}
	return uc.alertRepo.Update(alert)
}

func toAlertResponse(a *entity.StockAlert) dto.AlertResponse {
	return dto.AlertResponse{
		ID:           a.ID,
		ProductID:    a.ProductID,
		AreaID:       a.AreaID,
		CurrentStock: a.CurrentStock,
		MinStock:     a.MinStock,
		Percentage:   domaininv.Percentage(a.CurrentStock, a.MinStock),
		Critical:     domaininv.Critical(a.CurrentStock, a.MinStock),
		Status:       a.Status,
		Notes:        a.Notes,
		CreatedAt:    a.CreatedAt,
		ResolvedAt:   a.ResolvedAt,
		ResolvedBy:   a.ResolvedBy,
	}
}
