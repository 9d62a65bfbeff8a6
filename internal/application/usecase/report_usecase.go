package usecase

import (
	"context"
	"time"

	"github.com/hotelvistamar/inventario-api/internal/application/dto"
	"github.com/hotelvistamar/inventario-api/internal/domain"
	domaininv "github.com/hotelvistamar/inventario-api/internal/domain/inventory"
	"github.com/hotelvistamar/inventario-api/internal/domain/repository"
)

// ReportUseCase consultas agregadas de solo lectura. No escribe en el núcleo.
type ReportUseCase struct {
	repo repository.ReportRepository
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(repo repository.ReportRepository) *ReportUseCase {
	return &ReportUseCase{repo: repo}
}

// StockByCategory stock agregado por categoría.
func (uc *ReportUseCase) StockByCategory(ctx context.Context) ([]dto.CategoryStockDTO, error) {
	rows, err := uc.repo.StockByCategory(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryStockDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.CategoryStockDTO{
			CategoryID:   r.CategoryID,
			CategoryName: r.CategoryName,
			Products:     r.Products,
			TotalStock:   r.TotalStock,
			TotalValue:   r.TotalValue,
		})
	}
	return out, nil
}

// LowStock productos cuyo stock total está en o bajo su mínimo, con
// porcentaje y criticidad calculados.
func (uc *ReportUseCase) LowStock(ctx context.Context) ([]dto.LowStockDTO, error) {
	rows, err := uc.repo.LowStockProducts(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LowStockDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.LowStockDTO{
			ProductID:    r.ProductID,
			Code:         r.Code,
			Name:         r.Name,
			CategoryName: r.CategoryName,
			Unit:         r.Unit,
			TotalStock:   r.TotalStock,
			MinStock:     r.MinStock,
			Percentage:   domaininv.Percentage(r.TotalStock, r.MinStock),
			Critical:     domaininv.Critical(r.TotalStock, r.MinStock),
		})
	}
	return out, nil
}

// MovementSummary totales de movimientos por tipo en [from, to].
func (uc *ReportUseCase) MovementSummary(ctx context.Context, from, to time.Time) ([]dto.MovementSummaryDTO, error) {
	if to.Before(from) {
		return nil, domain.ErrInvalidInput
	}
	rows, err := uc.repo.MovementSummary(ctx, from, to)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementSummaryDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.MovementSummaryDTO{
			Type:     r.Type,
			Count:    r.Count,
			Quantity: r.Quantity,
		})
	}
	return out, nil
}
