// Package excel exporta reportes de inventario a XLSX para el área de
// administración del hotel.
package excel

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/hotelvistamar/inventario-api/internal/application/dto"
)

// StockReportExporter exporta reportes a XLSX usando excelize.
type StockReportExporter struct{}

// NewStockReportExporter construye el exportador.
func NewStockReportExporter() *StockReportExporter {
	return &StockReportExporter{}
}

// StockByCategory genera un XLSX con el stock agregado por categoría.
func (e *StockReportExporter) StockByCategory(items []dto.CategoryStockDTO, generatedAt time.Time) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Stock por categoría"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("excel: crear hoja: %w", err)
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"00467F"}},
	})
	if err != nil {
		return nil, fmt.Errorf("excel: estilo: %w", err)
	}

	headers := []string{"Categoría", "Productos", "Stock total", "Valor total"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	f.SetCellStyle(sheet, "A1", "D1", headerStyle)
	f.SetColWidth(sheet, "A", "A", 30)
	f.SetColWidth(sheet, "B", "D", 14)

	for i, it := range items {
		rowNum := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", rowNum), it.CategoryName)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", rowNum), it.Products)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", rowNum), it.TotalStock.InexactFloat64())
		f.SetCellValue(sheet, fmt.Sprintf("D%d", rowNum), it.TotalValue.InexactFloat64())
	}

	footer := len(items) + 3
	f.SetCellValue(sheet, fmt.Sprintf("A%d", footer),
		"Generado: "+generatedAt.Format("02/01/2006 15:04"))

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: serializar: %w", err)
	}
	return buf.Bytes(), nil
}

// LowStock genera un XLSX con los productos bajo stock mínimo.
func (e *StockReportExporter) LowStock(items []dto.LowStockDTO, generatedAt time.Time) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Stock bajo"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("excel: crear hoja: %w", err)
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"00467F"}},
	})
	if err != nil {
		return nil, fmt.Errorf("excel: estilo: %w", err)
	}
	criticalStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "B41E1E"},
	})
	if err != nil {
		return nil, fmt.Errorf("excel: estilo: %w", err)
	}

	headers := []string{"Código", "Producto", "Categoría", "Unidad", "Stock total", "Mínimo", "%", "Crítico"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	f.SetCellStyle(sheet, "A1", "H1", headerStyle)
	f.SetColWidth(sheet, "A", "A", 14)
	f.SetColWidth(sheet, "B", "C", 28)
	f.SetColWidth(sheet, "D", "H", 12)

	for i, it := range items {
		rowNum := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", rowNum), it.Code)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", rowNum), it.Name)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", rowNum), it.CategoryName)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", rowNum), it.Unit)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", rowNum), it.TotalStock.InexactFloat64())
		f.SetCellValue(sheet, fmt.Sprintf("F%d", rowNum), it.MinStock.InexactFloat64())
		f.SetCellValue(sheet, fmt.Sprintf("G%d", rowNum), it.Percentage.InexactFloat64())
		if it.Critical {
			f.SetCellValue(sheet, fmt.Sprintf("H%d", rowNum), "SÍ")
			f.SetCellStyle(sheet, fmt.Sprintf("A%d", rowNum), fmt.Sprintf("H%d", rowNum), criticalStyle)
		} else {
			f.SetCellValue(sheet, fmt.Sprintf("H%d", rowNum), "NO")
		}
	}

	footer := len(items) + 3
	f.SetCellValue(sheet, fmt.Sprintf("A%d", footer),
		"Generado: "+generatedAt.Format("02/01/2006 15:04"))

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: serializar: %w", err)
	}
	return buf.Bytes(), nil
}
