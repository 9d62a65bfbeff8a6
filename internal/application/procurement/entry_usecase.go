package procurement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hotelvistamar/inventario-api/internal/application/alerts"
	"github.com/hotelvistamar/inventario-api/internal/application/inventory"
	"github.com/hotelvistamar/inventario-api/internal/domain"
	"github.com/hotelvistamar/inventario-api/internal/domain/entity"
	"github.com/hotelvistamar/inventario-api/internal/domain/repository"
)

// Reintentos al chocar un número de entrada autogenerado con uno existente.
const maxNumberRetries = 5

// EntryLineInput línea de una entrada: producto, área destino, cantidad y
// precio de compra opcional.
type EntryLineInput struct {
	ProductID string
	AreaID    string
	Quantity  decimal.Decimal
	UnitPrice *decimal.Decimal
}

// RecordEntryInput entrada completa. Number vacío = autogenerar ENT-YYYY-NNNN.
type RecordEntryInput struct {
	Number       string
	Type         string
	SupplierID   string
	PurchaseDate time.Time
	VoucherPath  string
	Notes        string
	Lines        []EntryLineInput
	ActorID      string
}

// Motivo del movimiento según el tipo de entrada.
var entryReasons = map[string]string{
	entity.EntryTypeCompra:     entity.ReasonCompra,
	entity.EntryTypeDonacion:   entity.ReasonCompra, // sin motivo propio; entra como adquisición
	entity.EntryTypeDevolucion: entity.ReasonDevolucion,
	entity.EntryTypeAjuste:     entity.ReasonAjuste,
}

// EntryUseCase registra entradas de stock: cabecera + líneas + incrementos de
// ledger + movimientos con back-reference, todo o nada.
type EntryUseCase struct {
	txRunner     EntryTxRunner
	entryRepo    repository.EntryRepository
	productRepo  repository.ProductRepository
	areaRepo     repository.AreaRepository
	supplierRepo repository.SupplierRepository
}

// NewEntryUseCase construye el caso de uso.
func NewEntryUseCase(txRunner EntryTxRunner, entryRepo repository.EntryRepository,
	productRepo repository.ProductRepository, areaRepo repository.AreaRepository,
	supplierRepo repository.SupplierRepository) *EntryUseCase {
	return &EntryUseCase{
		txRunner:     txRunner,
		entryRepo:    entryRepo,
		productRepo:  productRepo,
		areaRepo:     areaRepo,
		supplierRepo: supplierRepo,
	}
}

// RecordEntry valida todas las líneas antes de tocar nada y luego persiste la
// entrada completa en una transacción. Si el número autogenerado choca con uno
// existente se regenera y reintenta; un número explícito duplicado se devuelve
// como conflicto al caller.
func (uc *EntryUseCase) RecordEntry(ctx context.Context, in RecordEntryInput) (*entity.StockEntry, error) {
	if in.ActorID == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.Type == "" {
		in.Type = entity.EntryTypeCompra
	}
	if !entity.IsValidEntryType(in.Type) {
		return nil, domain.ErrInvalidInput
	}
	if in.PurchaseDate.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	if in.SupplierID != "" {
		supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
		if err != nil {
			return nil, err
		}
		if supplier == nil {
			return nil, domain.ErrNotFound
		}
	}

	// Validación completa de líneas antes de abrir la transacción: productos
	// y áreas existentes y activos, cantidades construibles como movimiento.
	reason := entryReasons[in.Type]
	products := make(map[string]*entity.Product, len(in.Lines))
	movs := make([]*entity.Movement, len(in.Lines))
	for i, line := range in.Lines {
		mov, err := entity.NewMovement(line.ProductID, "", line.AreaID,
			entity.MovementTypeEntrada, reason, line.Quantity, line.UnitPrice, in.ActorID)
		if err != nil {
			return nil, err
		}
		if _, ok := products[line.ProductID]; !ok {
			p, err := uc.productRepo.GetByID(line.ProductID)
			if err != nil {
				return nil, err
			}
			if p == nil {
				return nil, domain.ErrNotFound
			}
			if !p.Active {
				return nil, domain.ErrConflict
			}
			products[line.ProductID] = p
		}
		area, err := uc.areaRepo.GetByID(line.AreaID)
		if err != nil {
			return nil, err
		}
		if area == nil {
			return nil, domain.ErrNotFound
		}
		if !area.Active {
			return nil, domain.ErrConflict
		}
		movs[i] = mov
	}

	autoNumber := in.Number == ""
	number := in.Number
	for attempt := 0; ; attempt++ {
		if autoNumber {
			n, err := uc.nextNumber(attempt)
			if err != nil {
				return nil, err
			}
			number = n
		}
		entry, err := uc.post(ctx, in, number, movs, products)
		if err == nil {
			return entry, nil
		}
		// Solo el choque de un número autogenerado se reintenta; cualquier
		// otro error ya provocó el rollback completo.
		if !autoNumber || !errors.Is(err, domain.ErrDuplicate) || attempt >= maxNumberRetries {
			return nil, err
		}
	}
}

// post ejecuta la transacción de la entrada con el número dado.
func (uc *EntryUseCase) post(ctx context.Context, in RecordEntryInput, number string,
	movs []*entity.Movement, products map[string]*entity.Product) (*entity.StockEntry, error) {

	now := time.Now()
	entry := &entity.StockEntry{
		ID:           uuid.New().String(),
		Number:       number,
		Type:         in.Type,
		SupplierID:   in.SupplierID,
		PurchaseDate: in.PurchaseDate,
		ReceivedAt:   now,
		VoucherPath:  in.VoucherPath,
		Notes:        in.Notes,
		CreatedBy:    in.ActorID,
	}
	total := decimal.Zero
	hasPrices := false
	for _, mov := range movs {
		if v := mov.TotalValue(); v != nil {
			total = total.Add(*v)
			hasPrices = true
		}
	}
	if hasPrices {
		entry.Total = &total
	}

	err := uc.txRunner.RunEntry(ctx, func(
		entryRepo repository.EntryRepository,
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
		alertRepo repository.AlertRepository,
	) error {
		if err := entryRepo.Create(entry); err != nil {
			return err
		}
		for i, line := range in.Lines {
			detail := &entity.EntryDetail{
				ID:        uuid.New().String(),
				EntryID:   entry.ID,
				ProductID: line.ProductID,
				AreaID:    line.AreaID,
				Quantity:  movs[i].Quantity,
				UnitPrice: movs[i].UnitPrice,
			}
			if err := entryRepo.CreateDetail(detail); err != nil {
				return err
			}
			mov := movs[i]
			mov.ID = uuid.New().String()
			mov.EntryDetailID = detail.ID
			if err := inventory.PostMovement(movRepo, stockRepo, mov); err != nil {
				return err
			}
		}
		// Las entradas solo suben stock: la evaluación puede auto-resolver
		// alertas activas de los productos recibidos.
		for _, p := range products {
			if _, err := alerts.Evaluate(stockRepo, alertRepo, p, in.ActorID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// nextNumber genera ENT-YYYY-NNNN a partir del contador del año; attempt
// desplaza la secuencia en los reintentos por colisión.
func (uc *EntryUseCase) nextNumber(attempt int) (string, error) {
	year := time.Now().Year()
	count, err := uc.entryRepo.CountByYear(year)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("ENT-%d-%04d", year, count+1+attempt), nil
}

// GetEntry entrada con sus líneas.
func (uc *EntryUseCase) GetEntry(id string) (*entity.StockEntry, []*entity.EntryDetail, error) {
	entry, err := uc.entryRepo.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	if entry == nil {
		return nil, nil, domain.ErrNotFound
	}
	details, err := uc.entryRepo.ListDetails(id)
	if err != nil {
		return nil, nil, err
	}
	return entry, details, nil
}

// ListEntries entradas más recientes primero.
func (uc *EntryUseCase) ListEntries(limit, offset int) ([]*entity.StockEntry, error) {
	return uc.entryRepo.List(limit, offset)
}
