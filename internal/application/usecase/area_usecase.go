package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/hotelvistamar/inventario-api/internal/application/dto"
	"github.com/hotelvistamar/inventario-api/internal/domain"
	"github.com/hotelvistamar/inventario-api/internal/domain/entity"
	"github.com/hotelvistamar/inventario-api/internal/domain/repository"
)

// AreaUseCase casos de uso CRUD para áreas del hotel.
type AreaUseCase struct {
	repo repository.AreaRepository
}

// NewAreaUseCase construye el caso de uso.
func NewAreaUseCase(repo repository.AreaRepository) *AreaUseCase {
	return &AreaUseCase{repo: repo}
}

// Create crea un área.
func (uc *AreaUseCase) Create(in dto.CreateAreaRequest) (*dto.AreaResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.IsValidAreaType(in.Type) {
		return nil, domain.ErrInvalidInput
	}
	area := &entity.Area{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Type:        in.Type,
		Description: in.Description,
		Active:      true,
		CreatedAt:   time.Now(),
	}
	if err := uc.repo.Create(area); err != nil {
		return nil, err
	}
	return toAreaResponse(area), nil
}

// GetByID obtiene un área por ID.
func (uc *AreaUseCase) GetByID(id string) (*dto.AreaResponse, error) {
	area, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if area == nil {
		return nil, domain.ErrNotFound
	}
	return toAreaResponse(area), nil
}

// Update actualiza un área. Desactivarla no borra su stock: los saldos
// históricos siguen consultables.
func (uc *AreaUseCase) Update(id string, in dto.UpdateAreaRequest) (*dto.AreaResponse, error) {
	area, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if area == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		area.Name = *in.Name
	}
	if in.Type != nil {
		if !entity.IsValidAreaType(*in.Type) {
			return nil, domain.ErrInvalidInput
		}
		area.Type = *in.Type
	}
	if in.Description != nil {
		area.Description = *in.Description
	}
	if in.Active != nil {
		area.Active = *in.Active
	}
	if err := uc.repo.Update(area); err != nil {
		return nil, err
	}
	return toAreaResponse(area), nil
}

// List lista áreas con paginación.
func (uc *AreaUseCase) List(onlyActive bool, page dto.PageRequest) ([]dto.AreaResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(onlyActive, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AreaResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *toAreaResponse(a))
	}
	return items, nil
}

func toAreaResponse(a *entity.Area) *dto.AreaResponse {
	if a == nil {
		return nil
	}
	return &dto.AreaResponse{
		ID:          a.ID,
		Name:        a.Name,
		Type:        a.Type,
		Description: a.Description,
		Active:      a.Active,
		CreatedAt:   a.CreatedAt,
	}
}
