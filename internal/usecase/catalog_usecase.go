package usecase

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/adspace-discovery/internal/domain/repository"
	"github.com/adspace-discovery/internal/pkg/errors"
	"github.com/adspace-discovery/internal/usecase/dto"
)

// CatalogUseCase - stateless-чтение каталога properties и поверхностей
// мимо сессионного движка (листинги маркетплейса)
type CatalogUseCase struct {
	propertyRepo repository.PropertyRepository
	logger       *zap.Logger
}

// NewCatalogUseCase - создание нового CatalogUseCase
func NewCatalogUseCase(propertyRepo repository.PropertyRepository, logger *zap.Logger) *CatalogUseCase {
	return &CatalogUseCase{
		propertyRepo: propertyRepo,
		logger:       logger,
	}
}

// ListProperties возвращает полный каталог properties, включая сущности
// без распознанной координаты (их отбрасывает только discovery-движок)
func (uc *CatalogUseCase) ListProperties(ctx context.Context) ([]dto.PropertyDTO, error) {
	properties, err := uc.propertyRepo.List(ctx)
	if err != nil {
		uc.logger.Error("Failed to list properties", zap.Error(err))
		return nil, err
	}

	result := make([]dto.PropertyDTO, 0, len(properties))
	for _, p := range properties {
		result = append(result, dto.ConvertProperty(p))
	}

	return result, nil
}

// ListAreas возвращает рекламные поверхности property
func (uc *CatalogUseCase) ListAreas(ctx context.Context, propertyID uuid.UUID) ([]dto.AreaDTO, error) {
	property, err := uc.propertyRepo.GetByID(ctx, propertyID)
	if err != nil {
		uc.logger.Error("Failed to get property",
			zap.String("property_id", propertyID.String()),
			zap.Error(err))
		return nil, err
	}
	if property == nil {
		return nil, errors.ErrPropertyNotFound
	}

	areas, err := uc.propertyRepo.ListAreas(ctx, propertyID)
	if err != nil {
		uc.logger.Error("Failed to list areas",
			zap.String("property_id", propertyID.String()),
			zap.Error(err))
		return nil, err
	}

	result := make([]dto.AreaDTO, 0, len(areas))
	for _, a := range areas {
		result = append(result, dto.ConvertArea(a))
	}

	return result, nil
}
