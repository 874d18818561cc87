package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/adspace-discovery/internal/domain"
)

// PropertyRepository - доступ к properties и их рекламным поверхностям.
// Движок предпочитает embedded-список поверхностей на самом property
// (поле Areas) и обращается к ListAreas только если его нет.
type PropertyRepository interface {
	// List возвращает полную коллекцию доступных для браузинга properties
	List(ctx context.Context) ([]domain.Property, error)

	// GetByID возвращает property по идентификатору
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Property, error)

	// ListAreas возвращает рекламные поверхности property
	ListAreas(ctx context.Context, propertyID uuid.UUID) ([]domain.AdvertisingArea, error)
}
