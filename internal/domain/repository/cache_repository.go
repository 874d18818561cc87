package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/adspace-discovery/internal/domain"
)

// CacheRepository - кеширование коллекций discovery-движка.
// Промах кеша возвращает (nil, nil) - это не ошибка.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)

	GetProperties(ctx context.Context) ([]domain.Property, error)
	SetProperties(ctx context.Context, properties []domain.Property, ttl time.Duration) error

	GetAreas(ctx context.Context, propertyID uuid.UUID) ([]domain.AdvertisingArea, error)
	SetAreas(ctx context.Context, propertyID uuid.UUID, areas []domain.AdvertisingArea, ttl time.Duration) error
}
