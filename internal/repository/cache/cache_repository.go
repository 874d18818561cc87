package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/adspace-discovery/internal/domain"
	"github.com/adspace-discovery/internal/domain/repository"
)

const (
	keyProperties = "discovery:properties"
	keyAreas      = "discovery:areas:%s"
)

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return &cacheRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.client.Set(ctx, key, value, ttl).Err()
	if err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	err := r.client.Del(ctx, key).Err()
	if err != nil {
		r.logger.Error("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}

	r.logger.Debug("Cache deleted", zap.String("key", key))
	return nil
}

func (r *cacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	val, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		r.logger.Error("Failed to check cache existence", zap.String("key", key), zap.Error(err))
		return false, fmt.Errorf("cache exists error: %w", err)
	}

	return val > 0, nil
}

// GetProperties получает коллекцию properties из кеша
func (r *cacheRepository) GetProperties(ctx context.Context) ([]domain.Property, error) {
	data, err := r.Get(ctx, keyProperties)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil // Cache miss
	}

	var properties []domain.Property
	if err := json.Unmarshal(data, &properties); err != nil {
		r.logger.Error("Failed to unmarshal properties from cache", zap.Error(err))
		return nil, fmt.Errorf("unmarshal properties: %w", err)
	}

	return properties, nil
}

// SetProperties сохраняет коллекцию properties в кеше
func (r *cacheRepository) SetProperties(ctx context.Context, properties []domain.Property, ttl time.Duration) error {
	data, err := json.Marshal(properties)
	if err != nil {
		r.logger.Error("Failed to marshal properties", zap.Error(err))
		return fmt.Errorf("marshal properties: %w", err)
	}

	return r.Set(ctx, keyProperties, data, ttl)
}

// GetAreas получает поверхности property из кеша
func (r *cacheRepository) GetAreas(ctx context.Context, propertyID uuid.UUID) ([]domain.AdvertisingArea, error) {
	data, err := r.Get(ctx, fmt.Sprintf(keyAreas, propertyID))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil // Cache miss
	}

	var areas []domain.AdvertisingArea
	if err := json.Unmarshal(data, &areas); err != nil {
		r.logger.Error("Failed to unmarshal areas from cache",
			zap.String("property_id", propertyID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("unmarshal areas: %w", err)
	}

	return areas, nil
}

// SetAreas сохраняет поверхности property в кеше
func (r *cacheRepository) SetAreas(ctx context.Context, propertyID uuid.UUID, areas []domain.AdvertisingArea, ttl time.Duration) error {
	data, err := json.Marshal(areas)
	if err != nil {
		r.logger.Error("Failed to marshal areas", zap.Error(err))
		return fmt.Errorf("marshal areas: %w", err)
	}

	return r.Set(ctx, fmt.Sprintf(keyAreas, propertyID), data, ttl)
}
