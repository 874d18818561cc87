package repository

import (
	"context"

	"github.com/adspace-discovery/internal/domain"
)

// StreamRepository - публикация и потребление discovery-событий через
// Redis Streams
type StreamRepository interface {
	// Publish добавляет событие в стрим
	Publish(ctx context.Context, stream string, event domain.DiscoveryEvent) error

	// CreateConsumerGroup создаёт consumer group для стрима
	CreateConsumerGroup(ctx context.Context, stream, group string) error

	// ConsumeStream читает сообщения из стрима с использованием consumer group
	ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error)

	// AckMessage подтверждает обработку сообщения
	AckMessage(ctx context.Context, stream, group, messageID string) error
}
