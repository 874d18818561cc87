package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/adspace-discovery/internal/domain"
	"github.com/adspace-discovery/internal/domain/repository"
	"github.com/adspace-discovery/internal/worker"
)

const (
	// retryBackoff - пауза перед повторной обработкой после ошибки БД
	retryBackoff = time.Second
)

// AnalyticsWorker потребляет discovery-события из Redis Stream
// и сохраняет их в Postgres для агрегации статистики
type AnalyticsWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	statsRepo    repository.StatsRepository
	consumerName string
	maxRetries   int
	attempts     map[string]int
}

// NewAnalyticsWorker создает новый AnalyticsWorker
func NewAnalyticsWorker(
	streamRepo repository.StreamRepository,
	statsRepo repository.StatsRepository,
	consumerGroup string,
	maxRetries int,
	logger *zap.Logger,
) *AnalyticsWorker {
	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("%s-%d", hostname, os.Getpid())

	return &AnalyticsWorker{
		BaseWorker:   worker.NewBaseWorker("discovery-analytics", consumerGroup, logger),
		streamRepo:   streamRepo,
		statsRepo:    statsRepo,
		consumerName: consumerName,
		maxRetries:   maxRetries,
		attempts:     make(map[string]int),
	}
}

// Start запускает воркер
func (w *AnalyticsWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting AnalyticsWorker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamDiscoveryEvents, w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	consumeCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	messages, err := w.streamRepo.ConsumeStream(consumeCtx, domain.StreamDiscoveryEvents, w.ConsumerGroup(), w.consumerName)
	if err != nil {
		logger.Error("Failed to start stream consumer", zap.Error(err))
		return fmt.Errorf("failed to start stream consumer: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		case msg, ok := <-messages:
			if !ok {
				logger.Info("Stream channel closed")
				return nil
			}
			w.processMessage(ctx, msg)
		}
	}
}

// processMessage разбирает и сохраняет одно discovery-событие.
// Сообщение подтверждается при успехе, при ошибке разбора
// и после исчерпания maxRetries попыток записи.
func (w *AnalyticsWorker) processMessage(ctx context.Context, msg domain.StreamMessage) {
	logger := w.Logger()

	var event domain.DiscoveryEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		logger.Warn("Failed to parse discovery event, skipping",
			zap.String("message_id", msg.ID),
			zap.Error(err))
		w.ack(ctx, msg.ID)
		return
	}

	if err := w.statsRepo.RecordEvent(ctx, event); err != nil {
		w.attempts[msg.ID]++
		if w.attempts[msg.ID] >= w.maxRetries {
			logger.Error("Dropping discovery event after max retries",
				zap.String("message_id", msg.ID),
				zap.String("type", event.Type),
				zap.Int("attempts", w.attempts[msg.ID]),
				zap.Error(err))
			w.ack(ctx, msg.ID)
			delete(w.attempts, msg.ID)
			return
		}

		logger.Warn("Failed to record discovery event, will retry",
			zap.String("message_id", msg.ID),
			zap.Int("attempt", w.attempts[msg.ID]),
			zap.Error(err))
		time.Sleep(retryBackoff)
		return
	}

	logger.Debug("Discovery event recorded",
		zap.String("message_id", msg.ID),
		zap.String("type", event.Type),
		zap.String("session_id", event.SessionID.String()))

	w.ack(ctx, msg.ID)
	delete(w.attempts, msg.ID)
}

func (w *AnalyticsWorker) ack(ctx context.Context, messageID string) {
	if err := w.streamRepo.AckMessage(ctx, domain.StreamDiscoveryEvents, w.ConsumerGroup(), messageID); err != nil {
		w.Logger().Error("Failed to ack message",
			zap.String("message_id", messageID),
			zap.Error(err))
	}
}
