package postgres

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/adspace-discovery/internal/domain"
	"github.com/adspace-discovery/internal/domain/repository"
)

type statsRepository struct {
	db *DB
}

// NewStatsRepository создает новый StatsRepository поверх PostgreSQL
func NewStatsRepository(db *DB) repository.StatsRepository {
	return &statsRepository{db: db}
}

// RecordEvent сохраняет discovery-событие
func (r *statsRepository) RecordEvent(ctx context.Context, event domain.DiscoveryEvent) error {
	query := `
		INSERT INTO discovery_events (event_id, session_id, type, property_id, area_id, term, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (event_id) DO NOTHING`

	_, err := r.db.ExecContext(ctx, query,
		event.EventID,
		event.SessionID,
		event.Type,
		event.PropertyID,
		event.AreaID,
		event.Term,
		event.OccurredAt,
	)
	if err != nil {
		r.db.logger.Error("Failed to record discovery event",
			zap.String("event_id", event.EventID.String()),
			zap.String("type", event.Type),
			zap.Error(err))
		return fmt.Errorf("record discovery event: %w", err)
	}

	return nil
}

// GetDailyCounts возвращает агрегаты по типам событий начиная с since
func (r *statsRepository) GetDailyCounts(ctx context.Context, since time.Time) ([]domain.EventCount, error) {
	query := `
		SELECT date_trunc('day', occurred_at) AS day, type, count(*) AS count
		FROM discovery_events
		WHERE occurred_at >= $1
		GROUP BY day, type
		ORDER BY day DESC, type`

	var counts []domain.EventCount
	if err := r.db.SelectContext(ctx, &counts, query, since); err != nil {
		r.db.logger.Error("Failed to get daily event counts", zap.Error(err))
		return nil, fmt.Errorf("get daily event counts: %w", err)
	}

	return counts, nil
}
