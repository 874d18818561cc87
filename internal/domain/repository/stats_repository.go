package repository

import (
	"context"
	"time"

	"github.com/adspace-discovery/internal/domain"
)

// StatsRepository - персистентный сток discovery-аналитики
type StatsRepository interface {
	// RecordEvent сохраняет одно discovery-событие
	RecordEvent(ctx context.Context, event domain.DiscoveryEvent) error

	// GetDailyCounts возвращает агрегаты по типам событий начиная с since
	GetDailyCounts(ctx context.Context, since time.Time) ([]domain.EventCount, error)
}
