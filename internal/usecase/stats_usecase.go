package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/adspace-discovery/internal/domain/repository"
	"github.com/adspace-discovery/internal/usecase/dto"
)

// StatsUseCase - чтение агрегатов discovery-аналитики
type StatsUseCase struct {
	statsRepo repository.StatsRepository
	logger    *zap.Logger
}

// NewStatsUseCase - создание нового StatsUseCase
func NewStatsUseCase(statsRepo repository.StatsRepository, logger *zap.Logger) *StatsUseCase {
	return &StatsUseCase{
		statsRepo: statsRepo,
		logger:    logger,
	}
}

// GetDiscoveryStats возвращает дневные агрегаты событий за последние days дней
func (uc *StatsUseCase) GetDiscoveryStats(ctx context.Context, days int) (*dto.StatsResponse, error) {
	if days <= 0 {
		days = 7
	}
	since := time.Now().UTC().AddDate(0, 0, -days)

	counts, err := uc.statsRepo.GetDailyCounts(ctx, since)
	if err != nil {
		uc.logger.Error("Failed to get discovery stats", zap.Error(err))
		return nil, err
	}

	result := make([]dto.EventCountDTO, 0, len(counts))
	for _, c := range counts {
		result = append(result, dto.ConvertEventCount(c))
	}

	return &dto.StatsResponse{
		Counts: result,
		Since:  since.Format(time.DateOnly),
	}, nil
}
