package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/adspace-discovery/internal/pkg/utils"
	"github.com/adspace-discovery/internal/usecase"
)

// StatsHandler - обработчик аналитики discovery-событий
type StatsHandler struct {
	statsUC *usecase.StatsUseCase
	logger  *zap.Logger
}

// NewStatsHandler - создание нового StatsHandler
func NewStatsHandler(statsUC *usecase.StatsUseCase, logger *zap.Logger) *StatsHandler {
	return &StatsHandler{
		statsUC: statsUC,
		logger:  logger,
	}
}

// GetDiscoveryStats godoc
// @Summary Агрегаты discovery-событий
// @Description Возвращает дневные счётчики событий (старт сессий, поиски, drill-down) за последние N дней
// @Tags Stats
// @Produce json
// @Param days query int false "Глубина выборки в днях" default(7)
// @Success 200 {object} utils.SuccessResponse{data=dto.StatsResponse}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/stats/discovery [get]
func (h *StatsHandler) GetDiscoveryStats(c *fiber.Ctx) error {
	days := c.QueryInt("days", 7)

	result, err := h.statsUC.GetDiscoveryStats(c.Context(), days)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: len(result.Counts),
	})
}
