package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/adspace-discovery/internal/pkg/errors"
	"github.com/adspace-discovery/internal/pkg/utils"
	"github.com/adspace-discovery/internal/pkg/validator"
	"github.com/adspace-discovery/internal/usecase"
	"github.com/adspace-discovery/internal/usecase/dto"
)

// DiscoveryHandler - обработчик discovery-сессий (карта браузинга)
type DiscoveryHandler struct {
	discoveryUC *usecase.DiscoveryUseCase
	logger      *zap.Logger
}

// NewDiscoveryHandler - создание нового DiscoveryHandler
func NewDiscoveryHandler(discoveryUC *usecase.DiscoveryUseCase, logger *zap.Logger) *DiscoveryHandler {
	return &DiscoveryHandler{
		discoveryUC: discoveryUC,
		logger:      logger,
	}
}

// StartSession godoc
// @Summary Открытие discovery-сессии
// @Description Загружает коллекцию properties, определяет начальный центр карты (явные координаты, геолокация по IP или центр по умолчанию) и возвращает первый snapshot
// @Tags Discovery
// @Accept json
// @Produce json
// @Param request body dto.StartSessionRequest false "Начальные параметры сессии"
// @Success 200 {object} utils.SuccessResponse{data=dto.SessionResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/discovery/sessions [post]
func (h *DiscoveryHandler) StartSession(c *fiber.Ctx) error {
	var req dto.StartSessionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return utils.SendError(c, errors.ErrInvalidRequest)
		}
	}
	req.ClientIP = c.IP()

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	result, err := h.discoveryUC.StartSession(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: len(result.Snapshot.VisibleEntities),
	})
}

// GetSnapshot godoc
// @Summary Текущее состояние сессии
// @Description Возвращает полный наблюдаемый выход движка: видимый список, выбор и viewport
// @Tags Discovery
// @Produce json
// @Param id path string true "ID сессии"
// @Success 200 {object} utils.SuccessResponse{data=dto.SessionResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/discovery/sessions/{id} [get]
func (h *DiscoveryHandler) GetSnapshot(c *fiber.Ctx) error {
	sessionID, err := parseSessionID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.discoveryUC.Snapshot(c.Context(), sessionID)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// Search godoc
// @Summary Установка поискового запроса
// @Description Фильтрует коллекцию текущего режима по подстроке без учёта регистра; пустой запрос снимает фильтр
// @Tags Discovery
// @Accept json
// @Produce json
// @Param id path string true "ID сессии"
// @Param request body dto.SearchRequest true "Поисковый запрос"
// @Success 200 {object} utils.SuccessResponse{data=dto.SessionResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/discovery/sessions/{id}/search [put]
func (h *DiscoveryHandler) Search(c *fiber.Ctx) error {
	sessionID, err := parseSessionID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.SearchRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	result, err := h.discoveryUC.Search(c.Context(), sessionID, req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// SelectProperty godoc
// @Summary Drill-down в property
// @Description Выбирает property, центрирует viewport и загружает его рекламные поверхности; устаревшие результаты загрузки отбрасываются
// @Tags Discovery
// @Accept json
// @Produce json
// @Param id path string true "ID сессии"
// @Param request body dto.SelectPropertyRequest true "Выбранный property"
// @Success 200 {object} utils.SuccessResponse{data=dto.SessionResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Router /api/v1/discovery/sessions/{id}/select/property [post]
func (h *DiscoveryHandler) SelectProperty(c *fiber.Ctx) error {
	sessionID, err := parseSessionID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.SelectPropertyRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	propertyID, err := uuid.Parse(req.PropertyID)
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidPropertyID)
	}

	result, err := h.discoveryUC.SelectProperty(c.Context(), sessionID, propertyID)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// SelectArea godoc
// @Summary Выбор рекламной поверхности
// @Description Выбирает поверхность внутри drill-down; viewport центрируется на ней без смены зума
// @Tags Discovery
// @Accept json
// @Produce json
// @Param id path string true "ID сессии"
// @Param request body dto.SelectAreaRequest true "Выбранная поверхность"
// @Success 200 {object} utils.SuccessResponse{data=dto.SessionResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/v1/discovery/sessions/{id}/select/area [post]
func (h *DiscoveryHandler) SelectArea(c *fiber.Ctx) error {
	sessionID, err := parseSessionID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.SelectAreaRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	areaID, err := uuid.Parse(req.AreaID)
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidAreaID)
	}

	result, err := h.discoveryUC.SelectArea(c.Context(), sessionID, areaID)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// Back godoc
// @Summary Возврат к списку properties
// @Description Сбрасывает выбор и рабочий набор поверхностей, восстанавливает зум до drill-down
// @Tags Discovery
// @Produce json
// @Param id path string true "ID сессии"
// @Success 200 {object} utils.SuccessResponse{data=dto.SessionResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/discovery/sessions/{id}/back [post]
func (h *DiscoveryHandler) Back(c *fiber.Ctx) error {
	sessionID, err := parseSessionID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.discoveryUC.Back(c.Context(), sessionID)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// EndSession godoc
// @Summary Закрытие discovery-сессии
// @Description Закрывает сессию; результаты незавершённых загрузок отбрасываются
// @Tags Discovery
// @Produce json
// @Param id path string true "ID сессии"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/discovery/sessions/{id} [delete]
func (h *DiscoveryHandler) EndSession(c *fiber.Ctx) error {
	sessionID, err := parseSessionID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	if err := h.discoveryUC.EndSession(c.Context(), sessionID); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{"closed": true}, nil)
}

func parseSessionID(c *fiber.Ctx) (uuid.UUID, error) {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, errors.ErrInvalidSessionID
	}
	return sessionID, nil
}
