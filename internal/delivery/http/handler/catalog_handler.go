package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/adspace-discovery/internal/pkg/errors"
	"github.com/adspace-discovery/internal/pkg/utils"
	"github.com/adspace-discovery/internal/usecase"
)

// CatalogHandler - stateless-чтение каталога properties и поверхностей
type CatalogHandler struct {
	catalogUC *usecase.CatalogUseCase
	logger    *zap.Logger
}

// NewCatalogHandler - создание нового CatalogHandler
func NewCatalogHandler(catalogUC *usecase.CatalogUseCase, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogUC: catalogUC,
		logger:    logger,
	}
}

// ListProperties godoc
// @Summary Каталог properties
// @Description Возвращает полный каталог properties, включая сущности без распознанной координаты
// @Tags Catalog
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]dto.PropertyDTO}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/properties [get]
func (h *CatalogHandler) ListProperties(c *fiber.Ctx) error {
	result, err := h.catalogUC.ListProperties(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: len(result),
	})
}

// ListAreas godoc
// @Summary Рекламные поверхности property
// @Description Возвращает все рекламные поверхности указанного property
// @Tags Catalog
// @Produce json
// @Param id path string true "ID property"
// @Success 200 {object} utils.SuccessResponse{data=[]dto.AreaDTO}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/properties/{id}/areas [get]
func (h *CatalogHandler) ListAreas(c *fiber.Ctx) error {
	propertyID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidPropertyID)
	}

	result, err := h.catalogUC.ListAreas(c.Context(), propertyID)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: len(result),
	})
}
