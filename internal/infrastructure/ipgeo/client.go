package ipgeo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/adspace-discovery/internal/config"
	"github.com/adspace-discovery/internal/domain"
	"github.com/adspace-discovery/internal/domain/repository"
	"github.com/adspace-discovery/internal/pkg/utils"
)

type client struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

// NewClient создает best-effort геолокационный клиент поверх ip-api
func NewClient(cfg *config.GeoConfig, logger *zap.Logger) repository.GeolocationProvider {
	return &client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		baseURL: cfg.BaseURL,
		logger:  logger,
	}
}

type geoResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// CurrentPosition определяет примерную позицию клиента по его IP.
// Ошибка здесь - нормальный исход: вызывающая сторона использует центр
// карты по умолчанию.
func (c *client) CurrentPosition(ctx context.Context, clientIP string) (*domain.Point, error) {
	if clientIP == "" {
		return nil, fmt.Errorf("empty client ip")
	}

	url := fmt.Sprintf("%s/json/%s?fields=status,message,lat,lon", c.baseURL, clientIP)

	c.logger.Debug("Resolving client position",
		zap.String("ip", clientIP))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geolocation service returned status %d", resp.StatusCode)
	}

	var geo geoResponse
	if err := json.Unmarshal(body, &geo); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if geo.Status != "success" {
		return nil, fmt.Errorf("geolocation failed: %s", geo.Message)
	}
	if !utils.ValidateCoordinates(geo.Lat, geo.Lon) {
		return nil, fmt.Errorf("geolocation returned invalid coordinates")
	}

	return &domain.Point{Lat: geo.Lat, Lon: geo.Lon}, nil
}
