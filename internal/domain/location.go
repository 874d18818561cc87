package domain

import (
	"encoding/json"

	"github.com/adspace-discovery/internal/pkg/utils"
)

// rawLocationShape покрывает оба формата локации, которые отдаёт backend:
// плоский {"latitude": .., "longitude": ..} и вложенный
// {"location": {"latitude": .., "longitude": ..}}
type rawLocationShape struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Location  *struct {
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	} `json:"location"`
}

// ResolveCoordinate извлекает координату из сырой локации сущности.
// Возвращает nil для любого нераспознанного формата: отсутствие координаты -
// нормальный исход, а не ошибка. Сущности без координаты исключаются из всех
// пространственных операций движка.
func ResolveCoordinate(raw json.RawMessage) *Point {
	if len(raw) == 0 {
		return nil
	}

	var shape rawLocationShape
	if err := json.Unmarshal(raw, &shape); err != nil {
		return nil
	}

	lat, lon := shape.Latitude, shape.Longitude
	if (lat == nil || lon == nil) && shape.Location != nil {
		lat, lon = shape.Location.Latitude, shape.Location.Longitude
	}
	if lat == nil || lon == nil {
		return nil
	}
	if !utils.ValidateCoordinates(*lat, *lon) {
		return nil
	}

	return &Point{Lat: *lat, Lon: *lon}
}
