package dto

import (
	"math"
	"time"

	"github.com/adspace-discovery/internal/domain"
)

// SessionResponse - сессия с текущим наблюдаемым состоянием
type SessionResponse struct {
	SessionID string      `json:"session_id"`
	Snapshot  SnapshotDTO `json:"snapshot"`
}

// SnapshotDTO - полный наблюдаемый выход движка: видимый список,
// выбор и viewport. Потребляется слоем отрисовки как есть.
type SnapshotDTO struct {
	Mode             string               `json:"mode"`
	VisibleEntities  []RankedEntityDTO    `json:"visible_entities"`
	Selection        SelectionDTO         `json:"selection"`
	Viewport         domain.ViewportState `json:"viewport"`
	Term             string               `json:"term"`
	AreasStatus      string               `json:"areas_status"`
	PropertiesFailed bool                 `json:"properties_failed"`
}

// RankedEntityDTO - элемент видимого списка. DistanceKm равен nil для
// сущности без распознанной координаты (внутреннее +Inf не сериализуемо).
type RankedEntityDTO struct {
	Kind       string           `json:"kind"`
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	Address    string           `json:"address,omitempty"`
	Category   string           `json:"category,omitempty"`
	Rate       *domain.RateInfo `json:"rate,omitempty"`
	Location   *domain.Point    `json:"location,omitempty"`
	DistanceKm *float64         `json:"distance_km,omitempty"`
}

// EntityRef - краткая ссылка на выбранную сущность
type EntityRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SelectionDTO - текущий выбор пользователя
type SelectionDTO struct {
	Mode             string     `json:"mode"`
	SelectedProperty *EntityRef `json:"selected_property,omitempty"`
	SelectedArea     *EntityRef `json:"selected_area,omitempty"`
}

// PropertyDTO - property в stateless-выдаче каталога
type PropertyDTO struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	AddressParts []string      `json:"address_parts"`
	Location     *domain.Point `json:"location,omitempty"`
}

// AreaDTO - рекламная поверхность в stateless-выдаче каталога
type AreaDTO struct {
	ID           string          `json:"id"`
	PropertyID   string          `json:"property_id"`
	Name         string          `json:"name"`
	AddressParts []string        `json:"address_parts"`
	Category     string          `json:"category"`
	Rate         domain.RateInfo `json:"rate"`
	Location     *domain.Point   `json:"location,omitempty"`
}

// EventCountDTO - агрегат аналитики за день
type EventCountDTO struct {
	Day   string `json:"day"`
	Type  string `json:"type"`
	Count int64  `json:"count"`
}

// StatsResponse - ответ аналитики discovery-событий
type StatsResponse struct {
	Counts []EventCountDTO `json:"counts"`
	Since  string          `json:"since"`
}

// ConvertSnapshot преобразует доменный snapshot в транспортный вид,
// объединяя видимый список текущего режима в один массив
func ConvertSnapshot(snap domain.Snapshot) SnapshotDTO {
	out := SnapshotDTO{
		Mode:             string(snap.Mode),
		Viewport:         snap.Viewport,
		Term:             snap.Term,
		AreasStatus:      string(snap.AreasStatus),
		PropertiesFailed: snap.PropertiesFailed,
		Selection:        convertSelection(snap.Selection),
	}

	switch snap.Mode {
	case domain.ModeAreas:
		out.VisibleEntities = make([]RankedEntityDTO, 0, len(snap.VisibleAreas))
		for _, ranked := range snap.VisibleAreas {
			area := ranked.Entity
			out.VisibleEntities = append(out.VisibleEntities, RankedEntityDTO{
				Kind:       string(domain.KindArea),
				ID:         area.ID.String(),
				Name:       area.Name,
				Address:    area.ComposedAddress(),
				Category:   area.Category,
				Rate:       &area.Rate,
				Location:   area.Coordinate(),
				DistanceKm: finiteDistance(ranked.DistanceKm),
			})
		}
	default:
		out.VisibleEntities = make([]RankedEntityDTO, 0, len(snap.VisibleProperties))
		for _, ranked := range snap.VisibleProperties {
			property := ranked.Entity
			out.VisibleEntities = append(out.VisibleEntities, RankedEntityDTO{
				Kind:       string(domain.KindProperty),
				ID:         property.ID.String(),
				Name:       property.Name,
				Address:    property.ComposedAddress(),
				Location:   property.Coordinate(),
				DistanceKm: finiteDistance(ranked.DistanceKm),
			})
		}
	}

	return out
}

// ConvertProperty преобразует property в вид каталога
func ConvertProperty(p domain.Property) PropertyDTO {
	return PropertyDTO{
		ID:           p.ID.String(),
		Name:         p.Name,
		AddressParts: p.AddressParts,
		Location:     p.Coordinate(),
	}
}

// ConvertArea преобразует рекламную поверхность в вид каталога
func ConvertArea(a domain.AdvertisingArea) AreaDTO {
	return AreaDTO{
		ID:           a.ID.String(),
		PropertyID:   a.PropertyID.String(),
		Name:         a.Name,
		AddressParts: a.AddressParts,
		Category:     a.Category,
		Rate:         a.Rate,
		Location:     a.Coordinate(),
	}
}

// ConvertEventCount преобразует агрегат аналитики
func ConvertEventCount(c domain.EventCount) EventCountDTO {
	return EventCountDTO{
		Day:   c.Day.Format(time.DateOnly),
		Type:  c.Type,
		Count: c.Count,
	}
}

func convertSelection(sel domain.SelectionState) SelectionDTO {
	out := SelectionDTO{Mode: string(sel.Mode)}
	if sel.SelectedProperty != nil {
		out.SelectedProperty = &EntityRef{
			ID:   sel.SelectedProperty.ID.String(),
			Name: sel.SelectedProperty.Name,
		}
	}
	if sel.SelectedArea != nil {
		out.SelectedArea = &EntityRef{
			ID:   sel.SelectedArea.ID.String(),
			Name: sel.SelectedArea.Name,
		}
	}
	return out
}

func finiteDistance(km float64) *float64 {
	if math.IsInf(km, 0) || math.IsNaN(km) {
		return nil
	}
	return &km
}
