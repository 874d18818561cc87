package domain

import (
	"math"
	"sort"

	"github.com/adspace-discovery/internal/pkg/utils"
)

// Ranked - сущность с вычисленным расстоянием до опорной точки.
// DistanceKm равен +Inf для сущностей без распознанной координаты.
type Ranked[T Locatable] struct {
	Entity     T       `json:"entity"`
	DistanceKm float64 `json:"distance_km"`
}

// RankByProximity сортирует коллекцию по возрастанию расстояния от origin и
// обрезает до limit элементов. Сущности без координаты получают +Inf и
// оказываются в конце. Сортировка стабильная: при равных расстояниях
// сохраняется исходный порядок. Вход не мутируется.
func RankByProximity[T Locatable](items []T, origin Point, limit int) []Ranked[T] {
	ranked := make([]Ranked[T], 0, len(items))
	for _, item := range items {
		distance := math.Inf(1)
		if coord := item.Coordinate(); coord != nil {
			distance = utils.HaversineDistance(origin.Lat, origin.Lon, coord.Lat, coord.Lon)
		}
		ranked = append(ranked, Ranked[T]{Entity: item, DistanceKm: distance})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].DistanceKm < ranked[j].DistanceKm
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	return ranked
}
