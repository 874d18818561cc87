package domain

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankByProximity(t *testing.T) {
	origin := Point{Lat: 59.93, Lon: 30.31} // центр Санкт-Петербурга

	near := testProperty("Ближний", nil, 59.93, 30.36)
	mid := testProperty("Средний", nil, 59.80, 30.26)
	far := testProperty("Дальний", nil, 55.75, 37.62) // Москва

	t.Run("orders by ascending distance", func(t *testing.T) {
		ranked := RankByProximity([]Property{far, near, mid}, origin, 0)
		require.Len(t, ranked, 3)
		assert.Equal(t, "Ближний", ranked[0].Entity.Name)
		assert.Equal(t, "Средний", ranked[1].Entity.Name)
		assert.Equal(t, "Дальний", ranked[2].Entity.Name)
		assert.Less(t, ranked[0].DistanceKm, ranked[1].DistanceKm)
		assert.Less(t, ranked[1].DistanceKm, ranked[2].DistanceKm)
	})

	t.Run("truncates to limit", func(t *testing.T) {
		ranked := RankByProximity([]Property{far, near, mid}, origin, 2)
		require.Len(t, ranked, 2)
		assert.Equal(t, "Ближний", ranked[0].Entity.Name)
		assert.Equal(t, "Средний", ranked[1].Entity.Name)
	})

	t.Run("zero limit keeps all", func(t *testing.T) {
		ranked := RankByProximity([]Property{far, near, mid}, origin, 0)
		assert.Len(t, ranked, 3)
	})

	t.Run("unlocatable entities rank last with infinite distance", func(t *testing.T) {
		unlocatable := Property{ID: uuid.New(), Name: "Без координаты"}
		ranked := RankByProximity([]Property{unlocatable, near}, origin, 0)
		require.Len(t, ranked, 2)
		assert.Equal(t, "Ближний", ranked[0].Entity.Name)
		assert.Equal(t, "Без координаты", ranked[1].Entity.Name)
		assert.True(t, math.IsInf(ranked[1].DistanceKm, 1))
	})

	t.Run("stable order for equal distances", func(t *testing.T) {
		first := testProperty("Первый", nil, 59.95, 30.40)
		second := testProperty("Второй", nil, 59.95, 30.40)
		ranked := RankByProximity([]Property{first, second}, origin, 0)
		require.Len(t, ranked, 2)
		assert.Equal(t, "Первый", ranked[0].Entity.Name)
		assert.Equal(t, "Второй", ranked[1].Entity.Name)
	})

	t.Run("does not mutate input", func(t *testing.T) {
		input := []Property{far, near, mid}
		RankByProximity(input, origin, 0)
		assert.Equal(t, "Дальний", input[0].Name)
		assert.Equal(t, "Ближний", input[1].Name)
		assert.Equal(t, "Средний", input[2].Name)
	})

	t.Run("empty input yields empty result", func(t *testing.T) {
		ranked := RankByProximity([]Property{}, origin, 10)
		assert.Empty(t, ranked)
	})
}

func TestRankByProximity_ReRanksFromNewOrigin(t *testing.T) {
	a := testProperty("A", nil, 59.93, 30.36)
	b := testProperty("B", nil, 55.75, 37.62)

	fromPetersburg := RankByProximity([]Property{a, b}, Point{Lat: 59.93, Lon: 30.31}, 0)
	require.Equal(t, "A", fromPetersburg[0].Entity.Name)

	fromMoscow := RankByProximity([]Property{a, b}, Point{Lat: 55.75, Lon: 37.60}, 0)
	require.Equal(t, "B", fromMoscow[0].Entity.Name)
}
