package dto

import (
	"encoding/json"
	"fmt"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adspace-discovery/internal/domain"
)

func rawLoc(lat, lon float64) json.RawMessage {
	return json.RawMessage(fmt.Sprintf(`{"latitude": %v, "longitude": %v}`, lat, lon))
}

func TestConvertSnapshot(t *testing.T) {
	property := domain.Property{
		ID:           uuid.New(),
		Name:         "Торговый центр",
		AddressParts: []string{"Невский проспект", "Санкт-Петербург"},
		RawLocation:  rawLoc(59.93, 30.36),
	}

	t.Run("properties mode", func(t *testing.T) {
		snap := domain.Snapshot{
			Mode: domain.ModeProperties,
			VisibleProperties: []domain.Ranked[domain.Property]{
				{Entity: property, DistanceKm: 2.5},
			},
			Selection:   domain.SelectionState{Mode: domain.ModeProperties},
			AreasStatus: domain.AreasIdle,
		}

		out := ConvertSnapshot(snap)

		assert.Equal(t, "properties", out.Mode)
		require.Len(t, out.VisibleEntities, 1)

		entity := out.VisibleEntities[0]
		assert.Equal(t, string(domain.KindProperty), entity.Kind)
		assert.Equal(t, property.ID.String(), entity.ID)
		assert.Equal(t, "Невский проспект, Санкт-Петербург", entity.Address)
		require.NotNil(t, entity.DistanceKm)
		assert.InDelta(t, 2.5, *entity.DistanceKm, 1e-9)
		require.NotNil(t, entity.Location)
	})

	t.Run("areas mode with selection", func(t *testing.T) {
		area := domain.AdvertisingArea{
			ID:          uuid.New(),
			PropertyID:  property.ID,
			Name:        "Фасад",
			Category:    "billboard",
			RawLocation: rawLoc(59.931, 30.361),
		}
		snap := domain.Snapshot{
			Mode: domain.ModeAreas,
			VisibleAreas: []domain.Ranked[domain.AdvertisingArea]{
				{Entity: area, DistanceKm: 0.1},
			},
			Selection: domain.SelectionState{
				Mode:             domain.ModeAreas,
				SelectedProperty: &property,
				SelectedArea:     &area,
			},
			AreasStatus: domain.AreasLoaded,
		}

		out := ConvertSnapshot(snap)

		assert.Equal(t, "areas", out.Mode)
		assert.Equal(t, "loaded", out.AreasStatus)
		require.Len(t, out.VisibleEntities, 1)
		assert.Equal(t, string(domain.KindArea), out.VisibleEntities[0].Kind)
		assert.Equal(t, "billboard", out.VisibleEntities[0].Category)

		require.NotNil(t, out.Selection.SelectedProperty)
		assert.Equal(t, property.ID.String(), out.Selection.SelectedProperty.ID)
		require.NotNil(t, out.Selection.SelectedArea)
		assert.Equal(t, area.ID.String(), out.Selection.SelectedArea.ID)
	})

	t.Run("infinite distance serialized as nil", func(t *testing.T) {
		unlocatable := domain.Property{ID: uuid.New(), Name: "Без координаты"}
		snap := domain.Snapshot{
			Mode: domain.ModeProperties,
			VisibleProperties: []domain.Ranked[domain.Property]{
				{Entity: unlocatable, DistanceKm: math.Inf(1)},
			},
		}

		out := ConvertSnapshot(snap)
		require.Len(t, out.VisibleEntities, 1)
		assert.Nil(t, out.VisibleEntities[0].DistanceKm)
		assert.Nil(t, out.VisibleEntities[0].Location)

		// весь snapshot остаётся сериализуемым
		_, err := json.Marshal(out)
		assert.NoError(t, err)
	})
}
