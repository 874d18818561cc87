package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/adspace-discovery/internal/config"
	"github.com/adspace-discovery/internal/domain"
	pkgerrors "github.com/adspace-discovery/internal/pkg/errors"
	"github.com/adspace-discovery/internal/usecase"
	"github.com/adspace-discovery/internal/usecase/dto"
)

// MockPropertyRepository is a mock of PropertyRepository
type MockPropertyRepository struct {
	mock.Mock
}

func (m *MockPropertyRepository) List(ctx context.Context) ([]domain.Property, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Property), args.Error(1)
}

func (m *MockPropertyRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Property), args.Error(1)
}

func (m *MockPropertyRepository) ListAreas(ctx context.Context, propertyID uuid.UUID) ([]domain.AdvertisingArea, error) {
	args := m.Called(ctx, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AdvertisingArea), args.Error(1)
}

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheRepository) GetProperties(ctx context.Context) ([]domain.Property, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Property), args.Error(1)
}

func (m *MockCacheRepository) SetProperties(ctx context.Context, properties []domain.Property, ttl time.Duration) error {
	args := m.Called(ctx, properties, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) GetAreas(ctx context.Context, propertyID uuid.UUID) ([]domain.AdvertisingArea, error) {
	args := m.Called(ctx, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AdvertisingArea), args.Error(1)
}

func (m *MockCacheRepository) SetAreas(ctx context.Context, propertyID uuid.UUID, areas []domain.AdvertisingArea, ttl time.Duration) error {
	args := m.Called(ctx, propertyID, areas, ttl)
	return args.Error(0)
}

// MockStreamRepository is a mock of StreamRepository
type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) Publish(ctx context.Context, stream string, event domain.DiscoveryEvent) error {
	args := m.Called(ctx, stream, event)
	return args.Error(0)
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *MockStreamRepository) ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	args := m.Called(ctx, stream, group, messageID)
	return args.Error(0)
}

// MockGeolocationProvider is a mock of GeolocationProvider
type MockGeolocationProvider struct {
	mock.Mock
}

func (m *MockGeolocationProvider) CurrentPosition(ctx context.Context, clientIP string) (*domain.Point, error) {
	args := m.Called(ctx, clientIP)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Point), args.Error(1)
}

func ptrFloat64(v float64) *float64 { return &v }

func rawLoc(lat, lon float64) json.RawMessage {
	return json.RawMessage(fmt.Sprintf(`{"latitude": %v, "longitude": %v}`, lat, lon))
}

func discoveryFixture() (*MockPropertyRepository, *MockCacheRepository, *MockStreamRepository, *MockGeolocationProvider, *usecase.DiscoveryUseCase) {
	propertyRepo := &MockPropertyRepository{}
	cacheRepo := &MockCacheRepository{}
	streamRepo := &MockStreamRepository{}
	geoProvider := &MockGeolocationProvider{}

	uc := usecase.NewDiscoveryUseCase(
		propertyRepo,
		cacheRepo,
		streamRepo,
		geoProvider,
		zap.NewNop(),
		config.DiscoveryConfig{
			DefaultLimit:     50,
			DefaultCenterLat: 59.93,
			DefaultCenterLon: 30.31,
			SessionIdleTTL:   30 * time.Minute,
		},
		config.CacheConfig{
			PropertiesCacheTTL: 5 * time.Minute,
			AreasCacheTTL:      5 * time.Minute,
		},
	)

	return propertyRepo, cacheRepo, streamRepo, geoProvider, uc
}

func TestDiscoveryUseCase_StartSession(t *testing.T) {
	ctx := context.Background()

	properties := []domain.Property{
		{ID: uuid.New(), Name: "Торговый центр Галерея", RawLocation: rawLoc(59.93, 30.36)},
		{ID: uuid.New(), Name: "ТРЦ Мега", RawLocation: rawLoc(59.90, 30.51)},
	}

	t.Run("loads from repository on cache miss", func(t *testing.T) {
		propertyRepo, cacheRepo, streamRepo, _, uc := discoveryFixture()

		cacheRepo.On("GetProperties", mock.Anything).Return(nil, nil)
		propertyRepo.On("List", mock.Anything).Return(properties, nil)
		cacheRepo.On("SetProperties", mock.Anything, properties, mock.Anything).Return(nil)
		streamRepo.On("Publish", mock.Anything, domain.StreamDiscoveryEvents, mock.Anything).Return(nil)

		resp, err := uc.StartSession(ctx, dto.StartSessionRequest{
			Lat: ptrFloat64(59.93),
			Lon: ptrFloat64(30.31),
		})
		require.NoError(t, err)

		assert.NotEmpty(t, resp.SessionID)
		assert.Equal(t, string(domain.ModeProperties), resp.Snapshot.Mode)
		assert.Len(t, resp.Snapshot.VisibleEntities, 2)
		assert.False(t, resp.Snapshot.PropertiesFailed)

		propertyRepo.AssertExpectations(t)
		cacheRepo.AssertExpectations(t)
	})

	t.Run("cache hit skips repository", func(t *testing.T) {
		propertyRepo, cacheRepo, streamRepo, _, uc := discoveryFixture()

		cacheRepo.On("GetProperties", mock.Anything).Return(properties, nil)
		streamRepo.On("Publish", mock.Anything, domain.StreamDiscoveryEvents, mock.Anything).Return(nil)

		resp, err := uc.StartSession(ctx, dto.StartSessionRequest{
			Lat: ptrFloat64(59.93),
			Lon: ptrFloat64(30.31),
		})
		require.NoError(t, err)

		assert.Len(t, resp.Snapshot.VisibleEntities, 2)
		propertyRepo.AssertNotCalled(t, "List", mock.Anything)
	})

	t.Run("load failure yields empty collection with explicit signal", func(t *testing.T) {
		propertyRepo, cacheRepo, streamRepo, _, uc := discoveryFixture()

		cacheRepo.On("GetProperties", mock.Anything).Return(nil, nil)
		propertyRepo.On("List", mock.Anything).Return(nil, errors.New("connection refused"))
		streamRepo.On("Publish", mock.Anything, domain.StreamDiscoveryEvents, mock.Anything).Return(nil)

		resp, err := uc.StartSession(ctx, dto.StartSessionRequest{
			Lat: ptrFloat64(59.93),
			Lon: ptrFloat64(30.31),
		})
		require.NoError(t, err)

		assert.True(t, resp.Snapshot.PropertiesFailed)
		assert.Empty(t, resp.Snapshot.VisibleEntities)
		assert.Equal(t, string(domain.ModeProperties), resp.Snapshot.Mode)
	})

	t.Run("rejects unpaired coordinates", func(t *testing.T) {
		_, _, _, _, uc := discoveryFixture()

		_, err := uc.StartSession(ctx, dto.StartSessionRequest{Lat: ptrFloat64(59.93)})
		assert.ErrorIs(t, err, pkgerrors.ErrInvalidCoordinates)
	})

	t.Run("falls back to ip geolocation", func(t *testing.T) {
		propertyRepo, cacheRepo, streamRepo, geoProvider, uc := discoveryFixture()

		cacheRepo.On("GetProperties", mock.Anything).Return(nil, nil)
		propertyRepo.On("List", mock.Anything).Return(properties, nil)
		cacheRepo.On("SetProperties", mock.Anything, properties, mock.Anything).Return(nil)
		streamRepo.On("Publish", mock.Anything, domain.StreamDiscoveryEvents, mock.Anything).Return(nil)
		geoProvider.On("CurrentPosition", mock.Anything, "93.84.12.1").
			Return(&domain.Point{Lat: 55.75, Lon: 37.62}, nil)

		resp, err := uc.StartSession(ctx, dto.StartSessionRequest{ClientIP: "93.84.12.1"})
		require.NoError(t, err)

		assert.InDelta(t, 55.75, resp.Snapshot.Viewport.Center.Lat, 1e-9)
		geoProvider.AssertExpectations(t)
	})

	t.Run("geolocation failure falls back to default center", func(t *testing.T) {
		propertyRepo, cacheRepo, streamRepo, geoProvider, uc := discoveryFixture()

		cacheRepo.On("GetProperties", mock.Anything).Return(nil, nil)
		propertyRepo.On("List", mock.Anything).Return(properties, nil)
		cacheRepo.On("SetProperties", mock.Anything, properties, mock.Anything).Return(nil)
		streamRepo.On("Publish", mock.Anything, domain.StreamDiscoveryEvents, mock.Anything).Return(nil)
		geoProvider.On("CurrentPosition", mock.Anything, "10.0.0.1").
			Return(nil, errors.New("private range"))

		resp, err := uc.StartSession(ctx, dto.StartSessionRequest{ClientIP: "10.0.0.1"})
		require.NoError(t, err)

		assert.InDelta(t, 59.93, resp.Snapshot.Viewport.Center.Lat, 1e-9)
		assert.InDelta(t, 30.31, resp.Snapshot.Viewport.Center.Lon, 1e-9)
	})
}

func TestDiscoveryUseCase_SelectProperty(t *testing.T) {
	ctx := context.Background()

	startSession := func(t *testing.T, propertyRepo *MockPropertyRepository, cacheRepo *MockCacheRepository, streamRepo *MockStreamRepository, uc *usecase.DiscoveryUseCase, properties []domain.Property) uuid.UUID {
		t.Helper()

		cacheRepo.On("GetProperties", mock.Anything).Return(properties, nil)
		streamRepo.On("Publish", mock.Anything, domain.StreamDiscoveryEvents, mock.Anything).Return(nil)

		resp, err := uc.StartSession(ctx, dto.StartSessionRequest{
			Lat: ptrFloat64(59.93),
			Lon: ptrFloat64(30.31),
		})
		require.NoError(t, err)

		sessionID, err := uuid.Parse(resp.SessionID)
		require.NoError(t, err)
		return sessionID
	}

	t.Run("embedded areas skip loading", func(t *testing.T) {
		propertyRepo, cacheRepo, streamRepo, _, uc := discoveryFixture()

		property := domain.Property{
			ID:          uuid.New(),
			Name:        "Бизнес-центр",
			RawLocation: rawLoc(59.93, 30.36),
			Areas: []domain.AdvertisingArea{
				{ID: uuid.New(), Name: "Фасад", RawLocation: rawLoc(59.931, 30.361)},
			},
		}
		sessionID := startSession(t, propertyRepo, cacheRepo, streamRepo, uc, []domain.Property{property})

		resp, err := uc.SelectProperty(ctx, sessionID, property.ID)
		require.NoError(t, err)

		assert.Equal(t, string(domain.ModeAreas), resp.Snapshot.Mode)
		assert.Equal(t, string(domain.AreasLoaded), resp.Snapshot.AreasStatus)
		assert.Len(t, resp.Snapshot.VisibleEntities, 1)

		cacheRepo.AssertNotCalled(t, "GetAreas", mock.Anything, mock.Anything)
		propertyRepo.AssertNotCalled(t, "ListAreas", mock.Anything, mock.Anything)
	})

	t.Run("loads areas from repository and caches them", func(t *testing.T) {
		propertyRepo, cacheRepo, streamRepo, _, uc := discoveryFixture()

		property := domain.Property{ID: uuid.New(), Name: "Бизнес-центр", RawLocation: rawLoc(59.93, 30.36)}
		areas := []domain.AdvertisingArea{
			{ID: uuid.New(), PropertyID: property.ID, Name: "Фасад", RawLocation: rawLoc(59.931, 30.361)},
		}
		sessionID := startSession(t, propertyRepo, cacheRepo, streamRepo, uc, []domain.Property{property})

		cacheRepo.On("GetAreas", mock.Anything, property.ID).Return(nil, nil)
		propertyRepo.On("ListAreas", mock.Anything, property.ID).Return(areas, nil)
		cacheRepo.On("SetAreas", mock.Anything, property.ID, areas, mock.Anything).Return(nil)

		resp, err := uc.SelectProperty(ctx, sessionID, property.ID)
		require.NoError(t, err)

		assert.Equal(t, string(domain.ModeAreas), resp.Snapshot.Mode)
		assert.Equal(t, string(domain.AreasLoaded), resp.Snapshot.AreasStatus)
		require.Len(t, resp.Snapshot.VisibleEntities, 1)
		assert.Equal(t, "Фасад", resp.Snapshot.VisibleEntities[0].Name)

		propertyRepo.AssertExpectations(t)
		cacheRepo.AssertExpectations(t)
	})

	t.Run("areas load failure switches mode with failed status", func(t *testing.T) {
		propertyRepo, cacheRepo, streamRepo, _, uc := discoveryFixture()

		property := domain.Property{ID: uuid.New(), Name: "Бизнес-центр", RawLocation: rawLoc(59.93, 30.36)}
		sessionID := startSession(t, propertyRepo, cacheRepo, streamRepo, uc, []domain.Property{property})

		cacheRepo.On("GetAreas", mock.Anything, property.ID).Return(nil, nil)
		propertyRepo.On("ListAreas", mock.Anything, property.ID).Return(nil, errors.New("timeout"))

		resp, err := uc.SelectProperty(ctx, sessionID, property.ID)
		require.NoError(t, err)

		assert.Equal(t, string(domain.ModeAreas), resp.Snapshot.Mode)
		assert.Equal(t, string(domain.AreasFailed), resp.Snapshot.AreasStatus)
		assert.Empty(t, resp.Snapshot.VisibleEntities)
	})

	t.Run("unknown property", func(t *testing.T) {
		propertyRepo, cacheRepo, streamRepo, _, uc := discoveryFixture()

		property := domain.Property{ID: uuid.New(), Name: "Бизнес-центр", RawLocation: rawLoc(59.93, 30.36)}
		sessionID := startSession(t, propertyRepo, cacheRepo, streamRepo, uc, []domain.Property{property})

		_, err := uc.SelectProperty(ctx, sessionID, uuid.New())
		assert.ErrorIs(t, err, pkgerrors.ErrPropertyNotFound)
	})

	t.Run("unknown session", func(t *testing.T) {
		_, _, _, _, uc := discoveryFixture()

		_, err := uc.SelectProperty(ctx, uuid.New(), uuid.New())
		assert.ErrorIs(t, err, pkgerrors.ErrSessionNotFound)
	})
}

func TestDiscoveryUseCase_SearchAndBack(t *testing.T) {
	ctx := context.Background()
	_, cacheRepo, streamRepo, _, uc := discoveryFixture()

	properties := []domain.Property{
		{ID: uuid.New(), Name: "Торговый центр Галерея", RawLocation: rawLoc(59.93, 30.36)},
		{ID: uuid.New(), Name: "ТРЦ Мега", RawLocation: rawLoc(59.90, 30.51)},
	}

	cacheRepo.On("GetProperties", mock.Anything).Return(properties, nil)
	streamRepo.On("Publish", mock.Anything, domain.StreamDiscoveryEvents, mock.Anything).Return(nil)

	resp, err := uc.StartSession(ctx, dto.StartSessionRequest{
		Lat: ptrFloat64(59.93),
		Lon: ptrFloat64(30.31),
	})
	require.NoError(t, err)
	sessionID := uuid.MustParse(resp.SessionID)

	resp, err = uc.Search(ctx, sessionID, dto.SearchRequest{Term: "мега"})
	require.NoError(t, err)
	require.Len(t, resp.Snapshot.VisibleEntities, 1)
	assert.Equal(t, "ТРЦ Мега", resp.Snapshot.VisibleEntities[0].Name)
	assert.Equal(t, "мега", resp.Snapshot.Term)

	resp, err = uc.Search(ctx, sessionID, dto.SearchRequest{Term: ""})
	require.NoError(t, err)
	assert.Len(t, resp.Snapshot.VisibleEntities, 2)

	resp, err = uc.Back(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.ModeProperties), resp.Snapshot.Mode)
}

func TestDiscoveryUseCase_EndSession(t *testing.T) {
	ctx := context.Background()
	_, cacheRepo, streamRepo, _, uc := discoveryFixture()

	cacheRepo.On("GetProperties", mock.Anything).Return([]domain.Property{}, nil)
	streamRepo.On("Publish", mock.Anything, domain.StreamDiscoveryEvents, mock.Anything).Return(nil)

	resp, err := uc.StartSession(ctx, dto.StartSessionRequest{
		Lat: ptrFloat64(59.93),
		Lon: ptrFloat64(30.31),
	})
	require.NoError(t, err)
	sessionID := uuid.MustParse(resp.SessionID)

	require.NoError(t, uc.EndSession(ctx, sessionID))

	_, err = uc.Snapshot(ctx, sessionID)
	assert.ErrorIs(t, err, pkgerrors.ErrSessionNotFound)

	err = uc.EndSession(ctx, sessionID)
	assert.ErrorIs(t, err, pkgerrors.ErrSessionNotFound)
}
