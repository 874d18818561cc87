package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/adspace-discovery/internal/config"
	"github.com/adspace-discovery/internal/domain"
	"github.com/adspace-discovery/internal/domain/repository"
	"github.com/adspace-discovery/internal/pkg/errors"
	"github.com/adspace-discovery/internal/pkg/utils"
	"github.com/adspace-discovery/internal/usecase/dto"
)

// DiscoveryUseCase - оркестрация discovery-сессий: загрузка коллекций,
// drill-down с кешированием и отбрасыванием устаревших результатов,
// публикация аналитических событий
type DiscoveryUseCase struct {
	propertyRepo repository.PropertyRepository
	cacheRepo    repository.CacheRepository
	streamRepo   repository.StreamRepository
	geoProvider  repository.GeolocationProvider
	logger       *zap.Logger
	discoveryCfg config.DiscoveryConfig
	cacheCfg     config.CacheConfig

	mu       sync.RWMutex
	sessions map[uuid.UUID]*domain.Session
}

// NewDiscoveryUseCase - создание нового DiscoveryUseCase
func NewDiscoveryUseCase(
	propertyRepo repository.PropertyRepository,
	cacheRepo repository.CacheRepository,
	streamRepo repository.StreamRepository,
	geoProvider repository.GeolocationProvider,
	logger *zap.Logger,
	discoveryCfg config.DiscoveryConfig,
	cacheCfg config.CacheConfig,
) *DiscoveryUseCase {
	return &DiscoveryUseCase{
		propertyRepo: propertyRepo,
		cacheRepo:    cacheRepo,
		streamRepo:   streamRepo,
		geoProvider:  geoProvider,
		logger:       logger,
		discoveryCfg: discoveryCfg,
		cacheCfg:     cacheCfg,
		sessions:     make(map[uuid.UUID]*domain.Session),
	}
}

// StartSession открывает discovery-сессию: загружает коллекцию properties
// (кеш -> репозиторий; отказ загрузки схлопывается в пустую коллекцию с
// отдельным сигналом), определяет начальный центр viewport и публикует
// событие session_started
func (uc *DiscoveryUseCase) StartSession(ctx context.Context, req dto.StartSessionRequest) (*dto.SessionResponse, error) {
	// Валидация явно переданного центра: координаты идут только парой
	if (req.Lat == nil) != (req.Lon == nil) {
		return nil, errors.ErrInvalidCoordinates
	}

	limit := req.Limit
	if limit == 0 {
		limit = uc.discoveryCfg.DefaultLimit
	}

	properties, loadFailed := uc.loadProperties(ctx)
	center := uc.resolveCenter(ctx, req)

	session := domain.NewSession(uuid.New(), properties, loadFailed, center, limit)

	uc.mu.Lock()
	uc.sessions[session.ID()] = session
	uc.mu.Unlock()

	uc.logger.Info("Discovery session started",
		zap.String("session_id", session.ID().String()),
		zap.Int("properties", len(properties)),
		zap.Bool("load_failed", loadFailed))

	uc.publishEvent(ctx, domain.DiscoveryEvent{
		EventID:    uuid.New(),
		SessionID:  session.ID(),
		Type:       domain.EventSessionStarted,
		OccurredAt: time.Now().UTC(),
	})

	return uc.sessionResponse(session), nil
}

// Search устанавливает поисковый запрос текущего режима
func (uc *DiscoveryUseCase) Search(ctx context.Context, sessionID uuid.UUID, req dto.SearchRequest) (*dto.SessionResponse, error) {
	session, err := uc.session(sessionID)
	if err != nil {
		return nil, err
	}

	session.SetTerm(req.Term)

	uc.publishEvent(ctx, domain.DiscoveryEvent{
		EventID:    uuid.New(),
		SessionID:  sessionID,
		Type:       domain.EventSearchPerformed,
		Term:       req.Term,
		OccurredAt: time.Now().UTC(),
	})

	return uc.sessionResponse(session), nil
}

// SelectProperty - drill-down в property. Поверхности берутся по
// приоритету: кеш сессии / embedded-список -> Redis -> репозиторий.
// Результат загрузки применяется через номер поколения: если пользователь
// успел выбрать другой property или выйти, результат молча отбрасывается.
// Отказ загрузки даёт режим areas с пустым списком и статусом failed.
func (uc *DiscoveryUseCase) SelectProperty(ctx context.Context, sessionID, propertyID uuid.UUID) (*dto.SessionResponse, error) {
	session, err := uc.session(sessionID)
	if err != nil {
		return nil, err
	}

	gen, loaded, err := session.SelectProperty(propertyID)
	if err != nil {
		return nil, err
	}

	if !loaded {
		areas, loadFailed := uc.loadAreas(ctx, propertyID)
		if !session.ApplyAreas(gen, areas, loadFailed) {
			uc.logger.Debug("Stale areas load discarded",
				zap.String("session_id", sessionID.String()),
				zap.String("property_id", propertyID.String()))
		}
	}

	uc.publishEvent(ctx, domain.DiscoveryEvent{
		EventID:    uuid.New(),
		SessionID:  sessionID,
		Type:       domain.EventPropertySelected,
		PropertyID: &propertyID,
		OccurredAt: time.Now().UTC(),
	})

	return uc.sessionResponse(session), nil
}

// SelectArea - выбор рекламной поверхности внутри drill-down
func (uc *DiscoveryUseCase) SelectArea(ctx context.Context, sessionID, areaID uuid.UUID) (*dto.SessionResponse, error) {
	session, err := uc.session(sessionID)
	if err != nil {
		return nil, err
	}

	if err := session.SelectArea(areaID); err != nil {
		return nil, err
	}

	uc.publishEvent(ctx, domain.DiscoveryEvent{
		EventID:    uuid.New(),
		SessionID:  sessionID,
		Type:       domain.EventAreaSelected,
		AreaID:     &areaID,
		OccurredAt: time.Now().UTC(),
	})

	return uc.sessionResponse(session), nil
}

// Back возвращает сессию в режим properties
func (uc *DiscoveryUseCase) Back(ctx context.Context, sessionID uuid.UUID) (*dto.SessionResponse, error) {
	session, err := uc.session(sessionID)
	if err != nil {
		return nil, err
	}

	session.Back()
	return uc.sessionResponse(session), nil
}

// Snapshot возвращает текущее наблюдаемое состояние сессии
func (uc *DiscoveryUseCase) Snapshot(ctx context.Context, sessionID uuid.UUID) (*dto.SessionResponse, error) {
	session, err := uc.session(sessionID)
	if err != nil {
		return nil, err
	}

	return uc.sessionResponse(session), nil
}

// EndSession закрывает сессию; результаты незавершённых загрузок после
// этого отбрасываются
func (uc *DiscoveryUseCase) EndSession(ctx context.Context, sessionID uuid.UUID) error {
	uc.mu.Lock()
	session, ok := uc.sessions[sessionID]
	if ok {
		delete(uc.sessions, sessionID)
	}
	uc.mu.Unlock()

	if !ok {
		return errors.ErrSessionNotFound
	}

	session.Close()
	uc.logger.Info("Discovery session ended",
		zap.String("session_id", sessionID.String()))

	uc.publishEvent(ctx, domain.DiscoveryEvent{
		EventID:    uuid.New(),
		SessionID:  sessionID,
		Type:       domain.EventSessionEnded,
		OccurredAt: time.Now().UTC(),
	})

	return nil
}

// RunJanitor периодически закрывает простаивающие сессии. Блокирует до
// отмены контекста.
func (uc *DiscoveryUseCase) RunJanitor(ctx context.Context) {
	interval := uc.discoveryCfg.SessionIdleTTL / 2
	if interval < time.Minute {
		interval = time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			swept := uc.sweepIdle(uc.discoveryCfg.SessionIdleTTL)
			if swept > 0 {
				uc.logger.Info("Idle discovery sessions swept", zap.Int("count", swept))
			}
		}
	}
}

func (uc *DiscoveryUseCase) sweepIdle(maxIdle time.Duration) int {
	deadline := time.Now().Add(-maxIdle)

	uc.mu.Lock()
	defer uc.mu.Unlock()

	swept := 0
	for id, session := range uc.sessions {
		if session.IdleSince().Before(deadline) {
			session.Close()
			delete(uc.sessions, id)
			swept++
		}
	}
	return swept
}

func (uc *DiscoveryUseCase) session(sessionID uuid.UUID) (*domain.Session, error) {
	uc.mu.RLock()
	session, ok := uc.sessions[sessionID]
	uc.mu.RUnlock()

	if !ok {
		return nil, errors.ErrSessionNotFound
	}
	return session, nil
}

func (uc *DiscoveryUseCase) sessionResponse(session *domain.Session) *dto.SessionResponse {
	return &dto.SessionResponse{
		SessionID: session.ID().String(),
		Snapshot:  dto.ConvertSnapshot(session.Snapshot()),
	}
}

// loadProperties загружает коллекцию properties: кеш, затем репозиторий.
// Отказ репозитория схлопывается в пустую коллекцию: браузинг с частичными
// данными лучше заблокированного UI.
func (uc *DiscoveryUseCase) loadProperties(ctx context.Context) (properties []domain.Property, loadFailed bool) {
	cached, err := uc.cacheRepo.GetProperties(ctx)
	if err != nil {
		uc.logger.Warn("Properties cache read failed", zap.Error(err))
	}
	if cached != nil {
		return cached, false
	}

	properties, err = uc.propertyRepo.List(ctx)
	if err != nil {
		uc.logger.Error("Failed to load properties", zap.Error(err))
		return nil, true
	}

	if err := uc.cacheRepo.SetProperties(ctx, properties, uc.cacheCfg.PropertiesCacheTTL); err != nil {
		uc.logger.Warn("Properties cache write failed", zap.Error(err))
	}

	return properties, false
}

// loadAreas загружает поверхности property: Redis, затем репозиторий
func (uc *DiscoveryUseCase) loadAreas(ctx context.Context, propertyID uuid.UUID) (areas []domain.AdvertisingArea, loadFailed bool) {
	cached, err := uc.cacheRepo.GetAreas(ctx, propertyID)
	if err != nil {
		uc.logger.Warn("Areas cache read failed",
			zap.String("property_id", propertyID.String()),
			zap.Error(err))
	}
	if cached != nil {
		return cached, false
	}

	areas, err = uc.propertyRepo.ListAreas(ctx, propertyID)
	if err != nil {
		uc.logger.Error("Failed to load advertising areas",
			zap.String("property_id", propertyID.String()),
			zap.Error(err))
		return nil, true
	}

	if err := uc.cacheRepo.SetAreas(ctx, propertyID, areas, uc.cacheCfg.AreasCacheTTL); err != nil {
		uc.logger.Warn("Areas cache write failed",
			zap.String("property_id", propertyID.String()),
			zap.Error(err))
	}

	return areas, false
}

// resolveCenter определяет начальный центр viewport: явные координаты
// запроса, иначе best-effort геолокация по IP, иначе центр по умолчанию.
// Отказ геолокации молча игнорируется.
func (uc *DiscoveryUseCase) resolveCenter(ctx context.Context, req dto.StartSessionRequest) domain.Point {
	if req.Lat != nil && req.Lon != nil && utils.ValidateCoordinates(*req.Lat, *req.Lon) {
		return domain.Point{Lat: *req.Lat, Lon: *req.Lon}
	}

	if uc.geoProvider != nil && req.ClientIP != "" {
		if point, err := uc.geoProvider.CurrentPosition(ctx, req.ClientIP); err == nil && point != nil {
			return *point
		} else if err != nil {
			uc.logger.Debug("Geolocation unavailable", zap.Error(err))
		}
	}

	return domain.Point{
		Lat: uc.discoveryCfg.DefaultCenterLat,
		Lon: uc.discoveryCfg.DefaultCenterLon,
	}
}

// publishEvent отправляет discovery-событие в стрим аналитики. Отказ
// публикации не влияет на ответ пользователю.
func (uc *DiscoveryUseCase) publishEvent(ctx context.Context, event domain.DiscoveryEvent) {
	if uc.streamRepo == nil {
		return
	}

	if err := uc.streamRepo.Publish(ctx, domain.StreamDiscoveryEvents, event); err != nil {
		uc.logger.Warn("Failed to publish discovery event",
			zap.String("type", event.Type),
			zap.Error(err))
	}
}
