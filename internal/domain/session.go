package domain

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/adspace-discovery/internal/pkg/errors"
)

// ViewMode - режим двухуровневой навигации
type ViewMode string

const (
	ModeProperties ViewMode = "properties"
	ModeAreas      ViewMode = "areas"
)

// AreasLoadStatus - состояние загрузки рекламных поверхностей.
// "Поверхностей нет" и "загрузка упала" - разные сигналы, они не схлопываются.
type AreasLoadStatus string

const (
	AreasIdle    AreasLoadStatus = "idle"
	AreasLoading AreasLoadStatus = "loading"
	AreasLoaded  AreasLoadStatus = "loaded"
	AreasFailed  AreasLoadStatus = "failed"
)

// SelectionState - текущий выбор пользователя.
// Инварианты: Mode == ModeAreas влечёт SelectedProperty != nil;
// SelectedArea != nil влечёт Mode == ModeAreas.
type SelectionState struct {
	Mode             ViewMode         `json:"mode"`
	SelectedProperty *Property        `json:"selected_property,omitempty"`
	SelectedArea     *AdvertisingArea `json:"selected_area,omitempty"`
}

// Snapshot - полный наблюдаемый выход движка после каждого события.
// Заполнен ровно один из списков VisibleProperties / VisibleAreas,
// соответствующий текущему режиму.
type Snapshot struct {
	Mode              ViewMode                  `json:"mode"`
	VisibleProperties []Ranked[Property]        `json:"visible_properties,omitempty"`
	VisibleAreas      []Ranked[AdvertisingArea] `json:"visible_areas,omitempty"`
	Selection         SelectionState            `json:"selection"`
	Viewport          ViewportState             `json:"viewport"`
	Term              string                    `json:"term"`
	AreasStatus       AreasLoadStatus           `json:"areas_status"`
	PropertiesFailed  bool                      `json:"properties_failed"`
}

// Session - discovery-сессия: state machine двухуровневой навигации плюс
// viewport и поисковый запрос. Все мутации сериализуются мьютексом (Go-аналог
// однопоточного event loop исходного движка). Асинхронные загрузки помечаются
// номером поколения и применяются через ApplyAreas только если поколение всё
// ещё актуально.
type Session struct {
	id uuid.UUID

	mu               sync.Mutex
	mode             ViewMode
	properties       []Property
	areas            []AdvertisingArea
	selectedProperty *Property
	selectedArea     *AdvertisingArea
	term             string
	viewport         ViewportState
	browseZoom       int
	areasStatus      AreasLoadStatus
	propertiesFailed bool
	generation       uint64
	closed           bool
	limit            int
	lastActive       time.Time

	// areasCache - append-only кеш загруженных поверхностей на время жизни
	// сессии, ключ - id property. Повторный drill-down не перезапрашивает.
	areasCache map[uuid.UUID][]AdvertisingArea
}

// NewSession создаёт сессию в режиме properties. Сущности без распознанной
// координаты отбрасываются из рабочего набора на входе.
func NewSession(id uuid.UUID, properties []Property, propertiesFailed bool, center Point, limit int) *Session {
	locatable := make([]Property, 0, len(properties))
	for _, p := range properties {
		if p.Coordinate() != nil {
			locatable = append(locatable, p)
		}
	}

	return &Session{
		id:               id,
		mode:             ModeProperties,
		properties:       locatable,
		viewport:         ViewportState{Center: center, Zoom: ZoomCity},
		browseZoom:       ZoomCity,
		areasStatus:      AreasIdle,
		propertiesFailed: propertiesFailed,
		limit:            limit,
		lastActive:       time.Now(),
		areasCache:       make(map[uuid.UUID][]AdvertisingArea),
	}
}

func (s *Session) ID() uuid.UUID { return s.id }

// SetTerm устанавливает поисковый запрос текущего режима
func (s *Session) SetTerm(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.term = term
	s.lastActive = time.Now()
}

// SelectProperty - drill-down в property. Допустим из обоих режимов: выбор
// другого property прямо из режима areas ведёт себя так же, как с верхнего
// уровня. Порядок эффектов: выбор, сброс selectedArea, recenter viewport,
// затем загрузка поверхностей. Режим переключается на areas только при
// применении результата загрузки (ApplyAreas), для кеша - сразу.
//
// Возвращает номер поколения для асинхронной загрузки и loaded=true, если
// поверхности применены синхронно (кеш сессии или embedded-список) и
// запрашивать их не нужно.
func (s *Session) SelectProperty(propertyID uuid.UUID) (gen uint64, loaded bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, false, errors.ErrSessionNotFound
	}

	var selected *Property
	for i := range s.properties {
		if s.properties[i].ID == propertyID {
			selected = &s.properties[i]
			break
		}
	}
	if selected == nil {
		return 0, false, errors.ErrPropertyNotFound
	}

	coord := selected.Coordinate()
	if coord == nil {
		return 0, false, errors.ErrUnlocatableProperty
	}

	s.selectedProperty = selected
	s.selectedArea = nil
	if s.mode == ModeProperties {
		s.browseZoom = s.viewport.Zoom
	}
	s.viewport.Recenter(*coord, ZoomBlock)

	s.generation++
	gen = s.generation
	s.lastActive = time.Now()

	if cached, ok := s.areasCache[selected.ID]; ok {
		s.applyAreasLocked(cached, false)
		return gen, true, nil
	}
	if selected.Areas != nil {
		s.areasCache[selected.ID] = selected.Areas
		s.applyAreasLocked(selected.Areas, false)
		return gen, true, nil
	}

	s.areas = nil
	s.areasStatus = AreasLoading
	return gen, false, nil
}

// ApplyAreas применяет результат загрузки поверхностей, выпущенной под
// поколением gen. Устаревший результат (сессия закрыта, пользователь успел
// выбрать другой property или нажать back) молча отбрасывается - возвращается
// false. При неуспешной загрузке режим всё равно переключается на areas с
// пустым списком.
func (s *Session) ApplyAreas(gen uint64, areas []AdvertisingArea, loadFailed bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || gen != s.generation || s.selectedProperty == nil {
		return false
	}

	if !loadFailed {
		s.areasCache[s.selectedProperty.ID] = areas
	}
	s.applyAreasLocked(areas, loadFailed)
	return true
}

func (s *Session) applyAreasLocked(areas []AdvertisingArea, loadFailed bool) {
	locatable := make([]AdvertisingArea, 0, len(areas))
	for _, a := range areas {
		if a.Coordinate() != nil {
			locatable = append(locatable, a)
		}
	}

	s.areas = locatable
	s.mode = ModeAreas
	if loadFailed {
		s.areasStatus = AreasFailed
	} else {
		s.areasStatus = AreasLoaded
	}
}

// SelectArea - выбор поверхности внутри drill-down. Режим не меняется.
// Если у поверхности есть собственная координата, viewport центрируется на
// ней; зум при этом не трогаем.
func (s *Session) SelectArea(areaID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return errors.ErrSessionNotFound
	}
	if s.mode != ModeAreas {
		return errors.ErrNoAreaSelection
	}

	for i := range s.areas {
		if s.areas[i].ID == areaID {
			s.selectedArea = &s.areas[i]
			if coord := s.areas[i].Coordinate(); coord != nil {
				s.viewport.Recenter(*coord, s.viewport.Zoom)
			}
			s.lastActive = time.Now()
			return nil
		}
	}

	return errors.ErrAreaNotFound
}

// Back возвращает в режим properties: сбрасывает выбор и видимый рабочий
// набор поверхностей, восстанавливает зум, действовавший до drill-down, и
// поднимает поколение, чтобы незавершённые загрузки умерли. Кеш поверхностей
// сохраняется - повторный вход в тот же property не перезапрашивает данные.
func (s *Session) Back() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	s.mode = ModeProperties
	s.selectedProperty = nil
	// selectedArea чистится на каждом входе в properties, инвариант
	// mode == properties => selectedArea == nil держится безусловно
	s.selectedArea = nil
	s.areas = nil
	s.areasStatus = AreasIdle
	s.generation++
	s.viewport.Recenter(s.viewport.Center, s.browseZoom)
	s.lastActive = time.Now()
}

// Close помечает сессию мёртвой: любые результаты незавершённых загрузок
// после этого отбрасываются
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.generation++
}

func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// IdleSince возвращает время последней активности
func (s *Session) IdleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// Snapshot прогоняет рабочий набор текущего режима через фильтр и ранкер и
// возвращает полный наблюдаемый выход движка. Опорная точка ранжирования -
// текущий центр viewport.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Mode: s.mode,
		Selection: SelectionState{
			Mode:             s.mode,
			SelectedProperty: s.selectedProperty,
			SelectedArea:     s.selectedArea,
		},
		Viewport:         s.viewport,
		Term:             s.term,
		AreasStatus:      s.areasStatus,
		PropertiesFailed: s.propertiesFailed,
	}

	switch s.mode {
	case ModeAreas:
		filtered := FilterByTerm(s.areas, s.term, AreaSearchFields())
		snap.VisibleAreas = RankByProximity(filtered, s.viewport.Center, s.limit)
	default:
		filtered := FilterByTerm(s.properties, s.term, PropertySearchFields())
		snap.VisibleProperties = RankByProximity(filtered, s.viewport.Center, s.limit)
	}

	return snap
}
