package dto

// StartSessionRequest - запрос на открытие discovery-сессии.
// Координаты опциональны: без них центр определяется best-effort
// геолокацией по IP, а при её отказе - центром по умолчанию.
type StartSessionRequest struct {
	Lat   *float64 `json:"lat" validate:"omitempty,gte=-90,lte=90"`
	Lon   *float64 `json:"lon" validate:"omitempty,gte=-180,lte=180"`
	Limit int      `json:"limit" validate:"omitempty,gte=1,lte=200"`

	// ClientIP заполняется handler-ом из запроса, не телом
	ClientIP string `json:"-"`
}

// SearchRequest - установка поискового запроса текущего режима
type SearchRequest struct {
	Term string `json:"term" validate:"max=256"`
}

// SelectPropertyRequest - drill-down в property
type SelectPropertyRequest struct {
	PropertyID string `json:"property_id" validate:"required,uuid"`
}

// SelectAreaRequest - выбор рекламной поверхности внутри drill-down
type SelectAreaRequest struct {
	AreaID string `json:"area_id" validate:"required,uuid"`
}
