package domain

// Политика зума: обзор на уровне города при просмотре всех properties,
// приближение до квартала при drill-down в конкретный property.
const (
	ZoomCity  = 12
	ZoomBlock = 16
)

// ViewportState - центр и зум карты. Мутируется только через Recenter;
// рендеринг карты потребляет это состояние и находится вне движка.
type ViewportState struct {
	Center Point `json:"center"`
	Zoom   int   `json:"zoom"`
}

// Recenter - единственная точка мутации viewport
func (v *ViewportState) Recenter(center Point, zoom int) {
	v.Center = center
	v.Zoom = zoom
}
