package domain

import (
	"time"

	"github.com/google/uuid"
)

// Stream names (должны совпадать с consumer-ами аналитики)
const (
	StreamDiscoveryEvents = "stream:discovery:events"
)

// Типы discovery-событий
const (
	EventSessionStarted   = "session_started"
	EventSearchPerformed  = "search_performed"
	EventPropertySelected = "property_selected"
	EventAreaSelected     = "area_selected"
	EventSessionEnded     = "session_ended"
)

// DiscoveryEvent - событие аналитики discovery-движка для Redis Stream
type DiscoveryEvent struct {
	EventID    uuid.UUID  `json:"event_id"`
	SessionID  uuid.UUID  `json:"session_id"`
	Type       string     `json:"type"`
	PropertyID *uuid.UUID `json:"property_id,omitempty"`
	AreaID     *uuid.UUID `json:"area_id,omitempty"`
	Term       string     `json:"term,omitempty"`
	OccurredAt time.Time  `json:"occurred_at"`
}

// EventCount - агрегат по типу события за день
type EventCount struct {
	Day   time.Time `json:"day" db:"day"`
	Type  string    `json:"type" db:"type"`
	Count int64     `json:"count" db:"count"`
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
