package domain

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// EntityKind - дискриминатор сущностей карты
type EntityKind string

const (
	KindProperty EntityKind = "property"
	KindArea     EntityKind = "advertising_area"
)

// Locatable - сущность, которую можно отобразить на карте.
// Coordinate возвращает nil, если локация сущности не распознана.
type Locatable interface {
	EntityID() uuid.UUID
	DisplayName() string
	Coordinate() *Point
	Kind() EntityKind
}

// Property - объект недвижимости, владеющий рекламными поверхностями
type Property struct {
	ID           uuid.UUID         `json:"id" db:"id"`
	Name         string            `json:"name" db:"name"`
	AddressParts []string          `json:"address_parts" db:"address_parts"`
	RawLocation  json.RawMessage   `json:"raw_location,omitempty" db:"raw_location"`
	Areas        []AdvertisingArea `json:"advertising_areas,omitempty" db:"-"`
	CreatedAt    time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at" db:"updated_at"`
}

func (p Property) EntityID() uuid.UUID { return p.ID }

func (p Property) DisplayName() string { return p.Name }

func (p Property) Coordinate() *Point { return ResolveCoordinate(p.RawLocation) }

func (p Property) Kind() EntityKind { return KindProperty }

// ComposedAddress склеивает части адреса для поиска и отображения
func (p Property) ComposedAddress() string {
	return strings.Join(p.AddressParts, ", ")
}

// RateInfo - цены размещения; любое из значений может отсутствовать
type RateInfo struct {
	Daily   *float64 `json:"daily,omitempty" db:"rate_daily"`
	Weekly  *float64 `json:"weekly,omitempty" db:"rate_weekly"`
	Monthly *float64 `json:"monthly,omitempty" db:"rate_monthly"`
}

// AdvertisingArea - рекламная поверхность внутри property.
// Принадлежит ровно одному property и не разделяется между ними.
type AdvertisingArea struct {
	ID           uuid.UUID       `json:"id" db:"id"`
	PropertyID   uuid.UUID       `json:"property_id" db:"property_id"`
	Name         string          `json:"name" db:"name"`
	AddressParts []string        `json:"address_parts" db:"address_parts"`
	RawLocation  json.RawMessage `json:"raw_location,omitempty" db:"raw_location"`
	Category     string          `json:"category" db:"category"`
	Rate         RateInfo        `json:"rate"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at" db:"updated_at"`
}

func (a AdvertisingArea) EntityID() uuid.UUID { return a.ID }

func (a AdvertisingArea) DisplayName() string { return a.Name }

func (a AdvertisingArea) Coordinate() *Point { return ResolveCoordinate(a.RawLocation) }

func (a AdvertisingArea) Kind() EntityKind { return KindArea }

// ComposedAddress склеивает части адреса для поиска и отображения
func (a AdvertisingArea) ComposedAddress() string {
	return strings.Join(a.AddressParts, ", ")
}

// PropertySearchFields - набор текстовых полей property для поиска
func PropertySearchFields() []func(Property) string {
	return []func(Property) string{
		Property.DisplayName,
		Property.ComposedAddress,
	}
}

// AreaSearchFields - набор текстовых полей рекламной поверхности для поиска
func AreaSearchFields() []func(AdvertisingArea) string {
	return []func(AdvertisingArea) string{
		AdvertisingArea.DisplayName,
		AdvertisingArea.ComposedAddress,
		func(a AdvertisingArea) string { return a.Category },
	}
}
