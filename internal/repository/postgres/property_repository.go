package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/adspace-discovery/internal/domain"
	"github.com/adspace-discovery/internal/domain/repository"
)

type propertyRepository struct {
	db *DB
}

// NewPropertyRepository создает новый PropertyRepository поверх PostgreSQL
func NewPropertyRepository(db *DB) repository.PropertyRepository {
	return &propertyRepository{db: db}
}

type propertyRow struct {
	ID           uuid.UUID      `db:"id"`
	Name         string         `db:"name"`
	AddressParts pq.StringArray `db:"address_parts"`
	RawLocation  []byte         `db:"raw_location"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

type areaRow struct {
	ID           uuid.UUID      `db:"id"`
	PropertyID   uuid.UUID      `db:"property_id"`
	Name         string         `db:"name"`
	AddressParts pq.StringArray `db:"address_parts"`
	RawLocation  []byte         `db:"raw_location"`
	Category     string         `db:"category"`
	RateDaily    *float64       `db:"rate_daily"`
	RateWeekly   *float64       `db:"rate_weekly"`
	RateMonthly  *float64       `db:"rate_monthly"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

func (r propertyRow) toDomain() domain.Property {
	return domain.Property{
		ID:           r.ID,
		Name:         r.Name,
		AddressParts: r.AddressParts,
		RawLocation:  json.RawMessage(r.RawLocation),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func (r areaRow) toDomain() domain.AdvertisingArea {
	return domain.AdvertisingArea{
		ID:           r.ID,
		PropertyID:   r.PropertyID,
		Name:         r.Name,
		AddressParts: r.AddressParts,
		RawLocation:  json.RawMessage(r.RawLocation),
		Category:     r.Category,
		Rate: domain.RateInfo{
			Daily:   r.RateDaily,
			Weekly:  r.RateWeekly,
			Monthly: r.RateMonthly,
		},
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// List возвращает полную коллекцию properties для браузинга
func (r *propertyRepository) List(ctx context.Context) ([]domain.Property, error) {
	query := `
		SELECT id, name, address_parts, raw_location, created_at, updated_at
		FROM properties
		WHERE approved = true
		ORDER BY created_at DESC`

	var rows []propertyRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		r.db.logger.Error("Failed to list properties", zap.Error(err))
		return nil, fmt.Errorf("list properties: %w", err)
	}

	properties := make([]domain.Property, 0, len(rows))
	for _, row := range rows {
		properties = append(properties, row.toDomain())
	}

	return properties, nil
}

// GetByID возвращает property по идентификатору
func (r *propertyRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Property, error) {
	query := `
		SELECT id, name, address_parts, raw_location, created_at, updated_at
		FROM properties
		WHERE id = $1`

	var row propertyRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		r.db.logger.Error("Failed to get property",
			zap.String("property_id", id.String()),
			zap.Error(err))
		return nil, fmt.Errorf("get property: %w", err)
	}

	property := row.toDomain()
	return &property, nil
}

// ListAreas возвращает рекламные поверхности property
func (r *propertyRepository) ListAreas(ctx context.Context, propertyID uuid.UUID) ([]domain.AdvertisingArea, error) {
	query := `
		SELECT id, property_id, name, address_parts, raw_location, category,
		       rate_daily, rate_weekly, rate_monthly, created_at, updated_at
		FROM advertising_areas
		WHERE property_id = $1
		ORDER BY created_at`

	var rows []areaRow
	if err := r.db.SelectContext(ctx, &rows, query, propertyID); err != nil {
		r.db.logger.Error("Failed to list advertising areas",
			zap.String("property_id", propertyID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("list advertising areas: %w", err)
	}

	areas := make([]domain.AdvertisingArea, 0, len(rows))
	for _, row := range rows {
		areas = append(areas, row.toDomain())
	}

	return areas, nil
}
