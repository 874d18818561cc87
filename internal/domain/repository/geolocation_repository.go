package repository

import (
	"context"

	"github.com/adspace-discovery/internal/domain"
)

// GeolocationProvider - best-effort определение позиции клиента.
// Любая ошибка (отказ, таймаут, неизвестный IP) игнорируется вызывающей
// стороной: движок просто не центрируется на пользователе.
type GeolocationProvider interface {
	CurrentPosition(ctx context.Context, clientIP string) (*domain.Point, error)
}
