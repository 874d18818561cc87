package worker

import (
	"context"
)

// Worker - интерфейс фонового воркера
type Worker interface {
	// Start запускает цикл обработки воркера
	Start(ctx context.Context) error

	// Stop сигнализирует воркеру о завершении
	Stop() error

	// Name возвращает имя воркера
	Name() string
}
