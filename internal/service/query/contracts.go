package query

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// RegistryLoader интерфейс для чтения текущего snapshot'а реестра
type RegistryLoader interface {
	Load(ctx context.Context) (*domain.Registry, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
