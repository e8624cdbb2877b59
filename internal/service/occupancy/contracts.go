package occupancy

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// RegistryMutator интерфейс сервиса реестра для атомарных мутаций snapshot'а
type RegistryMutator interface {
	Mutate(ctx context.Context, fn func(reg *domain.Registry, nowMs int64) error) (*domain.Registry, error)
	Load(ctx context.Context) (*domain.Registry, error)
}

// SessionLog интерфейс журнала сессий (best-effort аналитика)
type SessionLog interface {
	RecordStart(ctx context.Context, rec *domain.SessionRecord) error
	RecordEnd(ctx context.Context, sessionID string, timeOutMs int64) error
}

// Counter интерфейс инкрементального счётчика метрик
type Counter interface {
	Inc()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
