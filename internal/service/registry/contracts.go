package registry

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// SnapshotStore интерфейс key-value хранилища snapshot'а реестра
type SnapshotStore interface {
	LoadRaw(ctx context.Context) ([]byte, error)
	SaveRegistry(ctx context.Context, reg *domain.Registry) error
	PublishChange(ctx context.Context, key string) error
}

// TimeProvider источник текущего времени (инжектируется для тестируемости)
type TimeProvider interface {
	NowMs() int64
}

// RealTimeProvider возвращает системное время
type RealTimeProvider struct{}

// NowMs возвращает текущее время в миллисекундах
func (RealTimeProvider) NowMs() int64 {
	return time.Now().UnixMilli()
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
