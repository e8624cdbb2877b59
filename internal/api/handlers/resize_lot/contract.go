package resize_lot

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

type RegistryService interface {
	Resize(ctx context.Context, newTotal int) (*domain.Registry, error)
}

// ForecastInvalidator сбрасывает кэш прогноза при смене вместимости
type ForecastInvalidator interface {
	Invalidate()
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
