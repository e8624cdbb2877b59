package get_forecast

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/forecast"
)

type RegistryService interface {
	Load(ctx context.Context) (*domain.Registry, error)
}

type ForecastService interface {
	Forecast(ctx context.Context, totalSlots int) (*forecast.Summary, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
