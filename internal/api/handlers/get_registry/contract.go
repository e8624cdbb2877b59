package get_registry

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

type RegistryService interface {
	Load(ctx context.Context) (*domain.Registry, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
