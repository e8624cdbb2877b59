package toggle_slot

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

type OccupancyService interface {
	Toggle(ctx context.Context, index int) (*domain.Registry, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
