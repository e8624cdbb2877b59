package set_slot_type

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

type OccupancyService interface {
	SetType(ctx context.Context, index int, slotType domain.SlotType) (*domain.Registry, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
