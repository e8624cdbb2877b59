package search_slots

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/service/query"
)

type QueryService interface {
	Search(ctx context.Context, rawQuery string) (*query.Result, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
