package chat_message

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/service/query"
)

type QueryService interface {
	Chat(ctx context.Context, message string) (*query.ChatResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
