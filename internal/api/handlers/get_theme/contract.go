package get_theme

import "context"

type ThemeStore interface {
	GetTheme(ctx context.Context) (string, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
