package update_theme

import "context"

type ThemeStore interface {
	SetTheme(ctx context.Context, theme string) (string, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
