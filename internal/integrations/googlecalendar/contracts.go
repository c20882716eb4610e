package googlecalendar

import "context"

// SettingsRepository интерфейс хранилища настроек для токенов и флага переподключения
type SettingsRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Metrics интерфейс для метрик вызовов календаря
type Metrics interface {
	CalendarCall(operation, outcome string)
}
