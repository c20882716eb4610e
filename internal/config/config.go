package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	Booking       BookingConfig       `toml:"booking"`
	Calendar      CalendarConfig      `toml:"calendar"`
	Notifications NotificationsConfig `toml:"notifications"`
	Jobs          JobsConfig          `toml:"jobs"`
}

// ServerConfig настройки HTTP-сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN возвращает строку подключения PostgreSQL
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus-метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// BookingConfig настройки ядра бронирования
type BookingConfig struct {
	// Timezone: IANA-имя часового пояса провайдера; все расписания
	// считаются в нём
	Timezone string `toml:"timezone"`
	// AppSecret: секрет приложения, из него выводится ключ шифрования
	// токенов календаря
	AppSecret string `toml:"app_secret"`
}

// CalendarConfig настройки интеграции с Google Calendar
type CalendarConfig struct {
	Enabled      bool   `toml:"enabled"`
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	CalendarID   string `toml:"calendar_id"`
}

// NotificationsConfig настройки email-уведомлений
type NotificationsConfig struct {
	Enabled        bool   `toml:"enabled"`
	SendGridAPIKey string `toml:"sendgrid_api_key"`
	FromName       string `toml:"from_name"`
	FromEmail      string `toml:"from_email"`
	AdminEmail     string `toml:"admin_email"`
}

// JobsConfig настройки фоновых задач
type JobsConfig struct {
	PrewarmEnabled  bool   `toml:"prewarm_enabled"`
	PrewarmSchedule string `toml:"prewarm_schedule"`
}

// Load читает и валидирует конфигурацию из TOML-файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if cfg.Server.HTTPPort == 0 {
		cfg.Server.HTTPPort = 8080
	}
	if cfg.Booking.Timezone == "" {
		return nil, fmt.Errorf("config: booking.timezone is required")
	}
	if cfg.Booking.AppSecret == "" {
		return nil, fmt.Errorf("config: booking.app_secret is required")
	}
	if cfg.Metrics.Enabled && cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Jobs.PrewarmEnabled && cfg.Jobs.PrewarmSchedule == "" {
		cfg.Jobs.PrewarmSchedule = "*/30 * * * *"
	}

	return &cfg, nil
}
