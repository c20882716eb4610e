package upsert_service

import (
	"context"

	"github.com/meetlane/booking-service/internal/domain"
)

type ServiceRegistry interface {
	Create(ctx context.Context, name string, durationMinutes int, description string) (*domain.Service, error)
	Update(ctx context.Context, id int64, name string, durationMinutes int, description string, isActive bool) (*domain.Service, error)
	Deactivate(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
