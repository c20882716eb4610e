package list_services

import (
	"context"

	"github.com/meetlane/booking-service/internal/domain"
)

type ServiceRegistry interface {
	ListActive(ctx context.Context) ([]*domain.Service, error)
	ListAll(ctx context.Context) ([]*domain.Service, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
