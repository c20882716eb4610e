package upsert_service

import (
	"github.com/meetlane/booking-service/internal/domain"
)

// CreateServiceRequest HTTP request model для создания услуги
type CreateServiceRequest struct {
	Name            string `json:"name"`
	DurationMinutes int    `json:"durationMinutes"`
	Description     string `json:"description,omitempty"`
}

// UpdateServiceRequest HTTP request model для обновления услуги
type UpdateServiceRequest struct {
	Name            string `json:"name"`
	DurationMinutes int    `json:"durationMinutes"`
	Description     string `json:"description,omitempty"`
	IsActive        bool   `json:"isActive"`
}

// ServiceResponse HTTP response model
type ServiceResponse struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Slug            string `json:"slug"`
	DurationMinutes int    `json:"durationMinutes"`
	Description     string `json:"description,omitempty"`
	IsActive        bool   `json:"isActive"`
}

// FromDomain конвертирует услугу в HTTP response
func FromDomain(s *domain.Service) *ServiceResponse {
	return &ServiceResponse{
		ID:              s.ID,
		Name:            s.Name,
		Slug:            s.Slug,
		DurationMinutes: s.DurationMinutes,
		Description:     s.Description,
		IsActive:        s.IsActive,
	}
}
