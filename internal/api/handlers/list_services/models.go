package list_services

import (
	"github.com/meetlane/booking-service/internal/domain"
)

// ServiceItem элемент списка услуг
type ServiceItem struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Slug            string `json:"slug"`
	DurationMinutes int    `json:"durationMinutes"`
	Description     string `json:"description,omitempty"`
	IsActive        bool   `json:"isActive"`
}

// ListServicesResponse HTTP response model
type ListServicesResponse struct {
	Services []ServiceItem `json:"services"`
}

// FromDomain конвертирует список услуг в HTTP response
func FromDomain(list []*domain.Service) *ListServicesResponse {
	items := make([]ServiceItem, 0, len(list))
	for _, s := range list {
		items = append(items, ServiceItem{
			ID:              s.ID,
			Name:            s.Name,
			Slug:            s.Slug,
			DurationMinutes: s.DurationMinutes,
			Description:     s.Description,
			IsActive:        s.IsActive,
		})
	}
	return &ListServicesResponse{Services: items}
}
