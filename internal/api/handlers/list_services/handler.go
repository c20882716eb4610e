package list_services

import (
	"net/http"

	"github.com/meetlane/booking-service/internal/api/handlers"
	"github.com/meetlane/booking-service/internal/domain"
)

type Handler struct {
	registry ServiceRegistry
	logger   Logger
}

func NewHandler(registry ServiceRegistry, logger Logger) *Handler {
	return &Handler{
		registry: registry,
		logger:   logger,
	}
}

// Handle GET /api/v1/services
// Query params: all=true включает деактивированные услуги (админский список)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var (
		list []*domain.Service
		err  error
	)

	if r.URL.Query().Get("all") == "true" {
		list, err = h.registry.ListAll(r.Context())
	} else {
		list, err = h.registry.ListActive(r.Context())
	}

	if err != nil {
		h.logger.Error("GET /services - Failed to list services: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /services - Listed %d service(s)", len(list))
	handlers.RespondJSON(w, http.StatusOK, FromDomain(list))
}
