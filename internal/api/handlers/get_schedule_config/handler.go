package get_schedule_config

import (
	"net/http"

	"github.com/meetlane/booking-service/internal/api/handlers"
)

type Handler struct {
	availability AvailabilityStore
	logger       Logger
}

func NewHandler(availability AvailabilityStore, logger Logger) *Handler {
	return &Handler{
		availability: availability,
		logger:       logger,
	}
}

// Handle GET /api/v1/admin/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	template, err := h.availability.GetWeeklyTemplate(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/schedule - Failed to get template: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	rules, err := h.availability.GetBookingRules(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/schedule - Failed to get rules: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/schedule - Schedule config retrieved")
	handlers.RespondJSON(w, http.StatusOK, FromDomain(template, rules))
}
