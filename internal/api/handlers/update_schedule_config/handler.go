package update_schedule_config

import (
	"errors"
	"net/http"

	"github.com/meetlane/booking-service/internal/api/handlers"
	"github.com/meetlane/booking-service/internal/service/availability"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgNothingToUpdate    = "weeklyTemplate or bookingRules must be present"
	msgInvalidTemplate    = "invalid weekly template"
	msgInvalidRules       = "invalid booking rules"
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

// Handle PUT /api/v1/admin/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req UpdateScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/schedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.WeeklyTemplate == nil && req.BookingRules == nil {
		h.logger.Warn("PUT /admin/schedule - Empty update")
		handlers.RespondBadRequest(w, msgNothingToUpdate)
		return
	}

	if req.WeeklyTemplate != nil {
		template, err := req.ToTemplate()
		if err != nil {
			h.logger.Warn("PUT /admin/schedule - Bad template: %v", err)
			handlers.RespondBadRequest(w, msgInvalidTemplate)
			return
		}

		if err := h.availability.UpdateWeeklyTemplate(r.Context(), template); err != nil {
			switch {
			case errors.Is(err, availability.ErrTooManyWindows),
				errors.Is(err, availability.ErrInvalidWindow),
				errors.Is(err, availability.ErrOverlappingWindows):
				h.logger.Warn("PUT /admin/schedule - Template validation failed: %v", err)
				handlers.RespondBadRequest(w, msgInvalidTemplate)

			default:
				h.logger.Error("PUT /admin/schedule - Failed to save template: %v", err)
				handlers.RespondInternalError(w)
			}
			return
		}
	}

	if req.BookingRules != nil {
		if err := h.availability.UpdateBookingRules(r.Context(), *req.BookingRules); err != nil {
			switch {
			case errors.Is(err, availability.ErrInvalidRules):
				h.logger.Warn("PUT /admin/schedule - Rules validation failed: %v", err)
				handlers.RespondBadRequest(w, msgInvalidRules)

			default:
				h.logger.Error("PUT /admin/schedule - Failed to save rules: %v", err)
				handlers.RespondInternalError(w)
			}
			return
		}
	}

	h.logger.Info("PUT /admin/schedule - Schedule config updated (template=%t, rules=%t)",
		req.WeeklyTemplate != nil, req.BookingRules != nil)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
