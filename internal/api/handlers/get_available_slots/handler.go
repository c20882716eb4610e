package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/meetlane/booking-service/internal/api/handlers"
	getAvailableSlots "github.com/meetlane/booking-service/internal/usecase/get_available_slots"
	"github.com/meetlane/booking-service/pkg/metrics"
)

const (
	msgInvalidServiceID = "invalid service id"
	msgMissingDate      = "date query parameter is required"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	metrics *metrics.Metrics
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, m *metrics.Metrics, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		metrics: m,
		logger:  logger,
	}
}

// Handle GET /api/v1/services/{serviceId}/slots
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	serviceID, err := strconv.ParseInt(vars["serviceId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /services/{id}/slots - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		h.logger.Warn("GET /services/{id}/slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		Date:      date,
		ServiceID: serviceID,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /services/{id}/slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidServiceID)

		default:
			h.logger.Error("GET /services/{id}/slots - Failed to compute slots: service_id=%d, date=%s, error=%v",
				serviceID, date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if h.metrics != nil {
		h.metrics.SlotRequestsTotal.Inc()
	}

	h.logger.Info("GET /services/{id}/slots - Computed: service_id=%d, date=%s, slots_count=%d",
		serviceID, date, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
