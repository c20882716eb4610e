package create_booking

import (
	"errors"
	"net/http"

	"github.com/meetlane/booking-service/internal/api/handlers"
	createBooking "github.com/meetlane/booking-service/internal/usecase/create_booking"
	"github.com/meetlane/booking-service/pkg/metrics"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgMissingFields      = "name, email, service, date and time are required"
	msgInvalidEmail       = "invalid email address"
	msgInvalidDate        = "invalid date, expected a real calendar date as YYYY-MM-DD"
	msgInvalidTime        = "invalid time, expected HH:MM"
	msgInvalidService     = "unknown or inactive service"
	msgInvalidInput       = "invalid input data"
	msgSlotTaken          = "this slot is no longer available"
	msgServerBusy         = "server is busy, please try again"
)

type Handler struct {
	useCase CreateBookingUseCase
	metrics *metrics.Metrics
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, m *metrics.Metrics, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		metrics: m,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrMissingFields):
			h.logger.Warn("POST /bookings - Missing fields")
			handlers.RespondBadRequest(w, msgMissingFields)

		case errors.Is(err, createBooking.ErrInvalidEmail):
			h.logger.Warn("POST /bookings - Invalid email")
			handlers.RespondBadRequest(w, msgInvalidEmail)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid date: %s", req.Date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createBooking.ErrInvalidTime):
			h.logger.Warn("POST /bookings - Invalid time: %s", req.Time)
			handlers.RespondBadRequest(w, msgInvalidTime)

		case errors.Is(err, createBooking.ErrInvalidService):
			h.logger.Warn("POST /bookings - Invalid service: service_id=%d", req.ServiceID)
			handlers.RespondBadRequest(w, msgInvalidService)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrSlotTaken):
			h.logger.Warn("POST /bookings - Slot taken: service_id=%d, date=%s, time=%s",
				req.ServiceID, req.Date, req.Time)
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.Is(err, createBooking.ErrServerBusy):
			h.logger.Warn("POST /bookings - Server busy: date=%s", req.Date)
			handlers.RespondServiceUnavailable(w, msgServerBusy)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: service_id=%d, date=%s, error=%v",
				req.ServiceID, req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if h.metrics != nil {
		h.metrics.BookingsCreatedTotal.Inc()
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%d, service_id=%d, date=%s, time=%s",
		result.ID, req.ServiceID, req.Date, req.Time)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
