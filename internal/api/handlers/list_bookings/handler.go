package list_bookings

import (
	"errors"
	"net/http"
	"time"

	"github.com/meetlane/booking-service/internal/api/handlers"
	"github.com/meetlane/booking-service/internal/service/bookings"
	"github.com/meetlane/booking-service/pkg/types"
)

const (
	msgMissingRange = "from and to query parameters are required"
	msgInvalidDate  = "invalid date, expected YYYY-MM-DD"
	msgInvalidRange = "from must be before or equal to to"
)

type Handler struct {
	reader   BookingReader
	location *time.Location
	logger   Logger
}

func NewHandler(reader BookingReader, location *time.Location, logger Logger) *Handler {
	return &Handler{
		reader:   reader,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/admin/bookings
// Query params: from, to (YYYY-MM-DD, inclusive, provider timezone)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	fromStr := r.URL.Query().Get("from")
	toStr := r.URL.Query().Get("to")
	if fromStr == "" || toStr == "" {
		h.logger.Warn("GET /admin/bookings - Missing range")
		handlers.RespondBadRequest(w, msgMissingRange)
		return
	}

	from, err := types.ParseDate(fromStr, h.location)
	if err != nil {
		h.logger.Warn("GET /admin/bookings - Invalid from date: %s", fromStr)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	to, err := types.ParseDate(toStr, h.location)
	if err != nil {
		h.logger.Warn("GET /admin/bookings - Invalid to date: %s", toStr)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	if to.Before(from) {
		h.logger.Warn("GET /admin/bookings - Inverted range: from=%s, to=%s", fromStr, toStr)
		handlers.RespondBadRequest(w, msgInvalidRange)
		return
	}

	// Верхняя граница включительна: конец диапазона: полночь следующего дня
	list, err := h.reader.ListByDateRange(r.Context(), from.UTC(), to.AddDate(0, 0, 1).UTC())
	if err != nil {
		if errors.Is(err, bookings.ErrInvalidRange) {
			handlers.RespondBadRequest(w, msgInvalidRange)
			return
		}
		h.logger.Error("GET /admin/bookings - Failed to list: from=%s, to=%s, error=%v", fromStr, toStr, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/bookings - Listed: from=%s, to=%s, count=%d", fromStr, toStr, len(list))
	handlers.RespondJSON(w, http.StatusOK, FromDomain(fromStr, toStr, list))
}
