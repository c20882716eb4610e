package upsert_service

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/meetlane/booking-service/internal/api/handlers"
	"github.com/meetlane/booking-service/internal/service/services"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidServiceID   = "invalid service id"
	msgInvalidName        = "service name is required"
	msgInvalidDuration    = "duration must be 15-240 minutes in 15-minute steps"
	msgSlugTaken          = "a service with this name already exists"
	msgNotFound           = "service not found"
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

// HandleCreate POST /api/v1/admin/services
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/services - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	created, err := h.registry.Create(r.Context(), req.Name, req.DurationMinutes, req.Description)
	if err != nil {
		h.respondRegistryError(w, "POST /admin/services", err)
		return
	}

	h.logger.Info("POST /admin/services - Service created: service_id=%d, slug=%s", created.ID, created.Slug)
	handlers.RespondJSON(w, http.StatusCreated, FromDomain(created))
}

// HandleUpdate PUT /api/v1/admin/services/{serviceId}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	serviceID, err := strconv.ParseInt(vars["serviceId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /admin/services/{id} - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	var req UpdateServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/services/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	updated, err := h.registry.Update(r.Context(), serviceID, req.Name, req.DurationMinutes, req.Description, req.IsActive)
	if err != nil {
		h.respondRegistryError(w, "PUT /admin/services/{id}", err)
		return
	}

	h.logger.Info("PUT /admin/services/{id} - Service updated: service_id=%d", serviceID)
	handlers.RespondJSON(w, http.StatusOK, FromDomain(updated))
}

// HandleDeactivate DELETE /api/v1/admin/services/{serviceId}
// Услуга снимается с бронирования, строка остаётся ради истории
func (h *Handler) HandleDeactivate(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	serviceID, err := strconv.ParseInt(vars["serviceId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /admin/services/{id} - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	if err := h.registry.Deactivate(r.Context(), serviceID); err != nil {
		h.respondRegistryError(w, "DELETE /admin/services/{id}", err)
		return
	}

	h.logger.Info("DELETE /admin/services/{id} - Service deactivated: service_id=%d", serviceID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

// respondRegistryError транслирует ошибки каталога услуг в HTTP-ответ
func (h *Handler) respondRegistryError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidName):
		h.logger.Warn("%s - Invalid name", route)
		handlers.RespondBadRequest(w, msgInvalidName)

	case errors.Is(err, services.ErrInvalidDuration):
		h.logger.Warn("%s - Invalid duration", route)
		handlers.RespondBadRequest(w, msgInvalidDuration)

	case errors.Is(err, services.ErrSlugTaken):
		h.logger.Warn("%s - Slug taken", route)
		handlers.RespondConflict(w, msgSlugTaken)

	case errors.Is(err, services.ErrServiceNotFound):
		h.logger.Warn("%s - Service not found", route)
		handlers.RespondNotFound(w, msgNotFound)

	default:
		h.logger.Error("%s - Registry error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
