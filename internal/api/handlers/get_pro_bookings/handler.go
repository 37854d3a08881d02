package get_pro_bookings

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/golfpro-saas/GolfPro-BookingService/internal/api/handlers"
	"github.com/golfpro-saas/GolfPro-BookingService/internal/api/middleware"
	"github.com/golfpro-saas/GolfPro-BookingService/internal/domain"
	bookingsService "github.com/golfpro-saas/GolfPro-BookingService/internal/service/bookings"
	"github.com/golfpro-saas/GolfPro-BookingService/internal/service/bookings/models"
)

const (
	msgInvalidProID  = "некорректный идентификатор преподавателя"
	msgInvalidFilter = "некорректные параметры фильтрации"
	msgAuthRequired  = "требуется аутентификация"
	msgAccessDenied  = "доступ запрещен"
)

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/pros/{proId}/bookings?from=...&to=...&status=...&includeInactive=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	proID, err := strconv.ParseInt(mux.Vars(r)["proId"], 10, 64)
	if err != nil || proID <= 0 {
		h.logger.Warn("GET /pros/{proId}/bookings - Invalid proId: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProID)
		return
	}

	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgAuthRequired)
		return
	}

	req := &models.GetProBookingsRequest{
		Actor: actor,
		ProID: proID,
	}

	query := r.URL.Query()
	if from, parseErr := parseDate(query.Get("from")); parseErr == nil && from != nil {
		req.From = from
	}
	if to, parseErr := parseDate(query.Get("to")); parseErr == nil && to != nil {
		req.To = to
	}
	if status := query.Get("status"); status != "" {
		req.Status = &status
	}
	req.IncludeInactive = query.Get("includeInactive") == "true"

	result, err := h.service.GetProBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrAccessDenied):
			h.logger.Warn("GET /pros/{proId}/bookings - Access denied: pro_id=%d, actor=%d", proID, actor.ID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, bookingsService.ErrInvalidInput):
			h.logger.Warn("GET /pros/{proId}/bookings - Invalid filter: pro_id=%d", proID)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /pros/{proId}/bookings - Failed: pro_id=%d, error=%v", proID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// parseDate парсит дату из query параметра, пустая строка не ошибка
func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(domain.DateFormat, value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
