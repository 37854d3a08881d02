package update_settings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/golfpro-saas/GolfPro-BookingService/internal/api/handlers"
	"github.com/golfpro-saas/GolfPro-BookingService/internal/api/middleware"
	settingsService "github.com/golfpro-saas/GolfPro-BookingService/internal/service/settings"
	"github.com/golfpro-saas/GolfPro-BookingService/internal/service/settings/models"
)

const (
	msgInvalidProID       = "некорректный идентификатор преподавателя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSettings    = "некорректные настройки бронирования"
	msgAuthRequired       = "требуется аутентификация"
	msgAccessDenied       = "доступ запрещен"
)

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// UpdateSettingsRequest HTTP request model
type UpdateSettingsRequest struct {
	SlotDurationMinutes int    `json:"slotDurationMinutes"`
	RequiresDeposit     bool   `json:"requiresDeposit"`
	DepositPercent      int    `json:"depositPercent"`
	AutoConfirm         bool   `json:"autoConfirm"`
	PriceAmount         int64  `json:"priceAmount"`
	Currency            string `json:"currency"`
}

// Handle PUT /api/v1/pros/{proId}/settings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	proID, err := strconv.ParseInt(mux.Vars(r)["proId"], 10, 64)
	if err != nil || proID <= 0 {
		h.logger.Warn("PUT /pros/{proId}/settings - Invalid proId: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProID)
		return
	}

	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgAuthRequired)
		return
	}

	var req UpdateSettingsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /pros/{proId}/settings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), proID, &models.UpdateSettingsRequest{
		Actor:               actor,
		SlotDurationMinutes: req.SlotDurationMinutes,
		RequiresDeposit:     req.RequiresDeposit,
		DepositPercent:      req.DepositPercent,
		AutoConfirm:         req.AutoConfirm,
		PriceAmount:         req.PriceAmount,
		Currency:            req.Currency,
	})
	if err != nil {
		switch {
		case errors.Is(err, settingsService.ErrAccessDenied):
			h.logger.Warn("PUT /pros/{proId}/settings - Access denied: pro_id=%d, actor=%d", proID, actor.ID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, settingsService.ErrInvalidInput):
			h.logger.Warn("PUT /pros/{proId}/settings - Invalid settings: pro_id=%d, error=%v", proID, err)
			handlers.RespondBadRequest(w, msgInvalidSettings)

		default:
			h.logger.Error("PUT /pros/{proId}/settings - Failed: pro_id=%d, error=%v", proID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /pros/{proId}/settings - Updated: pro_id=%d", proID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
