package add_block

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/golfpro-saas/GolfPro-BookingService/internal/api/handlers"
	"github.com/golfpro-saas/GolfPro-BookingService/internal/api/middleware"
	scheduleService "github.com/golfpro-saas/GolfPro-BookingService/internal/service/schedule"
	"github.com/golfpro-saas/GolfPro-BookingService/internal/service/schedule/models"
)

const (
	msgInvalidProID       = "некорректный идентификатор преподавателя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInterval    = "некорректный интервал блокировки"
	msgAuthRequired       = "требуется аутентификация"
	msgAccessDenied       = "доступ запрещен"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// AddBlockRequest HTTP request model
type AddBlockRequest struct {
	StartAt time.Time `json:"startAt"`
	EndAt   time.Time `json:"endAt"`
	Reason  *string   `json:"reason,omitempty"`
}

// Handle POST /api/v1/pros/{proId}/blocks
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	proID, err := strconv.ParseInt(mux.Vars(r)["proId"], 10, 64)
	if err != nil || proID <= 0 {
		h.logger.Warn("POST /pros/{proId}/blocks - Invalid proId: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProID)
		return
	}

	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgAuthRequired)
		return
	}

	var req AddBlockRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /pros/{proId}/blocks - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.AddBlock(r.Context(), proID, &models.AddBlockRequest{
		Actor:   actor,
		StartAt: req.StartAt,
		EndAt:   req.EndAt,
		Reason:  req.Reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrAccessDenied):
			h.logger.Warn("POST /pros/{proId}/blocks - Access denied: pro_id=%d, actor=%d", proID, actor.ID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, scheduleService.ErrInvalidInterval):
			h.logger.Warn("POST /pros/{proId}/blocks - Invalid interval: pro_id=%d", proID)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		case errors.Is(err, scheduleService.ErrInvalidInput):
			h.logger.Warn("POST /pros/{proId}/blocks - Invalid input: pro_id=%d", proID)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /pros/{proId}/blocks - Failed: pro_id=%d, error=%v", proID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /pros/{proId}/blocks - Created: pro_id=%d, block_id=%d", proID, result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
