package delete_block

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/golfpro-saas/GolfPro-BookingService/internal/api/handlers"
	"github.com/golfpro-saas/GolfPro-BookingService/internal/api/middleware"
	scheduleService "github.com/golfpro-saas/GolfPro-BookingService/internal/service/schedule"
)

const (
	msgInvalidProID   = "некорректный идентификатор преподавателя"
	msgInvalidBlockID = "некорректный идентификатор блокировки"
	msgAuthRequired   = "требуется аутентификация"
	msgAccessDenied   = "доступ запрещен"
	msgBlockNotFound  = "блокировка не найдена"
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

// Handle DELETE /api/v1/pros/{proId}/blocks/{blockId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	proID, err := strconv.ParseInt(vars["proId"], 10, 64)
	if err != nil || proID <= 0 {
		h.logger.Warn("DELETE /pros/{proId}/blocks/{blockId} - Invalid proId: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProID)
		return
	}

	blockID, err := strconv.ParseInt(vars["blockId"], 10, 64)
	if err != nil || blockID <= 0 {
		h.logger.Warn("DELETE /pros/{proId}/blocks/{blockId} - Invalid blockId: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBlockID)
		return
	}

	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgAuthRequired)
		return
	}

	if err := h.service.DeleteBlock(r.Context(), proID, blockID, actor); err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrAccessDenied):
			h.logger.Warn("DELETE /pros/{proId}/blocks/{blockId} - Access denied: pro_id=%d, actor=%d", proID, actor.ID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, scheduleService.ErrBlockNotFound):
			h.logger.Warn("DELETE /pros/{proId}/blocks/{blockId} - Not found: pro_id=%d, block_id=%d", proID, blockID)
			handlers.RespondNotFound(w, msgBlockNotFound)

		default:
			h.logger.Error("DELETE /pros/{proId}/blocks/{blockId} - Failed: pro_id=%d, block_id=%d, error=%v", proID, blockID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /pros/{proId}/blocks/{blockId} - Deleted: pro_id=%d, block_id=%d", proID, blockID)
	w.WriteHeader(http.StatusNoContent)
}
