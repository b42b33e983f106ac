package cancel_series

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/bookings"
)

const (
	msgMissingCode   = "не указан код серии"
	msgMissingUserID = "отсутствует ID пользователя"
	msgNotFound      = "серия не найдена"
	msgForbidden     = "доступ запрещен"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/series/{seriesCode}/cancel
// Отменяет только будущие активные повторения; прошедшие остаются в истории
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	code := strings.TrimSpace(mux.Vars(r)["seriesCode"])
	if code == "" {
		handlers.RespondBadRequest(w, msgMissingCode)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.CancelSeries(r.Context(), code, userID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrSeriesNotFound):
			h.logger.Warn("PATCH /series/{code}/cancel - Series not found: code=%s", code)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("PATCH /series/{code}/cancel - Access denied: code=%s, user_id=%d", code, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("PATCH /series/{code}/cancel - Failed to cancel series: code=%s, error=%v", code, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /series/{code}/cancel - Series cancelled: code=%s, cancelled=%d, user_id=%d",
		result.SeriesCode, result.Cancelled, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
