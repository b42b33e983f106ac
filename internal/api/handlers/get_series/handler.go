package get_series

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

// Handle GET /api/v1/series/{seriesCode}
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

	series, err := h.service.GetSeries(r.Context(), code, userID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrSeriesNotFound):
			h.logger.Warn("GET /series/{code} - Series not found: code=%s", code)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /series/{code} - Access denied: code=%s, user_id=%d", code, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /series/{code} - Failed to get series: code=%s, error=%v", code, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /series/{code} - Series retrieved: code=%s, occurrences=%d", series.SeriesCode, len(series.Bookings))
	handlers.RespondJSON(w, http.StatusOK, series)
}
