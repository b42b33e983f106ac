package extend_series

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
	extendSeries "github.com/m04kA/SMC-RoomBookingService/internal/usecase/extend_series"
)

const (
	msgMissingCode        = "не указан код серии"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidWeeks       = "некорректное количество недель"
	msgNotFound           = "серия не найдена"
	msgForbidden          = "доступ запрещен"
	msgExtensionConflict  = "не для всех новых недель найдена свободная комната в том же здании"
)

type Handler struct {
	useCase ExtendSeriesUseCase
	logger  Logger
}

func NewHandler(useCase ExtendSeriesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/series/{seriesCode}/extend
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

	var req ExtendSeriesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /series/{code}/extend - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &extendSeries.Request{
		UserID:     userID,
		SeriesCode: code,
		Weeks:      req.Weeks,
	})
	if err != nil {
		switch {
		case errors.Is(err, extendSeries.ErrSeriesNotFound):
			h.logger.Warn("POST /series/{code}/extend - Series not found: code=%s", code)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, extendSeries.ErrAccessDenied):
			h.logger.Warn("POST /series/{code}/extend - Access denied: code=%s, user_id=%d", code, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, extendSeries.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidWeeks)

		case errors.Is(err, extendSeries.ErrExtensionConflict):
			h.logger.Warn("POST /series/{code}/extend - Extension conflict: code=%s, weeks=%d", code, req.Weeks)
			handlers.RespondConflict(w, msgExtensionConflict)

		default:
			h.logger.Error("POST /series/{code}/extend - Failed to extend series: code=%s, error=%v", code, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /series/{code}/extend - Series extended: code=%s, added=%d, user_id=%d",
		result.SeriesCode, len(result.Bookings), userID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
