package create_series

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
	createSeries "github.com/m04kA/SMC-RoomBookingService/internal/usecase/create_series"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgRoomNotFound       = "комната не найдена"
	msgRoomInactive       = "комната недоступна для бронирования"
	msgInvalidInput       = "некорректные параметры серии"
	msgInvalidDate        = "серия должна начинаться в будущем"
	msgSeriesConflict     = "не для всех повторений найдена свободная комната"
)

type Handler struct {
	useCase CreateSeriesUseCase
	logger  Logger
}

func NewHandler(useCase CreateSeriesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/series
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateSeriesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /series - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /series - Failed to parse date/time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createSeries.ErrRoomNotFound):
			h.logger.Warn("POST /series - Room not found: room_id=%d", req.RoomID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, createSeries.ErrRoomInactive):
			h.logger.Warn("POST /series - Room inactive: room_id=%d", req.RoomID)
			handlers.RespondBadRequest(w, msgRoomInactive)

		case errors.Is(err, createSeries.ErrInvalidInput):
			h.logger.Warn("POST /series - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createSeries.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createSeries.ErrSeriesConflict):
			h.logger.Warn("POST /series - Series conflict: user_id=%d, room_id=%d", userID, req.RoomID)
			handlers.RespondConflict(w, msgSeriesConflict)

		default:
			h.logger.Error("POST /series - Failed to create series: user_id=%d, room_id=%d, error=%v",
				userID, req.RoomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /series - Series created: code=%s, bookings=%d, user_id=%d",
		result.SeriesCode, len(result.Bookings), userID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
