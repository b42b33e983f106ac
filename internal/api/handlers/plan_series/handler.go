package plan_series

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	planSeries "github.com/m04kA/SMC-RoomBookingService/internal/usecase/plan_series"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgRoomNotFound       = "комната не найдена"
	msgRoomInactive       = "комната недоступна для бронирования"
	msgInvalidInput       = "некорректные параметры серии"
	msgInvalidDate        = "серия должна начинаться в будущем"
)

type Handler struct {
	useCase PlanSeriesUseCase
	logger  Logger
}

func NewHandler(useCase PlanSeriesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/series/plan
// Предварительный план серии; ничего не сохраняет
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req PlanSeriesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /series/plan - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /series/plan - Failed to parse date/time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, planSeries.ErrRoomNotFound):
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, planSeries.ErrRoomInactive):
			handlers.RespondBadRequest(w, msgRoomInactive)

		case errors.Is(err, planSeries.ErrInvalidInput):
			h.logger.Warn("POST /series/plan - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, planSeries.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("POST /series/plan - Failed to plan series: room_id=%d, error=%v", req.RoomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /series/plan - Plan built: room_id=%d, occurrences=%d, conflicts=%t",
		req.RoomID, len(result.Occurrences), result.HasConflicts)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
