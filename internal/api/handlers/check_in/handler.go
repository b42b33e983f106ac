package check_in

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/bookings/models"
	checkIn "github.com/m04kA/SMC-RoomBookingService/internal/usecase/check_in"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "доступ запрещен"
	msgNotActive          = "бронирование отменено или освобождено"
	msgAlreadyCheckedIn   = "присутствие уже отмечено"
	msgTooEarly           = "отметка еще недоступна"
	msgTooLate            = "бронирование уже закончилось"
	msgCodeMismatch       = "неверный код бронирования"
)

// CheckInRequest HTTP request model
type CheckInRequest struct {
	Code string `json:"code" validate:"required"`
}

type Handler struct {
	useCase CheckInUseCase
	logger  Logger
}

func NewHandler(useCase CheckInUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/check-in
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.ParseIDParam(mux.Vars(r)["bookingId"])
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/check-in - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CheckInRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/check-in - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	booking, err := h.useCase.Execute(r.Context(), &checkIn.Request{
		UserID:    userID,
		BookingID: bookingID,
		Code:      req.Code,
	})
	if err != nil {
		switch {
		case errors.Is(err, checkIn.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, checkIn.ErrAccessDenied):
			h.logger.Warn("POST /bookings/{id}/check-in - Access denied: booking_id=%d, user_id=%d", bookingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, checkIn.ErrBookingNotActive):
			handlers.RespondConflict(w, msgNotActive)

		case errors.Is(err, checkIn.ErrAlreadyCheckedIn):
			handlers.RespondConflict(w, msgAlreadyCheckedIn)

		case errors.Is(err, checkIn.ErrTooEarly):
			handlers.RespondBadRequest(w, msgTooEarly)

		case errors.Is(err, checkIn.ErrTooLate):
			handlers.RespondBadRequest(w, msgTooLate)

		case errors.Is(err, checkIn.ErrCodeMismatch):
			h.logger.Warn("POST /bookings/{id}/check-in - Code mismatch: booking_id=%d, user_id=%d", bookingID, userID)
			handlers.RespondBadRequest(w, msgCodeMismatch)

		case errors.Is(err, checkIn.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings/{id}/check-in - Failed to check in: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/check-in - Checked in: booking_id=%d, user_id=%d", bookingID, userID)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainBooking(booking))
}
