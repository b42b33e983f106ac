package get_booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/bookings"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgNotFound         = "бронирование не найдено"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgForbidden        = "нет доступа к бронированию"
)

type Handler struct {
	service BookingService
	policy  CheckInPolicy
	logger  Logger
}

func NewHandler(service BookingService, policy CheckInPolicy, logger Logger) *Handler {
	return &Handler{
		service: service,
		policy:  policy,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/{bookingId}
// Для активной неотмеченной брони добавляет окно отметки
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	bookingID, err := handlers.ParseIDParam(mux.Vars(r)["bookingId"])
	if err != nil {
		h.logger.Warn("GET /bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	booking, err := h.service.GetByID(r.Context(), bookingID, userID)
	switch {
	case err == nil:
	case errors.Is(err, bookings.ErrBookingNotFound):
		h.logger.Warn("GET /bookings/{id} - Booking not found: booking_id=%d", bookingID)
		handlers.RespondNotFound(w, msgNotFound)
		return
	case errors.Is(err, bookings.ErrAccessDenied):
		h.logger.Warn("GET /bookings/{id} - Access denied: booking_id=%d, user_id=%d", bookingID, userID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	default:
		h.logger.Error("GET /bookings/{id} - Failed to get booking: booking_id=%d, error=%v", bookingID, err)
		handlers.RespondInternalError(w)
		return
	}

	resp := BookingDetailsResponse{BookingResponse: *booking}
	if pending, ok := awaitingCheckIn(booking); ok {
		opens, closes, err := h.policy.CheckInWindow(pending)
		if err != nil {
			h.logger.Warn("GET /bookings/{id} - Cannot compute check-in window: booking_id=%d, error=%v", bookingID, err)
		} else {
			resp.CheckInWindow = &CheckInWindowResponse{
				OpensAt:  opens.Format(time.RFC3339),
				ClosesAt: closes.Format(time.RFC3339),
			}
		}
	}

	h.logger.Info("GET /bookings/{id} - Booking retrieved: booking_id=%d, status=%s, user_id=%d",
		bookingID, booking.Status, userID)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
