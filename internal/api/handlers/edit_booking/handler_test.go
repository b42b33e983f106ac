package edit_booking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/bookings/models"
	editBooking "github.com/m04kA/SMC-RoomBookingService/internal/usecase/edit_booking"
	"github.com/m04kA/SMC-RoomBookingService/pkg/logger"
)

type fakeUseCase struct {
	err error
	got *editBooking.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *editBooking.Request) (*domain.Booking, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Booking{
		ID:            req.BookingID,
		RoomID:        3,
		BookingDate:   req.Date,
		StartTime:     req.StartTime,
		DurationHours: req.DurationHours,
		Status:        domain.StatusActive,
	}, nil
}

const validBody = `{"bookingDate":"2026-03-11","startTime":"14:00","durationHours":2}`

func doRequest(uc *fakeUseCase, rawID, body string, userID int64) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPut, "/api/v1/bookings/"+rawID, strings.NewReader(body))
	r = mux.SetURLVars(r, map[string]string{"bookingId": rawID})
	if userID != 0 {
		r = r.WithContext(middleware.WithUserID(r.Context(), userID))
	}
	rec := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(rec, r)
	return rec
}

func TestHandle_OK(t *testing.T) {
	uc := &fakeUseCase{}
	rec := doRequest(uc, "5", validBody, 7)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), uc.got.UserID)
	assert.Equal(t, time.Date(2026, time.March, 11, 0, 0, 0, 0, time.UTC), uc.got.Date)

	var body models.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "14:00", body.StartTime)
	assert.Equal(t, "16:00", body.EndTime)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		rawID      string
		body       string
		userID     int64
		err        error
		wantStatus int
	}{
		{name: "некорректный id", rawID: "x", body: validBody, userID: 1, wantStatus: http.StatusBadRequest},
		{name: "нет пользователя", rawID: "5", body: validBody, wantStatus: http.StatusUnauthorized},
		{name: "лишнее поле roomId", rawID: "5", body: `{"bookingDate":"2026-03-11","startTime":"14:00","durationHours":2,"roomId":4}`, userID: 1, wantStatus: http.StatusBadRequest},
		{name: "длительность больше суток", rawID: "5", body: `{"bookingDate":"2026-03-11","startTime":"14:00","durationHours":25}`, userID: 1, wantStatus: http.StatusBadRequest},
		{name: "некорректная дата", rawID: "5", body: `{"bookingDate":"11/03/2026","startTime":"14:00","durationHours":2}`, userID: 1, wantStatus: http.StatusBadRequest},
		{name: "не найдено", rawID: "5", body: validBody, userID: 1, err: editBooking.ErrBookingNotFound, wantStatus: http.StatusNotFound},
		{name: "нет прав", rawID: "5", body: validBody, userID: 1, err: editBooking.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "уже отмечена", rawID: "5", body: validBody, userID: 1, err: editBooking.ErrCannotEdit, wantStatus: http.StatusConflict},
		{name: "интервал занят", rawID: "5", body: validBody, userID: 1, err: editBooking.ErrSlotNotAvailable, wantStatus: http.StatusConflict},
		{name: "в прошлом", rawID: "5", body: validBody, userID: 1, err: editBooking.ErrInvalidDate, wantStatus: http.StatusBadRequest},
		{name: "внутренняя ошибка", rawID: "5", body: validBody, userID: 1, err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(&fakeUseCase{err: tt.err}, tt.rawID, tt.body, tt.userID)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
