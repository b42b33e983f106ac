package check_in

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
	checkIn "github.com/m04kA/SMC-RoomBookingService/internal/usecase/check_in"
	"github.com/m04kA/SMC-RoomBookingService/pkg/logger"
)

type fakeUseCase struct {
	err error
	got *checkIn.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *checkIn.Request) (*domain.Booking, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	at := time.Date(2026, time.March, 10, 9, 45, 0, 0, time.UTC)
	return &domain.Booking{
		ID:            req.BookingID,
		StartTime:     "10:00",
		DurationHours: 1,
		Status:        domain.StatusActive,
		IsCheckedIn:   true,
		CheckedInAt:   &at,
	}, nil
}

func doRequest(uc *fakeUseCase, rawID, body string, userID int64) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/"+rawID+"/check-in", strings.NewReader(body))
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
	rec := doRequest(uc, "5", `{"code":"ab12cd34"}`, 7)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, &checkIn.Request{UserID: 7, BookingID: 5, Code: "ab12cd34"}, uc.got)

	var body models.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.IsCheckedIn)
	require.NotNil(t, body.CheckedInAt)
	assert.Equal(t, "2026-03-10T09:45:00Z", *body.CheckedInAt)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		userID     int64
		err        error
		wantStatus int
	}{
		{name: "нет пользователя", body: `{"code":"X"}`, wantStatus: http.StatusUnauthorized},
		{name: "нет кода", body: `{}`, userID: 1, wantStatus: http.StatusBadRequest},
		{name: "не найдено", body: `{"code":"X"}`, userID: 1, err: checkIn.ErrBookingNotFound, wantStatus: http.StatusNotFound},
		{name: "нет прав", body: `{"code":"X"}`, userID: 1, err: checkIn.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "освобождено", body: `{"code":"X"}`, userID: 1, err: checkIn.ErrBookingNotActive, wantStatus: http.StatusConflict},
		{name: "повторная отметка", body: `{"code":"X"}`, userID: 1, err: checkIn.ErrAlreadyCheckedIn, wantStatus: http.StatusConflict},
		{name: "слишком рано", body: `{"code":"X"}`, userID: 1, err: checkIn.ErrTooEarly, wantStatus: http.StatusBadRequest},
		{name: "слишком поздно", body: `{"code":"X"}`, userID: 1, err: checkIn.ErrTooLate, wantStatus: http.StatusBadRequest},
		{name: "неверный код", body: `{"code":"X"}`, userID: 1, err: checkIn.ErrCodeMismatch, wantStatus: http.StatusBadRequest},
		{name: "внутренняя ошибка", body: `{"code":"X"}`, userID: 1, err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(&fakeUseCase{err: tt.err}, "5", tt.body, tt.userID)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
