package cancel_booking

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-RoomBookingService/pkg/logger"
)

type fakeService struct {
	err    error
	called bool
}

func (f *fakeService) Cancel(context.Context, int64, int64) error {
	f.called = true
	return f.err
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name       string
		rawID      string
		userID     int64
		err        error
		wantStatus int
		wantCalled bool
	}{
		{name: "успешная отмена", rawID: "3", userID: 7, wantStatus: http.StatusOK, wantCalled: true},
		{name: "некорректный id", rawID: "-1", userID: 7, wantStatus: http.StatusBadRequest},
		{name: "нет пользователя", rawID: "3", wantStatus: http.StatusUnauthorized},
		{name: "не найдено", rawID: "3", userID: 7, err: bookings.ErrBookingNotFound, wantStatus: http.StatusNotFound, wantCalled: true},
		{name: "нет прав", rawID: "3", userID: 7, err: bookings.ErrAccessDenied, wantStatus: http.StatusForbidden, wantCalled: true},
		{name: "уже отменено", rawID: "3", userID: 7, err: bookings.ErrCannotCancel, wantStatus: http.StatusConflict, wantCalled: true},
		{name: "внутренняя ошибка", rawID: "3", userID: 7, err: errors.New("boom"), wantStatus: http.StatusInternalServerError, wantCalled: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{err: tt.err}
			r := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/"+tt.rawID+"/cancel", nil)
			r = mux.SetURLVars(r, map[string]string{"bookingId": tt.rawID})
			if tt.userID != 0 {
				r = r.WithContext(middleware.WithUserID(r.Context(), tt.userID))
			}
			rec := httptest.NewRecorder()

			NewHandler(svc, logger.NewNop()).Handle(rec, r)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCalled, svc.called)
		})
	}
}
