package get_room_bookings

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-RoomBookingService/pkg/logger"
)

type fakeService struct {
	err error
	got *models.GetRoomScheduleRequest
}

func (f *fakeService) GetRoomSchedule(_ context.Context, req *models.GetRoomScheduleRequest) (*models.RoomScheduleResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.RoomScheduleResponse{
		RoomID:          req.RoomID,
		Date:            "2026-03-10",
		ConflictRoomIDs: []int64{10, 11},
		Bookings:        []models.BookingResponse{{ID: 1, RoomID: 11}},
	}, nil
}

func doRequest(svc *fakeService, rawRoomID, query string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodGet, "/api/v1/rooms/"+rawRoomID+"/bookings?"+query, nil)
	r = mux.SetURLVars(r, map[string]string{"roomId": rawRoomID})
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, r)
	return rec
}

func TestHandle_OK(t *testing.T) {
	svc := &fakeService{}
	rec := doRequest(svc, "10", "date=2026-03-10")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(10), svc.got.RoomID)

	var body models.RoomScheduleResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []int64{10, 11}, body.ConflictRoomIDs)
	assert.Equal(t, int64(11), body.Bookings[0].RoomID)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		rawRoomID  string
		query      string
		err        error
		wantStatus int
	}{
		{name: "некорректный id", rawRoomID: "0", query: "date=2026-03-10", wantStatus: http.StatusBadRequest},
		{name: "нет даты", rawRoomID: "10", query: "", wantStatus: http.StatusBadRequest},
		{name: "комната не найдена", rawRoomID: "10", query: "date=2026-03-10", err: bookings.ErrRoomNotFound, wantStatus: http.StatusNotFound},
		{name: "внутренняя ошибка", rawRoomID: "10", query: "date=2026-03-10", err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(&fakeService{err: tt.err}, tt.rawRoomID, tt.query)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
