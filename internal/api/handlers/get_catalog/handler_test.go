package get_catalog

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

	"github.com/m04kA/SMC-RoomBookingService/internal/service/catalog"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/catalog/models"
	"github.com/m04kA/SMC-RoomBookingService/pkg/logger"
)

type fakeService struct {
	err       error
	gotFilter *models.RoomsFilter
}

func (f *fakeService) ListRooms(_ context.Context, filter *models.RoomsFilter) (*models.RoomListResponse, error) {
	f.gotFilter = filter
	if f.err != nil {
		return nil, f.err
	}
	return &models.RoomListResponse{Rooms: []models.RoomResponse{{ID: 1, Role: "standalone"}}}, nil
}

func (f *fakeService) GetRoom(_ context.Context, id int64) (*models.RoomResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.RoomResponse{ID: id}, nil
}

func (f *fakeService) ListBuildings(context.Context) (*models.BuildingListResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.BuildingListResponse{Buildings: []models.BuildingResponse{{ID: 1}}}, nil
}

func (f *fakeService) ListEquipment(context.Context) (*models.EquipmentListResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.EquipmentListResponse{Equipment: []models.EquipmentResponse{{ID: 1, NameEn: "Projector"}}}, nil
}

func TestHandleRooms_ParsesFilter(t *testing.T) {
	svc := &fakeService{}
	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/v1/rooms?buildingId=2&minCapacity=10&equipment=1,3&includeInactive=true", nil)

	NewHandler(svc, logger.NewNop()).HandleRooms(rec, r)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.gotFilter.BuildingID)
	assert.Equal(t, int64(2), *svc.gotFilter.BuildingID)
	assert.Equal(t, 10, svc.gotFilter.MinCapacity)
	assert.Equal(t, []int64{1, 3}, svc.gotFilter.Equipment)
	assert.True(t, svc.gotFilter.IncludeInactive)

	var body models.RoomListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Rooms, 1)
}

func TestHandleRooms_Errors(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		err        error
		wantStatus int
	}{
		{name: "некорректное здание", query: "buildingId=abc", wantStatus: http.StatusBadRequest},
		{name: "некорректная вместимость", query: "minCapacity=many", wantStatus: http.StatusBadRequest},
		{name: "некорректный флаг", query: "includeInactive=maybe", wantStatus: http.StatusBadRequest},
		{name: "отрицательная вместимость", query: "minCapacity=-1", err: catalog.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "внутренняя ошибка", query: "", err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/api/v1/rooms?"+tt.query, nil)
			NewHandler(&fakeService{err: tt.err}, logger.NewNop()).HandleRooms(rec, r)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandleRoom(t *testing.T) {
	tests := []struct {
		name       string
		rawID      string
		err        error
		wantStatus int
	}{
		{name: "найдена", rawID: "4", wantStatus: http.StatusOK},
		{name: "некорректный id", rawID: "x", wantStatus: http.StatusBadRequest},
		{name: "не найдена", rawID: "4", err: catalog.ErrRoomNotFound, wantStatus: http.StatusNotFound},
		{name: "внутренняя ошибка", rawID: "4", err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/api/v1/rooms/"+tt.rawID, nil)
			r = mux.SetURLVars(r, map[string]string{"roomId": tt.rawID})
			NewHandler(&fakeService{err: tt.err}, logger.NewNop()).HandleRoom(rec, r)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandleBuildingsAndEquipment(t *testing.T) {
	h := NewHandler(&fakeService{}, logger.NewNop())

	rec := httptest.NewRecorder()
	h.HandleBuildings(rec, httptest.NewRequest(http.MethodGet, "/api/v1/buildings", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.HandleEquipment(rec, httptest.NewRequest(http.MethodGet, "/api/v1/equipment", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Projector")

	failing := NewHandler(&fakeService{err: errors.New("boom")}, logger.NewNop())

	rec = httptest.NewRecorder()
	failing.HandleBuildings(rec, httptest.NewRequest(http.MethodGet, "/api/v1/buildings", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = httptest.NewRecorder()
	failing.HandleEquipment(rec, httptest.NewRequest(http.MethodGet, "/api/v1/equipment", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
