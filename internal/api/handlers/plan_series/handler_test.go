package plan_series

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	planSeries "github.com/m04kA/SMC-RoomBookingService/internal/usecase/plan_series"
	"github.com/m04kA/SMC-RoomBookingService/pkg/logger"
)

type fakeUseCase struct {
	resp *planSeries.Response
	err  error
}

func (f *fakeUseCase) Execute(context.Context, *planSeries.Request) (*planSeries.Response, error) {
	return f.resp, f.err
}

func doRequest(uc *fakeUseCase, body string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, "/api/v1/series/plan", strings.NewReader(body))
	rec := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(rec, r)
	return rec
}

const validBody = `{"roomId":3,"startDate":"2026-03-10","startTime":"10:00","durationHours":1,"occurrences":3}`

func TestHandle_ReportsEveryOccurrence(t *testing.T) {
	date := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	room := &domain.Room{ID: 3, Name: "Переговорная", IsActive: true}
	spare := &domain.Room{ID: 4, Name: "Запасная", IsActive: true}

	uc := &fakeUseCase{resp: &planSeries.Response{
		Room:         room,
		HasConflicts: true,
		Occurrences: []domain.Occurrence{
			{Date: date, Room: room, Status: domain.OccurrenceOK},
			{Date: date.AddDate(0, 0, 7), Room: spare, Status: domain.OccurrenceAlternative},
			{Date: date.AddDate(0, 0, 14), Status: domain.OccurrenceConflict},
		},
	}}

	rec := doRequest(uc, validBody)
	require.Equal(t, http.StatusOK, rec.Code)

	var body PlanResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.HasConflicts)
	require.Len(t, body.Occurrences, 3)
	assert.Equal(t, "ok", body.Occurrences[0].Status)
	assert.Equal(t, int64(4), body.Occurrences[1].Room.ID)
	assert.Equal(t, "conflict", body.Occurrences[2].Status)
	assert.Nil(t, body.Occurrences[2].Room)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{name: "нет повторений", body: `{"roomId":3,"startDate":"2026-03-10","startTime":"10:00","durationHours":1}`, wantStatus: http.StatusBadRequest},
		{name: "лишнее поле", body: `{"roomId":3,"startDate":"2026-03-10","startTime":"10:00","durationHours":1,"occurrences":1,"x":1}`, wantStatus: http.StatusBadRequest},
		{name: "некорректное время", body: `{"roomId":3,"startDate":"2026-03-10","startTime":"9","durationHours":1,"occurrences":1}`, wantStatus: http.StatusBadRequest},
		{name: "комната не найдена", body: validBody, err: planSeries.ErrRoomNotFound, wantStatus: http.StatusNotFound},
		{name: "слишком много повторений", body: validBody, err: planSeries.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "внутренняя ошибка", body: validBody, err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(&fakeUseCase{err: tt.err}, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
