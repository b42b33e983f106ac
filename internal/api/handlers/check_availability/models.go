package check_availability

import (
	"errors"
	"net/url"
	"strconv"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	catalogModels "github.com/m04kA/SMC-RoomBookingService/internal/service/catalog/models"
	checkAvailability "github.com/m04kA/SMC-RoomBookingService/internal/usecase/check_availability"
)

var (
	errMissingParams = errors.New("date, startTime and duration are required")
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	RoomID          int64                       `json:"roomId"`
	Date            string                      `json:"date"`
	StartTime       string                      `json:"startTime"`
	DurationHours   float64                     `json:"durationHours"`
	Available       bool                        `json:"available"`
	ConflictRoomIDs []int64                     `json:"conflictRoomIds"`
	Alternative     *catalogModels.RoomResponse `json:"alternative,omitempty"`
}

// ToUseCaseRequest собирает запрос use case из query параметров
// date, startTime, duration обязательны; minCapacity и equipment ("1,2") опциональны
func ToUseCaseRequest(roomID int64, query url.Values) (*checkAvailability.Request, error) {
	dateStr, timeStr, durationStr := query.Get("date"), query.Get("startTime"), query.Get("duration")
	if dateStr == "" || timeStr == "" || durationStr == "" {
		return nil, errMissingParams
	}

	date, err := handlers.ParseDate(dateStr)
	if err != nil {
		return nil, err
	}

	startTime, err := handlers.ParseTime(timeStr)
	if err != nil {
		return nil, err
	}

	duration, err := strconv.ParseFloat(durationStr, 64)
	if err != nil {
		return nil, err
	}

	req := &checkAvailability.Request{
		RoomID:        roomID,
		Date:          date,
		StartTime:     startTime,
		DurationHours: duration,
	}

	if raw := query.Get("minCapacity"); raw != "" {
		if req.MinCapacity, err = strconv.Atoi(raw); err != nil {
			return nil, err
		}
	}

	if req.Equipment, err = handlers.ParseIDList(query.Get("equipment")); err != nil {
		return nil, err
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(req *checkAvailability.Request, resp *checkAvailability.Response) *AvailabilityResponse {
	return &AvailabilityResponse{
		RoomID:          resp.Room.ID,
		Date:            req.Date.Format(domain.DateFormat),
		StartTime:       req.StartTime.String(),
		DurationHours:   req.DurationHours,
		Available:       resp.Available,
		ConflictRoomIDs: resp.ConflictRoomIDs,
		Alternative:     catalogModels.FromDomainRoom(resp.Alternative),
	}
}
