package get_catalog

import (
	"net/url"
	"strconv"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/catalog/models"
)

// ToRoomsFilter собирает фильтр из query параметров buildingId, minCapacity, equipment, includeInactive
func ToRoomsFilter(query url.Values) (*models.RoomsFilter, error) {
	filter := &models.RoomsFilter{}

	if raw := query.Get("buildingId"); raw != "" {
		id, err := handlers.ParseIDParam(raw)
		if err != nil {
			return nil, err
		}
		filter.BuildingID = &id
	}

	if raw := query.Get("minCapacity"); raw != "" {
		capacity, err := strconv.Atoi(raw)
		if err != nil {
			return nil, err
		}
		filter.MinCapacity = capacity
	}

	equipment, err := handlers.ParseIDList(query.Get("equipment"))
	if err != nil {
		return nil, err
	}
	filter.Equipment = equipment

	if raw := query.Get("includeInactive"); raw != "" {
		include, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, err
		}
		filter.IncludeInactive = include
	}

	return filter, nil
}
