package get_catalog

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/catalog"
)

const (
	msgInvalidFilter = "некорректные параметры фильтра"
	msgInvalidRoomID = "некорректный ID комнаты"
	msgRoomNotFound  = "комната не найдена"
)

// Handler публичные справочники: комнаты, здания, оборудование
type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleRooms GET /api/v1/rooms?buildingId=1&minCapacity=10&equipment=1,2&includeInactive=false
func (h *Handler) HandleRooms(w http.ResponseWriter, r *http.Request) {
	filter, err := ToRoomsFilter(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /rooms - Invalid filter: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFilter)
		return
	}

	result, err := h.service.ListRooms(r.Context(), filter)
	if err != nil {
		if errors.Is(err, catalog.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		h.logger.Error("GET /rooms - Failed to list rooms: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleRoom GET /api/v1/rooms/{roomId}
func (h *Handler) HandleRoom(w http.ResponseWriter, r *http.Request) {
	roomID, err := handlers.ParseIDParam(mux.Vars(r)["roomId"])
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidRoomID)
		return
	}

	room, err := h.service.GetRoom(r.Context(), roomID)
	if err != nil {
		if errors.Is(err, catalog.ErrRoomNotFound) {
			handlers.RespondNotFound(w, msgRoomNotFound)
			return
		}
		h.logger.Error("GET /rooms/{id} - Failed to get room: room_id=%d, error=%v", roomID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, room)
}

// HandleBuildings GET /api/v1/buildings
func (h *Handler) HandleBuildings(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListBuildings(r.Context())
	if err != nil {
		h.logger.Error("GET /buildings - Failed to list buildings: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleEquipment GET /api/v1/equipment
func (h *Handler) HandleEquipment(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListEquipment(r.Context())
	if err != nil {
		h.logger.Error("GET /equipment - Failed to list equipment: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
