package release_sweep

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgForbidden     = "очистку может запустить только администратор или менеджер"
)

// SweepResponse HTTP response model
type SweepResponse struct {
	ReleasedIDs []int64 `json:"releasedIds"`
	Released    int64   `json:"released"`
	Skipped     bool    `json:"skipped"`
	SweptAt     string  `json:"sweptAt"`
}

type Handler struct {
	useCase ReleaseUseCase
	access  AccessChecker
	logger  Logger
}

func NewHandler(useCase ReleaseUseCase, access AccessChecker, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		access:  access,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/release-sweep
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if !h.access.IsPrivileged(r.Context(), userID) {
		h.logger.Warn("POST /admin/release-sweep - Access denied: user_id=%d", userID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	result, err := h.useCase.Execute(r.Context())
	if err != nil {
		h.logger.Error("POST /admin/release-sweep - Sweep failed: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /admin/release-sweep - Sweep done: released=%d, skipped=%t, user_id=%d",
		result.Released, result.Skipped, userID)
	handlers.RespondJSON(w, http.StatusOK, &SweepResponse{
		ReleasedIDs: result.ReleasedIDs,
		Released:    result.Released,
		Skipped:     result.Skipped,
		SweptAt:     result.SweptAt.Format(time.RFC3339),
	})
}
