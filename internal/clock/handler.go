package clock

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/timetracker/internal/transport"
	"github.com/frahmantamala/timetracker/pkg/logger"
)

type ServiceAPI interface {
	Clock(deviceToken, passcode string) (*ClockResult, error)
	ClockAction(deviceToken, passcode, action string) (*ClockResult, error)
	GetStatus(deviceToken, passcode string) (*StatusResult, error)
}

// ClockDTO is shared by the toggle and explicit-action endpoints; Action is
// only read by the latter.
type ClockDTO struct {
	Passcode string `json:"passcode"`
	Action   string `json:"action,omitempty"`
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) Clock(w http.ResponseWriter, r *http.Request) {
	dto, ok := h.decode(w, r)
	if !ok {
		return
	}

	result, err := h.Service.Clock(h.DeviceToken(r), dto.Passcode)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) ClockAction(w http.ResponseWriter, r *http.Request) {
	dto, ok := h.decode(w, r)
	if !ok {
		return
	}

	result, err := h.Service.ClockAction(h.DeviceToken(r), dto.Passcode, dto.Action)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	dto, ok := h.decode(w, r)
	if !ok {
		return
	}

	result, err := h.Service.GetStatus(h.DeviceToken(r), dto.Passcode)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (*ClockDTO, bool) {
	var dto ClockDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("clock: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return nil, false
	}
	if dto.Passcode == "" {
		h.WriteError(w, http.StatusBadRequest, "passcode is required")
		return nil, false
	}
	return &dto, true
}
