package modules

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/timetracker/internal"
	"github.com/frahmantamala/timetracker/internal/transport"
	"github.com/frahmantamala/timetracker/pkg/logger"
)

type ServiceAPI interface {
	ResolveForProperty(propertyID int64) ([]string, error)
	ResolveForEmployee(propertyID, employeeID int64) ([]string, error)
	UpdatePropertyModules(propertyID int64, keys []string) ([]string, error)
	UpdateEmployeeModules(propertyID, employeeID int64, keys []string) ([]string, error)
}

// UpdateModulesDTO carries the desired module key set.
type UpdateModulesDTO struct {
	Modules []string `json:"modules"`
}

type modulesResponse struct {
	Modules []string `json:"modules"`
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

func (h *Handler) GetPropertyModules(w http.ResponseWriter, r *http.Request) {
	scope, ok := internal.ScopeFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	keys, err := h.Service.ResolveForProperty(scope.PropertyID)
	if err != nil {
		h.Logger.Error("GetPropertyModules: service error", "error", err, "property_id", scope.PropertyID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, modulesResponse{Modules: keys})
}

func (h *Handler) UpdatePropertyModules(w http.ResponseWriter, r *http.Request) {
	scope, ok := internal.ScopeFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto UpdateModulesDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdatePropertyModules: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	keys, err := h.Service.UpdatePropertyModules(scope.PropertyID, dto.Modules)
	if err != nil {
		h.Logger.Error("UpdatePropertyModules: service error", "error", err, "property_id", scope.PropertyID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, modulesResponse{Modules: keys})
}

func (h *Handler) GetEmployeeModules(w http.ResponseWriter, r *http.Request) {
	scope, ok := internal.ScopeFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	employeeID, ok := h.employeeID(w, r)
	if !ok {
		return
	}

	keys, err := h.Service.ResolveForEmployee(scope.PropertyID, employeeID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, modulesResponse{Modules: keys})
}

func (h *Handler) UpdateEmployeeModules(w http.ResponseWriter, r *http.Request) {
	scope, ok := internal.ScopeFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	employeeID, ok := h.employeeID(w, r)
	if !ok {
		return
	}

	var dto UpdateModulesDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateEmployeeModules: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	keys, err := h.Service.UpdateEmployeeModules(scope.PropertyID, employeeID, dto.Modules)
	if err != nil {
		h.Logger.Error("UpdateEmployeeModules: service error", "error", err, "employee_id", employeeID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, modulesResponse{Modules: keys})
}

func (h *Handler) employeeID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.Logger.Error("invalid employee ID", "id", idStr)
		h.WriteError(w, http.StatusBadRequest, "invalid employee ID")
		return 0, false
	}
	return id, true
}
