package employee

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
	List(propertyID int64) ([]*Employee, error)
	Get(propertyID, employeeID int64) (*Employee, error)
	PayHistory(employeeID int64) ([]*PayHistory, error)
	Create(propertyID int64, dto CreateEmployeeDTO) (*Employee, error)
	Update(propertyID, employeeID int64, dto UpdateEmployeeDTO) (*Employee, error)
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

func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	scope, ok := internal.ScopeFromContext(r.Context())
	if !ok {
		h.Logger.Error("ListEmployees: scope not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	employees, err := h.Service.List(scope.PropertyID)
	if err != nil {
		h.Logger.Error("ListEmployees: service error", "error", err, "property_id", scope.PropertyID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, employees)
}

func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	scope, ok := internal.ScopeFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	employeeID, ok := h.employeeID(w, r)
	if !ok {
		return
	}

	emp, err := h.Service.Get(scope.PropertyID, employeeID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, emp)
}

func (h *Handler) GetPayHistory(w http.ResponseWriter, r *http.Request) {
	scope, ok := internal.ScopeFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	employeeID, ok := h.employeeID(w, r)
	if !ok {
		return
	}

	// ownership check before exposing pay rows
	if _, err := h.Service.Get(scope.PropertyID, employeeID); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	history, err := h.Service.PayHistory(employeeID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, history)
}

func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	scope, ok := internal.ScopeFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateEmployeeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateEmployee: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	emp, err := h.Service.Create(scope.PropertyID, dto)
	if err != nil {
		h.Logger.Error("CreateEmployee: service error", "error", err, "property_id", scope.PropertyID)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("CreateEmployee: employee created",
		"employee_id", emp.ID,
		"property_id", scope.PropertyID)

	h.WriteJSON(w, http.StatusCreated, emp)
}

func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	scope, ok := internal.ScopeFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	employeeID, ok := h.employeeID(w, r)
	if !ok {
		return
	}

	var dto UpdateEmployeeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateEmployee: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	emp, err := h.Service.Update(scope.PropertyID, employeeID, dto)
	if err != nil {
		h.Logger.Error("UpdateEmployee: service error", "error", err, "employee_id", employeeID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, emp)
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
