package report

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/frahmantamala/timetracker/internal"
	"github.com/frahmantamala/timetracker/internal/transport"
	"github.com/frahmantamala/timetracker/pkg/logger"
)

type ServiceAPI interface {
	EmployeesWithHours(propertyID int64, start, end time.Time) (*HoursReport, error)
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

func (h *Handler) GetHoursReport(w http.ResponseWriter, r *http.Request) {
	scope, ok := internal.ScopeFromContext(r.Context())
	if !ok {
		h.Logger.Error("GetHoursReport: scope not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")
	if startStr == "" || endStr == "" {
		h.HandleServiceError(w, internal.ErrMissingDateRange)
		return
	}

	start, err := parseInstant(startStr)
	if err != nil {
		h.HandleServiceError(w, internal.ErrInvalidDateRange)
		return
	}
	end, err := parseInstant(endStr)
	if err != nil {
		h.HandleServiceError(w, internal.ErrInvalidDateRange)
		return
	}

	report, err := h.Service.EmployeesWithHours(scope.PropertyID, start, end)
	if err != nil {
		h.Logger.Error("GetHoursReport: service error", "error", err, "property_id", scope.PropertyID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, report)
}

// parseInstant accepts RFC 3339 instants, falling back to bare dates
// interpreted as UTC midnight.
func parseInstant(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
