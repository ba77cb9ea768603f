package transport

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/timetracker/internal"
	"github.com/frahmantamala/timetracker/pkg/logger"
)

const (
	// DeviceSessionCookie carries the device session token for browser
	// kiosk clients; API clients use the Authorization header instead.
	DeviceSessionCookie = "device_session"
	// AdminSessionCookie carries the admin session token; API clients use
	// the X-Admin-Session header instead.
	AdminSessionCookie = "admin_session"
	// AdminSessionHeader is the header form of the admin session token.
	AdminSessionHeader = "X-Admin-Session"
)

// BaseHandler provides common functionality for HTTP handlers
type BaseHandler struct {
	Logger *slog.Logger
}

// NewBaseHandler creates a base handler with logger
func NewBaseHandler(lg *slog.Logger) *BaseHandler {
	if lg == nil {
		lg = logger.LoggerWrapper()
		if lg == nil {
			lg = slog.Default()
		}
	}
	return &BaseHandler{Logger: lg}
}

// WriteJSON writes a JSON response
func (h *BaseHandler) WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteError writes an error response
func (h *BaseHandler) WriteError(w http.ResponseWriter, status int, message string) {
	h.Logger.Error("http error", "status", status, "message", message)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	errorResp := map[string]interface{}{
		"code":    status,
		"message": message,
	}

	if err := json.NewEncoder(w).Encode(errorResp); err != nil {
		h.Logger.Error("failed to encode error response", "error", err)
	}
}

// HandleServiceError maps service-layer errors to HTTP responses. AppErrors
// carry their own status code; anything else is a 500.
func (h *BaseHandler) HandleServiceError(w http.ResponseWriter, err error) {
	var appErr *internal.AppError
	if errors.As(err, &appErr) {
		status, body := appErr.ToHTTPResponse()
		h.WriteJSON(w, status, body)
		return
	}
	h.Logger.Error("unhandled service error", "error", err)
	h.WriteError(w, http.StatusInternalServerError, "internal server error")
}

// ExtractTokenFromHeader extracts Bearer token from Authorization header
func (h *BaseHandler) ExtractTokenFromHeader(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return ""
	}

	return authHeader[7:]
}

// DeviceToken resolves the device session token from the Authorization
// header, falling back to the device_session cookie.
func (h *BaseHandler) DeviceToken(r *http.Request) string {
	if token := h.ExtractTokenFromHeader(r); token != "" {
		return token
	}
	if c, err := r.Cookie(DeviceSessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	return ""
}

// AdminToken resolves the admin session token from the X-Admin-Session
// header, falling back to the admin_session cookie.
func (h *BaseHandler) AdminToken(r *http.Request) string {
	if token := r.Header.Get(AdminSessionHeader); token != "" {
		return token
	}
	if c, err := r.Cookie(AdminSessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	return ""
}
