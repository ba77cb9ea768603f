package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/timetracker/internal"
	"github.com/frahmantamala/timetracker/internal/transport"
	"github.com/frahmantamala/timetracker/pkg/logger"
)

type ServiceAPI interface {
	RequestMagicLink(dto RequestMagicLinkDTO) (*RequestResult, error)
	VerifyToken(token string) (*VerificationResult, error)
	PollDevice(deviceID string) (*PollResult, error)
	IdentifyByPasscode(deviceToken, passcode string) (*Identity, error)
	RequireAdmin(deviceToken, adminToken string) (*internal.AuthScope, error)
	Logout(deviceToken, adminToken string)
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

func (h *Handler) RequestMagicLink(w http.ResponseWriter, r *http.Request) {
	var dto RequestMagicLinkDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("RequestMagicLink: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.Service.RequestMagicLink(dto)
	if err != nil {
		h.Logger.Error("RequestMagicLink: service error", "error", err, "property_code", dto.PropertyCode)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) VerifyToken(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		h.WriteError(w, http.StatusBadRequest, "token is required")
		return
	}

	result, err := h.Service.VerifyToken(token)
	if err != nil {
		h.Logger.Error("VerifyToken: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) PollStatus(w http.ResponseWriter, r *http.Request) {
	deviceID := r.URL.Query().Get("device_id")
	if deviceID == "" {
		h.WriteError(w, http.StatusBadRequest, "device_id is required")
		return
	}

	result, err := h.Service.PollDevice(deviceID)
	if err != nil {
		h.Logger.Error("PollStatus: service error", "error", err, "device_id", deviceID)
		h.HandleServiceError(w, err)
		return
	}

	// hand the device session to browser clients as a cookie as well
	if result.Verified && result.Token != "" {
		cookie := &http.Cookie{
			Name:     transport.DeviceSessionCookie,
			Value:    result.Token,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		}
		if result.ExpiresAt != nil {
			cookie.Expires = *result.ExpiresAt
		}
		http.SetCookie(w, cookie)
	}

	h.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) Identify(w http.ResponseWriter, r *http.Request) {
	var dto IdentifyDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("Identify: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	identity, err := h.Service.IdentifyByPasscode(h.DeviceToken(r), dto.Passcode)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	if identity.AdminToken != "" {
		cookie := &http.Cookie{
			Name:     transport.AdminSessionCookie,
			Value:    identity.AdminToken,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		}
		if identity.AdminExpiresAt != nil {
			cookie.Expires = *identity.AdminExpiresAt
		}
		http.SetCookie(w, cookie)
	}

	h.WriteJSON(w, http.StatusOK, identity)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.Service.Logout(h.DeviceToken(r), h.AdminToken(r))

	for _, name := range []string{transport.DeviceSessionCookie, transport.AdminSessionCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
		})
	}

	h.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// AdminMiddleware resolves the device and admin session tokens into an
// AuthScope and stores it in the request context. Admin-only routes mount
// behind it; handlers read the scope with internal.ScopeFromContext.
func (h *Handler) AdminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		scope, err := h.Service.RequireAdmin(h.DeviceToken(r), h.AdminToken(r))
		if err != nil {
			h.HandleServiceError(w, err)
			return
		}

		ctx := internal.ContextWithScope(r.Context(), scope)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
