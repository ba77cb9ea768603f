package middleware

import (
	"net/http"

	"github.com/frahmantamala/timetracker/pkg/logger"

	"github.com/go-chi/chi/middleware"
	"github.com/google/uuid"
)

// RequestID propagates the id assigned by chi's RequestID middleware into the
// logger context and the response header, so logs and clients share a single
// id per request. Falls back to a fresh uuid when mounted without chi's.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := middleware.GetReqID(r.Context())
		if reqID == "" {
			reqID = uuid.NewString()
		}

		ctx := logger.With(r.Context(), "request_id", reqID)

		w.Header().Set("X-Request-Id", reqID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
