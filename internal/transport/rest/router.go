package rest

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"

	"github.com/frahmantamala/timetracker/internal/auth"
	"github.com/frahmantamala/timetracker/internal/clock"
	"github.com/frahmantamala/timetracker/internal/employee"
	"github.com/frahmantamala/timetracker/internal/modules"
	"github.com/frahmantamala/timetracker/internal/report"
	"github.com/frahmantamala/timetracker/internal/transport/middleware"
	"github.com/frahmantamala/timetracker/internal/transport/swagger"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, allowedOrigins string, authHandler *auth.Handler, clockHandler *clock.Handler, employeeHandler *employee.Handler, moduleHandler *modules.Handler, reportHandler *report.Handler, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	// Apply global middleware
	router.Use(middleware.CORS(strings.Split(allowedOrigins, ",")))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	// Mount API under /api/v1 to match OpenAPI basePath
	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Auth routes: magic link issuance, verification and the device
		// session poll are unauthenticated by design.
		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/request-magic-link", authHandler.RequestMagicLink)
			sr.Get("/verify", authHandler.VerifyToken)
			sr.Get("/poll-status", authHandler.PollStatus)
			sr.Post("/identify", authHandler.Identify)
			sr.Post("/logout", authHandler.Logout)
		})

		// Clock routes authenticate per call with device token + passcode.
		r.Route("/clock", func(cr chi.Router) {
			cr.Post("/", clockHandler.Clock)
			cr.Post("/action", clockHandler.ClockAction)
			cr.Post("/status", clockHandler.GetStatus)
		})

		// Admin routes: device session + admin session resolved into scope.
		r.Group(func(ar chi.Router) {
			ar.Use(authHandler.AdminMiddleware)

			ar.Route("/employees", func(er chi.Router) {
				er.Get("/", employeeHandler.ListEmployees)
				er.Post("/", employeeHandler.CreateEmployee)
				er.Get("/{id}", employeeHandler.GetEmployee)
				er.Patch("/{id}", employeeHandler.UpdateEmployee)
				er.Get("/{id}/pay-history", employeeHandler.GetPayHistory)
				er.Get("/{id}/modules", moduleHandler.GetEmployeeModules)
				er.Put("/{id}/modules", moduleHandler.UpdateEmployeeModules)
			})

			ar.Route("/modules", func(mr chi.Router) {
				mr.Get("/", moduleHandler.GetPropertyModules)
				mr.Put("/", moduleHandler.UpdatePropertyModules)
			})

			ar.Get("/reports/hours", reportHandler.GetHoursReport)
		})
	})
}
