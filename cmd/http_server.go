package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/timetracker/internal"
	"github.com/frahmantamala/timetracker/internal/auth"
	authStore "github.com/frahmantamala/timetracker/internal/auth/postgres"
	"github.com/frahmantamala/timetracker/internal/clock"
	clockStore "github.com/frahmantamala/timetracker/internal/clock/postgres"
	"github.com/frahmantamala/timetracker/internal/core/events"
	"github.com/frahmantamala/timetracker/internal/email"
	"github.com/frahmantamala/timetracker/internal/employee"
	employeeStore "github.com/frahmantamala/timetracker/internal/employee/postgres"
	"github.com/frahmantamala/timetracker/internal/modules"
	moduleStore "github.com/frahmantamala/timetracker/internal/modules/postgres"
	propertyStore "github.com/frahmantamala/timetracker/internal/property/postgres"
	"github.com/frahmantamala/timetracker/internal/report"
	"github.com/frahmantamala/timetracker/internal/transport/rest"
	"github.com/frahmantamala/timetracker/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"))
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	// repositories
	sessionRepo := authStore.NewSessionRepository(gormDB)
	propertyRepo := propertyStore.NewPropertyRepository(gormDB)
	employeeRepo := employeeStore.NewEmployeeRepository(gormDB)
	clockRepo := clockStore.NewClockRepository(gormDB)
	moduleRepo := moduleStore.NewModuleRepository(gormDB)

	// event bus and email delivery
	bus := events.NewEventBus(lg)
	mailClient := email.NewClient(config.Email.PostmarkToken, config.Email.FromEmail)
	email.NewEventHandler(mailClient, config.Email.FrontendRedirectURL, lg).Register(bus)

	// services
	authService := auth.NewService(sessionRepo, propertyRepo, employeeRepo, bus, config.Security, lg)
	employeeService := employee.NewService(employeeRepo, lg)
	moduleService := modules.NewService(moduleRepo, employeeRepo, lg)
	reportService := report.NewService(clockRepo, employeeRepo, moduleService, lg)
	clockService := clock.NewService(clockRepo, authService, reportService, lg)

	// handlers
	authHandler := auth.NewHandler(authService)
	clockHandler := clock.NewHandler(clockService)
	employeeHandler := employee.NewHandler(employeeService)
	moduleHandler := modules.NewHandler(moduleService)
	reportHandler := report.NewHandler(reportService)

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, db.DB, config.Server.AllowedOrigins,
		authHandler, clockHandler, employeeHandler, moduleHandler, reportHandler, lg)

	return &Dependencies{
		Config: config,
		Logger: lg,
		DB:     db,
		Router: router,
	}, nil
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// verify connection; close underlying *sql.DB on failure
	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
