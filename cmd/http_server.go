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

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/horvathbencetibor/booking-system-be/internal"
	"github.com/horvathbencetibor/booking-system-be/internal/auth"
	authstore "github.com/horvathbencetibor/booking-system-be/internal/auth/postgres"
	"github.com/horvathbencetibor/booking-system-be/internal/booking"
	bookingstore "github.com/horvathbencetibor/booking-system-be/internal/booking/postgres"
	"github.com/horvathbencetibor/booking-system-be/internal/bookinglog"
	bookinglogstore "github.com/horvathbencetibor/booking-system-be/internal/bookinglog/postgres"
	"github.com/horvathbencetibor/booking-system-be/internal/core/events"
	"github.com/horvathbencetibor/booking-system-be/internal/rbac"
	rbacstore "github.com/horvathbencetibor/booking-system-be/internal/rbac/postgres"
	"github.com/horvathbencetibor/booking-system-be/internal/room"
	roomstore "github.com/horvathbencetibor/booking-system-be/internal/room/postgres"
	"github.com/horvathbencetibor/booking-system-be/internal/timeslot"
	timeslotstore "github.com/horvathbencetibor/booking-system-be/internal/timeslot/postgres"
	"github.com/horvathbencetibor/booking-system-be/internal/transport/rest"
	"github.com/horvathbencetibor/booking-system-be/internal/user"
	userstore "github.com/horvathbencetibor/booking-system-be/internal/user/postgres"
	"github.com/horvathbencetibor/booking-system-be/pkg/logger"
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
	ORM    *gorm.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	if err := runMigrations(deps.DB); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to run migrations: %v\n", err)
		os.Exit(1)
	}

	setupRoutes(deps)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func setupRoutes(deps *Dependencies) {
	log := deps.Logger

	bus := events.NewEventBus(log)

	auditService := bookinglog.NewService(bookinglogstore.NewRepository(deps.ORM), log)
	bookinglog.NewEventHandler(auditService).RegisterHandlers(bus)

	tokenGen := auth.NewJWTTokenGenerator(
		deps.Config.Security.JWTSecret,
		deps.Config.Security.TokenDuration,
	)
	authService := auth.NewService(authstore.NewRepository(deps.ORM), tokenGen)

	handlers := rest.Handlers{
		Auth:       auth.NewHandler(authService),
		User:       user.NewHandler(user.NewService(userstore.NewUserRepository(deps.ORM), deps.Config.Security.BCryptCost, log)),
		Room:       room.NewHandler(room.NewService(roomstore.NewRoomRepository(deps.ORM), log)),
		Timeslot:   timeslot.NewHandler(timeslot.NewService(timeslotstore.NewTimeslotRepository(deps.ORM), log)),
		Booking:    booking.NewHandler(booking.NewService(bookingstore.NewRepository(deps.ORM), bus, log)),
		RBAC:       rbac.NewHandler(rbac.NewService(rbacstore.NewRepository(deps.ORM), log)),
		BookingLog: bookinglog.NewHandler(auditService),
	}

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, handlers, log)
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Logging.Level, config.Logging.Format)

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	orm, err := initORM(db)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	return &Dependencies{
		Config: config,
		Logger: logger.L(),
		DB:     db,
		ORM:    orm,
		Router: chi.NewRouter(),
	}, nil
}

// initDB opens the pgx connection pool and waits for the database to
// answer, retrying once a second. The pool bound doubles as the
// backpressure mechanism: when it is exhausted, requests queue on checkout
// instead of piling onto the server.
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const (
		driver      = "pgx"
		maxAttempts = 30
	)

	db, err := sqlx.Open(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	for attempt := 1; ; attempt++ {
		err = db.Ping()
		if err == nil {
			return db, nil
		}
		if attempt >= maxAttempts {
			_ = db.Close()
			return nil, fmt.Errorf("database not reachable after %d attempts: %w", maxAttempts, err)
		}
		slog.Info("waiting for database", "attempt", attempt, "error", err)
		time.Sleep(time.Second)
	}
}

// initORM layers GORM over the already-configured pgx pool. TranslateError
// normalizes driver errors, so unique and foreign key violations arrive as
// gorm.ErrDuplicatedKey and gorm.ErrForeignKeyViolated.
func initORM(db *sqlx.DB) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{Conn: db.DB}), &gorm.Config{
		TranslateError: true,
	})
}

// runMigrations applies everything under db/migrations at startup, so a
// fresh database is usable without a separate migrate step.
func runMigrations(db *sqlx.DB) error {
	goose.SetTableName("migrations")
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.Up(db.DB, "db/migrations")
}
