package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kennar-hris/kennar-backend-go/internal/config"
	appHTTP "github.com/kennar-hris/kennar-backend-go/internal/handler/http"
	"github.com/kennar-hris/kennar-backend-go/internal/pkg/database"
	"github.com/kennar-hris/kennar-backend-go/internal/pkg/jwt"
	"github.com/kennar-hris/kennar-backend-go/internal/pkg/realtime"
	"github.com/kennar-hris/kennar-backend-go/internal/pkg/storage"
	"github.com/kennar-hris/kennar-backend-go/internal/repository/postgresql"
	adminService "github.com/kennar-hris/kennar-backend-go/internal/service/admin"
	attendanceService "github.com/kennar-hris/kennar-backend-go/internal/service/attendance"
	serviceAuth "github.com/kennar-hris/kennar-backend-go/internal/service/auth"
	dashboardService "github.com/kennar-hris/kennar-backend-go/internal/service/dashboard"
	employeeService "github.com/kennar-hris/kennar-backend-go/internal/service/employee"
	"github.com/kennar-hris/kennar-backend-go/internal/service/file"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn, database.PoolOptions{MaxConns: cfg.Database.MaxConns})
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer db.Close()

	if cfg.Database.ApplySchema {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err := postgresql.EnsureSchema(ctx, db)
		cancel()
		if err != nil {
			log.Fatal("Failed to apply database schema: ", err)
		}
	}

	transactor := postgresql.NewTransactor(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)
	adminRepo := postgresql.NewAdminRepository(db)

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		log.Fatal("Failed to initialize local storage: ", err)
	}
	fileService := file.NewFileService(fileStorage)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	authService := serviceAuth.NewAuthService(adminRepo, JWTService)
	adminSvc := adminService.NewAdminService(adminRepo)
	employeeSvc := employeeService.NewEmployeeService(transactor, employeeRepo, attendanceRepo, fileService)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, employeeRepo, cfg.App.UTCOffsetHours)
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo, cfg.App.UTCOffsetHours)

	hub := realtime.NewHub()

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			AppEnv:         cfg.App.Env,
			LogLevel:       cfg.SlogLevel(),
			AllowedOrigins: cfg.App.AllowedOrigins,
			RequestTimeout: cfg.App.RequestTimeout,
			EnforceAuth:    cfg.JWT.Enforce,
			UploadsDir:     cfg.Storage.BasePath,
			UploadsURL:     cfg.Storage.BaseURL,
		},
		JWTService,
		appHTTP.Handlers{
			Auth:       appHTTP.NewAuthHandler(authService),
			Admin:      appHTTP.NewAdminHandler(adminSvc),
			Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
			Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
			Dashboard:  appHTTP.NewDashboardHandler(dashboardSvc),
			Kiosk:      appHTTP.NewKioskHandler(hub, cfg.App.AllowedOrigins),
		},
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("Server running", "addr", srv.Addr, "env", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
}
