package http

import (
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/kennar-hris/kennar-backend-go/internal/handler/http/middleware"
	"github.com/kennar-hris/kennar-backend-go/internal/pkg/jwt"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouterConfig struct {
	AppEnv         string
	LogLevel       slog.Level
	AllowedOrigins []string
	RequestTimeout time.Duration
	EnforceAuth    bool
	UploadsDir     string
	UploadsURL     string
}

type Handlers struct {
	Auth       AuthHandler
	Admin      AdminHandler
	Employee   EmployeeHandler
	Attendance AttendanceHandler
	Dashboard  DashboardHandler
	Kiosk      KioskHandler
}

func NewRouter(cfg RouterConfig, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(cfg.AppEnv != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.LogLevel,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "kennar-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.AppEnv),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  cfg.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Handle("/metrics", promhttp.Handler())

	if cfg.UploadsDir != "" {
		prefix := "/" + strings.Trim(cfg.UploadsURL, "/")
		r.Handle(prefix+"/*", http.StripPrefix(prefix, http.FileServer(http.Dir(cfg.UploadsDir))))
	}

	// Long-lived; must stay outside the Timeout group
	r.Get("/ws/kiosk", h.Kiosk.Connect)

	api := func(r chi.Router) {
		r.Post("/login", h.Auth.Login)
		r.Get("/dashboard-stats", h.Dashboard.GetStats)

		r.Get("/employees", h.Employee.List)
		r.Get("/employees/{id}/image", h.Employee.GetImage)

		r.Post("/attendance", h.Attendance.CheckIn)
		r.Get("/attendance", h.Attendance.List)
		r.Get("/attendance/export", h.Attendance.Export)

		// Management routes, token-protected when enforcement is on
		r.Group(func(r chi.Router) {
			if cfg.EnforceAuth {
				r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
				r.Use(middleware.AuthRequired(JWTService.JWTAuth()))
			}

			r.Post("/employees", h.Employee.Create)
			r.Put("/employees/{id}", h.Employee.Update)
			r.Delete("/employees/{id}", h.Employee.Delete)

			r.Put("/attendance/{id}", h.Attendance.Update)

			r.Route("/admins", func(r chi.Router) {
				r.Get("/", h.Admin.List)
				r.Post("/", h.Admin.Create)
				r.Delete("/{id}", h.Admin.Delete)
			})
		})
	}

	r.Group(func(r chi.Router) {
		if cfg.RequestTimeout > 0 {
			r.Use(middleware.Timeout(cfg.RequestTimeout))
		}
		api(r)
		r.Route("/api", api)
	})

	return r
}
