package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/johangly/gpu/internal/handler/http/middleware"
	"github.com/johangly/gpu/internal/pkg/jwt"
)

const (
	appName    = "asistencia-gpu"
	appVersion = "v1.0.0"
)

// NewLogger builds the ECS formatted JSON logger shared by the request
// logger and the rest of the application.
func NewLogger(env string, level slog.Level) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(env != "production")
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", appName),
		slog.String("version", appVersion),
		slog.String("env", env),
	)
}

type Handlers struct {
	Auth       AuthHandler
	Group      GroupHandler
	Employee   EmployeeHandler
	Attendance AttendanceHandler
	Report     ReportHandler
}

func NewRouter(logger *slog.Logger, allowedOrigins []string, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService))

			r.Post("/auth/logout", h.Auth.Logout)
			r.Get("/auth/me", h.Auth.Me)

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/", h.Attendance.MarkAttendance)
				r.Get("/me/last", h.Attendance.GetMyLastActivity)
				r.Get("/me/recent", h.Attendance.GetMyRecentActivities)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", h.Attendance.ListActivities)
					r.Get("/employees/{id}", h.Attendance.GetEmployeeRecentActivities)
					r.Get("/stream", h.Attendance.StreamActivities)
				})
			})

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly)

				r.Route("/groups", func(r chi.Router) {
					r.Get("/", h.Group.ListGroups)
					r.Post("/", h.Group.CreateGroup)
					r.Get("/{id}", h.Group.GetGroup)
					r.Put("/{id}", h.Group.UpdateGroup)
					r.Delete("/{id}", h.Group.DeleteGroup)
				})

				r.Route("/employees", func(r chi.Router) {
					r.Get("/", h.Employee.ListEmployees)
					r.Post("/", h.Employee.CreateEmployee)
					r.Get("/{id}", h.Employee.GetEmployee)
					r.Put("/{id}", h.Employee.UpdateEmployee)
					r.Delete("/{id}", h.Employee.DeleteEmployee)
				})

				r.Route("/reports", func(r chi.Router) {
					r.Get("/attendance", h.Report.GetAttendanceReport)
					r.Post("/attendance", h.Report.GetAttendanceReport)
					r.Get("/attendance/pdf", h.Report.ExportAttendanceReportPDF)
					r.Get("/attendance/xlsx", h.Report.ExportAttendanceReportXLSX)
					r.Get("/archive", h.Report.ListArchivedReports)
					r.Get("/archive/{date}", h.Report.GetArchivedReport)
				})
			})
		})
	})
	return r
}
