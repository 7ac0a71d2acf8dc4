package http

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-payroll-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-payroll-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// RouterOptions carries the handlers and cross-cutting settings for NewRouter.
type RouterOptions struct {
	JWTService jwt.Service
	Logger     *slog.Logger
	LogLevel   slog.Level

	AllowedOrigins []string

	Attendance AttendanceHandler
	Leave      LeaveHandler
	Payroll    PayrollHandler
	Report     ReportHandler
	Dashboard  DashboardHandler
}

func NewRouter(opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	if opts.Logger != nil {
		r.Use(httplog.RequestLogger(opts.Logger, &httplog.Options{
			Level:  opts.LogLevel,
			Schema: httplog.SchemaECS,
		}))
	}

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/healthz"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(jwtauth.Verifier(opts.JWTService.JWTAuth()))
		r.Use(middleware.AuthRequired)

		r.Route("/attendance", func(r chi.Router) {
			r.Post("/check-in", opts.Attendance.CheckIn)
			r.Post("/check-out", opts.Attendance.CheckOut)
			r.Get("/today", opts.Attendance.Today)
			r.Get("/summary", opts.Report.MonthlySummary)
			r.Get("/{id}", opts.Attendance.Get)

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Get("/", opts.Attendance.List)
				r.Get("/statistics", opts.Dashboard.GetDailyStatistics)
				r.Patch("/{id}", opts.Attendance.Update)
			})
		})

		r.Route("/leaves", func(r chi.Router) {
			r.Post("/", opts.Leave.Create)
			r.Get("/", opts.Leave.List)
			r.Get("/{id}", opts.Leave.Get)
			r.Delete("/{id}", opts.Leave.Delete)

			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Post("/{id}/approve", opts.Leave.Approve)
				r.Post("/{id}/reject", opts.Leave.Reject)
			})
		})

		r.Route("/payroll", func(r chi.Router) {
			r.Use(middleware.AdminOnly)
			r.Post("/run", opts.Payroll.Run)
			r.Get("/", opts.Payroll.List)
			r.Get("/{id}", opts.Payroll.Get)
			r.Put("/{id}", opts.Payroll.Update)
			r.Get("/{id}/payslip.pdf", opts.Payroll.Payslip)
		})

		r.Route("/reports", func(r chi.Router) {
			r.Use(middleware.AdminOnly)
			r.Get("/monthly.xlsx", opts.Report.ExportMonthly)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found")
	})
	return r
}

// NewRequestLogger builds the JSON slog logger used for request logs, with
// attribute names following the ECS schema.
func NewRequestLogger(handlerOpts *slog.HandlerOptions, w io.Writer, attrs ...any) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(false)
	opts := slog.HandlerOptions{ReplaceAttr: logFormat.ReplaceAttr}
	if handlerOpts != nil {
		opts.Level = handlerOpts.Level
	}
	return slog.New(slog.NewJSONHandler(w, &opts)).With(attrs...)
}
