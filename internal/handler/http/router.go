package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/silang-hris/payroll-backend-go/internal/handler/http/middleware"
	"github.com/silang-hris/payroll-backend-go/internal/pkg/jwt"
)

func NewRouter(
	jwtService jwt.Service,
	env string,
	timesheetHandler TimesheetHandler,
	payrollHandler PayrollHandler,
	scheduleHandler ScheduleHandler,
	holidayHandler HolidayHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "silang-payroll"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		// All routes require an access token minted upstream.
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/timesheet", func(r chi.Router) {
				r.Get("/days", timesheetHandler.ListDays)
				r.Get("/days/{employeeID}/{date}", timesheetHandler.GetDay)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Post("/punches/import", timesheetHandler.ImportPunches)
					r.Put("/days/{employeeID}/{date}/override", timesheetHandler.UpsertOverride)
				})
			})

			r.Route("/shifts", func(r chi.Router) {
				r.Get("/", scheduleHandler.ListShiftTemplates)
				r.Get("/{id}", scheduleHandler.GetShiftTemplate)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePayrollAdmin)
					r.Post("/", scheduleHandler.CreateShiftTemplate)
					r.Put("/{id}", scheduleHandler.UpdateShiftTemplate)
					r.Delete("/{id}", scheduleHandler.DeleteShiftTemplate)
				})
			})

			r.Route("/holidays", func(r chi.Router) {
				r.Get("/", holidayHandler.List)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePayrollAdmin)
					r.Post("/", holidayHandler.Upsert)
					r.Delete("/{id}", holidayHandler.Delete)
				})
			})

			r.Route("/payroll/runs", func(r chi.Router) {
				r.Use(middleware.RequireManager)

				r.Get("/", payrollHandler.ListRuns)
				r.Get("/{id}", payrollHandler.GetRun)
				r.Get("/{id}/payslips", payrollHandler.ListPayslips)
				r.Post("/", payrollHandler.CreateRun)
				r.Post("/{id}/compute", payrollHandler.ComputeRun)
				r.Post("/{id}/approve", payrollHandler.ApproveRun)
				r.Post("/{id}/release", payrollHandler.ReleaseRun)
				r.Post("/{id}/cancel", payrollHandler.CancelRun)
			})
		})
	})
	return r
}
