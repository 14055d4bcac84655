package http

import (
	"log/slog"
	"os"

	"github.com/dexter-morales/hrms-system-go/internal/handler/http/middleware"
	"github.com/dexter-morales/hrms-system-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type Handlers struct {
	Employee   EmployeeHandler
	Schedule   ScheduleHandler
	Attendance AttendanceHandler
	Overtime   OvertimeHandler
	Leave      LeaveHandler
	Loan       LoanHandler
	Payroll    PayrollHandler
	Master     MasterHandler
}

func NewRouter(jwtService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hrms-system"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
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

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/employees", func(r chi.Router) {
				r.Get("/{id}", h.Employee.Get)

				// HR only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireHR)
					r.Get("/", h.Employee.List)
					r.Post("/", h.Employee.Create)
					r.Put("/{id}", h.Employee.Update)
					r.Delete("/{id}", h.Employee.Delete)
				})
			})

			r.Route("/schedules", func(r chi.Router) {
				r.Get("/employee/{employeeID}", h.Schedule.ListByEmployee)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireHR)
					r.Post("/", h.Schedule.Create)
					r.Delete("/{id}", h.Schedule.Delete)
				})
			})

			r.Route("/attendances", func(r chi.Router) {
				r.Post("/punch-in", h.Attendance.PunchIn)
				r.Post("/punch-out", h.Attendance.PunchOut)
				r.Get("/", h.Attendance.List)
				r.Get("/{id}", h.Attendance.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireHR)
					r.Put("/{id}", h.Attendance.Update)
				})
			})

			r.Route("/overtimes", func(r chi.Router) {
				r.Post("/", h.Overtime.Request)
				r.Get("/", h.Overtime.List)
				r.Get("/{id}", h.Overtime.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Post("/{id}/approve", h.Overtime.Approve)
					r.Post("/{id}/reject", h.Overtime.Reject)
				})
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Post("/", h.Leave.Request)
				r.Get("/", h.Leave.List)
				r.Get("/{id}", h.Leave.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Post("/{id}/manager-approve", h.Leave.ManagerApprove)
					r.Post("/{id}/reject", h.Leave.Reject)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireHR)
					r.Post("/{id}/approve", h.Leave.HRApprove)
				})
			})

			r.Route("/loans", func(r chi.Router) {
				r.Get("/{id}", h.Loan.Get)
				r.Get("/{id}/entries", h.Loan.ListEntries)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireHR)
					r.Get("/", h.Loan.List)
					r.Post("/", h.Loan.Create)
					r.Post("/{id}/approve", h.Loan.Approve)
					r.Post("/{id}/reject", h.Loan.Reject)
				})
			})

			r.Route("/payrolls", func(r chi.Router) {
				r.Use(middleware.RequireHR)
				r.Post("/generate", h.Payroll.Generate)
				r.Get("/", h.Payroll.List)
				r.Get("/summary", h.Payroll.Summary)
				r.Get("/thirteenth-month/{employeeID}", h.Payroll.ThirteenthMonth)
				r.Get("/{id}", h.Payroll.Get)
				r.Post("/{id}/approve", h.Payroll.Approve)
			})

			r.Route("/master", func(r chi.Router) {
				r.Get("/holidays", h.Master.ListHolidays)
				r.Get("/sites", h.Master.ListSites)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireHR)
					r.Post("/holidays", h.Master.CreateHoliday)
					r.Delete("/holidays/{id}", h.Master.DeleteHoliday)
					r.Post("/sites", h.Master.CreateSite)
				})
			})
		})
	})
	return r
}
