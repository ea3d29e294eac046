package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/emsuite/ems-backend-go/internal/config"
	"github.com/emsuite/ems-backend-go/internal/handler/http/middleware"
	"github.com/emsuite/ems-backend-go/internal/pkg/jwt"
)

type Handlers struct {
	Auth       AuthHandler
	Attendance AttendanceHandler
	Employee   EmployeeHandler
	Leave      LeaveHandler
	Task       TaskHandler
	Payroll    PayrollHandler
	Report     ReportHandler
}

func NewRouter(cfg *config.Config, jwtService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "ems-backend"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/check-in", h.Attendance.CheckIn)
				r.Post("/check-out", h.Attendance.CheckOut)
				r.Post("/break/start", h.Attendance.StartBreak)
				r.Post("/break/end", h.Attendance.EndBreak)
				r.Post("/activity", h.Attendance.RecordActivity)
				r.Get("/activity", h.Attendance.ListActivity)
				r.Get("/status", h.Attendance.GetStatus)
				r.Get("/hours", h.Attendance.GetDailyHours)
			})

			r.Route("/employees", func(r chi.Router) {
				r.Get("/me", h.Employee.GetMyProfile)
				r.Put("/me", h.Employee.UpdateMyProfile)
				r.Get("/{employeeID}/job-timings", h.Employee.GetJobTimings)

				// Team lead and admin
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireLead)
					r.Get("/", h.Employee.List)
					r.Get("/active", h.Employee.ListActive)
				})
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Post("/", h.Leave.Apply)
				r.Get("/my", h.Leave.ListMine)

				// Team lead and admin
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireLead)
					r.Get("/", h.Leave.ListAll)
					r.Post("/{leaveID}/approve", h.Leave.Approve)
					r.Post("/{leaveID}/reject", h.Leave.Reject)
				})
			})

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/my", h.Task.ListMine)
				r.Get("/my/today", h.Task.ListMineToday)
				r.Patch("/{taskID}/status", h.Task.UpdateStatus)

				// Team lead and admin
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireLead)
					r.Post("/", h.Task.Create)
				})
			})

			r.Route("/projects", func(r chi.Router) {
				r.Get("/", h.Task.ListProjects)

				// Team lead and admin
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireLead)
					r.Post("/", h.Task.CreateProject)
				})
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Get("/my", h.Payroll.ListMine)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Post("/generate", h.Payroll.Generate)
				})
			})

			r.Route("/reports", func(r chi.Router) {
				r.Get("/my/hours", h.Report.MyHours)
				r.Get("/my/man-hours", h.Report.MyManHours)

				// Team lead and admin
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireLead)
					r.Get("/employees/{employeeID}/hours", h.Report.EmployeeHours)
					r.Get("/employees/{employeeID}/man-hours", h.Report.EmployeeManHours)
				})
			})
		})
	})

	return r
}
