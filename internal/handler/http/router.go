package http

import (
	"log/slog"
	"net/http"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/user"
	"github.com/dayflow-hr/dayflow-backend-go/internal/handler/http/middleware"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// RouterConfig carries everything NewRouter mounts.
type RouterConfig struct {
	Logger            *slog.Logger
	CORSOrigins       []string
	JWTService        jwt.Service
	Metrics           http.Handler
	AuthHandler       AuthHandler
	AttendanceHandler AttendanceHandler
	LeaveHandler      LeaveHandler
	PayrollHandler    PayrollHandler
	UserHandler       UserHandler
	AdminHandler      AdminHandler
	HealthHandler     HealthHandler
}

func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	if cfg.Logger != nil {
		r.Use(httplog.RequestLogger(cfg.Logger, &httplog.Options{
			Level:  slog.LevelInfo,
			Schema: httplog.SchemaECS,
		}))
	}

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Get("/healthz", cfg.HealthHandler.Health)
	if cfg.Metrics != nil {
		r.Handle("/metrics", cfg.Metrics)
	}

	ja := cfg.JWTService.JWTAuth()

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", cfg.AuthHandler.Signup)
			r.Get("/verify/{token}", cfg.AuthHandler.VerifyEmail)
			r.Post("/login", cfg.AuthHandler.Login)
			r.Get("/login/google", cfg.AuthHandler.LoginWithGoogle)
			r.Get("/oauth/callback/google", cfg.AuthHandler.OAuthCallbackGoogle)
			r.Post("/refresh", cfg.AuthHandler.RefreshToken)
			r.Post("/logout", cfg.AuthHandler.Logout)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(ja))
			r.Use(middleware.AuthRequired(ja))

			r.Route("/attendance", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionAttendanceOwn)).Post("/check-in", cfg.AttendanceHandler.CheckIn)
				r.With(middleware.RequirePermission(user.PermissionAttendanceOwn)).Post("/check-out", cfg.AttendanceHandler.CheckOut)
				r.With(middleware.RequirePermission(user.PermissionAttendanceOwn)).Get("/me", cfg.AttendanceHandler.GetMyAttendance)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAttendanceViewAll))
					r.Get("/", cfg.AttendanceHandler.List)
					r.Get("/export", cfg.AttendanceHandler.Export)
				})
			})

			r.Route("/leaves", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionLeaveOwn)).Post("/apply", cfg.LeaveHandler.Apply)
				r.With(middleware.RequirePermission(user.PermissionLeaveOwn)).Post("/", cfg.LeaveHandler.Apply)
				r.With(middleware.RequirePermission(user.PermissionLeaveOwn)).Get("/me", cfg.LeaveHandler.ListMine)
				r.With(middleware.RequirePermission(user.PermissionLeaveViewAll)).Get("/", cfg.LeaveHandler.ListAll)
				r.With(middleware.RequirePermission(user.PermissionLeaveDecide)).Put("/{id}", cfg.LeaveHandler.Decide)
			})

			r.Route("/payroll", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionPayrollOwn)).Get("/me/view", cfg.PayrollHandler.GetMine)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionPayrollManage))
					r.Post("/", cfg.PayrollHandler.Set)
					r.Get("/employee/{employeeId}", cfg.PayrollHandler.GetByEmployeeID)
				})
			})

			r.Route("/users", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionProfileOwn)).Get("/me", cfg.UserHandler.GetMe)
				r.With(middleware.RequirePermission(user.PermissionProfileOwn)).Put("/me", cfg.UserHandler.UpdateMe)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionUserManage))
					r.Get("/", cfg.UserHandler.List)
					r.Put("/{id}", cfg.UserHandler.Update)
				})
			})

			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.With(middleware.RequirePermission(user.PermissionUserManage)).Get("/employees/by-employee-id/{employeeId}", cfg.AdminHandler.GetEmployeeRecord)
				r.With(middleware.RequirePermission(user.PermissionDayCloseRun)).Post("/day-close", cfg.AdminHandler.RunDayClose)
			})
		})
	})

	return r
}
