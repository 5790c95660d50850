package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/handler/http/middleware"
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/pkg/jwt"
)

func NewRouter(
	JWTService jwt.Service,
	authHandler AuthHandler,
	scheduleHandler ScheduleHandler,
	overrideHandler OverrideHandler,
	attendanceHandler AttendanceHandler,
	masterHandler MasterHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "ability-assistance"),
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

		r.Route("/auth", func(r chi.Router) {
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
			r.Route("/oauth/callback", func(r chi.Router) {
				r.Get("/google", authHandler.OAuthCallbackGoogle)
			})

			r.Route("/login", func(r chi.Router) {
				r.Post("/", authHandler.Login)
				r.Route("/oauth", func(r chi.Router) {
					r.Get("/google", authHandler.LoginWithGoogle)
				})
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/attendances", func(r chi.Router) {
				r.Post("/check-in", attendanceHandler.CheckIn)
				r.Post("/check-out", attendanceHandler.CheckOut)
				r.Get("/my", attendanceHandler.GetMyAttendance)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", attendanceHandler.List)
					r.Get("/{id}", attendanceHandler.Get)
					r.Put("/{id}", attendanceHandler.Update)
				})
			})

			r.Route("/schedules", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Get("/", scheduleHandler.List)
				r.Post("/", scheduleHandler.Create)
				r.Get("/{id}", scheduleHandler.Get)
				r.Put("/{id}", scheduleHandler.Update)
				r.Delete("/{id}", scheduleHandler.Delete)

				r.Post("/{id}/ranges", scheduleHandler.CreateRange)
				r.Put("/{id}/ranges/{rangeID}", scheduleHandler.UpdateRange)
				r.Delete("/{id}/ranges/{rangeID}", scheduleHandler.DeleteRange)
			})

			r.Route("/schedule-changes", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Get("/", overrideHandler.ListChanges)
				r.Post("/", overrideHandler.CreateChange)
				r.Get("/{id}", overrideHandler.GetChange)
				r.Put("/{id}", overrideHandler.UpdateChange)
				r.Delete("/{id}", overrideHandler.DeleteChange)
			})

			r.Route("/schedule-exceptions", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Get("/", overrideHandler.ListExceptions)
				r.Post("/", overrideHandler.CreateException)
				r.Get("/{id}", overrideHandler.GetException)
				r.Put("/{id}", overrideHandler.UpdateException)
				r.Delete("/{id}", overrideHandler.DeleteException)
			})

			r.Route("/master", func(r chi.Router) {
				r.Use(middleware.AdminOnly)

				r.Route("/companies", func(r chi.Router) {
					r.Get("/", masterHandler.ListCompanies)
					r.Post("/", masterHandler.CreateCompany)
					r.Get("/{id}", masterHandler.GetCompany)
					r.Put("/{id}", masterHandler.UpdateCompany)
					r.Delete("/{id}", masterHandler.DeleteCompany)
				})

				r.Route("/workplaces", func(r chi.Router) {
					r.Get("/", masterHandler.ListWorkplaces)
					r.Post("/", masterHandler.CreateWorkplace)
					r.Get("/{id}", masterHandler.GetWorkplace)
					r.Put("/{id}", masterHandler.UpdateWorkplace)
					r.Delete("/{id}", masterHandler.DeleteWorkplace)
				})

				r.Route("/positions", func(r chi.Router) {
					r.Get("/", masterHandler.ListPositions)
					r.Post("/", masterHandler.CreatePosition)
					r.Get("/{id}", masterHandler.GetPosition)
					r.Put("/{id}", masterHandler.UpdatePosition)
					r.Delete("/{id}", masterHandler.DeletePosition)
				})

				r.Route("/users", func(r chi.Router) {
					r.Get("/", masterHandler.ListUsers)
					r.Post("/", masterHandler.CreateUser)
					r.Get("/{id}", masterHandler.GetUser)
					r.Put("/{id}", masterHandler.UpdateUser)
					r.Delete("/{id}", masterHandler.DeleteUser)
				})
			})
		})
	})
	return r
}
