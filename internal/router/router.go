package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	middleware2 "github.com/Ihor-Prokopenko/teams-app/pkg/middleware"

	"github.com/Ihor-Prokopenko/teams-app/internal/handler"
	"github.com/Ihor-Prokopenko/teams-app/internal/metrics"
	"github.com/Ihor-Prokopenko/teams-app/internal/middleware"
)

func SetupRouter(
	userHandler *handler.UserHandler,
	teamHandler *handler.TeamHandler,
	memberHandler *handler.MemberHandler,
	oauthHandler *handler.OAuthHandler,
	healthHandler *handler.HealthHandler,
	sessions middleware.SessionValidator,
) http.Handler {
	r := chi.NewRouter()

	// Global middlewares
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware2.LoggingMiddleware)
	r.Use(metrics.Middleware)
	r.Use(chimiddleware.Timeout(15 * time.Second))

	// Operational endpoints
	r.Handle("/metrics", promhttp.Handler())
	r.Head("/health", healthHandler.Health)
	r.Get("/health", healthHandler.Health)

	// Public endpoints
	r.Post("/api/users/register/", userHandler.Register)
	r.Post("/api/users/login/", userHandler.Login)
	r.Get("/api/users/oauth/google", oauthHandler.GoogleLogin)
	r.Get("/api/users/oauth/google/redirect/", oauthHandler.GoogleRedirect)
	r.Get("/api/users/oauth/google/callback", oauthHandler.GoogleCallback)

	// Protected endpoints (require an authenticated session)
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(sessions))

		// Account endpoints
		r.Post("/api/users/logout/", userHandler.Logout)
		r.Put("/api/users/edit-profile/", userHandler.EditProfile)
		r.Post("/api/users/change-password/", userHandler.ChangePassword)
		r.Delete("/api/users/delete/{id}/", userHandler.DeleteAccount)

		// Team endpoints
		r.Get("/api/teams/", teamHandler.ListTeams)
		r.Post("/api/teams/create/", teamHandler.CreateTeam)
		r.Get("/api/teams/{id}/", teamHandler.GetTeam)
		r.Put("/api/teams/{id}/update/", teamHandler.UpdateTeam)
		r.Delete("/api/teams/{id}/delete/", teamHandler.DeleteTeam)

		// Membership endpoints
		r.Post("/api/teams/{team_id}/add-member/{member_id}/", teamHandler.AddMember)
		r.Post("/api/teams/{team_id}/remove-member/{member_id}/", teamHandler.RemoveMember)

		// Member endpoints
		r.Get("/api/members/", memberHandler.ListMembers)
		r.Post("/api/members/create/", memberHandler.CreateMember)
		r.Get("/api/members/{id}/", memberHandler.GetMember)
		r.Put("/api/members/{id}/update/", memberHandler.UpdateMember)
		r.Delete("/api/members/{id}/delete/", memberHandler.DeleteMember)
	})

	return r
}
