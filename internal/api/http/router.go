package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/meals-service/internal/api/http/handlers"
	"github.com/spec-kit/meals-service/internal/auth"
	"github.com/spec-kit/meals-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health            *handlers.HealthHandler
	Auth              *handlers.AuthHandler
	Requests          *handlers.RequestsHandler
	Meals             *handlers.MealsHandler
	Profile           *handlers.ProfileHandler
	SessionMiddleware *auth.SessionMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/signup", cfg.Auth.Signup)
	app.Post("/login", cfg.Auth.Login)
	app.Get("/login", cfg.Auth.AutoLogin)
	app.Get("/logout", cfg.Auth.Logout)

	// catalog browsing is public; distance annotation kicks in with a session
	app.Get("/getmeals", cfg.Meals.List)
	app.Post("/searchmeals", cfg.Meals.Search)

	protected := app.Group("", cfg.SessionMiddleware.Handle)
	protected.Post("/placerequest", cfg.Requests.Place)
	protected.Post("/getrequests", cfg.Requests.List)
	protected.Post("/updaterequeststatus", cfg.Requests.UpdateStatus)
	protected.Post("/deleterequest", cfg.Requests.Delete)

	protected.Post("/addmeal", auth.RequireRole(domain.RoleChef), cfg.Meals.Create)
	protected.Post("/deletemeal", auth.RequireRole(domain.RoleChef), cfg.Meals.Delete)

	protected.Get("/profile", cfg.Profile.Get)
	protected.Post("/updateprofile", cfg.Profile.Update)
}
