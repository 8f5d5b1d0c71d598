package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fixware/repairdesk/internal/api/http/handlers"
	"github.com/fixware/repairdesk/internal/auth"
	"github.com/fixware/repairdesk/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Accounts       *handlers.AccountsHandler
	Profile        *handlers.ProfileHandler
	Requests       *handlers.RequestsHandler
	AdminRequests  *handlers.AdminRequestsHandler
	AdminUsers     *handlers.AdminUsersHandler
	Export         *handlers.ExportHandler
	Content        *handlers.ContentHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Accounts.Register)
	authGroup.Post("/login", cfg.Accounts.Login)
	authGroup.Post("/admin/login", cfg.Accounts.AdminLogin)
	authGroup.Post("/admin/password", cfg.AuthMiddleware.Handle, auth.RequireAdminRole(), cfg.Accounts.ChangePassword)

	api := app.Group("/api")
	api.Get("/content/home", cfg.Content.Home)
	api.Post("/requests", cfg.AuthMiddleware.OptionalHandle, cfg.Requests.Create)
	api.Get("/requests/track", cfg.Requests.Track)
	api.Get("/requests/:id", cfg.Requests.GetByID)

	me := api.Group("/me", cfg.AuthMiddleware.Handle, auth.RequireCustomer())
	me.Get("/profile", cfg.Profile.Get)
	me.Patch("/profile", cfg.Profile.Patch)
	me.Get("/requests", cfg.Profile.Requests)

	admin := api.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireAdminRole())
	admin.Get("/requests", cfg.AdminRequests.List)
	admin.Patch("/requests/:id/status", cfg.AdminRequests.UpdateStatus)
	admin.Patch("/requests/:id/estimates", cfg.AdminRequests.UpdateEstimates)
	admin.Post("/requests/import", auth.RequireAdminRole(domain.AdminRoleAdmin), cfg.AdminRequests.Import)

	admin.Get("/users", cfg.AdminUsers.List)
	admin.Delete("/users/:uid", auth.RequireAdminRole(domain.AdminRoleAdmin), cfg.AdminUsers.Delete)
	admin.Get("/users/:uid/requests", cfg.AdminUsers.Requests)

	admin.Get("/export/requests.csv", cfg.Export.Requests)
	admin.Get("/export/users.csv", cfg.Export.Users)
	admin.Get("/export/users/:uid/requests.csv", cfg.Export.UserHistory)

	admin.Put("/content/home", auth.RequireAdminRole(domain.AdminRoleAdmin), cfg.Content.UpdateHome)
}
