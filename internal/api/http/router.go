package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/stuffshop/backend/internal/api/http/handlers"
	"github.com/stuffshop/backend/internal/auth"
	"github.com/stuffshop/backend/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Products       *handlers.ProductsHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/sign-up", cfg.Auth.SignUp)
	authGroup.Post("/sign-in", cfg.Auth.SignIn)

	products := app.Group("/products")
	products.Get("/", cfg.Products.List)
	products.Get("/search", cfg.Products.Search)
	products.Get("/:id", cfg.Products.Get)
	products.Post("/", cfg.AuthMiddleware.Handle, cfg.AuthMiddleware.RequireRole(domain.RoleAdmin), cfg.Products.Create)
	products.Post("/:id/image", cfg.AuthMiddleware.Handle, cfg.AuthMiddleware.RequireRole(domain.RoleAdmin), cfg.Products.UploadImage)

	users := app.Group("/users", cfg.AuthMiddleware.Handle)
	users.Get("/me", cfg.Users.Me)
	users.Get("/:username", cfg.AuthMiddleware.RequireRole(domain.RoleAdmin), cfg.Users.Get)
}
