package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/shaikazeem2001/inventory/docs"
	"github.com/shaikazeem2001/inventory/internal/http/handlers"
	mw "github.com/shaikazeem2001/inventory/internal/http/middleware"
)

// NewRouter builds the API. Requests from allowedOrigins may carry credentials.
func NewRouter(allowedOrigins ...string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(mw.RateLimit)
			r.Post("/register", handlers.RegisterHandler)
			r.Post("/login", handlers.LoginHandler)
			r.Post("/refresh", handlers.RefreshHandler)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", handlers.GetProductsHandler)
			r.Get("/sku/{sku}", handlers.GetProductBySKUHandler)
			r.Get("/{id}", handlers.GetProductByIDHandler)

			r.Group(func(r chi.Router) {
				r.Use(mw.Authenticate)
				r.Get("/export", handlers.ExportProductsHandler)
				r.Post("/", handlers.CreateProductHandler)
				r.Put("/{id}", handlers.UpdateProductHandler)
				r.Delete("/{id}", handlers.DeleteProductHandler)
			})

			r.Group(func(r chi.Router) {
				r.Use(mw.RateLimit)
				r.Use(mw.Authenticate)
				r.Use(mw.RequireAdmin)
				r.Post("/import", handlers.ImportProductsHandler)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(mw.Authenticate)
			r.Get("/metrics/dashboard", handlers.GetDashboardMetricsHandler)

			r.Group(func(r chi.Router) {
				r.Use(mw.RequireAdmin)
				r.Get("/logs", handlers.GetLogsHandler)
				r.Get("/admin/users", handlers.ListUsersHandler)
				r.Post("/admin/users", handlers.RegisterAsAdminHandler)
				r.Post("/admin/promote-admin/{username}", handlers.PromoteAdminHandler)
			})
		})
	})

	return r
}
