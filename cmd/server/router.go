package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/phrazzld/thrones-api/internal/api"
	"github.com/phrazzld/thrones-api/internal/api/docs"
	apiMiddleware "github.com/phrazzld/thrones-api/internal/api/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	metrics := apiMiddleware.NewMetrics(app.registry)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.Trace(app.logger))
	r.Use(metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.config.Server.CORSAllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{apiMiddleware.TraceIDHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(apiMiddleware.RequestLogger)

	healthHandler := api.NewHealthHandler(app.db)
	authHandler := api.NewAuthHandler(app.userService, app.jwtService, app.logger)
	characterHandler := api.NewCharacterHandler(app.characterService, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)
	docsHandler := docs.NewHandler("Game of Thrones API")

	r.Get("/", healthHandler.Home)
	r.Get("/health", healthHandler.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(app.registry, promhttp.HandlerOpts{}))
	r.Get(docs.SpecPath, docsHandler.ServeSpec)
	r.Get("/docs", docsHandler.ServeUI)

	// Public routes
	r.Post("/auth/register", authHandler.Register)
	r.Post("/auth/token", authHandler.Token)
	r.Get("/get-characters-id/{id}", characterHandler.GetCharacter)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		r.Get("/list-characters", characterHandler.ListCharacters)
		r.Get("/filter-characters", characterHandler.FilterCharacters)
		r.Post("/characters-sort", characterHandler.SortCharacters)
		r.Post("/add/create-new-characters", characterHandler.CreateCharacter)
		r.Put("/update-character/{id}", characterHandler.UpdateCharacter)
		r.Delete("/delete-characters/{id}", characterHandler.DeleteCharacter)
	})

	return r
}
