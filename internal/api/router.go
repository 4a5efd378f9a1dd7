package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/isdelr/chroniclex-be/internal/api/handlers"
	"github.com/isdelr/chroniclex-be/internal/apperr"
	"github.com/isdelr/chroniclex-be/internal/auth"
	"github.com/isdelr/chroniclex-be/internal/config"
	"github.com/isdelr/chroniclex-be/internal/services"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(cfg *config.Config, userService services.UserServiceProvider, blogService services.BlogServiceProvider) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(accessLog)
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)

	corsOptions := cors.Options{
		AllowedOrigins:   cfg.CORSOrigins(),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if cfg.AllowAllOrigins() {
		corsOptions.AllowOriginFunc = func(*http.Request, string) bool { return true }
	}
	r.Use(cors.Handler(corsOptions))

	r.Use(auth.Middleware(userService, handlers.WriteError))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handlers.WriteError(w, r, fmt.Errorf("%w: no route for %s", apperr.ErrNotFound, r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		handlers.WriteJSON(w, http.StatusMethodNotAllowed, handlers.ErrorResponse{
			Error:  "method_not_allowed",
			Detail: fmt.Sprintf("method %s not allowed", r.Method),
		})
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	blogHandler := handlers.NewBlogHandler(blogService)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", authHandler.Signup)
		r.Post("/login", authHandler.Login)
		r.Post("/logout", authHandler.Logout)
	})

	r.Route("/blogs", func(r chi.Router) {
		r.Get("/", blogHandler.GetAll)
		r.Post("/", blogHandler.Create)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", blogHandler.Get)
			r.Put("/", blogHandler.Update)
			r.Patch("/", blogHandler.PartialUpdate)
			r.Delete("/", blogHandler.Delete)
		})
	})

	return r
}
