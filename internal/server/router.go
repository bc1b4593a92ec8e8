package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"github.com/Omkar-Hajare/IP-practical/internal/activity"
	"github.com/Omkar-Hajare/IP-practical/internal/auth"
	"github.com/Omkar-Hajare/IP-practical/internal/books"
	"github.com/Omkar-Hajare/IP-practical/internal/middleware"
)

// Handlers are the route targets mounted by NewRouter.
type Handlers struct {
	Auth     *auth.Handler
	Books    *books.Handler
	Activity *activity.Handler
}

// NewRouter builds the HTTP API. CORS allows every origin.
func NewRouter(h Handlers, log logrus.FieldLogger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
		MaxAge:         300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/signup", h.Auth.Signup)
		r.Post("/login", h.Auth.Login)
	})

	r.Route("/api/books", func(r chi.Router) {
		r.Get("/", h.Books.List)
		r.Post("/", h.Books.Create)
		r.Put("/{id}", h.Books.Update)
		r.Delete("/{id}", h.Books.Delete)
		r.Post("/{id}/borrow", h.Books.Borrow)
		r.Post("/{id}/return", h.Books.Return)
		if h.Books.CoversEnabled() {
			r.Put("/{id}/cover", h.Books.PutCover)
			r.Get("/{id}/cover", h.Books.GetCover)
		}
	})

	r.Get("/api/activity", h.Activity.List)

	return r
}
