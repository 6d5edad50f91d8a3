package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/Lullucoder/EXPENSE-TRACKER-2/internal/apperr"
)

// NewRouter wires the API routes. In the authenticated variant the
// expense routes sit behind RequireAuth and the auth endpoints are
// mounted; in the open variant expenses are public and unscoped.
func NewRouter(h *Handlers, corsOrigin string) chi.Router {
	r := chi.NewRouter()
	r.Use(RequestLogger)
	r.Use(Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{corsOrigin},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
	}))

	r.Route("/api", func(r chi.Router) {
		if !h.authDisabled {
			r.Post("/auth/register", h.Register)
			r.Post("/auth/login", h.Login)
		}

		r.Group(func(r chi.Router) {
			if !h.authDisabled {
				r.Use(h.RequireAuth)
			}
			r.Get("/expenses", h.ListExpenses)
			r.Post("/expenses", h.CreateExpense)
			r.Put("/expenses/{id}", h.UpdateExpense)
			r.Delete("/expenses/{id}", h.DeleteExpense)
		})
	})

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		errorJSON(w, apperr.New(apperr.NotFound, "not found"))
	})

	return r
}
