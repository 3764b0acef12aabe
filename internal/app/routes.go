package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/riandyrn/otelchi"
)

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)

	r.Use(middleware.Logger)
	r.Use(middleware.RequestID)
	r.Use(otelchi.Middleware(serviceName, otelchi.WithChiRoutes(r)))
	r.Use(app.recoverPanic)
	r.Use(app.sessionManager.LoadAndSave)
	r.Use(app.ensureGuestSession)

	r.Get("/health", app.GetHealth)

	r.Route("/films", func(r chi.Router) {
		r.Get("/", app.GetFilms)
		r.Post("/", app.CreateFilm)
		r.Get("/{filmId}/schedule", app.GetFilmSchedule)
		r.Get("/{filmId}/schedule/{screeningId}/seats", app.GetScreeningSeats)
	})

	r.Route("/order", func(r chi.Router) {
		r.Post("/", app.CreateOrder)
		r.Get("/", app.GetSessionOrders)
	})

	return r
}
