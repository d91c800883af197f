package wire

import (
	"cinema-ops/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireScreening(r chi.Router, screeningHandler *adaptor.ScreeningHandler) {
	// Admin scheduling routes. Authentication is enforced by the host
	// gateway in front of this service.
	r.Route("/api/admin", func(r chi.Router) {
		r.Post("/screenings", screeningHandler.CreateScreening)
		r.Put("/screenings/{id}", screeningHandler.UpdateScreening)
		r.Delete("/screenings/{id}", screeningHandler.DeactivateScreening)

		r.Post("/schedule/generate", screeningHandler.GenerateSchedule)
	})
}
