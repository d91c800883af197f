package wire

import (
	"cinema-ops/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireCatalog(r chi.Router, catalogHandler *adaptor.CatalogHandler) {
	// Public read-only routes
	r.Get("/api/movies", catalogHandler.GetMovies)
	r.Get("/api/rooms", catalogHandler.GetRooms)
	r.Get("/api/rooms/{id}/screenings", catalogHandler.GetRoomSchedule)
}
