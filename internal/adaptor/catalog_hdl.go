package adaptor

import (
	"net/http"

	"cinema-ops/internal/usecase"
	"cinema-ops/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CatalogHandler struct {
	service usecase.CatalogService
	log     *zap.Logger
}

func NewCatalogHandler(service usecase.CatalogService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		log:     log.With(zap.String("handler", "catalog")),
	}
}

// GetMovies handles GET /api/movies
func (h *CatalogHandler) GetMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := h.service.GetEligibleMovies(r.Context())
	if err != nil {
		h.log.Error("Get movies failed", zap.Error(err))
		utils.ResponseInternalError(w, "Failed to retrieve movies")
		return
	}

	utils.ResponseSuccess(w, "Movies retrieved successfully", movies)
}

// GetRooms handles GET /api/rooms
func (h *CatalogHandler) GetRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.service.GetRooms(r.Context())
	if err != nil {
		h.log.Error("Get rooms failed", zap.Error(err))
		utils.ResponseInternalError(w, "Failed to retrieve rooms")
		return
	}

	utils.ResponseSuccess(w, "Rooms retrieved successfully", rooms)
}

// GetRoomSchedule handles GET /api/rooms/{id}/screenings
func (h *CatalogHandler) GetRoomSchedule(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "id")
	if roomID == "" {
		utils.ResponseBadRequest(w, "Room ID is required", nil)
		return
	}

	slots, err := h.service.GetRoomSchedule(r.Context(), roomID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Room schedule retrieved successfully", slots)
}
