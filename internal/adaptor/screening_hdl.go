package adaptor

import (
	"encoding/json"
	"net/http"

	"cinema-ops/internal/dto/request"
	"cinema-ops/internal/usecase"
	"cinema-ops/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ScreeningHandler struct {
	service   usecase.ScreeningService
	generator usecase.GeneratorService
	log       *zap.Logger
}

func NewScreeningHandler(service usecase.ScreeningService, generator usecase.GeneratorService, log *zap.Logger) *ScreeningHandler {
	return &ScreeningHandler{
		service:   service,
		generator: generator,
		log:       log.With(zap.String("handler", "screening")),
	}
}

// CreateScreening handles POST /api/admin/screenings
func (h *ScreeningHandler) CreateScreening(w http.ResponseWriter, r *http.Request) {
	var req request.CreateScreeningRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	screening, err := h.service.CreateScreening(r.Context(), &req)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	utils.ResponseCreated(w, "Screening created successfully", screening)
}

// UpdateScreening handles PUT /api/admin/screenings/{id}
func (h *ScreeningHandler) UpdateScreening(w http.ResponseWriter, r *http.Request) {
	screeningID := chi.URLParam(r, "id")
	if screeningID == "" {
		utils.ResponseBadRequest(w, "Screening ID is required", nil)
		return
	}

	var req request.UpdateScreeningRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	screening, err := h.service.UpdateScreening(r.Context(), screeningID, &req)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Screening updated successfully", screening)
}

// DeactivateScreening handles DELETE /api/admin/screenings/{id}
func (h *ScreeningHandler) DeactivateScreening(w http.ResponseWriter, r *http.Request) {
	screeningID := chi.URLParam(r, "id")
	if screeningID == "" {
		utils.ResponseBadRequest(w, "Screening ID is required", nil)
		return
	}

	if err := h.service.DeactivateScreening(r.Context(), screeningID); err != nil {
		writeDomainError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Screening deactivated successfully", nil)
}

// GenerateSchedule handles POST /api/admin/schedule/generate
func (h *ScreeningHandler) GenerateSchedule(w http.ResponseWriter, r *http.Request) {
	if err := h.generator.GenerateWeeklySchedule(r.Context()); err != nil {
		h.log.Warn("Manual generation trigger failed", zap.Error(err))
		writeDomainError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Schedule generation completed", nil)
}
