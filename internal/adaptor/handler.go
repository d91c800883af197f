package adaptor

import (
	"errors"
	"net/http"

	"cinema-ops/internal/data/repository"
	"cinema-ops/internal/usecase"
	"cinema-ops/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Catalog   *CatalogHandler
	Screening *ScreeningHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Catalog:   NewCatalogHandler(service.Catalog, log),
		Screening: NewScreeningHandler(service.Screening, service.Generator, log),
	}
}

// writeDomainError maps domain errors to HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrMovieNotFound),
		errors.Is(err, repository.ErrRoomNotFound),
		errors.Is(err, repository.ErrScreeningNotFound):
		utils.ResponseNotFound(w, err.Error())
	case errors.Is(err, repository.ErrRoomUnavailable),
		errors.Is(err, usecase.ErrNoRoomAvailable),
		errors.Is(err, usecase.ErrGenerationInProgress):
		utils.ResponseConflict(w, err.Error())
	case errors.Is(err, usecase.ErrMissingReleaseDate):
		utils.ResponseUnprocessable(w, err.Error())
	default:
		utils.ResponseBadRequest(w, err.Error(), nil)
	}
}
