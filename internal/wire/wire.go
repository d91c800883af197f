package wire

import (
	"net/http"

	"cinema-ops/internal/adaptor"
	"cinema-ops/internal/data/repository"
	"cinema-ops/internal/usecase"
	"cinema-ops/pkg/lock"
	"cinema-ops/pkg/middleware"
	"cinema-ops/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired application
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring initializes all dependencies
func Wiring(repo *repository.Repository, config *utils.Config, runLock lock.RunLock, logger *zap.Logger) *App {
	service := usecase.NewService(repo, config, runLock, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

// setupRouter configures the chi router
func setupRouter(handler *adaptor.Handler, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	wireCatalog(r, handler.Catalog)
	wireScreening(r, handler.Screening)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
