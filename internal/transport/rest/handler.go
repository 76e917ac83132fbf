// Package rest provides HTTP handlers for the catalog operations.
package rest

import (
	"errors"
	"log/slog"
	"net/http"

	catalogerrors "github.com/abgdnv/storecatalog/internal/errors"
	"github.com/abgdnv/storecatalog/internal/service"
	"github.com/abgdnv/storecatalog/pkg/web"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type Handler struct {
	service  service.CatalogService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewHandler creates a new catalog REST handler over the provided service.
func NewHandler(svc service.CatalogService, logger *slog.Logger) *Handler {
	return &Handler{
		service:  svc,
		validate: service.NewValidator(),
		logger:   logger.With("component", "rest"),
	}
}

// RegisterRoutes registers the HTTP routes for the catalog service.
func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/stores", func(r chi.Router) {
		r.Get("/", h.ListStores)
		r.Post("/", h.CreateStore)
		r.Get("/sorted", h.ListStoresSortedByName)
		r.Get("/location/{location}", h.ListStoresByLocation)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetStore)
			r.Put("/", h.UpdateStore)
			r.Delete("/", h.DeleteStore)
			r.Post("/copy", h.CopyStore)
			r.Post("/products", h.AddProductToStore)
		})
	})

	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", h.ListProducts)
		r.Get("/by-location", h.FindProductsByLocation)
		r.Get("/unique", h.FindUniqueProducts)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetProduct)
			r.Delete("/", h.DeleteProduct)
		})
	})

	r.Get("/healthz", h.HealthCheck)
}

// HealthCheck reports that the HTTP server is serving.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	web.RespondJSON(w, h.logger, http.StatusOK, map[string]string{"status": "ok"})
}

// respondError maps a service error to its HTTP status.
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error, failure string) {
	var validationErr *catalogerrors.ValidationError
	switch {
	case errors.As(err, &validationErr):
		h.logger.WarnContext(r.Context(), "Validation errors occurred", "errors", validationErr.Fields)
		web.RespondValidationErrors(w, h.logger, validationErr.Fields)
	case errors.Is(err, catalogerrors.ErrInvalidArgument):
		h.logger.WarnContext(r.Context(), "Invalid argument", "error", err)
		web.RespondError(w, h.logger, http.StatusBadRequest, err.Error())
	case errors.Is(err, catalogerrors.ErrStoreNotFound):
		h.logger.WarnContext(r.Context(), "Store not found", "error", err)
		web.RespondError(w, h.logger, http.StatusNotFound, "Store not found")
	case errors.Is(err, catalogerrors.ErrProductNotFound):
		h.logger.WarnContext(r.Context(), "Product not found", "error", err)
		web.RespondError(w, h.logger, http.StatusNotFound, "Product not found")
	default:
		h.logger.ErrorContext(r.Context(), failure, "error", err)
		web.RespondError(w, h.logger, http.StatusInternalServerError, failure)
	}
}
