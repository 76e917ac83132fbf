package rest

import (
	"net/http"

	"github.com/abgdnv/storecatalog/internal/service"
	"github.com/abgdnv/storecatalog/pkg/web"
)

func (h *Handler) AddProductToStore(w http.ResponseWriter, r *http.Request) {
	storeID := r.PathValue("id")
	var req service.ProductRequest
	if !web.DecodeAndValidate(w, r, h.logger, h.validate, &req) {
		return
	}
	h.logger.DebugContext(r.Context(), "Received request to add product to store", "storeID", storeID, "name", req.Name)

	added, err := h.service.AddProductToStore(r.Context(), storeID, req)
	if err != nil {
		h.respondError(w, r, err, "Failed to add product to store")
		return
	}
	h.logger.InfoContext(r.Context(), "Product added successfully", "storeID", storeID, "ID", added.ID)
	web.RespondJSON(w, h.logger, http.StatusCreated, added)
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	found, err := h.service.GetProduct(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err, "Failed to retrieve product")
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, found)
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListProducts(r.Context())
	if err != nil {
		h.respondError(w, r, err, "Failed to fetch products")
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, list)
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.service.DeleteProduct(r.Context(), id); err != nil {
		h.respondError(w, r, err, "Failed to delete product")
		return
	}
	h.logger.InfoContext(r.Context(), "Product deleted successfully", "ID", id)
	web.RespondJSON(w, h.logger, http.StatusNoContent, nil)
}

// FindProductsByLocation reads the location query parameter; an absent parameter is passed as nil.
func (h *Handler) FindProductsByLocation(w http.ResponseWriter, r *http.Request) {
	var location *string
	if values, ok := r.URL.Query()["location"]; ok && len(values) > 0 {
		location = &values[0]
	}

	list, err := h.service.FindProductsByLocation(r.Context(), location)
	if err != nil {
		h.respondError(w, r, err, "Failed to find products by location")
		return
	}
	h.logger.DebugContext(r.Context(), "Products found by location", "count", len(list))
	web.RespondJSON(w, h.logger, http.StatusOK, list)
}

func (h *Handler) FindUniqueProducts(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.FindUniqueProducts(r.Context())
	if err != nil {
		h.respondError(w, r, err, "Failed to find unique products")
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, list)
}
