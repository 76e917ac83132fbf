package rest

import (
	"net/http"

	"github.com/abgdnv/storecatalog/internal/service"
	"github.com/abgdnv/storecatalog/pkg/web"
)

func (h *Handler) CreateStore(w http.ResponseWriter, r *http.Request) {
	var req service.StoreRequest
	if !web.DecodeAndValidate(w, r, h.logger, h.validate, &req) {
		return
	}
	h.logger.DebugContext(r.Context(), "Received request to create store", "name", req.Name, "location", req.Location)

	created, err := h.service.CreateStore(r.Context(), req)
	if err != nil {
		h.respondError(w, r, err, "Failed to create store")
		return
	}
	h.logger.InfoContext(r.Context(), "Store created successfully", "ID", created.ID, "Name", created.Name)
	web.RespondJSON(w, h.logger, http.StatusCreated, created)
}

func (h *Handler) GetStore(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	h.logger.DebugContext(r.Context(), "Received request to find store by ID", "ID", id)

	found, err := h.service.GetStore(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err, "Failed to retrieve store")
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, found)
}

func (h *Handler) UpdateStore(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var req service.StoreRequest
	if !web.DecodeAndValidate(w, r, h.logger, h.validate, &req) {
		return
	}
	h.logger.DebugContext(r.Context(), "Received request to update store", "ID", id)

	updated, err := h.service.UpdateStore(r.Context(), id, req)
	if err != nil {
		h.respondError(w, r, err, "Failed to update store")
		return
	}
	h.logger.InfoContext(r.Context(), "Store updated successfully", "ID", updated.ID)
	web.RespondJSON(w, h.logger, http.StatusOK, updated)
}

func (h *Handler) DeleteStore(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	h.logger.DebugContext(r.Context(), "Received request to delete store", "ID", id)

	if err := h.service.DeleteStore(r.Context(), id); err != nil {
		h.respondError(w, r, err, "Failed to delete store")
		return
	}
	h.logger.InfoContext(r.Context(), "Store deleted successfully", "ID", id)
	web.RespondJSON(w, h.logger, http.StatusNoContent, nil)
}

func (h *Handler) ListStores(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListStores(r.Context())
	if err != nil {
		h.respondError(w, r, err, "Failed to fetch stores")
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, list)
}

func (h *Handler) ListStoresSortedByName(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListStoresSortedByName(r.Context())
	if err != nil {
		h.respondError(w, r, err, "Failed to fetch stores")
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, list)
}

func (h *Handler) ListStoresByLocation(w http.ResponseWriter, r *http.Request) {
	location := r.PathValue("location")
	list, err := h.service.ListStoresByLocation(r.Context(), location)
	if err != nil {
		h.respondError(w, r, err, "Failed to fetch stores")
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, list)
}

func (h *Handler) CopyStore(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	h.logger.DebugContext(r.Context(), "Received request to copy store", "ID", id)

	copied, err := h.service.CopyStore(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err, "Failed to copy store")
		return
	}
	h.logger.InfoContext(r.Context(), "Store copied successfully", "sourceID", id, "ID", copied.ID)
	web.RespondJSON(w, h.logger, http.StatusCreated, copied)
}
