package consignor

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/brecholab/brecho-backend/internal/apperror"
	"github.com/go-chi/chi/v5"
)

// Handler exposes consignor HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/consignors", func(r chi.Router) {
		r.Post("/", h.upsert)                     // POST   /api/v1/consignors
		r.Get("/", h.list)                        // GET    /api/v1/consignors?active=true
		r.Get("/next-id", h.nextID)               // GET    /api/v1/consignors/next-id
		r.Get("/{id}", h.get)                     // GET    /api/v1/consignors/{id}
		r.Delete("/{id}", h.delete)               // DELETE /api/v1/consignors/{id}
		r.Post("/{id}/deactivate", h.deactivate)  // POST   /api/v1/consignors/{id}/deactivate
	})
}

func (h *Handler) upsert(w http.ResponseWriter, r *http.Request) {
	var req UpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	c, err := h.service.Upsert(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, c)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"
	out, err := h.service.List(r.Context(), activeOnly)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, out)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	c, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, c)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deactivate(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Deactivate(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) nextID(w http.ResponseWriter, r *http.Request) {
	id, err := h.service.NextID(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"next_id": id})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case apperror.IsValidation(err):
		code = http.StatusBadRequest
	case errors.Is(err, apperror.ErrNotFound):
		code = http.StatusNotFound
	}
	respond(w, code, map[string]string{"error": err.Error()})
}
