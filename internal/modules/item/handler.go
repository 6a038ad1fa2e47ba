package item

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/brecholab/brecho-backend/internal/apperror"
	"github.com/go-chi/chi/v5"
)

// Handler exposes item HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/items", func(r chi.Router) {
		r.Post("/", h.upsert)               // POST   /api/v1/items
		r.Get("/", h.list)                  // GET    /api/v1/items?in_stock=true&consignor_id=&category=
		r.Get("/next-sku", h.nextSKU)       // GET    /api/v1/items/next-sku
		r.Get("/price", h.price)            // GET    /api/v1/items/price?list_price=&stage=
		r.Get("/{sku}", h.get)              // GET    /api/v1/items/{sku}
		r.Delete("/{sku}", h.delete)        // DELETE /api/v1/items/{sku}
		r.Post("/{sku}/reopen", h.reopen)   // POST   /api/v1/items/{sku}/reopen
	})
}

func (h *Handler) upsert(w http.ResponseWriter, r *http.Request) {
	var req UpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	i, err := h.service.Upsert(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, i)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := Filter{
		ActiveOnly:  q.Get("active") == "true",
		InStockOnly: q.Get("in_stock") == "true",
		ConsignorID: q.Get("consignor_id"),
		Category:    q.Get("category"),
	}
	out, err := h.service.List(r.Context(), f)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, out)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	i, err := h.service.Get(r.Context(), chi.URLParam(r, "sku"))
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, i)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "sku")); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) reopen(w http.ResponseWriter, r *http.Request) {
	i, err := h.service.Reopen(r.Context(), chi.URLParam(r, "sku"))
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, i)
}

func (h *Handler) nextSKU(w http.ResponseWriter, r *http.Request) {
	sku, err := h.service.NextSKU(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"next_sku": sku})
}

// price previews the staged price for a list price without touching any item.
func (h *Handler) price(w http.ResponseWriter, r *http.Request) {
	listPrice, err := strconv.ParseFloat(r.URL.Query().Get("list_price"), 64)
	if err != nil || listPrice <= 0 {
		respond(w, http.StatusBadRequest, map[string]string{"error": "list_price must be a positive number"})
		return
	}
	stage, err := strconv.Atoi(r.URL.Query().Get("stage"))
	if err != nil {
		stage = 0
	}
	respond(w, http.StatusOK, map[string]float64{"current_price": CurrentPrice(listPrice, stage)})
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
