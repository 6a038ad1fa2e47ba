package automation

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/brecholab/brecho-backend/internal/modules/item"
	"github.com/go-chi/chi/v5"
)

// Handler exposes the markdown automation endpoints, driven by an operator
// button or an external cron.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/automation", func(r chi.Router) {
		r.Post("/markdown", h.run)           // POST /api/v1/automation/markdown?as_of=YYYY-MM-DD
		r.Get("/markdown/pending", h.pending) // GET  /api/v1/automation/markdown/pending
	})
}

func (h *Handler) run(w http.ResponseWriter, r *http.Request) {
	asOf, ok := parseAsOf(w, r)
	if !ok {
		return
	}
	counts, err := h.service.Run(r.Context(), asOf)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, counts)
}

func (h *Handler) pending(w http.ResponseWriter, r *http.Request) {
	asOf, ok := parseAsOf(w, r)
	if !ok {
		return
	}
	changes, err := h.service.Pending(r.Context(), asOf)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, changes)
}

func parseAsOf(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	raw := r.URL.Query().Get("as_of")
	if raw == "" {
		return time.Now(), true
	}
	asOf, err := time.Parse(item.DateLayout, raw)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "as_of must be a YYYY-MM-DD date"})
		return time.Time{}, false
	}
	return asOf, true
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
