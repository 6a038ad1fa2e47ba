package report

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/brecholab/brecho-backend/internal/apperror"
	"github.com/go-chi/chi/v5"
)

// Handler exposes report HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/reports", func(r chi.Router) {
		r.Get("/stock", h.stock)               // GET /api/v1/reports/stock
		r.Get("/sales", h.sales)               // GET /api/v1/reports/sales?start=&end=
		r.Get("/sell-through", h.sellThrough)  // GET /api/v1/reports/sell-through?start=&end=
		r.Get("/slow-movers", h.slowMovers)    // GET /api/v1/reports/slow-movers?min_days=&limit=
	})
}

func (h *Handler) stock(w http.ResponseWriter, r *http.Request) {
	s, err := h.service.StockSummary(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, s)
}

func (h *Handler) sales(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	s, err := h.service.SalesSummary(r.Context(), q.Get("start"), q.Get("end"))
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, s)
}

func (h *Handler) sellThrough(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	s, err := h.service.SellThrough(r.Context(), q.Get("start"), q.Get("end"))
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, s)
}

func (h *Handler) slowMovers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	minDays, _ := strconv.Atoi(q.Get("min_days"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	out, err := h.service.SlowMovers(r.Context(), minDays, limit)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, out)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	if apperror.IsValidation(err) {
		code = http.StatusBadRequest
	}
	respond(w, code, map[string]string{"error": err.Error()})
}
