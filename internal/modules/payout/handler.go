package payout

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/brecholab/brecho-backend/internal/apperror"
	"github.com/go-chi/chi/v5"
)

// Handler exposes payout HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/payouts", func(r chi.Router) {
		r.Get("/", h.compute)                       // GET  /api/v1/payouts?start=&end=
		r.Get("/export", h.export)                  // GET  /api/v1/payouts/export?start=&end=
		r.Post("/settlements", h.closePeriod)       // POST /api/v1/payouts/settlements
		r.Get("/settlements", h.listSettlements)    // GET  /api/v1/payouts/settlements?consignor_id=
		r.Post("/settlements/{id}/pay", h.markPaid) // POST /api/v1/payouts/settlements/{id}/pay
	})
}

func (h *Handler) compute(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rows, err := h.service.Compute(r.Context(), q.Get("start"), q.Get("end"))
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, rows)
}

func (h *Handler) export(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	start, end := q.Get("start"), q.Get("end")
	rows, err := h.service.Compute(r.Context(), start, end)
	if err != nil {
		respondError(w, err)
		return
	}
	f, err := ExportWorkbook(rows, start, end)
	if err != nil {
		respondError(w, err)
		return
	}
	w.Header().Set("Content-Type",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="payouts_%s_%s.xlsx"`, start, end))
	if err := f.Write(w); err != nil {
		respondError(w, err)
	}
}

func (h *Handler) closePeriod(w http.ResponseWriter, r *http.Request) {
	var req PeriodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	settlements, err := h.service.ClosePeriod(r.Context(), req.Start, req.End)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusCreated, settlements)
}

func (h *Handler) listSettlements(w http.ResponseWriter, r *http.Request) {
	out, err := h.service.ListSettlements(r.Context(), r.URL.Query().Get("consignor_id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, out)
}

func (h *Handler) markPaid(w http.ResponseWriter, r *http.Request) {
	s, err := h.service.MarkPaid(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, s)
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
