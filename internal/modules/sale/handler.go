package sale

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/georgemunganga/vendorhub/internal/apperr"
	"github.com/georgemunganga/vendorhub/internal/httpio"
	"github.com/georgemunganga/vendorhub/internal/modules/auth"
)

type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireIdentity)
		r.Post("/api/v1/stores/{store_id}/sales", h.recordSale)
		r.Get("/api/v1/sales/{id}", h.getSale)
		r.Get("/api/v1/stores/{store_id}/analytics/daily", h.daily)
		r.Get("/api/v1/stores/{store_id}/analytics/today", h.today)
		r.Get("/api/v1/stores/{store_id}/analytics/revenue", h.revenue)
	})
}

func (h *Handler) recordSale(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.IdentityFromContext(r.Context())
	storeID, err := httpio.UUIDParam(r, "store_id")
	if err != nil {
		httpio.Error(w, r, err)
		return
	}
	var req RecordSaleRequest
	if err := httpio.Decode(r, &req); err != nil {
		httpio.Error(w, r, err)
		return
	}
	sale, err := h.service.RecordSale(r.Context(), storeID, ident.UserID, req.Items)
	if err != nil {
		httpio.Error(w, r, err)
		return
	}
	httpio.Respond(w, http.StatusCreated, sale)
}

func (h *Handler) getSale(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.IdentityFromContext(r.Context())
	id, err := httpio.UUIDParam(r, "id")
	if err != nil {
		httpio.Error(w, r, err)
		return
	}
	sale, err := h.service.GetSale(r.Context(), id, ident.UserID)
	if err != nil {
		httpio.Error(w, r, err)
		return
	}
	httpio.Respond(w, http.StatusOK, sale)
}

func (h *Handler) daily(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.IdentityFromContext(r.Context())
	storeID, err := httpio.UUIDParam(r, "store_id")
	if err != nil {
		httpio.Error(w, r, err)
		return
	}
	days := 0
	if raw := r.URL.Query().Get("days"); raw != "" {
		days, err = strconv.Atoi(raw)
		if err != nil {
			httpio.Error(w, r, apperr.NewValidation("days", "must be a whole number"))
			return
		}
	}
	metrics, err := h.service.GetDailySalesMetrics(r.Context(), storeID, ident.UserID, days)
	if err != nil {
		httpio.Error(w, r, err)
		return
	}
	httpio.Respond(w, http.StatusOK, metrics)
}

func (h *Handler) today(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.IdentityFromContext(r.Context())
	storeID, err := httpio.UUIDParam(r, "store_id")
	if err != nil {
		httpio.Error(w, r, err)
		return
	}
	metrics, err := h.service.GetTodaysSalesMetrics(r.Context(), storeID, ident.UserID)
	if err != nil {
		httpio.Error(w, r, err)
		return
	}
	httpio.Respond(w, http.StatusOK, metrics)
}

func (h *Handler) revenue(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.IdentityFromContext(r.Context())
	storeID, err := httpio.UUIDParam(r, "store_id")
	if err != nil {
		httpio.Error(w, r, err)
		return
	}
	total, err := h.service.GetTotalRevenue(r.Context(), storeID, ident.UserID)
	if err != nil {
		httpio.Error(w, r, err)
		return
	}
	httpio.Respond(w, http.StatusOK, map[string]float64{"total_revenue": total})
}
