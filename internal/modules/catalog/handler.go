package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/georgemunganga/vendorhub/internal/httpio"
	"github.com/georgemunganga/vendorhub/internal/modules/auth"
)

// Handler exposes catalog HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireIdentity)
		r.Get("/api/v1/catalog/products", h.searchProducts)
		r.Post("/api/v1/catalog/products", h.createProduct)
		r.Get("/api/v1/catalog/products/{id}", h.getProduct)
	})
}

func (h *Handler) searchProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.SearchGlobalProducts(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		httpio.Error(w, r, err)
		return
	}
	httpio.Respond(w, http.StatusOK, products)
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.IdentityFromContext(r.Context())
	var req CreateGlobalProductRequest
	if err := httpio.Decode(r, &req); err != nil {
		httpio.Error(w, r, err)
		return
	}
	p, err := h.service.CreateGlobalProduct(r.Context(), ident.Role, req)
	if err != nil {
		httpio.Error(w, r, err)
		return
	}
	httpio.Respond(w, http.StatusCreated, p)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := httpio.UUIDParam(r, "id")
	if err != nil {
		httpio.Error(w, r, err)
		return
	}
	p, err := h.service.GetGlobalProduct(r.Context(), id)
	if err != nil {
		httpio.Error(w, r, err)
		return
	}
	httpio.Respond(w, http.StatusOK, p)
}
