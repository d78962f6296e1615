package product

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/georgemunganga/vendorhub/internal/httpio"
	"github.com/georgemunganga/vendorhub/internal/modules/auth"
)

// Handler exposes vendor product and admin review endpoints.
type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireIdentity)

		r.Post("/api/v1/stores/{store_id}/products", h.addProduct)
		r.Get("/api/v1/stores/{store_id}/products", h.listProducts)
		r.Get("/api/v1/stores/{store_id}/products/low-stock", h.lowStock)
		r.Patch("/api/v1/products/{id}", h.updateProduct)
		r.Delete("/api/v1/products/{id}", h.deleteProduct)

		r.Get("/api/v1/admin/reviews", h.pendingReviews)
		r.Post("/api/v1/admin/reviews/{id}/approve", h.approve)
		r.Post("/api/v1/admin/reviews/{id}/reject", h.reject)
	})
}

func (h *Handler) addProduct(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.IdentityFromContext(r.Context())
	storeID, err := httpio.UUIDParam(r, "store_id")
	if err != nil {
		httpio.Error(w, r, err)
		return
	}
	var req CreateProductRequest
	if err := httpio.Decode(r, &req); err != nil {
		httpio.Error(w, r, err)
		return
	}
	p, err := h.service.AddProductToStore(r.Context(), storeID, ident.UserID, req)
	if err != nil {
		httpio.Error(w, r, err)
		return
	}
	httpio.Respond(w, http.StatusCreated, p)
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.IdentityFromContext(r.Context())
	storeID, err := httpio.UUIDParam(r, "store_id")
	if err != nil {
		httpio.Error(w, r, err)
		return
	}
	products, err := h.service.GetStoreProducts(r.Context(), storeID, ident.UserID)
	if err != nil {
		httpio.Error(w, r, err)
		return
	}
	httpio.Respond(w, http.StatusOK, products)
}

func (h *Handler) lowStock(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.IdentityFromContext(r.Context())
	storeID, err := httpio.UUIDParam(r, "store_id")
	if err != nil {
		httpio.Error(w, r, err)
		return
	}
	products, err := h.service.GetLowStockProducts(r.Context(), storeID, ident.UserID)
	if err != nil {
		httpio.Error(w, r, err)
		return
	}
	httpio.Respond(w, http.StatusOK, products)
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.IdentityFromContext(r.Context())
	id, err := httpio.UUIDParam(r, "id")
	if err != nil {
		httpio.Error(w, r, err)
		return
	}
	var req UpdateProductRequest
	if err := httpio.Decode(r, &req); err != nil {
		httpio.Error(w, r, err)
		return
	}
	p, err := h.service.UpdateVendorProduct(r.Context(), id, ident.UserID, req)
	if err != nil {
		httpio.Error(w, r, err)
		return
	}
	httpio.Respond(w, http.StatusOK, p)
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.IdentityFromContext(r.Context())
	id, err := httpio.UUIDParam(r, "id")
	if err != nil {
		httpio.Error(w, r, err)
		return
	}
	if err := h.service.DeleteVendorProduct(r.Context(), id, ident.UserID); err != nil {
		httpio.Error(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) pendingReviews(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.IdentityFromContext(r.Context())
	reviews, err := h.service.GetPendingProductReviews(r.Context(), ident.Role)
	if err != nil {
		httpio.Error(w, r, err)
		return
	}
	httpio.Respond(w, http.StatusOK, reviews)
}

func (h *Handler) approve(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.IdentityFromContext(r.Context())
	id, err := httpio.UUIDParam(r, "id")
	if err != nil {
		httpio.Error(w, r, err)
		return
	}
	p, err := h.service.ApproveProduct(r.Context(), id, ident.Role)
	if err != nil {
		httpio.Error(w, r, err)
		return
	}
	httpio.Respond(w, http.StatusOK, p)
}

func (h *Handler) reject(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.IdentityFromContext(r.Context())
	id, err := httpio.UUIDParam(r, "id")
	if err != nil {
		httpio.Error(w, r, err)
		return
	}
	var req RejectRequest
	if r.ContentLength != 0 {
		if err := httpio.Decode(r, &req); err != nil {
			httpio.Error(w, r, err)
			return
		}
	}
	p, err := h.service.RejectProduct(r.Context(), id, req.Notes, ident.Role)
	if err != nil {
		httpio.Error(w, r, err)
		return
	}
	httpio.Respond(w, http.StatusOK, p)
}
