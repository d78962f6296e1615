package store

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/georgemunganga/vendorhub/internal/httpio"
	"github.com/georgemunganga/vendorhub/internal/modules/auth"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireIdentity)
		r.Post("/api/v1/stores", h.createStore)
		r.Get("/api/v1/stores/me", h.myStore)
		r.Get("/api/v1/stores/{id}", h.getStore)
		r.Patch("/api/v1/stores/{id}", h.updateStore)
	})
}

func (h *Handler) createStore(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.IdentityFromContext(r.Context())

	var req CreateStoreRequest
	if err := httpio.Decode(r, &req); err != nil {
		httpio.Error(w, r, err)
		return
	}
	st, err := h.service.CreateStore(r.Context(), ident.UserID, req)
	if err != nil {
		httpio.Error(w, r, err)
		return
	}
	httpio.Respond(w, http.StatusCreated, st)
}

func (h *Handler) myStore(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.IdentityFromContext(r.Context())

	st, err := h.service.GetStoreByVendor(r.Context(), ident.UserID)
	if err != nil {
		httpio.Error(w, r, err)
		return
	}
	httpio.Respond(w, http.StatusOK, st)
}

func (h *Handler) getStore(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.IdentityFromContext(r.Context())
	id, err := httpio.UUIDParam(r, "id")
	if err != nil {
		httpio.Error(w, r, err)
		return
	}
	st, err := h.service.OwnedStore(r.Context(), id, ident.UserID)
	if err != nil {
		httpio.Error(w, r, err)
		return
	}
	httpio.Respond(w, http.StatusOK, st)
}

func (h *Handler) updateStore(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.IdentityFromContext(r.Context())
	id, err := httpio.UUIDParam(r, "id")
	if err != nil {
		httpio.Error(w, r, err)
		return
	}

	var req UpdateStoreRequest
	if err := httpio.Decode(r, &req); err != nil {
		httpio.Error(w, r, err)
		return
	}
	st, err := h.service.UpdateStore(r.Context(), id, ident.UserID, req)
	if err != nil {
		httpio.Error(w, r, err)
		return
	}
	httpio.Respond(w, http.StatusOK, st)
}
