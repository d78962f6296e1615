package auth

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/georgemunganga/vendorhub/internal/apperr"
	"github.com/georgemunganga/vendorhub/internal/httpio"
)

// HandlerOptions controls cookie flags and whether admins may self-register.
type HandlerOptions struct {
	SecureCookie    bool
	AdminSignupOpen bool
}

// Handler exposes sign-up, sign-in and session endpoints.
type Handler struct {
	service Service
	opts    HandlerOptions
}

func NewHandler(service Service, opts HandlerOptions) *Handler {
	return &Handler{service: service, opts: opts}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/signup", h.signUpVendor)
		r.Post("/signup/admin", h.signUpAdmin)
		r.Post("/signin", h.signIn)
		r.Post("/signout", h.signOut)
		r.Get("/me", h.me)
	})
}

func (h *Handler) signUpVendor(w http.ResponseWriter, r *http.Request) {
	var creds Credentials
	if err := httpio.Decode(r, &creds); err != nil {
		httpio.Error(w, r, err)
		return
	}
	res, err := h.service.SignUpVendor(r.Context(), creds)
	if err != nil {
		httpio.Error(w, r, err)
		return
	}
	h.setCookie(w, res.Token, h.service.MaxAge())
	httpio.Respond(w, http.StatusCreated, res)
}

func (h *Handler) signUpAdmin(w http.ResponseWriter, r *http.Request) {
	if !h.opts.AdminSignupOpen {
		httpio.Error(w, r, apperr.ErrForbidden)
		return
	}
	var creds Credentials
	if err := httpio.Decode(r, &creds); err != nil {
		httpio.Error(w, r, err)
		return
	}
	res, err := h.service.SignUpAdmin(r.Context(), creds)
	if err != nil {
		httpio.Error(w, r, err)
		return
	}
	h.setCookie(w, res.Token, h.service.MaxAge())
	httpio.Respond(w, http.StatusCreated, res)
}

func (h *Handler) signIn(w http.ResponseWriter, r *http.Request) {
	var creds Credentials
	if err := httpio.Decode(r, &creds); err != nil {
		httpio.Error(w, r, err)
		return
	}
	res, err := h.service.SignIn(r.Context(), creds)
	if err != nil {
		httpio.Error(w, r, err)
		return
	}
	h.setCookie(w, res.Token, h.service.MaxAge())
	httpio.Respond(w, http.StatusOK, res)
}

func (h *Handler) signOut(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DestroySession(r.Context(), TokenFromRequest(r)); err != nil {
		httpio.Error(w, r, err)
		return
	}
	h.setCookie(w, "", -time.Second)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	u, err := h.service.CurrentUser(r.Context(), TokenFromRequest(r))
	if err != nil {
		httpio.Error(w, r, err)
		return
	}
	httpio.Respond(w, http.StatusOK, u)
}

// setCookie writes the session cookie; a negative maxAge deletes it.
func (h *Handler) setCookie(w http.ResponseWriter, token string, maxAge time.Duration) {
	seconds := int(maxAge.Seconds())
	if maxAge < 0 {
		seconds = -1
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.opts.SecureCookie,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   seconds,
	})
}
