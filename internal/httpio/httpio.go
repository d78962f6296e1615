package httpio

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/georgemunganga/vendorhub/internal/apperr"
	"github.com/georgemunganga/vendorhub/internal/logging"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error  string              `json:"error"`
	Code   string              `json:"code"`
	Fields map[string][]string `json:"fields,omitempty"`
}

func Respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		json.NewEncoder(w).Encode(body)
	}
}

// Error writes err using the apperr status mapping. Internal errors are logged
// and replaced by a generic message.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	status := apperr.HTTPStatus(err)
	body := ErrorBody{Error: err.Error(), Code: apperr.Code(err)}
	if v, ok := apperr.AsValidation(err); ok {
		body.Error = "validation failed"
		body.Fields = v.Fields
	}
	if status == http.StatusInternalServerError {
		logging.FromContext(r.Context()).Error("request failed", "error", err)
		body.Error = "internal server error"
	}
	Respond(w, status, body)
}

// Decode reads a JSON body into dst.
func Decode(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.NewValidation("body", "is required")
		}
		return apperr.NewValidation("body", "must be valid JSON: "+err.Error())
	}
	return nil
}

// UUIDParam parses the named chi URL parameter.
func UUIDParam(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, apperr.NewValidation(name, "must be a valid UUID")
	}
	return id, nil
}
