package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/shidoapp/shido/internal/service"
)

type errorResponse struct {
	Error  string `json:"error"`
	Status string `json:"status,omitempty"`
	Field  string `json:"field,omitempty"`
}

func renderJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("render json failed", "error", err)
	}
}

// renderError maps the service error taxonomy onto HTTP statuses. Anything
// unrecognised is logged and reported as a 500 without details.
func renderError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		renderJSON(w, http.StatusBadRequest, errorResponse{
			Error: validationErr.Message,
			Field: validationErr.Field,
		})
	case service.IsNotFound(err):
		renderJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrAlreadyCompleted):
		renderJSON(w, http.StatusConflict, errorResponse{
			Error:  err.Error(),
			Status: "already_completed",
		})
	default:
		slog.Error("request failed", "error", err, "method", r.Method, "path", r.URL.Path)
		renderJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	err := dec.Decode(v)
	if err != nil {
		renderJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return false
	}
	return true
}
