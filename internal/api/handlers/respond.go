package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/isdelr/chroniclex-be/internal/apperr"
	"github.com/rs/zerolog/log"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

// WriteJSON encodes v as the response body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

// WriteError renders err as a structured error response. Internal failures are
// logged and hidden behind a generic message.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperr.Status(err)
	detail := err.Error()
	if !apperr.Exposed(err) {
		log.Error().Err(err).
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("Request failed")
		detail = "An internal error occurred."
	} else {
		detail = publicDetail(detail)
	}

	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Token")
	}
	WriteJSON(w, status, ErrorResponse{Error: apperr.Kind(err), Detail: detail})
}

// publicDetail drops the sentinel prefix from a wrapped error message.
func publicDetail(msg string) string {
	for _, sentinel := range []error{apperr.ErrValidation, apperr.ErrAuthentication, apperr.ErrPermission} {
		if rest, ok := strings.CutPrefix(msg, sentinel.Error()+": "); ok {
			return rest
		}
	}
	return msg
}

// decodeJSON reads a JSON object into dst. Unknown fields are ignored.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: request body is empty", apperr.ErrValidation)
		}
		return fmt.Errorf("%w: invalid request body", apperr.ErrValidation)
	}
	return nil
}
