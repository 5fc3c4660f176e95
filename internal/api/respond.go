package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/aretw0/jot/pkg/core"
)

const maxBodyBytes = 1 << 20

// Result is the envelope of every response.
type Result struct {
	Message string `json:"message"`
	Result  any    `json:"result,omitempty"`
}

func sendResult(w http.ResponseWriter, status int, message string, result any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Result{Message: message, Result: result})
}

// sendError maps err to a status code. Unexpected errors are logged and
// reported without detail.
func (s *Server) sendError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, core.ErrInvalidInput):
		sendResult(w, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, core.ErrReadOnly):
		sendResult(w, http.StatusForbidden, err.Error(), nil)
	default:
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		sendResult(w, http.StatusInternalServerError, "internal error", nil)
	}
}

// decode reads a JSON body into v and validates it.
func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: unable to parse body: %v", core.ErrInvalidInput, err)
	}
	return core.Validate(v)
}
