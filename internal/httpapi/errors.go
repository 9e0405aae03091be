package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"ollamakit/internal/adapter"
	"ollamakit/internal/registry"
	"ollamakit/internal/transport"
	"ollamakit/pkg/types"
)

// HTTPError allows services to provide an HTTP status code for an error.
type HTTPError interface {
	error
	StatusCode() int
}

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: msg, Code: status})
}

// statusFor maps a client-side failure to the status the dashboard answers with.
func statusFor(err error) int {
	var he HTTPError
	switch {
	case errors.As(err, &he):
		return he.StatusCode()
	case errors.Is(err, registry.ErrModelNotFound), transport.IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, adapter.ErrNoModels):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case transport.IsUnavailable(err), transport.StatusCode(err) != 0, errors.Is(err, transport.ErrMalformedResponse):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
