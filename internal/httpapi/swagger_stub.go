//go:build !swagger

package httpapi

import (
	"github.com/go-chi/chi/v5"
)

// MountSwagger is a no-op by default. Build with -tags=swagger to serve the
// dashboard API docs under /swagger/.
func MountSwagger(r chi.Router) {}
