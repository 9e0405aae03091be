package httpapi

import (
	"sync"

	"ollamakit/pkg/types"
)

// maxBodyBytes controls the maximum allowed request body size for JSON endpoints.
var maxBodyBytes int64 = 1 << 20

// SetMaxBodyBytes allows configuring the maximum request body size.
func SetMaxBodyBytes(n int64) {
	if n <= 0 {
		maxBodyBytes = 1 << 20
		return
	}
	maxBodyBytes = n
}

// turnTimeout bounds one chat turn or generation in seconds. Zero disables it.
var turnTimeout = int64(0)

// SetTurnTimeoutSeconds sets the per-turn timeout in seconds (0 disables).
func SetTurnTimeoutSeconds(sec int64) {
	if sec < 0 {
		sec = 0
	}
	turnTimeout = sec
}

// CORS configuration (opt-in). If disabled, no CORS middleware is added.
var (
	corsEnabled        bool
	corsAllowedOrigins []string
	corsAllowedMethods []string
	corsAllowedHeaders []string
)

// SetCORSOptions configures CORS behavior for the HTTP server. Empty
// methods or headers fall back to what the dashboard API uses.
func SetCORSOptions(enabled bool, origins, methods, headers []string) {
	corsEnabled = enabled
	corsAllowedOrigins = append([]string(nil), origins...)
	corsAllowedMethods = append([]string(nil), methods...)
	corsAllowedHeaders = append([]string(nil), headers...)
	if len(corsAllowedMethods) == 0 {
		corsAllowedMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	}
	if len(corsAllowedHeaders) == 0 {
		corsAllowedHeaders = []string{"Content-Type", "X-Request-Id", "X-Log-Level"}
	}
}

// Dashboard defaults: model preselected in the UI and sampling options for
// new sessions. Guarded because serve reloads them when the config changes.
var (
	defaultsMu   sync.RWMutex
	defaultModel string
	defaultOpts  *types.Options
)

// SetDefaults installs the dashboard defaults.
func SetDefaults(model string, opts *types.Options) {
	defaultsMu.Lock()
	defaultModel = model
	defaultOpts = opts.Merge(nil)
	defaultsMu.Unlock()
}

func defaults() (string, *types.Options) {
	defaultsMu.RLock()
	defer defaultsMu.RUnlock()
	return defaultModel, defaultOpts.Merge(nil)
}
