package httpapi

import (
	"context"
	"time"
)

// serverBaseCtx is a process-level context that can be canceled on shutdown.
// Defaults to Background if not set.
var serverBaseCtx = context.Background()

// SetBaseContext sets the process-level base context used by handlers.
func SetBaseContext(ctx context.Context) {
	if ctx == nil {
		serverBaseCtx = context.Background()
		return
	}
	serverBaseCtx = ctx
}

// turnContext derives the context for one model call from the request: it
// ends when the client goes away, the server shuts down or the turn timeout
// expires. The returned cancel func must be called when the handler ends.
func turnContext(req context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(req)
	stop := context.AfterFunc(serverBaseCtx, cancel)
	if turnTimeout > 0 {
		var cancelTimeout context.CancelFunc
		ctx, cancelTimeout = context.WithTimeout(ctx, time.Duration(turnTimeout)*time.Second)
		return ctx, func() {
			cancelTimeout()
			stop()
			cancel()
		}
	}
	return ctx, func() {
		stop()
		cancel()
	}
}

// shuttingDown reports whether the request or the server is gone, in which
// case nothing more should be written.
func shuttingDown(req context.Context) bool {
	return req.Err() != nil || serverBaseCtx.Err() != nil
}
