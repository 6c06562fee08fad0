package middleware

import "net/http"

// Middleware wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

// Chain composes mws so the first one is outermost. Nil entries are
// skipped, which lets callers leave optional layers out inline.
func Chain(mws ...Middleware) Middleware {
	return func(final http.Handler) http.Handler {
		for i := len(mws) - 1; i >= 0; i-- {
			if mws[i] != nil {
				final = mws[i](final)
			}
		}
		return final
	}
}

// ThenFunc wraps a handler function. A nil Middleware returns it unwrapped.
func (m Middleware) ThenFunc(fn http.HandlerFunc) http.Handler {
	if m == nil {
		return fn
	}
	return m(fn)
}
