package middleware

import (
	"net/http"

	"github.com/vancomm/minesweeper/internal/config"
)

type Middleware func(http.Handler) http.Handler

// Wrap applies mws in order, so the last one is the outermost.
func Wrap(h http.Handler, mws ...Middleware) http.Handler {
	for _, mw := range mws {
		h = mw(h)
	}
	return h
}

type CtxKey int

const (
	CtxSessionClaims CtxKey = iota
)

func SessionClaims(r *http.Request) (*config.SessionClaims, bool) {
	claims, ok := r.Context().Value(CtxSessionClaims).(*config.SessionClaims)
	return claims, ok
}
