package middleware

import (
	stdhttp "net/http"
	"runtime/debug"

	perr "taxkaki/internal/platform/errors"
	"taxkaki/internal/platform/logger"
	pnet "taxkaki/internal/platform/net"
)

// RecoverJSON converts panics into the JSON 500 envelope and logs the stack with the request id
func RecoverJSON(next stdhttp.Handler) stdhttp.Handler {
	return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == stdhttp.ErrAbortHandler {
				panic(v)
			}
			reqID := pnet.RequestID(r.Context())
			logger.C(r.Context()).Error().
				Str("request_id", reqID).
				Interface("panic", v).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")

			if reqID != "" {
				w.Header().Set("X-Request-ID", reqID)
			}
			status, body := pnet.Error(perr.PanicErrf("internal error"), reqID)
			WriteJSON(w, status, body)
		}()
		next.ServeHTTP(w, r)
	})
}
