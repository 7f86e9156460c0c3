package server

import (
	"context"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
)

type traceContextKey struct{}
type traceContext struct {
	traceID string
}

func setTraceContext(ctx context.Context, tc traceContext) context.Context {
	return context.WithValue(ctx, traceContextKey{}, tc)
}
func getTraceContext(ctx context.Context) traceContext {
	tc, _ := ctx.Value(traceContextKey{}).(traceContext)
	return tc
}

// Import documents carry full show metadata, so the body limit is well above
// a typical API request.
func (s Server) maxBytesMw(next http.Handler) http.Handler {
	return http.MaxBytesHandler(next, 5000000)
}

func (s Server) loggingMw(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		traceID := uuid.NewString()
		s.Logger.Debugf("loggingMw: New incoming request %s %s from %s, UA: %s, Host: %#v, TraceID: %s",
			r.Method, r.URL.Path, r.RemoteAddr, r.UserAgent(), r.Host, traceID)

		defer func() {
			if re := recover(); re != nil {
				s.Logger.Errorf("loggingMw: Handler crashed, err: %v, TraceID: %s, stack trace:\n%s", re, traceID, debug.Stack())
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}
		}()

		tc := traceContext{traceID: traceID}
		next.ServeHTTP(w, r.WithContext(setTraceContext(r.Context(), tc)))

		s.Logger.Tracef("loggingMw: Incoming request %s %s took %dms, TraceID: %s",
			r.Method, r.URL.Path, time.Now().Sub(start).Milliseconds(), traceID)
	})
}
