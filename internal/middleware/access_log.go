package middleware

import (
	"net/http"
	"time"

	"clinic-medications/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func AccessLog(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			fields := map[string]any{
				"request_id":    chimw.GetReqID(r.Context()),
				"method":        r.Method,
				"route":         routePattern(r),
				"status":        status(ww),
				"bytes_written": ww.BytesWritten(),
				"remote_addr":   r.RemoteAddr,
				"duration_ms":   time.Since(start).Milliseconds(),
			}
			switch {
			case status(ww) >= 500:
				log.Error("http request", fields)
			case status(ww) >= 400:
				log.Warn("http request", fields)
			default:
				log.Info("http request", fields)
			}
		})
	}
}

// routePattern usa el patrón de chi (/medications/{medicationID}) para no
// explotar la cardinalidad de labels y logs con IDs.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

func status(ww chimw.WrapResponseWriter) int {
	if s := ww.Status(); s != 0 {
		return s
	}
	return http.StatusOK
}
