package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"feedback-insights-go/internal/logger"
)

// requestLogger pins a request id on the request and response and logs
// each completed request.
func (h *Handler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := logger.RequestID(r)
		r.Header.Set(logger.RequestIDHeader, id)
		w.Header().Set(logger.RequestIDHeader, id)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		entry := h.log.WithRequest(r).
			WithField("status", ww.Status()).
			WithField("bytes", ww.BytesWritten()).
			WithField("duration_ms", time.Since(start).Milliseconds())
		if ww.Status() >= http.StatusInternalServerError {
			entry.Warn("request completed")
			return
		}
		entry.Debug("request completed")
	})
}
