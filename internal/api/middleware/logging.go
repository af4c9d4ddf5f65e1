package middleware

import (
	"net/http"
	"time"
)

// Logging пишет одну строку на запрос. 5xx логируются как ошибки.
func Logging(log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusRecorder{ResponseWriter: w}
			next.ServeHTTP(sw, r)

			status := sw.Status()
			format := "HTTP %s %s - status=%d duration=%s request_id=%s remote=%s"
			args := []interface{}{r.Method, routeTemplate(r), status, time.Since(start), GetRequestID(r.Context()), clientIP(r)}
			if status >= http.StatusInternalServerError {
				log.Error(format, args...)
				return
			}
			log.Info(format, args...)
		})
	}
}
