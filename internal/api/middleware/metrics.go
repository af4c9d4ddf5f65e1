package middleware

import (
	"net/http"
	"time"
)

// MetricsMiddleware пишет счётчик и длительность запросов по шаблону маршрута
func MetricsMiddleware(m HTTPMetrics, service string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusRecorder{ResponseWriter: w}
			next.ServeHTTP(sw, r)
			m.ObserveHTTP(service, routeTemplate(r), r.Method, sw.Status(), time.Since(start))
		})
	}
}
