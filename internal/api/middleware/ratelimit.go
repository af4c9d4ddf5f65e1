package middleware

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/SMC-ApartmentBooking/internal/api/handlers"
)

const msgTooManyRequests = "слишком много запросов, попробуйте позже"

// RateLimitRule лимит для группы маршрутов
type RateLimitRule struct {
	Scope  string // holds, payments
	Limit  int
	Window time.Duration
}

// RateLimit ограничивает частоту запросов на пользователя (без Auth - на IP).
// Ошибка хранилища не блокирует запрос.
func RateLimit(store RateLimitStore, rule RateLimitRule, m RateLimitMetrics, log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := rateLimitKey(r, rule.Scope)

			allowed, retryAfter, err := store.Allow(r.Context(), key, rule.Limit, rule.Window)
			if err != nil {
				log.Warn("RateLimit: store failed for key=%s, request allowed: %v", key, err)
				next.ServeHTTP(w, r)
				return
			}

			if !allowed {
				m.IncRateLimitRejected(rule.Scope)
				log.Warn("RateLimit: limit %d per %s exceeded for key=%s", rule.Limit, rule.Window, key)
				w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds(retryAfter)))
				handlers.RespondError(w, http.StatusTooManyRequests, msgTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// rateLimitKey ключ без пространства имён: его добавляет хранилище
func rateLimitKey(r *http.Request, scope string) string {
	if userID, ok := GetUserID(r.Context()); ok {
		return scope + ":user:" + strconv.FormatInt(userID, 10)
	}
	return scope + ":ip:" + clientIP(r)
}

func retryAfterSeconds(d time.Duration) int {
	seconds := int(math.Ceil(d.Seconds()))
	if seconds < 1 {
		return 1
	}
	return seconds
}
