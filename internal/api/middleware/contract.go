package middleware

import (
	"context"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RateLimitStore счётчик запросов с фиксированным окном
type RateLimitStore interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, time.Duration, error)
}

// HTTPMetrics метрики HTTP запросов
type HTTPMetrics interface {
	ObserveHTTP(service, route, method string, status int, dur time.Duration)
}

// RateLimitMetrics счётчик отклонённых запросов
type RateLimitMetrics interface {
	IncRateLimitRejected(scope string)
}
