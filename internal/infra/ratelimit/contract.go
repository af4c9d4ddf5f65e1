package ratelimit

import (
	"context"
	"time"
)

// Store счётчик запросов с фиксированным окном.
// Allow увеличивает счётчик key и сообщает, уложился ли запрос в limit за window.
// При отказе возвращает время до сброса окна.
type Store interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, time.Duration, error)
}
