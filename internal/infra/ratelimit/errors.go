package ratelimit

import "errors"

// ErrStore возвращается при недоступности хранилища счётчиков
var ErrStore = errors.New("ratelimit: store error")
