package advance_statuses

import "errors"

// ErrInternal возвращается при внутренних ошибках usecase
var ErrInternal = errors.New("advance_statuses: internal error")
