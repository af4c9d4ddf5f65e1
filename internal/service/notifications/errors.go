package notifications

import "errors"

var (
	// ErrStore возвращается, когда не удалось сохранить уведомление
	ErrStore = errors.New("notifications: failed to store notification")

	// ErrPublish возвращается, когда не удалось опубликовать событие
	ErrPublish = errors.New("notifications: failed to publish event")
)
