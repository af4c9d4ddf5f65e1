package broker

import "errors"

var (
	// ErrConnect возвращается, если не удалось подключиться к RabbitMQ
	ErrConnect = errors.New("broker: failed to connect")

	// ErrPublish возвращается при ошибке публикации сообщения
	ErrPublish = errors.New("broker: failed to publish")
)
