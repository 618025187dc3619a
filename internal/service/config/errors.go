package config

import "errors"

var (
	// ErrInvalidConfig возвращается при некорректных параметрах конфигурации
	ErrInvalidConfig = errors.New("invalid schedule config")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
