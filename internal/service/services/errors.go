package services

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("services: service not found")

	// ErrInvalidName возвращается при пустом имени услуги
	ErrInvalidName = errors.New("services: name is required")

	// ErrInvalidDuration возвращается при недопустимой длительности
	ErrInvalidDuration = errors.New("services: duration must be 15-240 minutes in 15-minute steps")

	// ErrSlugTaken возвращается, когда slug уже занят другой услугой
	ErrSlugTaken = errors.New("services: slug already in use")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("services: internal error")
)
