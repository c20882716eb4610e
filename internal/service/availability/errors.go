package availability

import "errors"

var (
	// ErrTooManyWindows возвращается, когда на день задано больше окон,
	// чем разрешено
	ErrTooManyWindows = errors.New("availability: too many windows for a day")

	// ErrInvalidWindow возвращается при некорректном окне (формат времени
	// или start >= end)
	ErrInvalidWindow = errors.New("availability: invalid window")

	// ErrOverlappingWindows возвращается, когда окна одного дня пересекаются
	ErrOverlappingWindows = errors.New("availability: overlapping windows within a day")

	// ErrInvalidRules возвращается при недопустимых значениях правил
	// бронирования
	ErrInvalidRules = errors.New("availability: invalid booking rules")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("availability: internal error")
)
