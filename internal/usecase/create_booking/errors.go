package create_booking

import "errors"

var (
	// ErrMissingFields возвращается, когда не заполнены обязательные поля
	ErrMissingFields = errors.New("create_booking: required fields are missing")

	// ErrInvalidEmail возвращается при некорректном email клиента
	ErrInvalidEmail = errors.New("create_booking: invalid email address")

	// ErrInvalidDate возвращается, когда дата не является реальной датой YYYY-MM-DD
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrInvalidTime возвращается при некорректном времени HH:MM
	ErrInvalidTime = errors.New("create_booking: invalid booking time")

	// ErrInvalidService возвращается, когда услуга не существует или неактивна
	ErrInvalidService = errors.New("create_booking: invalid or inactive service")

	// ErrInvalidInput возвращается при прочих некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrSlotTaken возвращается, когда слот занят. Вызывающий не различает,
	// какой из слоев защиты отловил гонку.
	ErrSlotTaken = errors.New("create_booking: slot is already taken")

	// ErrServerBusy возвращается при таймауте блокировки или сбое хранилища
	// на атомарной вставке; состояние временное, клиент может повторить
	ErrServerBusy = errors.New("create_booking: server is busy, try again")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
