package settings

import "errors"

var (
	// ErrKeyNotFound возвращается, когда ключ настройки отсутствует
	ErrKeyNotFound = errors.New("settings.repository: key not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("settings.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("settings.repository: failed to execute query")
)
