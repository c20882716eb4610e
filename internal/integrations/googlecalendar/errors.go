package googlecalendar

import "errors"

var (
	// ErrNotConnected возвращается, когда календарь не подключен
	ErrNotConnected = errors.New("googlecalendar: not connected")

	// ErrTokenDecrypt возвращается при ошибке расшифровки сохраненных токенов
	ErrTokenDecrypt = errors.New("googlecalendar: failed to decrypt stored tokens")

	// ErrTokenRefresh возвращается при неудачном обновлении access-токена
	ErrTokenRefresh = errors.New("googlecalendar: failed to refresh access token")

	// ErrAPICall возвращается при неудачном вызове Calendar API
	ErrAPICall = errors.New("googlecalendar: calendar API call failed")
)
