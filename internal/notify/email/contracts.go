package email

import "github.com/sendgrid/sendgrid-go/helpers/mail"

// Sender интерфейс отправки письма (для тестирования)
type Sender interface {
	Send(message *mail.SGMailV3) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
