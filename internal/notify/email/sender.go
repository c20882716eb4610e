package email

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// sendgridSender: отправка через SendGrid API
type sendgridSender struct {
	client *sendgrid.Client
}

// NewSendGridSender создает отправителя поверх SendGrid
func NewSendGridSender(apiKey string) Sender {
	return &sendgridSender{client: sendgrid.NewSendClient(apiKey)}
}

func (s *sendgridSender) Send(message *mail.SGMailV3) error {
	resp, err := s.client.Send(message)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid returned status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}
