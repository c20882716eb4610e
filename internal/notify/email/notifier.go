package email

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/meetlane/booking-service/internal/domain"
)

// Config конфигурация email-уведомлений
type Config struct {
	FromName   string
	FromEmail  string
	AdminEmail string
}

// Notifier: доставка уведомлений о бронированиях почтой.
// Клиент получает письмо на свой адрес, администратор: копию на свой.
// Без настроенного отправителя уведомления пропускаются с записью в лог.
type Notifier struct {
	cfg    Config
	sender Sender
	logger Logger
}

// New создает email-нотификатор
func New(cfg Config, sender Sender, logger Logger) *Notifier {
	return &Notifier{
		cfg:    cfg,
		sender: sender,
		logger: logger,
	}
}

// BookingCreated отправляет письма о созданном бронировании
func (n *Notifier) BookingCreated(ctx context.Context, snapshot domain.BookingSnapshot) error {
	subject := fmt.Sprintf("Booking confirmed: %s", snapshot.ServiceName)
	return n.deliver(snapshot, subject, bookingCreatedBody(snapshot))
}

// BookingCancelled отправляет письма об отмене бронирования
func (n *Notifier) BookingCancelled(ctx context.Context, snapshot domain.BookingSnapshot) error {
	subject := fmt.Sprintf("Booking cancelled: %s", snapshot.ServiceName)
	return n.deliver(snapshot, subject, bookingCancelledBody(snapshot))
}

// deliver отправляет письмо клиенту и копию администратору
func (n *Notifier) deliver(snapshot domain.BookingSnapshot, subject, body string) error {
	if n.sender == nil || n.cfg.FromEmail == "" {
		n.logger.Warn("email: delivery not configured, skipping %q for booking %d", subject, snapshot.BookingID)
		return nil
	}

	from := mail.NewEmail(n.cfg.FromName, n.cfg.FromEmail)

	recipients := []*mail.Email{
		mail.NewEmail(snapshot.ClientName, snapshot.ClientEmail),
	}
	if n.cfg.AdminEmail != "" {
		recipients = append(recipients, mail.NewEmail("", n.cfg.AdminEmail))
	}

	var lastErr error
	for _, to := range recipients {
		message := mail.NewSingleEmailPlainText(from, subject, to, body)
		if err := n.sender.Send(message); err != nil {
			n.logger.Error("email: failed to send %q to %s: %v", subject, to.Address, err)
			lastErr = err
			continue
		}
		n.logger.Info("email: sent %q to %s (booking %d)", subject, to.Address, snapshot.BookingID)
	}

	return lastErr
}

// localStart форматирует начало бронирования в часовом поясе провайдера
func localStart(snapshot domain.BookingSnapshot) string {
	loc, err := time.LoadLocation(snapshot.ProviderTimezone)
	if err != nil {
		loc = time.UTC
	}
	return snapshot.StartUTC.In(loc).Format("Monday, 2 January 2006 at 15:04")
}

func bookingCreatedBody(s domain.BookingSnapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", s.ClientName)
	fmt.Fprintf(&b, "Your booking is confirmed.\n\n")
	fmt.Fprintf(&b, "Service: %s\n", s.ServiceName)
	fmt.Fprintf(&b, "When: %s\n", localStart(s))
	fmt.Fprintf(&b, "Duration: %d minutes\n", s.DurationMinutes)
	if s.ClientNotes != "" {
		fmt.Fprintf(&b, "Notes: %s\n", s.ClientNotes)
	}
	fmt.Fprintf(&b, "\nBooking reference: %d\n", s.BookingID)
	return b.String()
}

func bookingCancelledBody(s domain.BookingSnapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", s.ClientName)
	fmt.Fprintf(&b, "Your booking has been cancelled.\n\n")
	fmt.Fprintf(&b, "Service: %s\n", s.ServiceName)
	fmt.Fprintf(&b, "When: %s\n", localStart(s))
	fmt.Fprintf(&b, "\nBooking reference: %d\n", s.BookingID)
	return b.String()
}
