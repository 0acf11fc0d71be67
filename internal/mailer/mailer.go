package mailer

import (
	"fmt"
	"net/smtp"
	"strings"

	"live-reservation/internal/config"
	"live-reservation/internal/logger"
	"live-reservation/internal/models"
)

// Mailer sends the plain-text booking summary to the booker (when an
// address was given) and to the operator.
type Mailer struct {
	cfg config.EmailConfig
	log *logger.Logger

	// send is swappable for tests.
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewMailer(cfg config.EmailConfig, log *logger.Logger) *Mailer {
	return &Mailer{cfg: cfg, log: log, send: smtp.SendMail}
}

func (m *Mailer) SendBookingNotice(event models.Event, res models.Reservation) error {
	recipients := []string{m.cfg.OperatorAddr}
	if res.Email != "" {
		recipients = append(recipients, res.Email)
	}

	body := m.FormatBookingNotice(event, res, recipients)

	var auth smtp.Auth
	if m.cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", m.cfg.SMTPUsername, m.cfg.SMTPPassword, m.cfg.SMTPHost)
	}

	addr := m.cfg.SMTPHost + ":" + m.cfg.SMTPPort
	if err := m.send(addr, auth, m.cfg.From, recipients, []byte(body)); err != nil {
		return fmt.Errorf("smtp delivery failed: %w", err)
	}

	m.log.Info("MAILER", fmt.Sprintf("Booking notice sent for reservation %d to %d recipient(s)", res.ID, len(recipients)))
	return nil
}

// FormatBookingNotice builds the RFC 822 message summarizing the
// booked show.
func (m *Mailer) FormatBookingNotice(event models.Event, res models.Reservation, recipients []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.cfg.From)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(recipients, ", "))
	fmt.Fprintf(&b, "Subject: Reservation confirmed: %s\r\n", event.Title)
	b.WriteString("\r\n")
	fmt.Fprintf(&b, "Your reservation is confirmed.\r\n\r\n")
	fmt.Fprintf(&b, "Show:     %s\r\n", event.Title)
	fmt.Fprintf(&b, "Date:     %s\r\n", event.Date)
	if event.OpenTime != "" {
		fmt.Fprintf(&b, "Open:     %s\r\n", event.OpenTime)
	}
	if event.StartTime != "" {
		fmt.Fprintf(&b, "Start:    %s\r\n", event.StartTime)
	}
	if event.Location != "" {
		fmt.Fprintf(&b, "Venue:    %s\r\n", event.Location)
	}
	fmt.Fprintf(&b, "Party of: %d (%s)\r\n", res.People, res.Name)
	return b.String()
}
