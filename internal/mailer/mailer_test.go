package mailer

import (
	"net/smtp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"live-reservation/internal/config"
	"live-reservation/internal/logger"
	"live-reservation/internal/models"
)

func testMailer(captured *[]string) *Mailer {
	m := NewMailer(config.EmailConfig{
		SMTPHost:     "localhost",
		SMTPPort:     "2525",
		From:         "venue@example.com",
		OperatorAddr: "owner@example.com",
	}, logger.NewConsole())
	m.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		*captured = append(*captured, to...)
		return nil
	}
	return m
}

func TestSendBookingNoticeRecipients(t *testing.T) {
	var recipients []string
	m := testMailer(&recipients)

	event := models.Event{Title: "Test Show", Date: "2026-05-05"}
	err := m.SendBookingNotice(event, models.Reservation{ID: 1, Name: "A", People: 2, Email: "a@x.com"})
	require.NoError(t, err)
	assert.Equal(t, []string{"owner@example.com", "a@x.com"}, recipients)
}

func TestSendBookingNoticeAnonymousGoesToOperatorOnly(t *testing.T) {
	var recipients []string
	m := testMailer(&recipients)

	event := models.Event{Title: "Test Show", Date: "2026-05-05"}
	err := m.SendBookingNotice(event, models.Reservation{ID: 1, Name: "A", People: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"owner@example.com"}, recipients)
}

func TestFormatBookingNotice(t *testing.T) {
	var recipients []string
	m := testMailer(&recipients)

	event := models.Event{
		Title:     "Test Show",
		Date:      "2026-05-05",
		OpenTime:  "18:00",
		StartTime: "19:00",
		Location:  "Basement Hall",
	}
	body := m.FormatBookingNotice(event, models.Reservation{ID: 1, Name: "A", People: 3},
		[]string{"owner@example.com", "a@x.com"})

	assert.Contains(t, body, "To: owner@example.com, a@x.com")
	assert.Contains(t, body, "Subject: Reservation confirmed: Test Show")
	assert.Contains(t, body, "Date:     2026-05-05")
	assert.Contains(t, body, "Open:     18:00")
	assert.Contains(t, body, "Start:    19:00")
	assert.Contains(t, body, "Venue:    Basement Hall")
	assert.Contains(t, body, "Party of: 3 (A)")
}

func TestFormatBookingNoticeOmitsEmptyFields(t *testing.T) {
	var recipients []string
	m := testMailer(&recipients)

	body := m.FormatBookingNotice(models.Event{Title: "Bare", Date: "2026-05-05"},
		models.Reservation{Name: "A", People: 1}, []string{"owner@example.com"})

	assert.NotContains(t, body, "Open:")
	assert.NotContains(t, body, "Start:")
	assert.NotContains(t, body, "Venue:")
}
