package notification

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"go.uber.org/zap"

	"receptionist/config"
	"receptionist/models"
	"receptionist/utils"
)

// EmailService implements Service over SMTP.
type EmailService struct{}

func NewEmailService() *EmailService {
	return &EmailService{}
}

func smtpConfigured() bool {
	cfg := config.AppConfig
	return cfg.SMTPHost != "" && cfg.SMTPUser != "" && cfg.SMTPPass != "" && cfg.EmailFrom != ""
}

// SendBookingConfirmation emails the attendee a confirmation with an
// invite.ics attachment. When SMTP is unconfigured the send is skipped
// and reported, never treated as a failure.
func (e *EmailService) SendBookingConfirmation(_ context.Context, input BookingConfirmationInput) (models.EmailResult, error) {
	logger := utils.GetLogger()
	if !smtpConfigured() {
		logger.Warn("email_not_configured_skip_send", zap.String("to", input.To))
		return models.EmailResult{Sent: false, Reason: "smtp_not_configured"}, nil
	}

	cfg := config.AppConfig
	attendee := input.AttendeeName
	if attendee == "" {
		attendee = "there"
	}

	textLines := []string{
		fmt.Sprintf("Hi %s,", attendee),
		"",
		"Your meeting has been confirmed. Please add the attached calendar invite to your calendar.",
		"Topic: " + input.Summary,
		"Start: " + input.Slot.Start.Format(time.RFC1123),
		"End: " + input.Slot.End.Format(time.RFC1123),
	}
	if input.MeetLink != "" {
		textLines = append(textLines, "Google Meet: "+input.MeetLink)
	}
	if input.EventLink != "" {
		textLines = append(textLines, "Calendar link: "+input.EventLink)
	}
	textLines = append(textLines, "", "Thanks,", "Calendar Receptionist")

	ics := generateICS(input.Summary, "", input.Slot)
	msg := buildMIMEMessage(
		cfg.EmailFrom,
		input.To,
		"Meeting confirmed: "+input.Summary,
		strings.Join(textLines, "\r\n"),
		ics,
	)

	logger.Info("email_sending", zap.String("to", input.To), zap.String("from", cfg.SMTPUser))

	addr := fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort)
	auth := smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPHost)
	if err := smtp.SendMail(addr, auth, cfg.EmailFrom, []string{input.To}, msg); err != nil {
		logger.Error("email_send_failed", zap.String("to", input.To), zap.Error(err))
		return models.EmailResult{Sent: false, Reason: err.Error()}, err
	}

	logger.Info("email_sent", zap.String("to", input.To))
	return models.EmailResult{Sent: true}, nil
}

// buildMIMEMessage assembles a multipart/mixed message with a plain-text
// body and a text/calendar attachment.
func buildMIMEMessage(from, to, subject, body, ics string) []byte {
	const boundary = "receptionist-invite-boundary"
	var b strings.Builder

	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: multipart/mixed; boundary=%q\r\n", boundary)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	b.WriteString(body)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: text/calendar; method=REQUEST; charset=utf-8\r\n")
	b.WriteString("Content-Disposition: attachment; filename=invite.ics\r\n")
	b.WriteString("Content-Transfer-Encoding: base64\r\n\r\n")
	b.WriteString(base64.StdEncoding.EncodeToString([]byte(ics)))
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s--\r\n", boundary)
	return []byte(b.String())
}
