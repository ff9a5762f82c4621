package email

import (
	"fmt"
	"net/smtp"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/rahulk/studyshare/internal/app/models"
)

// Notifier sends user-facing notification emails.
type Notifier interface {
	// SendApplicationDecision notifies an applicant that their contributor
	// application was approved or rejected.
	SendApplicationDecision(toEmail, toName string, status models.ApplicationStatus) error
}

// SMTPConfig holds configuration for the SMTP server.
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
}

type smtpNotifier struct {
	config SMTPConfig
	logger zerolog.Logger
}

// NewNotifier creates an SMTP-backed Notifier.
func NewNotifier(config SMTPConfig, logger zerolog.Logger) Notifier {
	return &smtpNotifier{config: config, logger: logger}
}

// SendApplicationDecision sends the decision email. When SMTP credentials are
// not configured the message is logged instead of sent, so local development
// works without a mail server.
func (s *smtpNotifier) SendApplicationDecision(toEmail, toName string, status models.ApplicationStatus) error {
	subject := "Your contributor application was rejected"
	intro := "We are sorry to let you know that your contributor application was not approved this time. You may re-apply with updated details."
	if status == models.ApplicationApproved {
		subject = "Your contributor application was approved"
		intro = "Congratulations! Your contributor application has been approved. You can now upload notes, previous-year questions and syllabi."
	}

	if s.config.Username == "" || s.config.Password == "" {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("status", string(status)).
			Msg("SMTP credentials not configured - decision email not sent")
		return nil
	}

	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">StudyShare</h2>
				<p>Hello %s,</p>
				<p>%s</p>
				<p>Best regards,<br>The StudyShare Team</p>
			</div>
		</body>
		</html>
	`, toName, intro)

	return s.sendHTMLEmail(toEmail, subject, body)
}

func (s *smtpNotifier) sendHTMLEmail(toEmail, subject, body string) error {
	addr := s.config.Host + ":" + strconv.Itoa(s.config.Port)
	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)

	from := s.config.FromEmail
	if s.config.FromName != "" {
		from = fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail)
	}

	msg := []byte("From: " + from + "\r\n" +
		"To: " + toEmail + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/html; charset=UTF-8\r\n" +
		"\r\n" + body)

	if err := smtp.SendMail(addr, auth, s.config.FromEmail, []string{toEmail}, msg); err != nil {
		s.logger.Error().Err(err).Str("toEmail", toEmail).Msg("Failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Info().Str("toEmail", toEmail).Str("subject", subject).Msg("Email sent")
	return nil
}
