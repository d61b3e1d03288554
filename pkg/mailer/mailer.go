// Package mailer provides functionality to send emails.
// It is configured to use Mailtrap (smtp.mailtrap.io) as the SMTP server,
// which is useful for development and testing environments.
package mailer

import (
	"fmt"
	"net/smtp"
	"strings"
)

// SendEmail sends an email through Mailtrap's SMTP server. The body may be
// plain text or HTML; the Content-Type is inferred from the presence of
// basic HTML tags. All parameters are required except body.
func SendEmail(recipient, sender, subject, body, smtpUser, smtpPass string) error {
	smtpHost := "smtp.mailtrap.io"
	smtpPort := "2525"
	smtpAddr := smtpHost + ":" + smtpPort

	if recipient == "" {
		return fmt.Errorf("recipient email address cannot be empty")
	}
	if sender == "" {
		return fmt.Errorf("sender email address cannot be empty")
	}
	if subject == "" {
		return fmt.Errorf("email subject cannot be empty")
	}
	if smtpUser == "" || smtpPass == "" {
		return fmt.Errorf("SMTP username and password must be provided")
	}

	contentType := "text/plain; charset=UTF-8"
	if strings.Contains(strings.ToLower(body), "<html>") || strings.Contains(strings.ToLower(body), "<p>") {
		contentType = "text/html; charset=UTF-8"
	}

	message := []byte(fmt.Sprintf("To: %s\r\n"+
		"From: %s\r\n"+
		"Subject: %s\r\n"+
		"Content-Type: %s\r\n"+
		"\r\n"+
		"%s\r\n", recipient, sender, subject, contentType, body))

	auth := smtp.PlainAuth("", smtpUser, smtpPass, smtpHost)

	if err := smtp.SendMail(smtpAddr, auth, sender, []string{recipient}, message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
