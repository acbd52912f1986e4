package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"time"

	"myresume-backend/config"
)

// Service delivers one-time codes to users over SMTP.
type Service struct {
	host      string
	port      string
	username  string
	password  string
	fromEmail string
	fromName  string
}

func NewService(cfg *config.Config) *Service {
	return &Service{
		host:      cfg.SMTPHost,
		port:      cfg.SMTPPort,
		username:  cfg.SMTPUsername,
		password:  cfg.SMTPPassword,
		fromEmail: cfg.SMTPFromEmail,
		fromName:  cfg.SMTPFromName,
	}
}

// IsConfigured reports whether SMTP credentials are present.
func (s *Service) IsConfigured() bool {
	return s.host != "" && s.username != "" && s.password != ""
}

type otpEmailData struct {
	Title string
	Code  string
	Year  int
}

const otpEmailTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>{{.Title}}</title></head>
<body style="font-family: Arial, sans-serif; background-color: #f9fafb; padding: 20px;">
    <div style="max-width: 500px; margin: auto; background: #ffffff; border-radius: 8px; padding: 20px;">
        <h2 style="color: #2563eb; text-align: center;">{{.Title}}</h2>
        <p style="font-size: 16px; color: #333;">Hello,</p>
        <p style="font-size: 16px; color: #333;">Your one-time password (OTP) is:</p>
        <div style="text-align: center; margin: 25px 0;">
            <span style="font-size: 32px; font-weight: bold; color: #2563eb; letter-spacing: 4px;">{{.Code}}</span>
        </div>
        <p style="font-size: 14px; color: #555; text-align: center;">This OTP will expire in <b>5 minutes</b>. Please do not share it with anyone.</p>
        <hr style="margin: 20px 0; border: none; border-top: 1px solid #eee;">
        <p style="font-size: 12px; color: #888; text-align: center;">&copy; {{.Year}} MyResume.io</p>
    </div>
</body>
</html>`

// SendOTP sends a one-time code to the given address. The title differs for
// first issuance and resends.
func (s *Service) SendOTP(to, code, title string) error {
	tmpl, err := template.New("otp").Parse(otpEmailTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse email template: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, otpEmailData{
		Title: title,
		Code:  code,
		Year:  time.Now().Year(),
	}); err != nil {
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	msg := []byte(fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s - %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=UTF-8\r\n"+
			"\r\n"+
			"%s",
		s.fromName,
		s.fromEmail,
		to,
		title,
		s.fromName,
		body.String(),
	))

	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	addr := s.host + ":" + s.port
	if err := smtp.SendMail(addr, auth, s.fromEmail, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
