package helpers

import (
	"fmt"
	"net/smtp"

	"github.com/yuvakart/backend/config"
)

// SendPasswordResetEmail delivers the reset link over SMTP. Callers treat a
// send failure as non-fatal so the reset endpoint never leaks delivery state.
func SendPasswordResetEmail(cfg *config.SMTPConfig, to, token string) error {
	if cfg.Host == "" {
		return fmt.Errorf("SMTP not configured")
	}

	resetLink := fmt.Sprintf("%s/%s", cfg.ResetURL, token)
	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: Password Reset Request\r\n\r\nClick this link to reset your password: %s\r\n",
		cfg.From, to, resetLink,
	))

	addr := fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}

	return smtp.SendMail(addr, auth, cfg.From, []string{to}, msg)
}
